package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000

	// ErrOverflow an unsigned addition exceeded the representable range
	ErrOverflow ErrorCode = 100100
	// ErrUnderflow an unsigned subtraction went below zero
	ErrUnderflow ErrorCode = 100101
	// ErrInsufficientCollateral borrow or withdraw exceeds the deposited amount
	ErrInsufficientCollateral ErrorCode = 100102

	// ErrPoolNotFound pool not initialized
	ErrPoolNotFound ErrorCode = 100200
	// ErrPoolAlreadyExists pool initialized twice
	ErrPoolAlreadyExists ErrorCode = 100201
	// ErrPositionNotFound no position for the user
	ErrPositionNotFound ErrorCode = 100202
	// ErrInsufficientLiquidity borrows would exceed supplies, strict mode only
	ErrInsufficientLiquidity ErrorCode = 100203
	// ErrInvalidTrace trace id reused by another user or action
	ErrInvalidTrace ErrorCode = 100204
	// ErrInvalidUser missing user id
	ErrInvalidUser ErrorCode = 100205
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                "unknown error",
	ErrOverflow:               "overflow occurred",
	ErrUnderflow:              "underflow occurred",
	ErrInsufficientCollateral: "insufficient collateral",
	ErrPoolNotFound:           "pool not found",
	ErrPoolAlreadyExists:      "pool already exists",
	ErrPositionNotFound:       "position not found",
	ErrInsufficientLiquidity:  "insufficient liquidity",
	ErrInvalidTrace:           "trace id already used",
	ErrInvalidUser:            "invalid user",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}
