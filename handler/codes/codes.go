package codes

import (
	"strconv"

	"defilend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// From converts service errors into twirp errors carrying the ledger error code
func From(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	if err == db.ErrOptimisticLock {
		return twirp.NewError(twirp.Aborted, "record changed concurrently, retry")
	}

	code, ok := err.(core.ErrorCode)
	if !ok {
		return twirp.InternalErrorWith(err)
	}

	var twerr twirp.Error
	switch code {
	case core.ErrOverflow, core.ErrUnderflow:
		twerr = twirp.NewError(twirp.OutOfRange, code.Error())
	case core.ErrInsufficientCollateral, core.ErrInsufficientLiquidity:
		twerr = twirp.NewError(twirp.FailedPrecondition, code.Error())
	case core.ErrPoolNotFound, core.ErrPositionNotFound:
		twerr = twirp.NotFoundError(code.Error())
	case core.ErrPoolAlreadyExists:
		twerr = twirp.NewError(twirp.AlreadyExists, code.Error())
	case core.ErrInvalidTrace, core.ErrInvalidUser:
		twerr = twirp.NewError(twirp.InvalidArgument, code.Error())
	default:
		twerr = twirp.InternalError(code.Error())
	}

	return twerr.WithMeta(CustomCodeKey, code.String())
}
