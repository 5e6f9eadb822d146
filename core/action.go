package core

// ActionType ledger action
type ActionType string

const (
	// ActionTypeSupply deposit collateral
	ActionTypeSupply ActionType = "supply"
	// ActionTypeBorrow borrow from the pool
	ActionTypeBorrow ActionType = "borrow"
	// ActionTypeRepay repay to the pool
	ActionTypeRepay ActionType = "repay"
	// ActionTypeWithdraw withdraw collateral
	ActionTypeWithdraw ActionType = "withdraw"
)

// ParseActionType parse action type from text, returns false if unknown
func ParseActionType(s string) (ActionType, bool) {
	switch a := ActionType(s); a {
	case ActionTypeSupply, ActionTypeBorrow, ActionTypeRepay, ActionTypeWithdraw:
		return a, true
	}

	return "", false
}

func (a ActionType) String() string {
	return string(a)
}
