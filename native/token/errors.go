package token

import "errors"

var (
	ErrNotAuthorized         = errors.New("token: caller not authorized")
	ErrPaused                = errors.New("token: ledger paused")
	ErrInvalidMinter         = errors.New("token: caller is not a registered minter")
	ErrInvalidAmount         = errors.New("token: amount must be positive")
	ErrInvalidRecipient      = errors.New("token: recipient must not be the null account")
	ErrMetadataTooLong       = errors.New("token: metadata exceeds bound")
	ErrBlacklisted           = errors.New("token: recipient is blacklisted")
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
	ErrInvalidSpender        = errors.New("token: spender must differ from owner")
	ErrSupplyCapExceeded     = errors.New("token: mint exceeds supply cap")
	ErrNilState              = errors.New("token: state not configured")
)

// Stable wire codes for the fungible ledger, 100-110. Collaborating
// modules branch on these exact integers.
const (
	CodeNotAuthorized         = 100
	CodePaused                = 101
	CodeInvalidMinter         = 102
	CodeInvalidAmount         = 103
	CodeInvalidRecipient      = 104
	CodeMetadataTooLong       = 105
	CodeBlacklisted           = 106
	CodeInsufficientBalance   = 107
	CodeInsufficientAllowance = 108
	CodeInvalidSpender        = 109
	CodeAlreadyRegistered     = 110
)

// Code maps an engine error onto its wire code. A supply-cap breach shares
// the InvalidAmount code so the external range stays stable; Go callers can
// still distinguish it via errors.Is(err, ErrSupplyCapExceeded). It returns
// 0 for nil and for errors that did not originate here.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotAuthorized):
		return CodeNotAuthorized
	case errors.Is(err, ErrPaused):
		return CodePaused
	case errors.Is(err, ErrInvalidMinter):
		return CodeInvalidMinter
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrSupplyCapExceeded):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidRecipient):
		return CodeInvalidRecipient
	case errors.Is(err, ErrMetadataTooLong):
		return CodeMetadataTooLong
	case errors.Is(err, ErrBlacklisted):
		return CodeBlacklisted
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInsufficientAllowance):
		return CodeInsufficientAllowance
	case errors.Is(err, ErrInvalidSpender):
		return CodeInvalidSpender
	default:
		return 0
	}
}
