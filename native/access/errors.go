package access

import "errors"

var (
	ErrNotAuthorized     = errors.New("access: caller is not the admin")
	ErrAlreadyRegistered = errors.New("access: minter already registered")
	ErrNilState          = errors.New("access: state not configured")
)

// Wire codes for the shared admin operations. They live in the fungible
// ledger's 100 range so collaborators branch on one code space for ledger
// and admin failures alike.
const (
	CodeNotAuthorized     = 100
	CodeAlreadyRegistered = 110
)

// Code maps controller errors onto their stable wire codes. It returns 0
// for nil and for errors that did not originate here.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotAuthorized):
		return CodeNotAuthorized
	case errors.Is(err, ErrAlreadyRegistered):
		return CodeAlreadyRegistered
	default:
		return 0
	}
}
