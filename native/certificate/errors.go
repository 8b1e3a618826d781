package certificate

import "errors"

var (
	ErrNotAuthorized       = errors.New("certificate: caller is not the admin")
	ErrPaused              = errors.New("certificate: registry paused")
	ErrInvalidID           = errors.New("certificate: unknown token id")
	ErrNotOwner            = errors.New("certificate: caller is not the owner")
	ErrAlreadyExists       = errors.New("certificate: version already registered")
	ErrInvalidCollaborator = errors.New("certificate: collaborator must differ from owner")
	ErrMetadataTooLong     = errors.New("certificate: metadata exceeds bound")
	ErrNilState            = errors.New("certificate: state not configured")
)

// Stable wire codes for the registry, 200-206.
const (
	CodeNotAuthorized       = 200
	CodePaused              = 201
	CodeInvalidID           = 202
	CodeNotOwner            = 203
	CodeAlreadyExists       = 204
	CodeInvalidCollaborator = 205
	CodeMetadataTooLong     = 206
)

// Code maps an engine error onto its wire code. It returns 0 for nil and
// for errors that did not originate here.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotAuthorized):
		return CodeNotAuthorized
	case errors.Is(err, ErrPaused):
		return CodePaused
	case errors.Is(err, ErrInvalidID):
		return CodeInvalidID
	case errors.Is(err, ErrNotOwner):
		return CodeNotOwner
	case errors.Is(err, ErrAlreadyExists):
		return CodeAlreadyExists
	case errors.Is(err, ErrInvalidCollaborator):
		return CodeInvalidCollaborator
	case errors.Is(err, ErrMetadataTooLong):
		return CodeMetadataTooLong
	default:
		return 0
	}
}
