package domain

import "errors"

// Error kinds returned by the service layer. Handlers map these onto HTTP
// statuses with errors.Is; services wrap them with fmt.Errorf("%w: ...")
// to add detail without losing the kind.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrStorage         = errors.New("storage failure")
)
