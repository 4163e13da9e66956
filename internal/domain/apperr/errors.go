package apperr

import "errors"

// Domain error taxonomy. Handlers map these onto HTTP statuses; nothing
// below is retried automatically.
var (
	ErrValidation = errors.New("validation error")
	ErrGateway    = errors.New("payment gateway error")
)
