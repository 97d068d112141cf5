package params

import "errors"

var (
	ErrInvalidQuery  = errors.New("failed to parse query parameters")
	ErrInvalidForm   = errors.New("failed to parse form data")
	ErrBodyTooLarge  = errors.New("request body too large")
	ErrInvalidTarget = errors.New("invalid bind target")
	ErrInvalidValue  = errors.New("invalid parameter value")
)
