package authenticator

import "errors"

var (
	ErrNilStorage      = errors.New("nil storage provided to vault")
	ErrKeyNotFound     = errors.New("storage key not found")
	ErrMissingName     = errors.New("missing account name")
	ErrMissingSecret   = errors.New("missing account secret")
	ErrInvalidSecret   = errors.New("invalid account secret")
	ErrInvalidURI      = errors.New("invalid otpauth URI")
	ErrAccountNotFound = errors.New("account not found")
)
