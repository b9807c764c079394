package tokentypes

import "errors"

var (
	ErrTokenTypeInUse = errors.New("Token type is referenced by transactions and cannot be deleted")
	ErrInvalidName    = errors.New("Token type name is invalid")
	ErrInvalidColor   = errors.New("Token type color must be a hex color code")
)
