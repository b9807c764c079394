package ledger

import "errors"

var (
	ErrInvalidAmount       = errors.New("Count must be a positive integer")
	ErrIntegrity           = errors.New("Referenced employee or token type does not exist")
	ErrInsufficientBalance = errors.New("Insufficient token balance")
	ErrNegativeBalance     = errors.New("Balance adjustment would drop below zero")
	ErrStorage             = errors.New("Storage failure")
)
