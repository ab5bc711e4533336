package repository

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrNotFound      = errors.New("scout not found")
	ErrAlreadyExists = errors.New("scout ledger already exists")
)
