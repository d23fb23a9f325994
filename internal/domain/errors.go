package domain

import "errors"

var (
	ErrUnknownUser   = errors.New("user not found")
	ErrEntryNotFound = errors.New("entry not found")
)
