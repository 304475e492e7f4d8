package repository

import "errors"

// Sentinel kinds for roster store errors.
var (
	ErrNotFound      = errors.New("player not found")
	ErrDuplicateName = errors.New("player name already exists")
	ErrClosed        = errors.New("store closed")
)
