package service

import (
	"errors"

	"github.com/okian/futsal/internal/domain/swap"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotStarted            = errors.New("service not started")
	ErrSessionNotFound       = errors.New("session not found")
	ErrInvalidPlayer         = errors.New("invalid player")
	ErrAllocationUnavailable = errors.New("allocation unavailable")
	ErrUnknownAction         = errors.New("unknown scoreboard action")

	// ErrNoAllocation is shared with the swap engine so one errors.Is check
	// covers both layers.
	ErrNoAllocation = swap.ErrNoAllocation
)
