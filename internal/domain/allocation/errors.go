package allocation

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInsufficientPlayers = errors.New("not enough players present")
	ErrInvalidTeamCount    = errors.New("team count must be 2 or 3")
	ErrUnknownStrategy     = errors.New("unknown allocation strategy")
	ErrUnknownMode         = errors.New("unknown match mode")
)
