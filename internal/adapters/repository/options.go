package repository

import "github.com/okian/futsal/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithPlayers preloads the store. Players without an id get one assigned;
// later duplicates by name are skipped.
func WithPlayers(players ...model.Player) Option {
	return func(s *MemoryStore) {
		s.seed = append(s.seed, players...)
	}
}
