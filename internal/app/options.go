package service

import (
	"github.com/okian/futsal/internal/adapters/repository"
	"github.com/okian/futsal/internal/domain/allocation"
	"github.com/okian/futsal/internal/domain/model"
	"github.com/okian/futsal/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the roster store. Start falls back to an in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithAllocator replaces the allocator built from WithMinPerTeam/WithSeed.
func WithAllocator(a *allocation.Allocator) Option {
	return func(s *Service) {
		if a != nil {
			s.allocator = a
		}
	}
}

// WithMinPerTeam sets the attendance threshold multiplier.
func WithMinPerTeam(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minPerTeam = n
		}
	}
}

// WithSeed fixes the allocator's random source. Zero keeps time seeding.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithDefaultTeamCount sets the team count for new sessions.
func WithDefaultTeamCount(n int) Option {
	return func(s *Service) {
		if n >= allocation.MinTeams && n <= allocation.MaxTeams {
			s.defaults.teamCount = n
		}
	}
}

// WithDefaultStrategy sets the strategy for new sessions. Unknown names are
// ignored.
func WithDefaultStrategy(name string) Option {
	return func(s *Service) {
		if st, err := allocation.ParseStrategy(name); err == nil {
			s.defaults.strategy = st
		}
	}
}

// WithDefaultMode sets the mode for new sessions. Unknown names are ignored.
func WithDefaultMode(name string) Option {
	return func(s *Service) {
		if m, err := allocation.ParseMode(name); err == nil {
			s.defaults.mode = m
		}
	}
}

type settings struct {
	teamCount int
	strategy  model.Strategy
	mode      model.Mode
}
