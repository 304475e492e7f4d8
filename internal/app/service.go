// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/futsal/internal/adapters/repository"
	"github.com/okian/futsal/internal/domain/allocation"
	"github.com/okian/futsal/internal/domain/model"
	"github.com/okian/futsal/internal/domain/types"
	"github.com/okian/futsal/pkg/logger"
	"github.com/okian/futsal/pkg/metrics"
)

// Service owns the roster store, the allocator and every open session.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	allocator *allocation.Allocator
	// allocMu serialises use of the allocator's random source across
	// sessions.
	allocMu sync.Mutex

	sessions map[string]*Session

	// Configuration
	minPerTeam int
	seed       int64
	defaults   settings

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessions:   make(map[string]*Session),
		minPerTeam: allocation.DefaultMinPerTeam,
		defaults: settings{
			teamCount: allocation.MinTeams,
			strategy:  model.StrategyTactical,
			mode:      model.ModeFair,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.allocator == nil {
		s.allocator = allocation.New(
			allocation.WithMinPerTeam(s.minPerTeam),
			allocation.WithSeed(s.seed),
		)
	}
	s.minPerTeam = s.allocator.MinPerTeam()

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting futsal service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory roster store")
	}

	n, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count roster: %w", err)
	}
	metrics.UpdateRosterSize(n)
	metrics.UpdateActiveSessions(len(s.sessions))

	s.started = true
	s.logger.Info(ctx, "futsal service started",
		logger.Int("players", n),
		logger.Int("minPerTeam", s.minPerTeam),
		logger.String("strategy", string(s.defaults.strategy)),
		logger.String("mode", string(s.defaults.mode)),
	)
	return nil
}

// Stop closes the roster store and drops every session.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping futsal service...")

	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing roster store", logger.Error(err))
	}
	clear(s.sessions)
	metrics.UpdateActiveSessions(0)

	s.started = false
	s.logger.Info(context.Background(), "futsal service stopped")
}

// roster returns the store once the service is running.
func (s *Service) roster() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// ListPlayers returns the roster ordered by name.
func (s *Service) ListPlayers(ctx context.Context) ([]types.Player, error) {
	store, err := s.roster()
	if err != nil {
		return nil, err
	}
	players, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Player, len(players))
	for i, p := range players {
		out[i] = types.FromPlayer(p, false)
	}
	return out, nil
}

// GetPlayer returns one registered player.
func (s *Service) GetPlayer(ctx context.Context, id int64) (types.Player, error) {
	store, err := s.roster()
	if err != nil {
		return types.Player{}, err
	}
	p, err := store.Get(ctx, id)
	if err != nil {
		return types.Player{}, err
	}
	return types.FromPlayer(p, false), nil
}

// CreatePlayer validates and registers a player.
func (s *Service) CreatePlayer(ctx context.Context, in types.Player) (types.Player, error) {
	store, err := s.roster()
	if err != nil {
		return types.Player{}, err
	}
	p := in.ToPlayer()
	p.ID = 0
	if err := validatePlayer(p); err != nil {
		return types.Player{}, err
	}

	created, err := store.Create(ctx, p)
	if err != nil {
		return types.Player{}, err
	}
	s.logger.Info(ctx, "player registered",
		logger.Int64("id", created.ID),
		logger.String("name", created.Name),
		logger.Int("rating", created.Rating),
	)
	return types.FromPlayer(created, false), nil
}

// UpdatePlayer validates and replaces the player with id.
func (s *Service) UpdatePlayer(ctx context.Context, id int64, in types.Player) (types.Player, error) {
	store, err := s.roster()
	if err != nil {
		return types.Player{}, err
	}
	p := in.ToPlayer()
	p.ID = id
	if err := validatePlayer(p); err != nil {
		return types.Player{}, err
	}

	updated, err := store.Update(ctx, p)
	if err != nil {
		return types.Player{}, err
	}
	s.logger.Debug(ctx, "player updated", logger.Int64("id", id))
	return types.FromPlayer(updated, false), nil
}

// DeletePlayer removes a player from the roster. Present flags and links
// naming it are left in place and simply stop matching.
func (s *Service) DeletePlayer(ctx context.Context, id int64) error {
	store, err := s.roster()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "player removed", logger.Int64("id", id))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"sessions":        len(s.sessions),
		"minPerTeam":      s.minPerTeam,
		"defaultTeams":    s.defaults.teamCount,
		"defaultStrategy": string(s.defaults.strategy),
		"defaultMode":     string(s.defaults.mode),
	}

	if s.started {
		n, err := s.store.Count(context.Background())
		if err == nil {
			stats["players"] = n
			metrics.UpdateRosterSize(n)
		}
		metrics.UpdateActiveSessions(len(s.sessions))
	}

	return stats
}

// validatePlayer checks a normalized player.
func validatePlayer(p model.Player) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidPlayer)
	case p.Rating < model.MinRating || p.Rating > model.MaxRating:
		return fmt.Errorf("%w: rating %d outside %d-%d", ErrInvalidPlayer, p.Rating, model.MinRating, model.MaxRating)
	case p.LinkedTo == p.Name:
		return fmt.Errorf("%w: %s cannot be linked to themselves", ErrInvalidPlayer, p.Name)
	}
	return nil
}
