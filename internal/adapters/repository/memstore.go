package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/okian/futsal/internal/domain/model"
	"github.com/okian/futsal/pkg/metrics"
)

// MemoryStore is an in-process Store. Player names are unique and compared
// exactly.
type MemoryStore struct {
	mu      sync.RWMutex
	players map[int64]model.Player
	byName  map[string]int64
	nextID  int64
	closed  bool
	seed    []model.Player
}

// NewMemoryStore creates an empty store, optionally preloaded.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		players: make(map[int64]model.Player),
		byName:  make(map[string]int64),
		nextID:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, p := range s.seed {
		p = p.Normalize()
		if _, taken := s.byName[p.Name]; taken {
			continue
		}
		if p.ID == 0 {
			p.ID = s.nextID
		}
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
		s.players[p.ID] = p
		s.byName[p.Name] = p.ID
	}
	s.seed = nil
	metrics.UpdateRosterSize(len(s.players))
	return s
}

// List returns every player ordered by name.
func (s *MemoryStore) List(ctx context.Context) ([]model.Player, error) {
	defer observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	out := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Get returns a player by id.
func (s *MemoryStore) Get(ctx context.Context, id int64) (model.Player, error) {
	defer observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return model.Player{}, err
	}
	p, ok := s.players[id]
	if !ok {
		return model.Player{}, ErrNotFound
	}
	return p, nil
}

// Create inserts a player with a fresh id.
func (s *MemoryStore) Create(ctx context.Context, p model.Player) (model.Player, error) {
	defer observeUpdate(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return model.Player{}, err
	}

	p = p.Normalize()
	if _, taken := s.byName[p.Name]; taken {
		return model.Player{}, ErrDuplicateName
	}
	p.ID = s.nextID
	s.nextID++
	s.players[p.ID] = p
	s.byName[p.Name] = p.ID
	metrics.UpdateRosterSize(len(s.players))
	return p, nil
}

// Update replaces an existing player.
func (s *MemoryStore) Update(ctx context.Context, p model.Player) (model.Player, error) {
	defer observeUpdate(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return model.Player{}, err
	}

	p = p.Normalize()
	old, ok := s.players[p.ID]
	if !ok {
		return model.Player{}, ErrNotFound
	}
	if id, taken := s.byName[p.Name]; taken && id != p.ID {
		return model.Player{}, ErrDuplicateName
	}
	delete(s.byName, old.Name)
	s.players[p.ID] = p
	s.byName[p.Name] = p.ID
	return p, nil
}

// Delete removes a player.
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	defer observeUpdate(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return err
	}

	p, ok := s.players[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.players, id)
	delete(s.byName, p.Name)
	metrics.UpdateRosterSize(len(s.players))
	return nil
}

// Count returns the number of players.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	return len(s.players), nil
}

// Close marks the store closed. Further calls return ErrClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// check must be called with s.mu held.
func (s *MemoryStore) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return ErrClosed
	}
	return nil
}

func observeQuery(start time.Time) {
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}

func observeUpdate(start time.Time) {
	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
}
