package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/futsal/internal/domain/allocation"
	"github.com/okian/futsal/internal/domain/attendance"
	"github.com/okian/futsal/internal/domain/model"
	"github.com/okian/futsal/internal/domain/scoreboard"
	"github.com/okian/futsal/internal/domain/share"
	"github.com/okian/futsal/internal/domain/swap"
	"github.com/okian/futsal/internal/domain/types"
	"github.com/okian/futsal/pkg/logger"
	"github.com/okian/futsal/pkg/metrics"
)

// Scoreboard actions accepted by Scoreboard.
const (
	ActionStartTwo   = "start2"
	ActionStartThree = "start3"
	ActionGoalHome   = "goal-home"
	ActionGoalAway   = "goal-away"
	ActionReset      = "reset"
	ActionNext       = "next"
	ActionExit       = "exit"
)

// Session is one organizer's working state: who is present, how teams are
// generated, the current allocation and the scoreboard. Every action on a
// session runs under its mutex.
type Session struct {
	mu sync.Mutex

	id        string
	createdAt time.Time
	settings  settings

	present *attendance.PresentSet
	current *model.Allocation
	swaps   *swap.Engine
	board   *scoreboard.Scoreboard
}

func newSession(defaults settings) *Session {
	return &Session{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		settings:  defaults,
		present:   attendance.New(),
		swaps:     swap.NewEngine(),
		board:     scoreboard.New(),
	}
}

// discard drops the allocation and any pending swap pick.
func (ss *Session) discard() {
	ss.current = nil
	ss.swaps.Reset()
}

// CreateSession opens a new session with the configured defaults.
func (s *Service) CreateSession(ctx context.Context) (types.Session, error) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return types.Session{}, ErrNotStarted
	}
	defaults := s.defaults
	s.mu.Unlock()

	// The session is registered only once its first view is built.
	ss := newSession(defaults)
	out, err := s.view(ctx, ss)
	if err != nil {
		return types.Session{}, err
	}

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return types.Session{}, ErrNotStarted
	}
	s.sessions[ss.id] = ss
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.UpdateActiveSessions(n)
	s.logger.Info(ctx, "session opened", logger.String("session", ss.id))
	return out, nil
}

// GetSession returns the session with its attendance list.
func (s *Service) GetSession(ctx context.Context, id string) (types.Session, error) {
	var out types.Session
	err := s.withSession(id, func(ss *Session) error {
		var err error
		out, err = s.view(ctx, ss)
		return err
	})
	return out, err
}

// DeleteSession closes a session.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.UpdateActiveSessions(n)
	s.logger.Info(ctx, "session closed", logger.String("session", id))
	return nil
}

// SetPresent flags a registered player as present or absent.
func (s *Service) SetPresent(ctx context.Context, id string, playerID int64, present bool) error {
	store, err := s.roster()
	if err != nil {
		return err
	}
	return s.withSession(id, func(ss *Session) error {
		if _, err := store.Get(ctx, playerID); err != nil {
			return err
		}
		ss.present.Set(playerID, present)
		ss.discard()
		metrics.UpdatePresentPlayers(ss.present.Count())
		return nil
	})
}

// MarkAllPresent flags every registered player as present.
func (s *Service) MarkAllPresent(ctx context.Context, id string) error {
	store, err := s.roster()
	if err != nil {
		return err
	}
	return s.withSession(id, func(ss *Session) error {
		players, err := store.List(ctx)
		if err != nil {
			return err
		}
		ids := make([]int64, len(players))
		for i, p := range players {
			ids[i] = p.ID
		}
		ss.present.MarkAll(ids)
		ss.discard()
		metrics.UpdatePresentPlayers(ss.present.Count())
		return nil
	})
}

// ClearAttendance marks everyone absent.
func (s *Service) ClearAttendance(_ context.Context, id string) error {
	return s.withSession(id, func(ss *Session) error {
		ss.present.ClearAll()
		ss.discard()
		metrics.UpdatePresentPlayers(0)
		return nil
	})
}

// SetTeamCount selects two or three teams.
func (s *Service) SetTeamCount(ctx context.Context, id string, n int) error {
	return s.UpdateSettings(ctx, id, &n, nil, nil)
}

// SetStrategy selects the allocation strategy by name.
func (s *Service) SetStrategy(ctx context.Context, id string, name string) error {
	return s.UpdateSettings(ctx, id, nil, &name, nil)
}

// SetMode selects fair or fun ordering by name.
func (s *Service) SetMode(ctx context.Context, id string, name string) error {
	return s.UpdateSettings(ctx, id, nil, nil, &name)
}

// UpdateSettings changes any of team count, strategy and mode. Nil fields
// are left alone. Every given field is checked before any is applied, so a
// rejected update leaves the session and its teams as they were.
func (s *Service) UpdateSettings(ctx context.Context, id string, teamCount *int, strategy, mode *string) error {
	var next settings
	if teamCount != nil {
		if *teamCount < allocation.MinTeams || *teamCount > allocation.MaxTeams {
			return fmt.Errorf("%w: got %d", allocation.ErrInvalidTeamCount, *teamCount)
		}
		next.teamCount = *teamCount
	}
	if strategy != nil {
		st, err := allocation.ParseStrategy(*strategy)
		if err != nil {
			return err
		}
		next.strategy = st
	}
	if mode != nil {
		m, err := allocation.ParseMode(*mode)
		if err != nil {
			return err
		}
		next.mode = m
	}

	return s.withSession(id, func(ss *Session) error {
		if next.teamCount != 0 {
			ss.settings.teamCount = next.teamCount
		}
		if next.strategy != "" {
			ss.settings.strategy = next.strategy
		}
		if next.mode != "" {
			ss.settings.mode = next.mode
		}
		ss.discard()
		s.logger.Debug(ctx, "settings updated",
			logger.String("session", ss.id),
			logger.Int("teams", ss.settings.teamCount),
			logger.String("strategy", string(ss.settings.strategy)),
			logger.String("mode", string(ss.settings.mode)),
		)
		return nil
	})
}

// Generate allocates the present players into teams. If the roster cannot
// be read the previous allocation is kept and ErrAllocationUnavailable is
// returned. Too few present players leaves the session with no allocation.
func (s *Service) Generate(ctx context.Context, id string) (types.Allocation, error) {
	store, err := s.roster()
	if err != nil {
		return types.Allocation{}, err
	}

	var out types.Allocation
	err = s.withSession(id, func(ss *Session) error {
		strategy := string(ss.settings.strategy)
		players, err := store.List(ctx)
		if err != nil {
			metrics.RecordAllocation(strategy, "unavailable")
			metrics.RecordErrorByComponent("service", "roster_unavailable")
			s.logger.Error(ctx, "roster unavailable", logger.String("session", ss.id), logger.Error(err))
			return fmt.Errorf("%w: %w", ErrAllocationUnavailable, err)
		}
		present := ss.present.Filter(players)

		start := time.Now()
		s.allocMu.Lock()
		alloc, err := s.allocator.Allocate(present, ss.settings.teamCount, ss.settings.strategy, ss.settings.mode)
		s.allocMu.Unlock()
		metrics.RecordAllocationLatency(strategy, float64(time.Since(start).Microseconds())/1000)

		if err != nil {
			ss.discard()
			result := "error"
			if errors.Is(err, allocation.ErrInsufficientPlayers) {
				result = "insufficient"
			}
			metrics.RecordAllocation(strategy, result)
			s.logger.Warn(ctx, "allocation failed",
				logger.String("session", ss.id),
				logger.Int("present", len(present)),
				logger.Error(err),
			)
			return err
		}

		ss.current = alloc
		ss.swaps.Reset()
		metrics.RecordAllocation(strategy, "ok")
		metrics.RecordTeamSpread(alloc.Spread())
		s.logger.Info(ctx, "teams generated",
			logger.String("session", ss.id),
			logger.String("strategy", strategy),
			logger.String("mode", string(ss.settings.mode)),
			logger.Int("teams", len(alloc.Teams)),
			logger.Int("players", alloc.TotalPlayers()),
			logger.Int("spread", alloc.Spread()),
		)
		out = types.FromAllocation(alloc)
		return nil
	})
	return out, err
}

// Teams returns the current allocation.
func (s *Service) Teams(_ context.Context, id string) (types.Allocation, error) {
	var out types.Allocation
	err := s.withSession(id, func(ss *Session) error {
		if ss.current == nil {
			return ErrNoAllocation
		}
		out = types.FromAllocation(ss.current)
		return nil
	})
	return out, err
}

// ResetTeams discards the current allocation.
func (s *Service) ResetTeams(ctx context.Context, id string) error {
	return s.withSession(id, func(ss *Session) error {
		ss.discard()
		s.logger.Debug(ctx, "teams reset", logger.String("session", ss.id))
		return nil
	})
}

// Swap records a pick of playerID in team teamIndex. The second pick
// exchanges the two players.
func (s *Service) Swap(ctx context.Context, id string, playerID int64, teamIndex int) (types.SwapResult, error) {
	var out types.SwapResult
	err := s.withSession(id, func(ss *Session) error {
		res, err := ss.swaps.Select(ss.current, playerID, teamIndex)
		if err != nil {
			metrics.RecordSwap("not_found")
			s.logger.Debug(ctx, "swap rejected", logger.String("session", ss.id), logger.Error(err))
			return err
		}

		out = types.SwapResult{
			Status: string(res.Status),
			NoOp:   res.NoOp,
			First:  types.Selection{PlayerID: res.First.PlayerID, TeamIndex: res.First.TeamIndex},
		}
		switch {
		case res.Status == swap.StatusPending:
			metrics.RecordSwap("pending")
		case res.NoOp:
			metrics.RecordSwap("noop")
		default:
			metrics.RecordSwap("swapped")
			metrics.RecordTeamSpread(ss.current.Spread())
		}
		if res.Status == swap.StatusSwapped {
			out.Second = &types.Selection{PlayerID: res.Second.PlayerID, TeamIndex: res.Second.TeamIndex}
		}
		alloc := types.FromAllocation(ss.current)
		out.Allocation = &alloc
		return nil
	})
	return out, err
}

// ShareText renders the current allocation for sharing.
func (s *Service) ShareText(_ context.Context, id string) (types.Share, error) {
	var out types.Share
	err := s.withSession(id, func(ss *Session) error {
		if ss.current == nil {
			return ErrNoAllocation
		}
		text := share.Text(ss.current.Teams)
		out = types.Share{Text: text, TelegramURL: share.TelegramURL(text)}
		return nil
	})
	return out, err
}

// Scoreboard applies a scoreboard action and returns the new state.
func (s *Service) Scoreboard(_ context.Context, id string, action string) (scoreboard.State, error) {
	var out scoreboard.State
	err := s.withSession(id, func(ss *Session) error {
		var err error
		switch action {
		case ActionStartTwo:
			ss.board.Start(false)
		case ActionStartThree:
			ss.board.Start(true)
		case ActionGoalHome:
			err = ss.board.Goal(scoreboard.Home)
		case ActionGoalAway:
			err = ss.board.Goal(scoreboard.Away)
		case ActionReset:
			err = ss.board.ResetScore()
		case ActionNext:
			err = ss.board.NextMatch()
		case ActionExit:
			ss.board.Exit()
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}
		if err != nil {
			return err
		}
		if action == ActionGoalHome || action == ActionGoalAway {
			metrics.RecordGoal()
		}
		out = ss.board.State()
		return nil
	})
	return out, err
}

// ScoreboardState returns the scoreboard without changing it.
func (s *Service) ScoreboardState(_ context.Context, id string) (scoreboard.State, error) {
	var out scoreboard.State
	err := s.withSession(id, func(ss *Session) error {
		out = ss.board.State()
		return nil
	})
	return out, err
}

// withSession runs fn while holding the session's lock.
func (s *Service) withSession(id string, fn func(*Session) error) error {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return ErrNotStarted
	}
	ss, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	return fn(ss)
}

// view renders a session. The caller must hold ss.mu.
func (s *Service) view(ctx context.Context, ss *Session) (types.Session, error) {
	store, err := s.roster()
	if err != nil {
		return types.Session{}, err
	}
	players, err := store.List(ctx)
	if err != nil {
		return types.Session{}, err
	}

	out := types.Session{
		ID:        ss.id,
		CreatedAt: ss.createdAt,
		Settings: types.Settings{
			TeamCount: ss.settings.teamCount,
			Strategy:  string(ss.settings.strategy),
			Mode:      string(ss.settings.mode),
		},
		Required:   ss.settings.teamCount * s.minPerTeam,
		Players:    make([]types.Player, len(players)),
		Scoreboard: ss.board.State(),
	}
	for i, p := range players {
		present := ss.present.IsPresent(p.ID)
		out.Players[i] = types.FromPlayer(p, present)
		if present {
			out.PresentCount++
		}
	}
	if ss.current != nil {
		alloc := types.FromAllocation(ss.current)
		out.Allocation = &alloc
	}
	if sel, ok := ss.swaps.Pending(); ok {
		out.PendingSwap = &types.Selection{PlayerID: sel.PlayerID, TeamIndex: sel.TeamIndex}
	}
	return out, nil
}
