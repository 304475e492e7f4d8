// Package sqlite provides a SQLite-backed roster store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/okian/futsal/internal/adapters/repository"
	"github.com/okian/futsal/internal/adapters/repository/sqlite/migrations"
	"github.com/okian/futsal/internal/domain/model"
	"github.com/okian/futsal/pkg/metrics"
)

// goose keeps its base FS and dialect in package globals.
var migrateMu sync.Mutex

// Store persists the roster in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ repository.Store = (*Store)(nil)

// Open opens a SQLite roster store at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY churn.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

const selectPlayer = `SELECT id, name, rating, position, is_goalie, COALESCE(linked_to, '') FROM players`

// List returns every player ordered by name.
func (s *Store) List(ctx context.Context) ([]model.Player, error) {
	defer observeQuery(time.Now())
	rows, err := s.sqlDB.QueryContext(ctx, selectPlayer+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return out, nil
}

// Get returns a player by id.
func (s *Store) Get(ctx context.Context, id int64) (model.Player, error) {
	defer observeQuery(time.Now())
	row := s.sqlDB.QueryRowContext(ctx, selectPlayer+` WHERE id = ?`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Player{}, repository.ErrNotFound
	}
	return p, err
}

// Create inserts a player.
func (s *Store) Create(ctx context.Context, p model.Player) (model.Player, error) {
	defer observeUpdate(time.Now())
	p = p.Normalize()
	now := time.Now().UTC().UnixMilli()
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO players (name, rating, position, is_goalie, linked_to, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Rating, p.Position.String(), p.IsGoalie, nullable(p.LinkedTo), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Player{}, repository.ErrDuplicateName
		}
		return model.Player{}, fmt.Errorf("insert player: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Player{}, fmt.Errorf("insert player id: %w", err)
	}
	p.ID = id
	s.refreshRosterSize(ctx)
	return p, nil
}

// Update replaces an existing player.
func (s *Store) Update(ctx context.Context, p model.Player) (model.Player, error) {
	defer observeUpdate(time.Now())
	p = p.Normalize()
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE players SET name = ?, rating = ?, position = ?, is_goalie = ?, linked_to = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Rating, p.Position.String(), p.IsGoalie, nullable(p.LinkedTo), time.Now().UTC().UnixMilli(), p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Player{}, repository.ErrDuplicateName
		}
		return model.Player{}, fmt.Errorf("update player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.Player{}, repository.ErrNotFound
	}
	return p, nil
}

// Delete removes a player.
func (s *Store) Delete(ctx context.Context, id int64) error {
	defer observeUpdate(time.Now())
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	s.refreshRosterSize(ctx)
	return nil
}

// Count returns the number of players.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}

func (s *Store) refreshRosterSize(ctx context.Context) {
	if n, err := s.Count(ctx); err == nil {
		metrics.UpdateRosterSize(n)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (model.Player, error) {
	var (
		p        model.Player
		position string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Rating, &position, &p.IsGoalie, &p.LinkedTo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Player{}, err
		}
		return model.Player{}, fmt.Errorf("scan player: %w", err)
	}
	p.Position = model.ParsePosition(position)
	return p, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func observeQuery(start time.Time) {
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}

func observeUpdate(start time.Time) {
	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
}
