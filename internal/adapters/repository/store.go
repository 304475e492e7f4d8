// Package repository defines the roster store interface and errors.
package repository

import (
	"context"

	"github.com/okian/futsal/internal/domain/model"
)

// Store provides CRUD access to registered players.
type Store interface {
	// List returns every player ordered by name.
	List(ctx context.Context) ([]model.Player, error)

	// Get returns a player by id.
	// Returns ErrNotFound if the player is unknown.
	Get(ctx context.Context, id int64) (model.Player, error)

	// Create inserts a player and returns it with its assigned id.
	// Returns ErrDuplicateName if the name is taken.
	Create(ctx context.Context, p model.Player) (model.Player, error)

	// Update replaces the stored player with the same id.
	Update(ctx context.Context, p model.Player) (model.Player, error)

	// Delete removes a player. Links naming it are left dangling.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of registered players.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}
