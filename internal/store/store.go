package store

import (
	"context"

	"github.com/grest/greenspace-server/internal/model"
)

// Store exposes persistence operations over the point collection.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
type Store interface {
	Points() Points

	// HealthPing verifies backend connectivity.
	HealthPing(ctx context.Context) error

	Close() error
}

// Points is the durable point collection. It is the sole owner of point
// state; every collection a surface holds is a derived, disposable copy.
type Points interface {
	// Create assigns a fresh id, stamps CreatedAt, and persists the point.
	Create(ctx context.Context, p *model.Point) (*model.Point, error)

	Get(ctx context.Context, id string) (*model.Point, error)

	// List returns the full collection in id order.
	List(ctx context.Context) ([]model.Point, error)

	// Update merges the non-nil patch fields into the stored record and
	// stamps UpdatedAt. Omitted fields are retained, never removed.
	Update(ctx context.Context, id string, patch model.PointPatch) (*model.Point, error)

	// Delete removes the point. Deleting an id that does not exist is not
	// an error.
	Delete(ctx context.Context, id string) error
}
