package provider

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/clinio/clinio/internal/domain/availability"
)

// ErrNotFound is returned when no provider exists for the given id. It is
// propagated unchanged to callers so they can answer 404 rather than a
// generic failure.
var ErrNotFound = errors.New("provider not found")

// Directory is the read/write surface over provider records that the
// scheduling workflow depends on.
type Directory interface {
	Create(ctx context.Context, p *Provider) error
	GetByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	GetPolicy(ctx context.Context, id uuid.UUID) (availability.Policy, error)
	List(ctx context.Context, limit, offset int) ([]*Provider, int, error)
	UpdatePolicy(ctx context.Context, id uuid.UUID, u PolicyUpdate) error
}
