package provider

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinio/clinio/internal/domain/availability"
)

type Service struct {
	providers Directory
}

func NewService(providers Directory) *Service {
	return &Service{providers: providers}
}

func (s *Service) CreateProvider(ctx context.Context, p *Provider) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if p.FromTime == "" {
		p.FromTime = "08:00"
	}
	if p.ToTime == "" {
		p.ToTime = "18:00"
	}
	update := PolicyUpdate{
		FromWeekday: p.FromWeekday,
		ToWeekday:   p.ToWeekday,
		FromTime:    p.FromTime,
		ToTime:      p.ToTime,
	}
	if err := update.Validate(); err != nil {
		return fmt.Errorf("working hours: %w", err)
	}
	if p.Active == nil {
		active := true
		p.Active = &active
	}
	return s.providers.Create(ctx, p)
}

func (s *Service) GetProvider(ctx context.Context, id uuid.UUID) (*Provider, error) {
	return s.providers.GetByID(ctx, id)
}

func (s *Service) GetPolicy(ctx context.Context, id uuid.UUID) (availability.Policy, error) {
	return s.providers.GetPolicy(ctx, id)
}

func (s *Service) ListProviders(ctx context.Context, limit, offset int) ([]*Provider, int, error) {
	return s.providers.List(ctx, limit, offset)
}

func (s *Service) UpdatePolicy(ctx context.Context, id uuid.UUID, u PolicyUpdate) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("working hours: %w", err)
	}
	return s.providers.UpdatePolicy(ctx, id, u)
}
