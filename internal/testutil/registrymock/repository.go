package registrymock

import (
	"context"

	domain "lendpact-backend/internal/domain/registry"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	EnsureFn    func(ctx context.Context) error
	GetFn       func(ctx context.Context) (*domain.Stats, error)
	IncrementFn func(ctx context.Context, principal int64) error
}

func (m *Repo) Ensure(ctx context.Context) error {
	if m.EnsureFn != nil {
		return m.EnsureFn(ctx)
	}
	return nil
}

func (m *Repo) Get(ctx context.Context) (*domain.Stats, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Increment(ctx context.Context, principal int64) error {
	if m.IncrementFn != nil {
		return m.IncrementFn(ctx, principal)
	}
	return nil
}
