package eventmock

import (
	"context"

	domain "lendpact-backend/internal/domain/event"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	AppendFn        func(ctx context.Context, e *domain.Event) error
	ListByLoanRefFn func(ctx context.Context, loanRef string) ([]domain.Event, error)
}

func (m *Repo) Append(ctx context.Context, e *domain.Event) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListByLoanRef(ctx context.Context, loanRef string) ([]domain.Event, error) {
	if m.ListByLoanRefFn != nil {
		return m.ListByLoanRefFn(ctx, loanRef)
	}
	return nil, nil
}
