package paymentmock

import (
	"context"

	domain "lendpact-backend/internal/domain/payment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, p *domain.Payment) error
	ListByLoanRefFn func(ctx context.Context, loanRef string) ([]domain.Payment, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoanRef(ctx context.Context, loanRef string) ([]domain.Payment, error) {
	if m.ListByLoanRefFn != nil {
		return m.ListByLoanRefFn(ctx, loanRef)
	}
	return nil, nil
}
