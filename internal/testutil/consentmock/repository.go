package consentmock

import (
	"context"

	domain "lendpact-backend/internal/domain/consent"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, c *domain.Consent) error
	GetByLoanRefFn func(ctx context.Context, loanRef string) (*domain.Consent, error)
	SaveFn         func(ctx context.Context, c *domain.Consent) error
	DeleteFn       func(ctx context.Context, c *domain.Consent) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Consent) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByLoanRef(ctx context.Context, loanRef string) (*domain.Consent, error) {
	if m.GetByLoanRefFn != nil {
		return m.GetByLoanRefFn(ctx, loanRef)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Consent) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, c *domain.Consent) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, c)
	}
	return nil
}
