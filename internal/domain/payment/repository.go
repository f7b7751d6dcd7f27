package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error

	// ListByLoanRef returns payments oldest first
	ListByLoanRef(ctx context.Context, loanRef string) ([]Payment, error)
}
