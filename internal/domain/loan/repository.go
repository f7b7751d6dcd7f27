package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the duration of the
	// surrounding transaction so concurrent mutations serialize.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByCommunityTag(ctx context.Context, tag string, limit int) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}
