package consent

import "context"

type Repository interface {
	// Create a new consent row (DB uniqueness ensures at most one per loan)
	Create(ctx context.Context, c *Consent) error

	// Get the open consent by public loan identifier
	GetByLoanRef(ctx context.Context, loanRef string) (*Consent, error)

	Save(ctx context.Context, c *Consent) error

	// Delete removes the row; the consent lifecycle ends with the pending status
	Delete(ctx context.Context, c *Consent) error
}
