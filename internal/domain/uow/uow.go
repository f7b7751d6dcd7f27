package uow

import (
	"context"

	"lendpact-backend/internal/domain/consent"
	"lendpact-backend/internal/domain/event"
	"lendpact-backend/internal/domain/loan"
	"lendpact-backend/internal/domain/payment"
	"lendpact-backend/internal/domain/registry"
)

type Repos struct {
	Loans    loan.Repository
	Consents consent.Repository
	Payments payment.Repository
	Events   event.Repository
	Registry registry.Repository
}

// UnitOfWork runs a function against transaction-scoped repositories.
// Every loan operation is a single-shot transaction: it either commits
// all of its effects (row changes, ledger append, event) or none.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in. The lock
	// serializes concurrent operations on the same loan.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
