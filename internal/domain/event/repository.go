package event

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

type Repository interface {
	// Append assigns the next per-loan sequence number and inserts the
	// event. Must be called inside the same transaction as the
	// operation that caused it.
	Append(ctx context.Context, e *Event) error

	// ListByLoanRef returns events in sequence order
	ListByLoanRef(ctx context.Context, loanRef string) ([]Event, error)
}

// Emit marshals the payload and appends one event for the loan. Every
// successful operation calls this exactly once, inside its transaction.
func Emit(ctx context.Context, repo Repository, loanRef string, loanID uint64, typ Type, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return repo.Append(ctx, &Event{
		EventID: uuid.NewString(),
		LoanRef: loanRef,
		LoanID:  loanID,
		Type:    typ,
		Payload: raw,
	})
}
