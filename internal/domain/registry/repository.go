package registry

import "context"

type Repository interface {
	// Ensure inserts the registry row if it does not exist yet
	Ensure(ctx context.Context) error

	Get(ctx context.Context) (*Stats, error)

	// Increment bumps both counters atomically: total_loans by one,
	// total_volume by the loan principal. Called only from create,
	// inside the same transaction as the loan insert.
	Increment(ctx context.Context, principal int64) error
}
