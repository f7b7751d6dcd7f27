package mysql

import (
	"context"

	eventDomain "lendpact-backend/internal/domain/event"

	"gorm.io/gorm"
)

type EventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

// Append assigns seq = MAX(seq)+1 within the ambient transaction. The
// caller holds the loan row lock, so two operations on one loan cannot
// read the same MAX; the unique index on (loan_ref, seq) backstops it.
func (r *EventRepository) Append(ctx context.Context, e *eventDomain.Event) error {
	tx := r.db.WithContext(ctx)
	var maxSeq int64
	if err := tx.Model(&eventDomain.Event{}).
		Where("loan_id = ?", e.LoanID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error; err != nil {
		return err
	}
	e.Seq = uint64(maxSeq) + 1
	return tx.Create(e).Error
}

func (r *EventRepository) ListByLoanRef(ctx context.Context, loanRef string) ([]eventDomain.Event, error) {
	var out []eventDomain.Event
	res := r.db.WithContext(ctx).
		Where("loan_ref = ?", loanRef).
		Order("seq ASC").
		Find(&out)
	return out, res.Error
}
