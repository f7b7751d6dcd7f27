package payment

import (
	"errors"
	"time"
)

type Kind string

const (
	KindPrincipal Kind = "principal"
	KindInterest  Kind = "interest"
	KindPenalty   Kind = "penalty"
)

var (
	ErrNotFound = errors.New("payment not found")
)

// Payment is an immutable repayment record. Rows are only ever appended;
// the loan's total_repaid is the running sum maintained in the same
// transaction that inserts the row.
type Payment struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	PaymentID string `gorm:"column:payment_id;type:char(32);not null;uniqueIndex:ux_payments_payment_id"`
	// Public loan identifier, denormalized for lookups
	LoanRef string `gorm:"column:loan_ref;type:char(32);not null;index:idx_payments_loan_ref"`
	// FK to loans.id (numeric)
	LoanID    uint64    `gorm:"column:loan_id;not null;index"`
	PayerID   string    `gorm:"column:payer_id;type:char(32);not null"`
	Amount    int64     `gorm:"column:amount;not null"`
	Kind      Kind      `gorm:"column:kind;type:enum('principal','interest','penalty');not null;default:'principal'"`
	PaidAt    time.Time `gorm:"column:paid_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Payment) TableName() string { return "loan_payments" }
