package event

import (
	"encoding/json"
	"time"
)

type Type string

const (
	TypeLoanCreated      Type = "loan_created"
	TypeLoanFunded       Type = "loan_funded"
	TypePaymentMade      Type = "payment_made"
	TypeConsentRequested Type = "consent_requested"
	TypeConsentGiven     Type = "consent_given"
	TypeConsentWithdrawn Type = "consent_withdrawn"
	TypeConsentExpired   Type = "consent_expired"
	TypeLoanCompleted    Type = "loan_completed"
	TypeLoanDefaulted    Type = "loan_defaulted"
	TypeLoanDisputed     Type = "loan_disputed"
)

// Event is one entry in the per-loan ordered stream. Seq is assigned by
// the repository inside the committing transaction, so the order of
// events for one loan is exactly the order its operations committed.
// There is no cross-loan ordering.
type Event struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EventID string `gorm:"column:event_id;type:char(36);not null;uniqueIndex:ux_loan_events_event_id" json:"event_id"`
	// Public loan identifier, denormalized for consumer lookups
	LoanRef string `gorm:"column:loan_ref;type:char(32);not null;uniqueIndex:ux_loan_events_seq,priority:1" json:"loan_id"`
	// FK to loans.id (numeric)
	LoanID    uint64          `gorm:"column:loan_id;not null;index" json:"-"`
	Seq       uint64          `gorm:"column:seq;not null;uniqueIndex:ux_loan_events_seq,priority:2" json:"seq"`
	Type      Type            `gorm:"column:type;type:varchar(32);not null" json:"type"`
	Payload   json.RawMessage `gorm:"column:payload;type:json" json:"payload"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Event) TableName() string { return "loan_events" }

// Payload shapes, one per event type. Field names are part of the
// consumer contract.

type LoanCreatedPayload struct {
	LoanID        string `json:"loan_id"`
	Borrower      string `json:"borrower"`
	Amount        int64  `json:"amount"`
	ProofVerified bool   `json:"proof_verified"`
}

type LoanFundedPayload struct {
	LoanID string `json:"loan_id"`
	Lender string `json:"lender"`
	Amount int64  `json:"amount"`
}

type PaymentMadePayload struct {
	LoanID    string `json:"loan_id"`
	Payer     string `json:"payer"`
	Amount    int64  `json:"amount"`
	Remaining int64  `json:"remaining"`
}

type ConsentRequestedPayload struct {
	LoanID    string    `json:"loan_id"`
	Requester string    `json:"requester"`
	Kind      string    `json:"kind"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ConsentGivenPayload struct {
	LoanID       string `json:"loan_id"`
	Party        string `json:"party"`
	AllConsented bool   `json:"all_consented"`
}

type ConsentWithdrawnPayload struct {
	LoanID string `json:"loan_id"`
	Party  string `json:"party"`
}

type ConsentExpiredPayload struct {
	LoanID string `json:"loan_id"`
}

type LoanCompletedPayload struct {
	LoanID      string `json:"loan_id"`
	TotalRepaid int64  `json:"total_repaid"`
}

type LoanDefaultedPayload struct {
	LoanID   string `json:"loan_id"`
	MarkedBy string `json:"marked_by"`
}

type LoanDisputedPayload struct {
	LoanID   string `json:"loan_id"`
	RaisedBy string `json:"raised_by"`
}
