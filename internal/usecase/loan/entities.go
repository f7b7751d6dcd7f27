package loan

import (
	"encoding/json"
	"time"

	"lendpact-backend/internal/domain/loan"
	"lendpact-backend/internal/domain/payment"
	"lendpact-backend/internal/proof"
)

type CreateLoanInput struct {
	BorrowerID     string
	Principal      int64
	RateBps        int32
	DurationSecs   int64
	CommunityTag   string
	EncryptedTerms []byte
	// ProofKind is the kind the caller claims; the submitted proof
	// must carry the same tag.
	ProofKind proof.Kind
	Proof     proof.Proof
}

type FundLoanInput struct {
	LoanID   string
	CallerID string
	Amount   int64
}

type PaymentInput struct {
	LoanID   string
	CallerID string
	Amount   int64
	Kind     payment.Kind
}

// LoanDTO is the public snapshot of a loan. The encrypted-terms blob is
// stored but never exposed through it.
type LoanDTO struct {
	LoanID       string     `json:"loan_id"`
	BorrowerID   string     `json:"borrower_id"`
	LenderID     string     `json:"lender_id,omitempty"`
	Principal    int64      `json:"principal"`
	RateBps      int32      `json:"rate_bps"`
	DurationSecs int64      `json:"duration_secs"`
	Status       string     `json:"status"`
	TotalDue     int64      `json:"total_due"`
	TotalRepaid  int64      `json:"total_repaid"`
	Remaining    int64      `json:"remaining"`
	CommunityTag string     `json:"community_tag,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	FundedAt     *time.Time `json:"funded_at,omitempty"`
	DueAt        *time.Time `json:"due_at,omitempty"`
}

type PaymentDTO struct {
	PaymentID string    `json:"payment_id"`
	LoanID    string    `json:"loan_id"`
	PayerID   string    `json:"payer_id"`
	Amount    int64     `json:"amount"`
	Kind      string    `json:"kind"`
	PaidAt    time.Time `json:"paid_at"`
}

type EventDTO struct {
	EventID   string          `json:"event_id"`
	LoanID    string          `json:"loan_id"`
	Seq       uint64          `json:"seq"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

func toLoanDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:       l.LoanID,
		BorrowerID:   l.BorrowerID,
		LenderID:     l.LenderID,
		Principal:    l.Principal,
		RateBps:      l.RateBps,
		DurationSecs: l.DurationSecs,
		Status:       string(l.Status),
		TotalDue:     l.TotalDue(),
		TotalRepaid:  l.TotalRepaid,
		Remaining:    l.Remaining(),
		CommunityTag: l.CommunityTag,
		CreatedAt:    l.CreatedAt,
		FundedAt:     l.FundedAt,
		DueAt:        l.DueAt,
	}
}

func toPaymentDTO(p *payment.Payment) *PaymentDTO {
	return &PaymentDTO{
		PaymentID: p.PaymentID,
		LoanID:    p.LoanRef,
		PayerID:   p.PayerID,
		Amount:    p.Amount,
		Kind:      string(p.Kind),
		PaidAt:    p.PaidAt,
	}
}
