package loan

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending            Status = "pending"
	StatusActive             Status = "active"
	StatusPendingResolution  Status = "pending_resolution"
	StatusPendingTermination Status = "pending_termination"
	StatusCompleted          Status = "completed"
	StatusDefaulted          Status = "defaulted"
	StatusDisputed           Status = "disputed"
)

var (
	ErrNotFound            = errors.New("loan not found")
	ErrInvalidInput        = errors.New("invalid loan input")
	ErrInvalidTransition   = errors.New("operation invalid for current loan status")
	ErrNotParty            = errors.New("caller is not a party to this loan")
	ErrNotLender           = errors.New("caller is not the lender")
	ErrNotYetDue           = errors.New("loan is not past its due date")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrProofRejected       = errors.New("credential proof rejected")
	ErrProofExpired        = errors.New("credential proof expired")
)

// Loan is the shared financial record mutated by borrower and lender.
// Amounts are integers in the smallest currency unit; RateBps is the
// fixed interest rate in basis points (500 = 5%).
type Loan struct {
	ID              uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string     `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	BorrowerID      string     `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id"`
	LenderID        string     `gorm:"size:32" json:"lender_id"`
	Principal       int64      `gorm:"not null" json:"principal"`
	RateBps         int32      `gorm:"not null" json:"rate_bps"`
	DurationSecs    int64      `gorm:"not null" json:"duration_secs"`
	Status          Status     `gorm:"type:enum('pending','active','pending_resolution','pending_termination','completed','defaulted','disputed');default:'pending'" json:"status"`
	TotalRepaid     int64      `gorm:"not null;default:0" json:"total_repaid"`
	CommunityTag    string     `gorm:"size:64" json:"community_tag"`
	EncryptedTerms  []byte     `gorm:"type:blob" json:"-"`
	StatusUpdatedAt time.Time  `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	FundedAt        *time.Time `json:"funded_at"`
	DueAt           *time.Time `json:"due_at"`
}

func (Loan) TableName() string { return "loans" }

// TotalDue is principal plus simple fixed-rate interest, truncated
// integer arithmetic: principal + (principal * rate_bps) / 10000.
func (l *Loan) TotalDue() int64 {
	return l.Principal + (l.Principal*int64(l.RateBps))/10000
}

// Remaining never goes below zero even when the loan is overpaid.
func (l *Loan) Remaining() int64 {
	r := l.TotalDue() - l.TotalRepaid
	if r < 0 {
		return 0
	}
	return r
}

func (l *Loan) IsParty(caller string) bool {
	if caller == "" {
		return false
	}
	return caller == l.BorrowerID || caller == l.LenderID
}

// Counterparty returns the other loan party, or "" if caller is not a party.
func (l *Loan) Counterparty(caller string) string {
	switch caller {
	case l.BorrowerID:
		return l.LenderID
	case l.LenderID:
		return l.BorrowerID
	}
	return ""
}
