package consent

import (
	"errors"
	"time"
)

type Kind string

const (
	KindResolution  Kind = "resolution"
	KindTermination Kind = "termination"
)

var (
	ErrNotFound         = errors.New("no pending consent for loan")
	ErrAlreadyConsented = errors.New("party has already consented")
	ErrWindowExpired    = errors.New("consent window has expired")
	ErrNotFlagHolder    = errors.New("caller has no consent to withdraw")
)

// Consent is the open two-party confirmation attached to a loan. At most
// one row exists per loan (DB uniqueness on loan_ref) and the row exists
// exactly while the loan sits in a pending_resolution or
// pending_termination status.
type Consent struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public loan identifier (32-char lowercase hex)
	LoanRef string `gorm:"column:loan_ref;type:char(32);not null;uniqueIndex:ux_consents_loan_ref"`
	// FK to loans.id (numeric)
	LoanID              uint64    `gorm:"column:loan_id;not null;index"`
	Kind                Kind      `gorm:"column:kind;type:enum('resolution','termination');not null"`
	RequesterID         string    `gorm:"column:requester_id;type:char(32);not null"`
	RequesterConsent    bool      `gorm:"column:requester_consent;not null;default:false"`
	CounterpartyConsent bool      `gorm:"column:counterparty_consent;not null;default:false"`
	RequestedAt         time.Time `gorm:"column:requested_at;not null"`
	ExpiresAt           time.Time `gorm:"column:expires_at;not null"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Consent) TableName() string { return "loan_consents" }

// HasConsented reports whether the given party's flag is set. Parties
// are tracked by role relative to the requester.
func (c *Consent) HasConsented(caller string) bool {
	if caller == c.RequesterID {
		return c.RequesterConsent
	}
	return c.CounterpartyConsent
}

func (c *Consent) SetConsent(caller string) {
	if caller == c.RequesterID {
		c.RequesterConsent = true
		return
	}
	c.CounterpartyConsent = true
}

func (c *Consent) ClearConsent(caller string) {
	if caller == c.RequesterID {
		c.RequesterConsent = false
		return
	}
	c.CounterpartyConsent = false
}

func (c *Consent) AllConsented() bool {
	return c.RequesterConsent && c.CounterpartyConsent
}

// Expired is strict: consent given at exactly ExpiresAt still counts.
func (c *Consent) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
