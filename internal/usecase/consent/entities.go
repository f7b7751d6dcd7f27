package consent

import (
	"time"

	"lendpact-backend/internal/domain/consent"
	"lendpact-backend/internal/domain/loan"
)

type RequestInput struct {
	LoanID   string
	CallerID string
	Kind     consent.Kind
}

type GiveInput struct {
	LoanID   string
	CallerID string
	// Kind guards the route-level intent: giving resolution consent
	// while a termination is pending is rejected. Empty matches any.
	Kind consent.Kind
}

type WithdrawInput struct {
	LoanID   string
	CallerID string
}

type ConsentDTO struct {
	LoanID              string     `json:"loan_id"`
	Status              string     `json:"status"`
	Kind                string     `json:"kind,omitempty"`
	RequesterID         string     `json:"requester_id,omitempty"`
	RequesterConsent    bool       `json:"requester_consent"`
	CounterpartyConsent bool       `json:"counterparty_consent"`
	AllConsented        bool       `json:"all_consented"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
}

type ExpirationDTO struct {
	LoanID  string `json:"loan_id"`
	Status  string `json:"status"`
	Expired bool   `json:"expired"`
}

func toConsentDTO(l *loan.Loan, c *consent.Consent) *ConsentDTO {
	dto := &ConsentDTO{
		LoanID: l.LoanID,
		Status: string(l.Status),
	}
	if c != nil {
		exp := c.ExpiresAt
		dto.Kind = string(c.Kind)
		dto.RequesterID = c.RequesterID
		dto.RequesterConsent = c.RequesterConsent
		dto.CounterpartyConsent = c.CounterpartyConsent
		dto.AllConsented = c.AllConsented()
		dto.ExpiresAt = &exp
	}
	return dto
}
