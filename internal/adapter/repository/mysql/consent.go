package mysql

import (
	"context"
	"errors"

	consentDomain "lendpact-backend/internal/domain/consent"

	"gorm.io/gorm"
)

type ConsentRepository struct{ db *gorm.DB }

func NewConsentRepository(db *gorm.DB) *ConsentRepository { return &ConsentRepository{db: db} }

func (r *ConsentRepository) Create(ctx context.Context, c *consentDomain.Consent) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ConsentRepository) GetByLoanRef(ctx context.Context, loanRef string) (*consentDomain.Consent, error) {
	var out consentDomain.Consent
	res := r.db.WithContext(ctx).Where("loan_ref = ?", loanRef).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, consentDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *ConsentRepository) Save(ctx context.Context, c *consentDomain.Consent) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete is a hard delete: the row's existence is the consent state.
func (r *ConsentRepository) Delete(ctx context.Context, c *consentDomain.Consent) error {
	return r.db.WithContext(ctx).Delete(c).Error
}
