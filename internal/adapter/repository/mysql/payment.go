package mysql

import (
	"context"

	paymentDomain "lendpact-backend/internal/domain/payment"

	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByLoanRef(ctx context.Context, loanRef string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("loan_ref = ?", loanRef).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
