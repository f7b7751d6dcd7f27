package mysql

import (
	"context"
	"errors"

	loanDomain "lendpact-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	q := r.db.WithContext(ctx)
	// sqlite has no FOR UPDATE; its single writer serializes anyway
	if q.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	res := q.Where("loan_id = ?", loanID).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) ListByCommunityTag(ctx context.Context, tag string, limit int) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("community_tag = ?", tag).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
