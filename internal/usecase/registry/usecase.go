package registry

import (
	"context"
	"time"

	domainLoan "lendpact-backend/internal/domain/loan"
	domainRegistry "lendpact-backend/internal/domain/registry"
)

type Usecase struct {
	registryRepo domainRegistry.Repository
	loanRepo     domainLoan.Repository
}

func NewUsecase(reg domainRegistry.Repository, loans domainLoan.Repository) *Usecase {
	return &Usecase{registryRepo: reg, loanRepo: loans}
}

// StatsDTO mirrors the append-only counters: created loans and their
// summed principal, never revised by later defaults or disputes.
type StatsDTO struct {
	TotalLoans  int64 `json:"total_loans"`
	TotalVolume int64 `json:"total_volume"`
}

type LoanSummaryDTO struct {
	LoanID       string    `json:"loan_id"`
	BorrowerID   string    `json:"borrower_id"`
	Principal    int64     `json:"principal"`
	Status       string    `json:"status"`
	CommunityTag string    `json:"community_tag,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *Usecase) Stats(ctx context.Context) (*StatsDTO, error) {
	s, err := u.registryRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsDTO{TotalLoans: s.TotalLoans, TotalVolume: s.TotalVolume}, nil
}

func (u *Usecase) ListByCommunity(ctx context.Context, tag string, limit int) ([]LoanSummaryDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	rows, err := u.loanRepo.ListByCommunityTag(ctx, tag, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LoanSummaryDTO, 0, len(rows))
	for _, l := range rows {
		out = append(out, LoanSummaryDTO{
			LoanID:       l.LoanID,
			BorrowerID:   l.BorrowerID,
			Principal:    l.Principal,
			Status:       string(l.Status),
			CommunityTag: l.CommunityTag,
			CreatedAt:    l.CreatedAt,
		})
	}
	return out, nil
}
