package registry

import (
	"context"
	"errors"
	"testing"

	domainLoan "lendpact-backend/internal/domain/loan"
	domainRegistry "lendpact-backend/internal/domain/registry"
	"lendpact-backend/internal/testutil/loanmock"
	"lendpact-backend/internal/testutil/registrymock"
)

func TestStats(t *testing.T) {
	uc := NewUsecase(&registrymock.Repo{
		GetFn: func(ctx context.Context) (*domainRegistry.Stats, error) {
			return &domainRegistry.Stats{ID: domainRegistry.RowID, TotalLoans: 12, TotalVolume: 34_000_000}, nil
		},
	}, &loanmock.Repo{})

	dto, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats err: %v", err)
	}
	if dto.TotalLoans != 12 || dto.TotalVolume != 34_000_000 {
		t.Fatalf("dto: %+v", dto)
	}
}

func TestStats_PropagatesError(t *testing.T) {
	uc := NewUsecase(&registrymock.Repo{
		GetFn: func(ctx context.Context) (*domainRegistry.Stats, error) {
			return nil, domainRegistry.ErrNotFound
		},
	}, &loanmock.Repo{})

	if _, err := uc.Stats(context.Background()); !errors.Is(err, domainRegistry.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListByCommunity_ClampsLimit(t *testing.T) {
	var gotLimit int
	loans := &loanmock.Repo{
		ListByCommunityTagFn: func(ctx context.Context, tag string, limit int) ([]domainLoan.Loan, error) {
			gotLimit = limit
			return []domainLoan.Loan{{LoanID: "LN-1", CommunityTag: tag, Status: domainLoan.StatusActive}}, nil
		},
	}
	uc := NewUsecase(&registrymock.Repo{}, loans)

	cases := []struct {
		in   int
		want int
	}{
		{0, 100},
		{-3, 100},
		{101, 100},
		{25, 25},
	}
	for _, tc := range cases {
		dtos, err := uc.ListByCommunity(context.Background(), "jakarta", tc.in)
		if err != nil {
			t.Fatalf("ListByCommunity(%d): %v", tc.in, err)
		}
		if gotLimit != tc.want {
			t.Errorf("limit %d clamped to %d, want %d", tc.in, gotLimit, tc.want)
		}
		if len(dtos) != 1 || dtos[0].Status != "active" {
			t.Fatalf("dtos: %+v", dtos)
		}
	}
}
