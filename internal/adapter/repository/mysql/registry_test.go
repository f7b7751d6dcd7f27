package mysql

import (
	"context"
	"errors"
	"testing"

	domain "lendpact-backend/internal/domain/registry"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openRegistryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Stats{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestRegistryEnsureIsIdempotent(t *testing.T) {
	db := openRegistryTestDB(t)
	repo := NewRegistryRepository(db)
	ctx := context.Background()

	if err := repo.Ensure(ctx); err != nil {
		t.Fatalf("first Ensure: %v", err)
	}
	if err := repo.Increment(ctx, 500); err != nil {
		t.Fatalf("Increment: %v", err)
	}
	// Ensure again must not reset counters
	if err := repo.Ensure(ctx); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TotalLoans != 1 || got.TotalVolume != 500 {
		t.Fatalf("counters reset by Ensure: %+v", got)
	}
}

func TestRegistryGetBeforeEnsure(t *testing.T) {
	db := openRegistryTestDB(t)
	repo := NewRegistryRepository(db)

	if _, err := repo.Get(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistryIncrementAccumulates(t *testing.T) {
	db := openRegistryTestDB(t)
	repo := NewRegistryRepository(db)
	ctx := context.Background()

	if err := repo.Ensure(ctx); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	principals := []int64{1_000_000, 250_000, 4_750_000}
	var volume int64
	for _, p := range principals {
		if err := repo.Increment(ctx, p); err != nil {
			t.Fatalf("Increment(%d): %v", p, err)
		}
		volume += p
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TotalLoans != int64(len(principals)) || got.TotalVolume != volume {
		t.Fatalf("stats = %+v, want loans=%d volume=%d", got, len(principals), volume)
	}
}

func TestRegistryIncrementWithoutRow(t *testing.T) {
	db := openRegistryTestDB(t)
	repo := NewRegistryRepository(db)

	if err := repo.Increment(context.Background(), 100); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
