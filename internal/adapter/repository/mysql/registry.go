package mysql

import (
	"context"
	"errors"

	registryDomain "lendpact-backend/internal/domain/registry"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegistryRepository struct{ db *gorm.DB }

func NewRegistryRepository(db *gorm.DB) *RegistryRepository { return &RegistryRepository{db: db} }

// Ensure seeds the single registry row. Safe to call on every startup.
func (r *RegistryRepository) Ensure(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&registryDomain.Stats{ID: registryDomain.RowID}).Error
}

func (r *RegistryRepository) Get(ctx context.Context) (*registryDomain.Stats, error) {
	var out registryDomain.Stats
	res := r.db.WithContext(ctx).Where("id = ?", registryDomain.RowID).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, registryDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

// Increment bumps both counters in place. Runs inside the create
// transaction, so the registry never drifts from the loans table.
func (r *RegistryRepository) Increment(ctx context.Context, principal int64) error {
	res := r.db.WithContext(ctx).Model(&registryDomain.Stats{}).
		Where("id = ?", registryDomain.RowID).
		Updates(map[string]any{
			"total_loans":  gorm.Expr("total_loans + 1"),
			"total_volume": gorm.Expr("total_volume + ?", principal),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return registryDomain.ErrNotFound
	}
	return nil
}
