package registry

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("registry row not found")
)

// Stats is the single-row aggregate over all loans ever created. Both
// counters are append-only: they are bumped once per successful create
// and never revised when a loan later defaults or is disputed.
type Stats struct {
	ID          uint64    `gorm:"column:id;primaryKey" json:"-"`
	TotalLoans  int64     `gorm:"column:total_loans;not null;default:0" json:"total_loans"`
	TotalVolume int64     `gorm:"column:total_volume;not null;default:0" json:"total_volume"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Stats) TableName() string { return "loan_registry" }

// RowID is the fixed primary key of the single registry row.
const RowID uint64 = 1
