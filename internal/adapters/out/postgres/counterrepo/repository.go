// Package counterrepo implements the atomic named counters backing
// order number generation.
package counterrepo

import (
	"context"

	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// CounterDTO represents one named counter row.
type CounterDTO struct {
	Key   string `gorm:"primaryKey"`
	Value int64
}

// TableName specifies the database table name for counters.
func (CounterDTO) TableName() string {
	return "counters"
}

// GormCounterRepository implements ports.CounterRepository using GORM.
// The increment is a single upsert statement, so concurrent callers always
// observe distinct values even outside a serializable transaction.
type GormCounterRepository struct {
	db *gorm.DB
}

// NewGormCounterRepository creates a new GORM counter repository.
func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// Next atomically increments the named counter and returns the new value.
// The first call for a key creates the row with value 1.
func (r *GormCounterRepository) Next(ctx context.Context, key string) (int64, error) {
	if key == "" {
		return 0, errs.NewValueIsRequiredError("key")
	}

	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (key, value)
		VALUES (?, 1)
		ON CONFLICT (key) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`, key).Scan(&value).Error
	if err != nil {
		return 0, err
	}

	return value, nil
}
