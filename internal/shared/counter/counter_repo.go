package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, counterType string, scope string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue increments and returns the sequence for one counter type within a
// scope (e.g. document numbers scoped per issue year). Raw UPSERT keeps the
// increment atomic under concurrent issuance.
func (r *repository) GetNextValue(ctx context.Context, counterType string, scope string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sys_counters (counter_type, scope, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (counter_type, scope) DO UPDATE
		SET last_value = sys_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType, scope).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
