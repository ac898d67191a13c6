package changelog

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=changelog_repo.go -destination=mock/changelog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]ChangelogEntry, error)
	FindLatest(ctx context.Context) (*ChangelogEntry, error)
	Create(ctx context.Context, entry *ChangelogEntry) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open transaction. Statements issued through
// the returned repository run on the tx connection, so the caller's commit or
// rollback covers them together with any other writes in the same tx.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	// Passing the context forces a statement clone, so the ConnPool override
	// stays local to this instance and the base repository keeps its pool.
	session := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

// FindAll returns every entry in display order: newest release date first,
// ties broken by the higher (more recently assigned) id.
func (r *repository) FindAll(ctx context.Context) ([]ChangelogEntry, error) {
	var entries []ChangelogEntry
	err := r.db.WithContext(ctx).
		Order("release_date DESC").
		Order("id DESC").
		Find(&entries).Error
	return entries, err
}

// FindLatest returns the single entry that leads FindAll, or
// gorm.ErrRecordNotFound on an empty feed.
func (r *repository) FindLatest(ctx context.Context) (*ChangelogEntry, error) {
	var entry ChangelogEntry
	err := r.db.WithContext(ctx).
		Order("release_date DESC").
		Order("id DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) Create(ctx context.Context, entry *ChangelogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&ChangelogEntry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
