package changelog_test

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yonginsolar/erp/internal/changelog"
	changelogerrors "github.com/yonginsolar/erp/internal/changelog/errors"
	"github.com/yonginsolar/erp/internal/domain"
	"github.com/yonginsolar/erp/internal/messaging/kafka"
	"github.com/yonginsolar/erp/internal/shared/apperror"
)

type fakeChangelogRepo struct {
	FindAllFn    func(ctx context.Context) ([]changelog.ChangelogEntry, error)
	FindLatestFn func(ctx context.Context) (*changelog.ChangelogEntry, error)
	CreateFn     func(ctx context.Context, entry *changelog.ChangelogEntry) error
	DeleteFn     func(ctx context.Context, id int64) error
}

func (f *fakeChangelogRepo) WithTx(tx *sql.Tx) changelog.Repository { return f }
func (f *fakeChangelogRepo) FindAll(ctx context.Context) ([]changelog.ChangelogEntry, error) {
	return f.FindAllFn(ctx)
}
func (f *fakeChangelogRepo) FindLatest(ctx context.Context) (*changelog.ChangelogEntry, error) {
	return f.FindLatestFn(ctx)
}
func (f *fakeChangelogRepo) Create(ctx context.Context, entry *changelog.ChangelogEntry) error {
	return f.CreateFn(ctx, entry)
}
func (f *fakeChangelogRepo) Delete(ctx context.Context, id int64) error {
	return f.DeleteFn(ctx, id)
}

type fakeGate struct{ allow bool }

func (g *fakeGate) IsAuthorized(user domain.UserContext) bool { return g.allow }

type fakeOutboxRepo struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error              { return nil }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, r string) error { return nil }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	assert.NoError(t, err)
	return d
}

func TestChangelogService_Feed(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()

	entries := []changelog.ChangelogEntry{
		{ID: 7, Version: "2.1.0", ReleaseDate: mustDate(t, "2024-03-01"), Title: "New ledger", Content: "Ledger print added", IsMajor: true},
		{ID: 3, Version: "2.0.1", ReleaseDate: mustDate(t, "2024-01-15"), Title: "Fixes", Content: "Bug fixes"},
	}

	repo := &fakeChangelogRepo{
		FindAllFn: func(ctx context.Context) ([]changelog.ChangelogEntry, error) {
			return entries, nil
		},
	}

	t.Run("authorized viewer sees write controls", func(t *testing.T) {
		svc := changelog.NewService(db, repo, &fakeGate{allow: true}, nil)

		feed, err := svc.Feed(ctx, domain.UserContext{Role: "admin"})

		assert.NoError(t, err)
		assert.True(t, feed.CanWrite)
		assert.Len(t, feed.Entries, 2)
		assert.True(t, feed.Entries[0].CanDelete)
		assert.Equal(t, "2.1.0", *feed.LatestVersion)
		assert.Equal(t, "Major Update", feed.Entries[0].Badge)
		assert.Equal(t, "Patch", feed.Entries[1].Badge)
	})

	t.Run("unauthorized viewer gets read-only feed with same entries", func(t *testing.T) {
		svc := changelog.NewService(db, repo, &fakeGate{allow: false}, nil)

		feed, err := svc.Feed(ctx, domain.UserContext{Role: "user", Position: "사원"})

		assert.NoError(t, err)
		assert.False(t, feed.CanWrite)
		assert.Len(t, feed.Entries, 2)
		assert.False(t, feed.Entries[0].CanDelete)
		assert.Equal(t, "2.1.0", feed.Entries[0].Version)
	})

	t.Run("empty feed has no latest version", func(t *testing.T) {
		emptyRepo := &fakeChangelogRepo{
			FindAllFn: func(ctx context.Context) ([]changelog.ChangelogEntry, error) {
				return nil, nil
			},
		}
		svc := changelog.NewService(db, emptyRepo, &fakeGate{allow: false}, nil)

		feed, err := svc.Feed(ctx, domain.Anonymous())

		assert.NoError(t, err)
		assert.Empty(t, feed.Entries)
		assert.Nil(t, feed.LatestVersion)
	})

	t.Run("markup in content is escaped, newlines become line breaks", func(t *testing.T) {
		xssRepo := &fakeChangelogRepo{
			FindAllFn: func(ctx context.Context) ([]changelog.ChangelogEntry, error) {
				return []changelog.ChangelogEntry{
					{ID: 1, Version: "1.0.0", ReleaseDate: mustDate(t, "2024-01-01"), Title: "t",
						Content: "<script>alert(1)</script>\nsecond line"},
				}, nil
			},
		}
		svc := changelog.NewService(db, xssRepo, &fakeGate{allow: false}, nil)

		feed, err := svc.Feed(ctx, domain.Anonymous())

		assert.NoError(t, err)
		html := string(feed.Entries[0].ContentHTML)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
		assert.Contains(t, html, "<br>")
	})
}

func TestChangelogService_LatestVersion(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()

	t.Run("cache hit skips the store", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(changelog.LatestVersionKey).SetVal("3.0.0")

		repo := &fakeChangelogRepo{
			FindLatestFn: func(ctx context.Context) (*changelog.ChangelogEntry, error) {
				t.Fatal("store must not be hit on cache hit")
				return nil, nil
			},
		}
		svc := changelog.NewService(db, repo, &fakeGate{allow: false}, rdb)

		version, ok, err := svc.LatestVersion(ctx)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "3.0.0", version)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss reads the store and fills the cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(changelog.LatestVersionKey).RedisNil()
		redisMock.ExpectSet(changelog.LatestVersionKey, "2.1.0", time.Hour).SetVal("OK")

		repo := &fakeChangelogRepo{
			FindLatestFn: func(ctx context.Context) (*changelog.ChangelogEntry, error) {
				return &changelog.ChangelogEntry{ID: 7, Version: "2.1.0"}, nil
			},
		}
		svc := changelog.NewService(db, repo, &fakeGate{allow: false}, rdb)

		version, ok, err := svc.LatestVersion(ctx)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "2.1.0", version)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("empty feed reports absent, not error", func(t *testing.T) {
		repo := &fakeChangelogRepo{
			FindLatestFn: func(ctx context.Context) (*changelog.ChangelogEntry, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := changelog.NewService(db, repo, &fakeGate{allow: false}, nil)

		version, ok, err := svc.LatestVersion(ctx)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, version)
	})
}

func TestChangelogService_Create(t *testing.T) {
	ctx := context.Background()

	admin := domain.UserContext{Role: "admin"}

	validReq := changelog.CreateChangelogRequest{
		Version:     "2.2.0",
		ReleaseDate: "2024-04-01",
		Title:       "Certificate printing",
		Content:     "Employment certificates can now be printed",
		IsMajor:     true,
	}

	t.Run("success persists entry and outbox event in one tx", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		var created *changelog.ChangelogEntry
		repo := &fakeChangelogRepo{
			CreateFn: func(ctx context.Context, entry *changelog.ChangelogEntry) error {
				entry.ID = 11
				created = entry
				return nil
			},
		}
		outbox := &fakeOutboxRepo{}

		svc := changelog.NewServiceWithOutbox(db, repo, &fakeGate{allow: true}, outbox, nil)

		resp, err := svc.Create(ctx, admin, validReq)

		assert.NoError(t, err)
		assert.Equal(t, int64(11), resp.ID)
		assert.Equal(t, "2.2.0", resp.Version)
		assert.Equal(t, "2024-04-01", resp.ReleaseDate)
		assert.Equal(t, "Major Update", resp.Badge)
		assert.True(t, resp.CanDelete)

		assert.NotNil(t, created)
		assert.Equal(t, "2024-04-01", created.ReleaseDate.Format("2006-01-02"))

		assert.Len(t, outbox.created, 1)
		assert.Equal(t, "changelog_entry", outbox.created[0].AggregateType)
		assert.Equal(t, "2.2.0", outbox.created[0].AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, outbox.created[0].Status)
		assert.Contains(t, string(outbox.created[0].Payload), "2.2.0")

		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("blank release date defaults to today", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		var created *changelog.ChangelogEntry
		repo := &fakeChangelogRepo{
			CreateFn: func(ctx context.Context, entry *changelog.ChangelogEntry) error {
				entry.ID = 1
				created = entry
				return nil
			},
		}
		svc := changelog.NewService(db, repo, &fakeGate{allow: true}, nil)

		req := validReq
		req.ReleaseDate = ""
		_, err := svc.Create(ctx, admin, req)

		assert.NoError(t, err)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), created.ReleaseDate.Format("2006-01-02"))
	})

	t.Run("unauthorized caller is rejected before any write", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeChangelogRepo{
			CreateFn: func(ctx context.Context, entry *changelog.ChangelogEntry) error {
				t.Fatal("store must not be written by an unauthorized caller")
				return nil
			},
		}
		svc := changelog.NewService(db, repo, &fakeGate{allow: false}, nil)

		_, err := svc.Create(ctx, domain.UserContext{Role: "user", Position: "대리"}, validReq)

		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := changelog.NewService(db, &fakeChangelogRepo{}, &fakeGate{allow: false}, nil)

		_, err := svc.Create(ctx, domain.Anonymous(), validReq)

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("whitespace-only version is rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := changelog.NewService(db, &fakeChangelogRepo{}, &fakeGate{allow: true}, nil)

		req := validReq
		req.Version = "   "
		_, err := svc.Create(ctx, admin, req)

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("malformed release date is rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := changelog.NewService(db, &fakeChangelogRepo{}, &fakeGate{allow: true}, nil)

		req := validReq
		req.ReleaseDate = "01-04-2024"
		_, err := svc.Create(ctx, admin, req)

		assert.ErrorIs(t, err, changelogerrors.ErrInvalidReleaseDate)
	})

	t.Run("duplicate version maps to conflict and rolls back", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo := &fakeChangelogRepo{
			CreateFn: func(ctx context.Context, entry *changelog.ChangelogEntry) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_patch_note_version"}
			},
		}
		svc := changelog.NewService(db, repo, &fakeGate{allow: true}, nil)

		_, err := svc.Create(ctx, admin, validReq)

		assert.ErrorIs(t, err, changelogerrors.ErrVersionAlreadyExists)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestChangelogService_Delete(t *testing.T) {
	ctx := context.Background()
	admin := domain.UserContext{Role: "admin"}

	t.Run("success", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		var deletedID int64
		repo := &fakeChangelogRepo{
			DeleteFn: func(ctx context.Context, id int64) error {
				deletedID = id
				return nil
			},
		}
		svc := changelog.NewService(db, repo, &fakeGate{allow: true}, nil)

		err := svc.Delete(ctx, admin, 7)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), deletedID)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("missing entry maps to not found", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo := &fakeChangelogRepo{
			DeleteFn: func(ctx context.Context, id int64) error {
				return gorm.ErrRecordNotFound
			},
		}
		svc := changelog.NewService(db, repo, &fakeGate{allow: true}, nil)

		err := svc.Delete(ctx, admin, 99)

		assert.ErrorIs(t, err, changelogerrors.ErrEntryNotFound)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unauthorized caller is rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeChangelogRepo{
			DeleteFn: func(ctx context.Context, id int64) error {
				t.Fatal("store must not be touched by an unauthorized caller")
				return nil
			},
		}
		svc := changelog.NewService(db, repo, &fakeGate{allow: false}, nil)

		err := svc.Delete(ctx, domain.UserContext{Role: "user"}, 7)

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

// memChangelogStore is a sorting in-memory store: FindAll and FindLatest apply
// the (release_date desc, id desc) display order themselves, so these tests
// exercise the ordering contract end to end instead of trusting fixtures.
type memChangelogStore struct {
	entries []changelog.ChangelogEntry
	nextID  int64
}

func (m *memChangelogStore) WithTx(tx *sql.Tx) changelog.Repository { return m }

func (m *memChangelogStore) FindAll(ctx context.Context) ([]changelog.ChangelogEntry, error) {
	out := make([]changelog.ChangelogEntry, len(m.entries))
	copy(out, m.entries)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReleaseDate.Equal(out[j].ReleaseDate) {
			return out[i].ReleaseDate.After(out[j].ReleaseDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memChangelogStore) FindLatest(ctx context.Context) (*changelog.ChangelogEntry, error) {
	all, _ := m.FindAll(ctx)
	if len(all) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	first := all[0]
	return &first, nil
}

func (m *memChangelogStore) Create(ctx context.Context, entry *changelog.ChangelogEntry) error {
	m.nextID++
	entry.ID = m.nextID
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memChangelogStore) Delete(ctx context.Context, id int64) error {
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func expectMutation(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func TestChangelogService_FeedOrdering_TieBreak(t *testing.T) {
	db, sqlMock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()
	admin := domain.UserContext{Role: "admin"}
	store := &memChangelogStore{}
	svc := changelog.NewService(db, store, &fakeGate{allow: true}, nil)

	// Two entries share a release date; the later insert gets the higher id.
	expectMutation(sqlMock)
	_, err := svc.Create(ctx, admin, changelog.CreateChangelogRequest{
		Version: "1.1.0", ReleaseDate: "2024-02-01", Title: "first", Content: "c",
	})
	assert.NoError(t, err)

	expectMutation(sqlMock)
	_, err = svc.Create(ctx, admin, changelog.CreateChangelogRequest{
		Version: "1.1.1", ReleaseDate: "2024-02-01", Title: "second", Content: "c",
	})
	assert.NoError(t, err)

	expectMutation(sqlMock)
	_, err = svc.Create(ctx, admin, changelog.CreateChangelogRequest{
		Version: "1.0.0", ReleaseDate: "2024-01-01", Title: "older", Content: "c",
	})
	assert.NoError(t, err)

	feed, err := svc.Feed(ctx, admin)

	assert.NoError(t, err)
	assert.Len(t, feed.Entries, 3)
	assert.Equal(t, "1.1.1", feed.Entries[0].Version, "equal dates: higher id wins")
	assert.Equal(t, "1.1.0", feed.Entries[1].Version)
	assert.Equal(t, "1.0.0", feed.Entries[2].Version)
	assert.Equal(t, "1.1.1", *feed.LatestVersion)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestChangelogService_CreateListDeleteLifecycle(t *testing.T) {
	db, sqlMock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()
	admin := domain.UserContext{Role: "admin"}
	store := &memChangelogStore{}
	svc := changelog.NewService(db, store, &fakeGate{allow: true}, nil)

	expectMutation(sqlMock)
	_, err := svc.Create(ctx, admin, changelog.CreateChangelogRequest{
		Version: "1.0.0", ReleaseDate: "2024-01-01", Title: "base", Content: "c",
	})
	assert.NoError(t, err)

	expectMutation(sqlMock)
	created, err := svc.Create(ctx, admin, changelog.CreateChangelogRequest{
		Version: "1.2.0", ReleaseDate: "2024-03-01", Title: "new", Content: "c",
	})
	assert.NoError(t, err)

	feed, err := svc.Feed(ctx, admin)
	assert.NoError(t, err)
	assert.Equal(t, "1.2.0", feed.Entries[0].Version)

	version, ok, err := svc.LatestVersion(ctx)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1.2.0", version)

	expectMutation(sqlMock)
	assert.NoError(t, svc.Delete(ctx, admin, created.ID))

	feed, err = svc.Feed(ctx, admin)
	assert.NoError(t, err)
	assert.Len(t, feed.Entries, 1)
	for _, e := range feed.Entries {
		assert.NotEqual(t, "1.2.0", e.Version)
	}

	version, ok, err = svc.LatestVersion(ctx)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1.0.0", version)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestMapRepositoryError_DuplicateByMessage(t *testing.T) {
	db, sqlMock, _ := sqlmock.New()
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	repo := &fakeChangelogRepo{
		CreateFn: func(ctx context.Context, entry *changelog.ChangelogEntry) error {
			return errors.New(`ERROR: duplicate key value violates unique constraint "uq_patch_note_version"`)
		},
	}
	svc := changelog.NewService(db, repo, &fakeGate{allow: true}, nil)

	_, err := svc.Create(context.Background(), domain.UserContext{Role: "admin"}, changelog.CreateChangelogRequest{
		Version: "1.0.0",
		Title:   "t",
		Content: strings.Repeat("x", 10),
	})

	assert.ErrorIs(t, err, changelogerrors.ErrVersionAlreadyExists)
}
