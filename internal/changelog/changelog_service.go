package changelog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	changelogerrors "github.com/yonginsolar/erp/internal/changelog/errors"
	"github.com/yonginsolar/erp/internal/domain"
	"github.com/yonginsolar/erp/internal/events"
	"github.com/yonginsolar/erp/internal/messaging/kafka"
	"github.com/yonginsolar/erp/internal/permission"
	"github.com/yonginsolar/erp/internal/shared/apperror"
	"github.com/yonginsolar/erp/internal/shared/contextutil"
)

const LatestVersionKey = "changelog:latest_version"

const dateLayout = "2006-01-02"

//go:generate mockgen -source=changelog_service.go -destination=mock/changelog_service_mock.go -package=mock
type Service interface {
	Feed(ctx context.Context, user domain.UserContext) (FeedResponse, error)
	LatestVersion(ctx context.Context) (string, bool, error)
	RefreshLatestVersion(ctx context.Context) (string, bool, error)
	Create(ctx context.Context, user domain.UserContext, req CreateChangelogRequest) (ChangelogEntryResponse, error)
	Delete(ctx context.Context, user domain.UserContext, id int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	gate   permission.Gate
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, gate permission.Gate, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, gate, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	gate permission.Gate,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("changelog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("changelog.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		gate:   gate,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: l,
	}
}

// Feed is one full render of the changelog: every entry in display order plus
// the permission projection. The gate is consulted on every render so a role
// change takes effect on the next call without any reload.
func (s *service) Feed(ctx context.Context, user domain.UserContext) (FeedResponse, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list changelog entries failed", zap.Error(err))
		return FeedResponse{}, mapRepositoryError(err)
	}

	canWrite := s.gate.IsAuthorized(user)

	resp := FeedResponse{
		Entries:  make([]ChangelogEntryResponse, len(entries)),
		CanWrite: canWrite,
	}
	for i, entry := range entries {
		resp.Entries[i] = mapToResponse(entry, canWrite)
	}

	if len(entries) > 0 {
		v := entries[0].Version
		resp.LatestVersion = &v
	}

	return resp, nil
}

// LatestVersion returns the version of the entry with the greatest
// (release_date, id), serving the main-screen badge. Cached in redis with
// singleflight against dogpiles; absent (ok=false) iff the feed is empty.
func (s *service) LatestVersion(ctx context.Context) (string, bool, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, LatestVersionKey).Result(); err == nil {
			return cached, true, nil
		}
	}

	v, err, _ := s.sf.Do(LatestVersionKey, func() (interface{}, error) {
		entry, err := s.repo.FindLatest(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if err := s.rdb.Set(ctx, LatestVersionKey, entry.Version, time.Hour).Err(); err != nil {
				s.logger.Warn("cache latest version failed", zap.Error(err))
			}
		}

		return entry.Version, nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		s.logger.Error("find latest changelog entry failed", zap.Error(err))
		return "", false, mapRepositoryError(err)
	}

	return v.(string), true, nil
}

// RefreshLatestVersion drops the cached projection and rebuilds it from the
// store. Used after mutations and by the projection consumer.
func (s *service) RefreshLatestVersion(ctx context.Context) (string, bool, error) {
	s.invalidateLatestVersion(ctx)
	return s.LatestVersion(ctx)
}

func (s *service) Create(
	ctx context.Context,
	user domain.UserContext,
	req CreateChangelogRequest,
) (ChangelogEntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !s.gate.IsAuthorized(user) {
		s.logger.Warn("create changelog entry denied",
			zap.String("request_id", rid),
			zap.String("role", user.Role),
			zap.String("position", user.Position),
		)
		return ChangelogEntryResponse{}, apperror.ErrForbidden
	}

	if err := validateCreateRequest(req); err != nil {
		return ChangelogEntryResponse{}, err
	}

	releaseDate, err := s.resolveReleaseDate(req.ReleaseDate)
	if err != nil {
		return ChangelogEntryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create changelog begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ChangelogEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry := &ChangelogEntry{
		Version:     strings.TrimSpace(req.Version),
		ReleaseDate: releaseDate,
		Title:       req.Title,
		Content:     req.Content,
		IsMajor:     req.IsMajor,
	}

	if err := qtx.Create(ctx, entry); err != nil {
		s.logger.Error("create changelog persist failed", zap.String("request_id", rid), zap.Error(err))
		return ChangelogEntryResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.ChangelogEntryCreatedEvent{
			EventType:   "changelog_entry_created",
			RequestID:   rid,
			EntryID:     entry.ID,
			Version:     entry.Version,
			ReleaseDate: entry.ReleaseDate.Format(dateLayout),
			IsMajor:     entry.IsMajor,
			OccurredAt:  s.now().UTC(),
		}

		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal changelog event failed", zap.String("request_id", rid), zap.Error(err))
			return ChangelogEntryResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "changelog_entry",
			AggregateID:   entry.Version,
			EventType:     event.EventType,
			Topic:         events.ChangelogEntryCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create changelog outbox persist failed", zap.String("request_id", rid), zap.Error(err))
			return ChangelogEntryResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create changelog commit failed", zap.String("request_id", rid), zap.Error(err))
		return ChangelogEntryResponse{}, err
	}

	s.invalidateLatestVersion(ctx)

	s.logger.Info("changelog entry created",
		zap.String("request_id", rid),
		zap.Int64("entry_id", entry.ID),
		zap.String("version", entry.Version),
		zap.Bool("is_major", entry.IsMajor),
	)

	return mapToResponse(*entry, true), nil
}

func (s *service) Delete(ctx context.Context, user domain.UserContext, id int64) error {
	rid := contextutil.GetRequestID(ctx)

	if !s.gate.IsAuthorized(user) {
		s.logger.Warn("delete changelog entry denied",
			zap.String("request_id", rid),
			zap.Int64("entry_id", id),
		)
		return apperror.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete changelog entry failed",
			zap.String("request_id", rid),
			zap.Int64("entry_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateLatestVersion(ctx)

	s.logger.Info("changelog entry deleted",
		zap.String("request_id", rid),
		zap.Int64("entry_id", id),
	)

	return nil
}

func (s *service) invalidateLatestVersion(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, LatestVersionKey).Err(); err != nil {
		s.logger.Warn("invalidate latest version cache failed", zap.Error(err))
	}
}

// validateCreateRequest re-checks required fields so a direct service caller
// can never reach the store with a partial draft.
func validateCreateRequest(req CreateChangelogRequest) error {
	if strings.TrimSpace(req.Version) == "" {
		return apperror.RequiredField("Version")
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperror.RequiredField("Title")
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperror.RequiredField("Content")
	}
	return nil
}

func (s *service) resolveReleaseDate(raw string) (time.Time, error) {
	if raw == "" {
		// Date-only: zero clock keeps the stored value stable across runs.
		today := s.now().UTC()
		return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, changelogerrors.ErrInvalidReleaseDate
	}
	return t, nil
}

func mapToResponse(entry ChangelogEntry, canDelete bool) ChangelogEntryResponse {
	badge := "Patch"
	if entry.IsMajor {
		badge = "Major Update"
	}

	return ChangelogEntryResponse{
		ID:          entry.ID,
		Version:     entry.Version,
		ReleaseDate: entry.ReleaseDate.Format(dateLayout),
		Title:       entry.Title,
		Content:     entry.Content,
		ContentHTML: renderContentHTML(entry.Content),
		IsMajor:     entry.IsMajor,
		Badge:       badge,
		CanDelete:   canDelete,
	}
}

// renderContentHTML escapes free-text content and turns newline markers
// (escaped or literal) into line breaks.
func renderContentHTML(content string) template.HTML {
	escaped := template.HTMLEscapeString(content)
	escaped = strings.ReplaceAll(escaped, `\n`, "<br>")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(escaped)
}
