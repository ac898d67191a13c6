package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/yonginsolar/erp/internal/changelog"
	"github.com/yonginsolar/erp/internal/events"
)

// ConsumeChangelogEntryCreated keeps the cached latest-version projection in
// step with published entries. Reading back through the service rather than
// trusting the event payload keeps the (release_date, id) ordering authoritative.
func ConsumeChangelogEntryCreated(
	ctx context.Context,
	reader *kafkago.Reader,
	changelogService changelog.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.changelog_version")
	log.Info("changelog version consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("changelog version consumer stopped")
				return
			}
			log.Error("fetch changelog message failed", zap.Error(err))
			continue
		}

		var event events.ChangelogEntryCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode changelog_entry_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		version, ok, err := changelogService.RefreshLatestVersion(ctx)
		if err != nil {
			log.Error("refresh latest version projection failed",
				zap.String("version", event.Version),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit changelog message failed", zap.Error(err))
			continue
		}

		if ok {
			log.Info("latest version projection refreshed",
				zap.String("version", version),
				zap.Int64("entry_id", event.EntryID),
			)
		}
	}
}
