package events

import "time"

const ChangelogEntryCreatedTopic = "erp.changelog.entry.created.v1"

type ChangelogEntryCreatedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	EntryID     int64     `json:"entry_id"`
	Version     string    `json:"version"`
	ReleaseDate string    `json:"release_date"`
	IsMajor     bool      `json:"is_major"`
	OccurredAt  time.Time `json:"occurred_at"`
}
