package changelog

import "time"

// ChangelogEntry is one released patch note. Entries are immutable after
// creation; fixing one means delete + recreate.
type ChangelogEntry struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Version     string    `gorm:"uniqueIndex:uq_patch_note_version"`
	ReleaseDate time.Time `gorm:"type:date"`
	Title       string
	Content     string
	IsMajor     bool
	CreatedAt   time.Time
}

func (ChangelogEntry) TableName() string {
	return "sys_patch_notes"
}
