package changelog

import "html/template"

type CreateChangelogRequest struct {
	Version     string `json:"version" binding:"required"`
	ReleaseDate string `json:"release_date"` // YYYY-MM-DD, defaults to today
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	IsMajor     bool   `json:"is_major"`
}

type ChangelogEntryResponse struct {
	ID          int64         `json:"id"`
	Version     string        `json:"version"`
	ReleaseDate string        `json:"release_date"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	ContentHTML template.HTML `json:"content_html"`
	IsMajor     bool          `json:"is_major"`
	Badge       string        `json:"badge"`
	CanDelete   bool          `json:"can_delete"`
}

// FeedResponse is one full render of the feed. Permission flags are projected
// fresh on every call, never cached across renders.
type FeedResponse struct {
	Entries       []ChangelogEntryResponse `json:"entries"`
	CanWrite      bool                     `json:"can_write"`
	LatestVersion *string                  `json:"latest_version,omitempty"`
}

type LatestVersionResponse struct {
	Version *string `json:"version"`
}
