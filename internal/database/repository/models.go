package repository

import "time"

// Note represents a note row.
type Note struct {
	ID        int64
	Title     string
	Details   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Bookmark represents a bookmark row. Location is a URL or filesystem path.
type Bookmark struct {
	ID        int64
	Name      string
	Location  string
	CreatedAt time.Time
}

// Feed represents a subscribed feed row.
type Feed struct {
	ID          int64
	Title       string
	URL         string
	LastUpdated *time.Time
	CreatedAt   time.Time
}

// FeedItem represents a fetched feed entry.
type FeedItem struct {
	ID          int64
	FeedID      int64
	Title       string
	Link        string
	Description string
	PubDate     time.Time
	GUID        string
	CreatedAt   time.Time
}

// LogEntry represents a log row.
type LogEntry struct {
	ID        int64
	Level     string
	Message   string
	Timestamp time.Time
}
