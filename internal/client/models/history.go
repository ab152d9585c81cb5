// Package models contains the wire shapes exchanged with the QR Studio
// backend. The server owns all of this data; the client never mutates it
// locally, it only re-fetches.
package models

import "time"

// QR history item types as reported by the backend.
const (
	TypeGenerated = "generated"
	TypeScanned   = "scanned"
)

// HistoryItem is a single generated or scanned QR code. Image is a data URL
// ("data:image/png;base64,...") rendered server-side.
type HistoryItem struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Image     string `json:"image"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// Stats holds the per-user action counters derived server-side.
type Stats struct {
	Generated int64 `json:"generated"`
	Scanned   int64 `json:"scanned"`
}

// Snapshot is one consistent fetch of the history list and counters.
// LastActivity is the timestamp of the first history element; the backend
// returns newest-first and the client does not re-sort.
type Snapshot struct {
	History      []HistoryItem
	Stats        Stats
	LastActivity string
}

// timestampLayouts covers the formats the backend has been observed to emit:
// RFC3339 and LocalDateTime without a zone, with or without fractional seconds.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a backend timestamp. ok is false for empty or
// unrecognized values; callers fall back to printing the raw string.
func ParseTimestamp(s string) (t time.Time, ok bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
