package bookmark

import (
	"time"

	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
)

type Bookmark struct {
	ID           int64             `json:"id"`
	DeviceID     string            `json:"device_id"`
	DailyVerseID int64             `json:"daily_verse_id"`
	CreatedAt    time.Time         `json:"created_at"`
	Verse        *versestore.Verse `json:"verse,omitempty"`
	Reference    string            `json:"reference,omitempty"`
}

type ToggleRequest struct {
	DailyVerseID int64 `json:"daily_verse_id" example:"359"`
}

type ToggleResult struct {
	DailyVerseID int64 `json:"daily_verse_id"`
	Bookmarked   bool  `json:"bookmarked"`
}
