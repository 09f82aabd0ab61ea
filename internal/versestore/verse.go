package versestore

import "fmt"

// Definition is the reading assigned to one calendar day.
type Definition struct {
	ID         int64  `json:"id"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	BookKey    string `json:"book_key"`
	Chapter    int    `json:"chapter"`
	StartVerse int    `json:"start_verse"`
	EndVerse   *int   `json:"end_verse,omitempty"`
}

// Text is one translation of a Definition.
type Text struct {
	DailyID     int64  `json:"daily_id"`
	VersionCode string `json:"version_code"`
	BookName    string `json:"book_name"`
	Content     string `json:"content"`
}

// Verse is a Definition joined with the text of one translation.
type Verse struct {
	ID          int64  `json:"id"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	BookKey     string `json:"book_key"`
	BookName    string `json:"book_name"`
	Chapter     int    `json:"chapter"`
	StartVerse  int    `json:"start_verse"`
	EndVerse    *int   `json:"end_verse,omitempty"`
	Content     string `json:"content"`
	VersionCode string `json:"version_code"`
}

// Reference renders "Book C:S" or "Book C:S-E" when the passage spans verses.
func (v Verse) Reference() string {
	if v.EndVerse != nil && *v.EndVerse > v.StartVerse {
		return fmt.Sprintf("%s %d:%d-%d", v.BookName, v.Chapter, v.StartVerse, *v.EndVerse)
	}
	return fmt.Sprintf("%s %d:%d", v.BookName, v.Chapter, v.StartVerse)
}

// Slot is a (month, day) pair.
type Slot struct {
	Month int `json:"month"`
	Day   int `json:"day"`
}

// IntPtr is a convenience for building definitions with an end verse.
func IntPtr(n int) *int { return &n }
