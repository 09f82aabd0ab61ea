package versestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
)

var ErrInvalidDataset = errors.New("invalid verse dataset")

// Dataset is the content of one data file. A secondary file carries only
// Texts that point at definition ids of the primary file.
type Dataset struct {
	Definitions []Definition `json:"definitions"`
	Texts       []Text       `json:"texts"`
}

// Secondary reports whether the dataset is a texts-only file.
func (ds Dataset) Secondary() bool {
	return len(ds.Definitions) == 0
}

// LoadDataset decodes a JSON dataset.
func LoadDataset(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	return ds, nil
}

func (ds Dataset) Validate() error {
	ids := make(map[int64]bool, len(ds.Definitions))
	slots := make(map[Slot]bool, len(ds.Definitions))

	for _, d := range ds.Definitions {
		if ids[d.ID] {
			return fmt.Errorf("%w: duplicate definition id %d", ErrInvalidDataset, d.ID)
		}
		ids[d.ID] = true

		// Leap year so February 29 is accepted.
		if !calendar.ValidDay(2024, d.Month, d.Day) {
			return fmt.Errorf("%w: definition %d has invalid date %d/%d", ErrInvalidDataset, d.ID, d.Month, d.Day)
		}
		sl := Slot{Month: d.Month, Day: d.Day}
		if slots[sl] {
			return fmt.Errorf("%w: more than one definition for %d/%d", ErrInvalidDataset, d.Month, d.Day)
		}
		slots[sl] = true

		if d.BookKey == "" || d.Chapter < 1 || d.StartVerse < 1 {
			return fmt.Errorf("%w: definition %d has an incomplete reference", ErrInvalidDataset, d.ID)
		}
		if d.EndVerse != nil && *d.EndVerse < d.StartVerse {
			return fmt.Errorf("%w: definition %d ends before it starts", ErrInvalidDataset, d.ID)
		}
	}

	type textKey struct {
		id   int64
		code string
	}
	seen := make(map[textKey]bool, len(ds.Texts))
	for _, t := range ds.Texts {
		if t.VersionCode == "" || t.BookName == "" || t.Content == "" {
			return fmt.Errorf("%w: text for %d is incomplete", ErrInvalidDataset, t.DailyID)
		}
		if !ds.Secondary() && !ids[t.DailyID] {
			return fmt.Errorf("%w: text %s points at unknown definition %d", ErrInvalidDataset, t.VersionCode, t.DailyID)
		}
		k := textKey{t.DailyID, t.VersionCode}
		if seen[k] {
			return fmt.Errorf("%w: duplicate %s text for %d", ErrInvalidDataset, t.VersionCode, t.DailyID)
		}
		seen[k] = true
	}
	return nil
}

// Build writes ds to a fresh data file at path, replacing any existing file.
func Build(ctx context.Context, path string, ds Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("versestore: build: %w", err)
	}

	db, err := sql.Open(driverName, fileDSN(path, "rwc"))
	if err != nil {
		return fmt.Errorf("versestore: build: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("versestore: build: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("versestore: build schema: %w", err)
	}

	defStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_verse (id, month, day, book_key, chapter, start_verse, end_verse)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("versestore: build: %w", err)
	}
	defer defStmt.Close()

	for _, d := range ds.Definitions {
		var end any
		if d.EndVerse != nil {
			end = *d.EndVerse
		}
		if _, err := defStmt.ExecContext(ctx, d.ID, d.Month, d.Day, d.BookKey, d.Chapter, d.StartVerse, end); err != nil {
			return fmt.Errorf("versestore: build definition %d: %w", d.ID, err)
		}
	}

	textStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO verse_text (daily_id, version_code, book_name, content)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("versestore: build: %w", err)
	}
	defer textStmt.Close()

	for _, t := range ds.Texts {
		if _, err := textStmt.ExecContext(ctx, t.DailyID, t.VersionCode, t.BookName, t.Content); err != nil {
			return fmt.Errorf("versestore: build text %s/%d: %w", t.VersionCode, t.DailyID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("versestore: build commit: %w", err)
	}
	return nil
}
