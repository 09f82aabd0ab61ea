package bookmark

import (
	"context"
	"log/slog"

	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
)

// Verses is the part of the verse store bookmarks read from.
type Verses interface {
	Definition(ctx context.Context, id int64) (versestore.Definition, bool, error)
	LookupByID(ctx context.Context, id int64, code string) (versestore.Verse, bool, error)
}

type Service struct {
	repo   Repository
	verses Verses
	logger *slog.Logger
}

func NewService(repo Repository, verses Verses, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return Service{repo: repo, verses: verses, logger: logger}
}

// Toggle flips the bookmark for a verse id that exists in the verse store.
func (s Service) Toggle(ctx context.Context, deviceID string, verseID int64) (bool, error) {
	_, ok, err := s.verses.Definition(ctx, verseID)
	if err != nil {
		s.logger.Error("bookmark verse check", "verse_id", verseID, "error", err)
		return false, ErrInternalServer
	}
	if !ok {
		return false, ErrNotFound
	}

	bookmarked, err := s.repo.Toggle(ctx, deviceID, verseID)
	if err != nil {
		return false, err
	}
	s.logger.Info("bookmark toggled", "device_id", deviceID, "verse_id", verseID, "bookmarked", bookmarked)
	return bookmarked, nil
}

// List returns the device's bookmarks, newest first, each with its verse
// text in code (or the default translation when code has none).
func (s Service) List(ctx context.Context, deviceID string, code translation.Code) ([]Bookmark, error) {
	bookmarks, err := s.repo.List(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	for i := range bookmarks {
		v, ok, err := s.verses.LookupByID(ctx, bookmarks[i].DailyVerseID, code.String())
		if err == nil && !ok && code != translation.Default {
			v, ok, err = s.verses.LookupByID(ctx, bookmarks[i].DailyVerseID, translation.Default.String())
		}
		if err != nil {
			s.logger.Error("bookmark verse lookup", "verse_id", bookmarks[i].DailyVerseID, "error", err)
			return nil, ErrInternalServer
		}
		if ok {
			verse := v
			bookmarks[i].Verse = &verse
			bookmarks[i].Reference = v.Reference()
		}
	}

	if bookmarks == nil {
		bookmarks = []Bookmark{}
	}
	return bookmarks, nil
}

func (s Service) IsBookmarked(ctx context.Context, deviceID string, verseID int64) (bool, error) {
	return s.repo.IsBookmarked(ctx, deviceID, verseID)
}
