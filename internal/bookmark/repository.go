package bookmark

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taiwoajasa245/march16-verse-api/internal/database"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrInternalServer = errors.New("internal server error")
)

type Repository interface {
	Toggle(ctx context.Context, deviceID string, verseID int64) (bool, error)
	List(ctx context.Context, deviceID string) ([]Bookmark, error)
	IsBookmarked(ctx context.Context, deviceID string, verseID int64) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

// Toggle removes the bookmark if it exists and creates it otherwise, in
// one transaction. It reports whether the verse is bookmarked afterwards.
func (r *repository) Toggle(ctx context.Context, deviceID string, verseID int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, ErrInternalServer
	}
	defer tx.Rollback()

	// Serialise toggles for one device so check-then-write cannot race.
	if _, err := tx.ExecContext(ctx, `SELECT 1 FROM devices WHERE id = $1 FOR UPDATE`, deviceID); err != nil {
		return false, ErrInternalServer
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookmarks WHERE device_id = $1 AND daily_verse_id = $2
		)
	`, deviceID, verseID).Scan(&exists)
	if err != nil {
		return false, ErrInternalServer
	}

	if exists {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM bookmarks WHERE device_id = $1 AND daily_verse_id = $2
		`, deviceID, verseID)
		if err != nil {
			return false, ErrInternalServer
		}
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO bookmarks (device_id, daily_verse_id)
			VALUES ($1, $2)
		`, deviceID, verseID)
		if err != nil {
			return false, ErrInternalServer
		}
	}

	if err := tx.Commit(); err != nil {
		return false, ErrInternalServer
	}
	return !exists, nil
}

func (r *repository) List(ctx context.Context, deviceID string) ([]Bookmark, error) {
	query := `
		SELECT id, device_id, daily_verse_id, created_at
		FROM bookmarks
		WHERE device_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, deviceID)
	if err != nil {
		return nil, ErrInternalServer
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.DeviceID, &b.DailyVerseID, &b.CreatedAt); err != nil {
			return nil, ErrInternalServer
		}
		bookmarks = append(bookmarks, b)
	}

	if err = rows.Err(); err != nil {
		return nil, ErrInternalServer
	}

	return bookmarks, nil
}

func (r *repository) IsBookmarked(ctx context.Context, deviceID string, verseID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookmarks WHERE device_id = $1 AND daily_verse_id = $2
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, deviceID, verseID).Scan(&exists)
	if err != nil {
		return false, ErrInternalServer
	}
	return exists, nil
}
