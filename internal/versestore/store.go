// Package versestore reads the daily verse data file.
//
// The primary file carries the day definitions and the bundled translations.
// An optional secondary file with extra translations can be attached at
// runtime; after that, lookups see both files as one.
package versestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
)

var (
	ErrFileNotFound    = errors.New("verse data file not found")
	ErrOpenFailed      = errors.New("verse data file could not be opened")
	ErrAttachFailed    = errors.New("secondary verse file could not be attached")
	ErrAlreadyAttached = errors.New("a different secondary verse file is already attached")
	ErrClosed          = errors.New("verse store is closed")
)

const secondarySchema = "secondary"

// Store is a read-only handle on the verse data file. It is safe for
// concurrent use; AttachSecondary is the only mutation.
type Store struct {
	db     *sql.DB
	conn   *sql.Conn
	path   string
	logger *slog.Logger

	mu            sync.RWMutex
	secondaryPath string
	closed        bool
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens the primary file read-only and checks that it has the
// expected tables.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if err := fileExists(path); err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	// ATTACH is per connection, so every query runs on one pinned connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	s := &Store{
		db:     db,
		conn:   conn,
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.checkTables(ctx, "main"); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	s.logger.Info("verse store opened", "path", path, "driver", driverType)
	return s, nil
}

func (s *Store) checkTables(ctx context.Context, schema string) error {
	tables := []string{"verse_text"}
	if schema == "main" {
		tables = append([]string{"daily_verse"}, tables...)
	}
	for _, table := range tables {
		var n int
		q := fmt.Sprintf(`SELECT count(*) FROM %s.sqlite_master WHERE type = 'table' AND name = ?`, schema)
		if err := s.conn.QueryRowContext(ctx, q, table).Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("table %s.%s is missing", schema, table)
		}
	}
	return nil
}

// Path is the primary file this store reads.
func (s *Store) Path() string { return s.path }

// AttachSecondary folds an extra translation file into every lookup.
// Attaching the same path again is a no-op.
func (s *Store) AttachSecondary(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.secondaryPath != "" {
		if samePath(s.secondaryPath, path) {
			return nil
		}
		return ErrAlreadyAttached
	}
	if err := fileExists(path); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrAttachFailed, err)
	}

	if _, err := s.conn.ExecContext(ctx, `ATTACH DATABASE ? AS `+secondarySchema, path); err != nil {
		return fmt.Errorf("%w: %w", ErrAttachFailed, err)
	}
	if err := s.checkTables(ctx, secondarySchema); err != nil {
		if _, derr := s.conn.ExecContext(ctx, `DETACH DATABASE `+secondarySchema); derr != nil {
			s.logger.Warn("detach after failed table check", "error", derr)
		}
		return fmt.Errorf("%w: %w", ErrAttachFailed, err)
	}

	s.secondaryPath = path
	s.logger.Info("secondary verse file attached", "path", path)
	return nil
}

// SecondaryAttached reports whether a secondary file is part of lookups.
func (s *Store) SecondaryAttached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secondaryPath != ""
}

func (s *Store) SecondaryPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secondaryPath
}

// Lookup returns the verse for (month, day) in the translation code.
// A missing row is reported with ok=false and a nil error.
func (s *Store) Lookup(ctx context.Context, month, day int, code string) (Verse, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Verse{}, false, ErrClosed
	}

	row := s.conn.QueryRowContext(ctx, lookupQuery(s.secondaryPath != ""), month, day, code)
	v, err := scanVerse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Verse{}, false, nil
	}
	if err != nil {
		return Verse{}, false, fmt.Errorf("versestore: lookup %d/%d %s: %w", month, day, code, err)
	}
	return v, true, nil
}

// LookupByID returns the verse for a definition id in the translation code.
func (s *Store) LookupByID(ctx context.Context, id int64, code string) (Verse, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Verse{}, false, ErrClosed
	}

	row := s.conn.QueryRowContext(ctx, lookupByIDQuery(s.secondaryPath != ""), id, code)
	v, err := scanVerse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Verse{}, false, nil
	}
	if err != nil {
		return Verse{}, false, fmt.Errorf("versestore: lookup id %d %s: %w", id, code, err)
	}
	return v, true, nil
}

// Definition returns the day definition with the given id.
func (s *Store) Definition(ctx context.Context, id int64) (Definition, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Definition{}, false, ErrClosed
	}

	var (
		d   Definition
		end sql.NullInt64
	)
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, month, day, book_key, chapter, start_verse, end_verse
		FROM main.daily_verse
		WHERE id = ?`, id).Scan(&d.ID, &d.Month, &d.Day, &d.BookKey, &d.Chapter, &d.StartVerse, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return Definition{}, false, nil
	}
	if err != nil {
		return Definition{}, false, fmt.Errorf("versestore: definition %d: %w", id, err)
	}
	if end.Valid {
		e := int(end.Int64)
		d.EndVerse = &e
	}
	return d, true, nil
}

// Translations lists the version codes present in the attached files.
func (s *Store) Translations(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.conn.QueryContext(ctx, translationsQuery(s.secondaryPath != ""))
	if err != nil {
		return nil, fmt.Errorf("versestore: translations: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("versestore: translations: %w", err)
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// MissingSlots lists every day of a leap year that has no text in code,
// February 29 included.
func (s *Store) MissingSlots(ctx context.Context, code string) ([]Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.conn.QueryContext(ctx, coveredSlotsQuery(s.secondaryPath != ""), code)
	if err != nil {
		return nil, fmt.Errorf("versestore: coverage %s: %w", code, err)
	}
	defer rows.Close()

	covered := make(map[Slot]bool, 366)
	for rows.Next() {
		var sl Slot
		if err := rows.Scan(&sl.Month, &sl.Day); err != nil {
			return nil, fmt.Errorf("versestore: coverage %s: %w", code, err)
		}
		covered[sl] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("versestore: coverage %s: %w", code, err)
	}

	var missing []Slot
	for month := 1; month <= 12; month++ {
		for day := 1; day <= calendar.DaysInMonth(2024, month); day++ {
			sl := Slot{Month: month, Day: day}
			if !covered[sl] {
				missing = append(missing, sl)
			}
		}
	}
	return missing, nil
}

// Stats summarises the contents of the store.
type Stats struct {
	Definitions int            `json:"definitions"`
	Texts       map[string]int `json:"texts"`
	Secondary   string         `json:"secondary,omitempty"`
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Stats{}, ErrClosed
	}

	st := Stats{Texts: map[string]int{}, Secondary: s.secondaryPath}
	if err := s.conn.QueryRowContext(ctx, `SELECT count(*) FROM main.daily_verse`).Scan(&st.Definitions); err != nil {
		return Stats{}, fmt.Errorf("versestore: stats: %w", err)
	}

	texts := primaryTexts
	if s.secondaryPath != "" {
		texts = combinedTexts
	}
	rows, err := s.conn.QueryContext(ctx, `SELECT version_code, count(*) FROM (`+texts+`) GROUP BY version_code`)
	if err != nil {
		return Stats{}, fmt.Errorf("versestore: stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			code string
			n    int
		)
		if err := rows.Scan(&code, &n); err != nil {
			return Stats{}, fmt.Errorf("versestore: stats: %w", err)
		}
		st.Texts[code] = n
	}
	return st, rows.Err()
}

// Ping checks that the pinned connection is still usable.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return s.conn.PingContext(ctx)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	cerr := s.conn.Close()
	if err := s.db.Close(); err != nil {
		return err
	}
	return cerr
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVerse(row rowScanner) (Verse, error) {
	var (
		v   Verse
		end sql.NullInt64
	)
	err := row.Scan(
		&v.ID,
		&v.Month,
		&v.Day,
		&v.BookKey,
		&v.Chapter,
		&v.StartVerse,
		&end,
		&v.BookName,
		&v.Content,
		&v.VersionCode,
	)
	if err != nil {
		return Verse{}, err
	}
	if end.Valid {
		e := int(end.Int64)
		v.EndVerse = &e
	}
	return v, nil
}

func readOnlyDSN(path string) string {
	return fileDSN(path, "ro")
}

// fileDSN builds a SQLite URI filename. The path is percent-encoded so
// '?', '#' and '%' in directory names are not read as URI syntax.
func fileDSN(path, mode string) string {
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(path),
		RawQuery: "mode=" + mode,
		OmitHost: true,
	}
	return u.String()
}

func fileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrOpenFailed, path)
	}
	return nil
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
