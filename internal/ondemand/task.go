// Package ondemand fetches the optional secondary translation file and
// attaches it to the verse store, at most once per process.
package ondemand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/taiwoajasa245/march16-verse-api/internal/events"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
)

// DefaultFileName is the name of the secondary file in the data directory.
const DefaultFileName = "March16DB_KJV.sqlite"

var ErrSkipped = errors.New("secondary download skipped")

// Fetcher writes the compressed secondary file into w.
type Fetcher interface {
	Fetch(ctx context.Context, w io.WriterAt) (int64, error)
}

type Attacher interface {
	AttachSecondary(ctx context.Context, path string) error
}

type Config struct {
	DataDir  string
	FileName string
	// Digest of the uncompressed file. Zero skips verification.
	Digest versestore.Digest
}

type Result struct {
	Path   string `json:"path"`
	Cached bool   `json:"cached"`
	Bytes  int64  `json:"bytes"`
}

// Task is a one-shot future for the secondary file.
type Task struct {
	cfg     Config
	fetcher Fetcher
	store   Attacher
	broker  *events.Broker
	logger  *slog.Logger

	once   sync.Once
	done   chan struct{}
	result Result
	err    error
}

func NewTask(cfg Config, fetcher Fetcher, store Attacher, broker *events.Broker, logger *slog.Logger) *Task {
	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Task{
		cfg:     cfg,
		fetcher: fetcher,
		store:   store,
		broker:  broker,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start launches the download on the first call; later calls do nothing.
func (t *Task) Start(ctx context.Context) {
	t.once.Do(func() {
		go t.run(context.WithoutCancel(ctx))
	})
}

// Skip settles the task without fetching anything, unless it already started.
func (t *Task) Skip(reason string) {
	t.once.Do(func() {
		t.err = fmt.Errorf("%w: %s", ErrSkipped, reason)
		t.logger.Info("secondary download skipped", "reason", reason)
		close(t.done)
	})
}

// Done is closed once the task has settled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the task settles or ctx ends.
func (t *Task) Wait(ctx context.Context) (Result, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (t *Task) run(ctx context.Context) {
	defer close(t.done)

	res, err := t.fetchAndAttach(ctx)
	t.result, t.err = res, err

	if err != nil {
		t.logger.Error("secondary translation unavailable", "error", err)
		if t.broker != nil {
			t.broker.Emit(events.SecondaryFailed, "error", err.Error())
		}
		return
	}

	t.logger.Info("secondary translation attached",
		"path", res.Path,
		"cached", res.Cached,
		"size", humanize.Bytes(uint64(res.Bytes)),
	)
	if t.broker != nil {
		t.broker.Emit(events.SecondaryAttached, "path", res.Path)
	}
}

func (t *Task) fetchAndAttach(ctx context.Context) (Result, error) {
	if err := os.MkdirAll(t.cfg.DataDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("prepare data dir: %w", err)
	}
	dst := filepath.Join(t.cfg.DataDir, t.cfg.FileName)

	res, ok, err := t.cached(dst)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		res, err = t.download(ctx, dst)
		if err != nil {
			return Result{}, err
		}
	}

	if err := t.store.AttachSecondary(ctx, dst); err != nil {
		return Result{}, err
	}
	return res, nil
}

// cached reuses a file from an earlier run when it still verifies.
func (t *Task) cached(dst string) (Result, bool, error) {
	info, err := os.Stat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, fmt.Errorf("stat cached file: %w", err)
	}

	if !t.cfg.Digest.IsZero() {
		if err := versestore.VerifyFile(dst, t.cfg.Digest); err != nil {
			t.logger.Warn("discarding cached secondary file", "path", dst, "error", err)
			if rerr := os.Remove(dst); rerr != nil {
				return Result{}, false, fmt.Errorf("remove stale file: %w", rerr)
			}
			return Result{}, false, nil
		}
	}
	return Result{Path: dst, Cached: true, Bytes: info.Size()}, true, nil
}

func (t *Task) download(ctx context.Context, dst string) (Result, error) {
	tmp, err := os.CreateTemp(t.cfg.DataDir, t.cfg.FileName+".*.xz")
	if err != nil {
		return Result{}, fmt.Errorf("create download file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	fetched, err := t.fetcher.Fetch(ctx, tmp)
	if err != nil {
		return Result{}, fmt.Errorf("fetch secondary file: %w", err)
	}
	t.logger.Info("secondary file fetched", "compressed", humanize.Bytes(uint64(fetched)))

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("rewind download: %w", err)
	}

	n, err := versestore.Unpack(tmp, dst, t.cfg.Digest)
	if err != nil {
		return Result{}, err
	}
	return Result{Path: dst, Bytes: n}, nil
}

// Regioner reports the detected storefront country.
type Regioner interface {
	Detect(ctx context.Context) (string, error)
}

// StartAfterRegion waits for region detection, then starts t unless the
// region is restricted, in which case t is skipped.
func StartAfterRegion(ctx context.Context, t *Task, r Regioner, restricted func(string) bool) {
	code, err := r.Detect(ctx)
	if err != nil {
		t.Skip("region detection: " + err.Error())
		return
	}
	if restricted(code) {
		t.Skip("restricted region " + code)
		return
	}
	t.Start(ctx)
}
