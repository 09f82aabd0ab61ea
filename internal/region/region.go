// Package region works out which storefront country the reader is in.
package region

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/taiwoajasa245/march16-verse-api/internal/events"
)

// Source reports an ISO 3166-1 alpha-3 country code, or "" when unknown.
type Source interface {
	Country(ctx context.Context) (string, error)
}

// StaticSource is a country fixed by configuration.
type StaticSource string

func (s StaticSource) Country(context.Context) (string, error) {
	return strings.ToUpper(strings.TrimSpace(string(s))), nil
}

// Detector asks its Source once per process and remembers the answer.
type Detector struct {
	source Source
	broker *events.Broker
	logger *slog.Logger

	once sync.Once
	done chan struct{}

	mu      sync.RWMutex
	code    string
	checked bool
}

func NewDetector(source Source, broker *events.Broker, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		source: source,
		broker: broker,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Detect runs the source on the first call. Later and concurrent callers
// wait for that result. ctx only bounds how long this caller waits.
func (d *Detector) Detect(ctx context.Context) (string, error) {
	d.once.Do(func() {
		go d.run(context.WithoutCancel(ctx))
	})

	select {
	case <-d.done:
		code, _ := d.Code()
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (d *Detector) run(ctx context.Context) {
	defer close(d.done)

	code, err := d.source.Country(ctx)
	if err != nil {
		d.logger.Warn("storefront detection failed", "error", err)
		code = ""
	}

	d.mu.Lock()
	d.code = code
	d.checked = true
	d.mu.Unlock()

	d.logger.Info("storefront detected", "country", code)
	if d.broker != nil {
		d.broker.Emit(events.RegionDetected, "country", code)
	}
}

// Code returns the detected country and whether detection has finished.
func (d *Detector) Code() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.code, d.checked
}

// Done is closed once detection has finished.
func (d *Detector) Done() <-chan struct{} { return d.done }
