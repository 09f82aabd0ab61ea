package notification

import (
	"container/heap"
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
	"github.com/taiwoajasa245/march16-verse-api/internal/dailyverse"
	"github.com/taiwoajasa245/march16-verse-api/internal/events"
	"github.com/taiwoajasa245/march16-verse-api/internal/settings"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
)

// Request is one pending reminder.
type Request struct {
	ID        string    `json:"id"`
	FireAt    time.Time `json:"fire_at"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Reference string    `json:"reference"`
}

// Delivery hands a due reminder to whatever shows it to the reader.
type Delivery interface {
	Deliver(ctx context.Context, req Request) error
}

// LogDelivery only logs reminders. Used when nobody is configured to receive them.
type LogDelivery struct {
	Logger *slog.Logger
}

func (d LogDelivery) Deliver(_ context.Context, req Request) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("daily verse reminder", "id", req.ID, "reference", req.Reference, "body", req.Body)
	return nil
}

// Verses resolves the verse a reminder shows.
type Verses interface {
	Verse(ctx context.Context, date time.Time, code translation.Code, lang string) (dailyverse.DailyVerse, error)
}

type Config struct {
	// Language picks the translation and the placeholder text.
	Language   string
	Days       int
	Tick       time.Duration
	// Device is whose settings drive the reminders. Settings changes for
	// other devices are ignored.
	Device     string
	// RetryDelay is the first backoff after a temporary delivery failure.
	// It doubles on each attempt; retries stop at the end of the reminder's day.
	RetryDelay time.Duration
}

// DefaultRetryDelay is used when Config.RetryDelay is unset.
const DefaultRetryDelay = time.Minute

type Scheduler struct {
	verses   Verses
	settings settings.Store
	delivery Delivery
	broker   *events.Broker
	cal      calendar.Calendar
	cfg      Config
	logger   *slog.Logger

	mu      sync.Mutex
	queue   *requestQueue
	byID    map[string]*item
	planned time.Time
}

func NewScheduler(cfg Config, cal calendar.Calendar, verses Verses, st settings.Store, delivery Delivery, broker *events.Broker, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Days <= 0 {
		cfg.Days = DefaultDays
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 30 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if delivery == nil {
		delivery = LogDelivery{Logger: logger}
	}
	return &Scheduler{
		verses:   verses,
		settings: st,
		delivery: delivery,
		broker:   broker,
		cal:      cal,
		cfg:      cfg,
		logger:   logger,
		queue:    newRequestQueue(),
		byID:     make(map[string]*item),
	}
}

// Reschedule delivers whatever is already due, clears the cancel window
// and, when reminders are enabled, queues one request per planned day.
// Days with no verse are skipped.
func (s *Scheduler) Reschedule(ctx context.Context) error {
	now := s.cal.Now()
	s.DeliverDue(ctx, now)

	st, err := s.settings.Load(ctx)
	if err != nil {
		return err
	}

	var reqs []Request
	if st.NotificationsEnabled {
		for _, fireAt := range Plan(now, st.NotificationHour, st.NotificationMinute, s.cfg.Days) {
			v, err := s.verses.Verse(ctx, fireAt, "", s.cfg.Language)
			if err != nil {
				s.logger.Error("could not resolve verse for reminder", "date", fireAt.Format(time.DateOnly), "error", err)
				continue
			}
			if v.Placeholder {
				continue
			}
			reqs = append(reqs, Request{
				ID:        Identifier(fireAt),
				FireAt:    fireAt,
				Title:     Title,
				Body:      v.Verse.Content,
				Reference: v.Reference,
			})
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range CancelWindow(now) {
		// A reminder waiting on a retry is already past its fire time and
		// would not be planned again.
		if it, ok := s.byID[id]; ok && it.attempts > 0 && st.NotificationsEnabled {
			continue
		}
		s.remove(id)
	}
	for _, req := range reqs {
		s.remove(req.ID)
		it := newItem(req)
		heap.Push(s.queue, it)
		s.byID[req.ID] = it
	}
	s.planned = now

	s.logger.Info("reminders scheduled", "count", len(reqs), "enabled", st.NotificationsEnabled,
		"hour", st.NotificationHour, "minute", st.NotificationMinute)
	return nil
}

func (s *Scheduler) remove(id string) {
	it, ok := s.byID[id]
	if !ok {
		return
	}
	heap.Remove(s.queue, it.index)
	delete(s.byID, id)
}

// Pending returns queued requests ordered by fire time.
func (s *Scheduler) Pending() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, 0, s.queue.Len())
	for _, it := range *s.queue {
		out = append(out, it.req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out
}

// DeliverDue sends every request due at or before now and returns how many
// were attempted. Temporary failures are queued again with backoff.
func (s *Scheduler) DeliverDue(ctx context.Context, now time.Time) int {
	var due []*item

	s.mu.Lock()
	for {
		next := s.queue.Peek()
		if next == nil || next.due.After(now) {
			break
		}
		it := heap.Pop(s.queue).(*item)
		delete(s.byID, it.req.ID)
		due = append(due, it)
	}
	s.mu.Unlock()

	for _, it := range due {
		err := s.delivery.Deliver(ctx, it.req)
		switch {
		case err == nil:
			s.logger.Info("reminder delivered", "id", it.req.ID, "reference", it.req.Reference)
		case temporary(err):
			s.retry(it, now, err)
		default:
			s.logger.Error("reminder delivery failed", "id", it.req.ID, "error", err)
		}
	}
	return len(due)
}

func (s *Scheduler) retry(it *item, now time.Time, err error) {
	it.attempts++
	next := now.Add(s.cfg.RetryDelay << (it.attempts - 1))
	endOfDay := calendar.StartOfDay(calendar.AddDays(it.req.FireAt, 1))
	if !next.Before(endOfDay) {
		s.logger.Error("reminder delivery failed, giving up", "id", it.req.ID, "attempts", it.attempts, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, replaced := s.byID[it.req.ID]; replaced {
		return
	}
	it.due = next
	heap.Push(s.queue, it)
	s.byID[it.req.ID] = it
	s.logger.Warn("reminder delivery failed, will retry", "id", it.req.ID, "attempts", it.attempts, "retry_at", next, "error", err)
}

func temporary(err error) bool {
	var t interface{ Temporary() bool }
	return errors.As(err, &t) && t.Temporary()
}

func (s *Scheduler) needsDailyPlan(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.planned.IsZero() || !s.cal.IsSameDay(s.planned, now)
}

func (s *Scheduler) reschedule(ctx context.Context, reason string) {
	if err := s.Reschedule(ctx); err != nil {
		s.logger.Error("could not reschedule reminders", "reason", reason, "error", err)
	}
}

// Start plans reminders, then delivers them on every tick until ctx is
// done. It re-plans on the first tick of each new day and whenever the
// settings, the region or the available translations change.
func (s *Scheduler) Start(ctx context.Context) {
	var updates <-chan events.Event
	if s.broker != nil {
		ch, cancel := s.broker.Subscribe(16)
		defer cancel()
		updates = ch
	}

	s.reschedule(ctx, "startup")

	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	s.logger.Info("notification scheduler started", "interval", s.cfg.Tick, "days", s.cfg.Days)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notification scheduler stopped")
			return
		case ev, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			switch ev.Kind {
			case events.SettingsChanged:
				if ev.Data["device"] == s.cfg.Device {
					s.reschedule(ctx, string(ev.Kind))
				}
			case events.SecondaryAttached, events.RegionDetected:
				s.reschedule(ctx, string(ev.Kind))
			}
		case <-ticker.C:
			now := s.cal.Now()
			s.DeliverDue(ctx, now)
			if s.needsDailyPlan(now) {
				s.reschedule(ctx, "new day")
			}
		}
	}
}
