// Package dailyverse answers "which verse, in which translation, for which
// day" for the app, the widget and the notification scheduler.
package dailyverse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taiwoajasa245/march16-verse-api/internal/auth"
	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
	"github.com/taiwoajasa245/march16-verse-api/internal/resolver"
	"github.com/taiwoajasa245/march16-verse-api/internal/settings"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
)

var ErrInvalidDate = errors.New("invalid date")

// Attachment reports whether the secondary translation is usable.
type Attachment interface {
	SecondaryAttached() bool
}

// RegionCode is the detected storefront, if detection has finished.
type RegionCode interface {
	Code() (string, bool)
}

type Service struct {
	resolver *resolver.Resolver
	store    Attachment
	settings settings.Provider
	region   RegionCode
	policy   translation.Policy
	logger   *slog.Logger
}

func NewService(res *resolver.Resolver, store Attachment, st settings.Provider, region RegionCode, policy translation.Policy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		resolver: res,
		store:    store,
		settings: st,
		region:   region,
		policy:   policy,
		logger:   logger,
	}
}

func (s *Service) Calendar() calendar.Calendar { return s.resolver.Calendar() }

// settingsFor returns the store of the device authenticated on ctx, or the
// group store for anonymous callers.
func (s *Service) settingsFor(ctx context.Context) settings.Store {
	id, _ := auth.DeviceIDFrom(ctx)
	return s.settings.For(id)
}

func (s *Service) regionCode() string {
	if s.region == nil {
		return ""
	}
	code, _ := s.region.Code()
	return code
}

// EffectiveTranslation runs the selection policy against the current
// settings, region and attach state. Nothing is cached.
func (s *Service) EffectiveTranslation(ctx context.Context, lang string) (translation.Code, error) {
	st, err := s.settingsFor(ctx).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}
	return s.policy.Select(translation.Inputs{
		Override:          st.SelectedVersion,
		Language:          lang,
		Region:            s.regionCode(),
		SecondaryAttached: s.store.SecondaryAttached(),
	}), nil
}

// Verse resolves the verse for date. An empty code means the effective
// translation. When the day has no text in that translation the default
// translation is tried once, then the placeholder is returned. Settings and
// store failures are logged and also end in the placeholder.
func (s *Service) Verse(ctx context.Context, date time.Time, code translation.Code, lang string) (DailyVerse, error) {
	if code == "" {
		effective, err := s.EffectiveTranslation(ctx, lang)
		if err != nil {
			s.logger.Warn("could not resolve effective translation, using locale default", "error", err)
			effective = s.policy.LocaleDefault(lang)
		}
		code = effective
	}

	out := DailyVerse{
		Date:      date.In(s.Calendar().Location()).Format(dateLayout),
		Requested: code,
	}

	v, ok, err := s.resolver.Resolve(ctx, date, code)
	if err == nil && !ok && code != translation.Default {
		s.logger.Debug("no text in requested translation, trying default", "date", out.Date, "version", code)
		v, ok, err = s.resolver.Resolve(ctx, date, translation.Default)
		out.FellBack = ok
	}
	if err != nil {
		s.logger.Error("verse lookup failed, using placeholder", "date", out.Date, "version", code, "error", err)
		ok = false
		out.FellBack = false
	}
	if !ok {
		if err == nil {
			s.logger.Warn("no verse for date, using placeholder", "date", out.Date)
		}
		v = Placeholder(lang)
		out.Placeholder = true
	}

	out.Verse = v
	out.Reference = v.Reference()
	return out, nil
}

// Today is Verse for the calendar's current day.
func (s *Service) Today(ctx context.Context, code translation.Code, lang string) (DailyVerse, error) {
	return s.Verse(ctx, s.Calendar().Now(), code, lang)
}

// Month lays out year/month and marks today when it falls inside it.
func (s *Service) Month(_ context.Context, year, month int) (MonthView, error) {
	if !calendar.ValidMonth(month) || year < 1 || year > 9999 {
		return MonthView{}, fmt.Errorf("%w: %d-%d", ErrInvalidDate, year, month)
	}

	view := MonthView{
		Year:        year,
		Month:       month,
		DaysInMonth: calendar.DaysInMonth(year, month),
		Weeks:       calendar.BuildMonthMatrix(year, month),
	}

	now := s.Calendar().Now()
	if now.Year() == year && int(now.Month()) == month {
		view.Today = now.Day()
	}
	return view, nil
}

// Translations lists what a settings screen can offer right now.
func (s *Service) Translations(ctx context.Context, lang string) (Translations, error) {
	st, err := s.settingsFor(ctx).Load(ctx)
	if err != nil {
		return Translations{}, fmt.Errorf("load settings: %w", err)
	}

	attached := s.store.SecondaryAttached()
	region := s.regionCode()
	out := Translations{
		Effective: s.policy.Select(translation.Inputs{
			Override:          st.SelectedVersion,
			Language:          lang,
			Region:            region,
			SecondaryAttached: attached,
		}),
		Selected:          st.SelectedVersion,
		SecondaryAttached: attached,
		Region:            region,
	}
	for _, c := range s.policy.Options(attached) {
		out.Options = append(out.Options, TranslationOption{Code: c, DisplayName: c.DisplayName()})
	}
	return out, nil
}

// Widget builds the entry the home screen widget shows at now. The widget
// reads only the stored selection and the locale, and does not fall back
// to another translation before showing the placeholder.
func (s *Service) Widget(ctx context.Context, now time.Time, lang string) (WidgetEntry, error) {
	code := s.policy.LocaleDefault(lang)
	if st, err := s.settingsFor(ctx).Load(ctx); err != nil {
		s.logger.Warn("widget could not read settings", "error", err)
	} else if st.SelectedVersion != "" {
		code = st.SelectedVersion
	}

	local := now.In(s.Calendar().Location())
	entry := WidgetEntry{
		Date:        local,
		Version:     code,
		NextRefresh: calendar.StartOfDay(calendar.AddDays(local, 1)),
	}

	v, ok, err := s.resolver.Resolve(ctx, local, code)
	if err != nil {
		s.logger.Error("widget lookup failed", "error", err)
		ok = false
	}
	if !ok {
		v = Placeholder(lang)
		entry.Placeholder = true
	}
	entry.Verse = v
	entry.Reference = v.Reference()
	return entry, nil
}

// Settings returns the settings of the calling device.
func (s *Service) Settings(ctx context.Context) (settings.Settings, error) {
	return s.settingsFor(ctx).Load(ctx)
}

// UpdateSettings applies p on top of the calling device's settings and saves
// them. Other devices are not affected.
func (s *Service) UpdateSettings(ctx context.Context, p settings.Patch) (settings.Settings, error) {
	store := s.settingsFor(ctx)
	current, err := store.Load(ctx)
	if err != nil {
		return settings.Settings{}, err
	}
	next, err := p.Apply(current)
	if err != nil {
		return settings.Settings{}, err
	}
	if next.SelectedVersion != "" && !s.policy.Available(next.SelectedVersion, s.store.SecondaryAttached()) {
		s.logger.Info("selected translation not available yet, policy will ignore it until attached", "version", next.SelectedVersion)
	}
	if err := store.Save(ctx, next); err != nil {
		return settings.Settings{}, err
	}
	return next, nil
}
