// Package settings holds the reader preferences shared by the app, the
// widget and the notification scheduler.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/taiwoajasa245/march16-verse-api/internal/events"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
)

// Field names as stored in the shared key/value surface.
const (
	KeySelectedVersion      = "selectedBibleVersion"
	KeyAppearance           = "appearance"
	KeyNotificationHour     = "notificationHour"
	KeyNotificationMinute   = "notificationMinute"
	KeyNotificationsEnabled = "isNotificationEnabled"
)

// DefaultNamespace is the app group the settings are shared under.
const DefaultNamespace = "group.dev.sijun.March16"

var ErrInvalidSettings = errors.New("invalid settings")

type Appearance string

const (
	AppearanceSystem Appearance = "system"
	AppearanceLight  Appearance = "light"
	AppearanceDark   Appearance = "dark"
)

func (a Appearance) Valid() bool {
	switch a {
	case AppearanceSystem, AppearanceLight, AppearanceDark:
		return true
	}
	return false
}

type Settings struct {
	// SelectedVersion is empty when the reader has not picked a translation.
	SelectedVersion      translation.Code `json:"selected_bible_version,omitempty"`
	Appearance           Appearance       `json:"appearance"`
	NotificationHour     int              `json:"notification_hour"`
	NotificationMinute   int              `json:"notification_minute"`
	NotificationsEnabled bool             `json:"is_notification_enabled"`
}

func Defaults() Settings {
	return Settings{
		Appearance:           AppearanceSystem,
		NotificationHour:     9,
		NotificationMinute:   0,
		NotificationsEnabled: true,
	}
}

func (s Settings) Validate() error {
	if s.SelectedVersion != "" {
		if _, err := translation.Parse(string(s.SelectedVersion)); err != nil {
			return fmt.Errorf("%w: %s %q", ErrInvalidSettings, KeySelectedVersion, s.SelectedVersion)
		}
	}
	if !s.Appearance.Valid() {
		return fmt.Errorf("%w: %s %q", ErrInvalidSettings, KeyAppearance, s.Appearance)
	}
	if s.NotificationHour < 0 || s.NotificationHour > 23 {
		return fmt.Errorf("%w: %s must be 0-23", ErrInvalidSettings, KeyNotificationHour)
	}
	if s.NotificationMinute < 0 || s.NotificationMinute > 59 {
		return fmt.Errorf("%w: %s must be 0-59", ErrInvalidSettings, KeyNotificationMinute)
	}
	return nil
}

// Encode flattens s into stored fields. An unset translation has no field.
func Encode(s Settings) map[string]string {
	fields := map[string]string{
		KeyAppearance:           string(s.Appearance),
		KeyNotificationHour:     strconv.Itoa(s.NotificationHour),
		KeyNotificationMinute:   strconv.Itoa(s.NotificationMinute),
		KeyNotificationsEnabled: strconv.FormatBool(s.NotificationsEnabled),
	}
	if s.SelectedVersion != "" {
		fields[KeySelectedVersion] = string(s.SelectedVersion)
	}
	return fields
}

// Decode reads stored fields. Missing or unreadable fields keep their defaults.
func Decode(fields map[string]string) Settings {
	s := Defaults()

	if v, ok := fields[KeySelectedVersion]; ok {
		if code, err := translation.Parse(v); err == nil {
			s.SelectedVersion = code
		}
	}
	if v, ok := fields[KeyAppearance]; ok && Appearance(v).Valid() {
		s.Appearance = Appearance(v)
	}
	if v, ok := fields[KeyNotificationHour]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 23 {
			s.NotificationHour = n
		}
	}
	if v, ok := fields[KeyNotificationMinute]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 59 {
			s.NotificationMinute = n
		}
	}
	if v, ok := fields[KeyNotificationsEnabled]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.NotificationsEnabled = b
		}
	}
	return s
}

// Patch is a partial update. Nil fields are left alone.
type Patch struct {
	SelectedVersion      *string `json:"selected_bible_version,omitempty"`
	Appearance           *string `json:"appearance,omitempty"`
	NotificationHour     *int    `json:"notification_hour,omitempty"`
	NotificationMinute   *int    `json:"notification_minute,omitempty"`
	NotificationsEnabled *bool   `json:"is_notification_enabled,omitempty"`
}

// Apply returns s with p applied. An empty SelectedVersion clears the override.
func (p Patch) Apply(s Settings) (Settings, error) {
	if p.SelectedVersion != nil {
		if *p.SelectedVersion == "" {
			s.SelectedVersion = ""
		} else {
			code, err := translation.Parse(*p.SelectedVersion)
			if err != nil {
				return s, fmt.Errorf("%w: %s %q", ErrInvalidSettings, KeySelectedVersion, *p.SelectedVersion)
			}
			s.SelectedVersion = code
		}
	}
	if p.Appearance != nil {
		s.Appearance = Appearance(*p.Appearance)
	}
	if p.NotificationHour != nil {
		s.NotificationHour = *p.NotificationHour
	}
	if p.NotificationMinute != nil {
		s.NotificationMinute = *p.NotificationMinute
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	return s, s.Validate()
}

// Store reads and writes the shared settings. Implementations must not
// cache: every Load sees the latest Save from any process.
type Store interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// Provider hands out the store of one device. The empty device id is the
// group store that requests without a device token read.
type Provider interface {
	For(deviceID string) Store
}

// Namespace scopes the group namespace to one device.
func Namespace(group, deviceID string) string {
	if deviceID == "" {
		return group
	}
	return group + ":" + deviceID
}

// MemoryStore keeps settings in process. Used when no Redis is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	fields map[string]string
	broker *events.Broker
	device string
}

func NewMemoryStore(broker *events.Broker) *MemoryStore {
	return &MemoryStore{fields: map[string]string{}, broker: broker}
}

func (m *MemoryStore) Load(context.Context) (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Decode(m.fields), nil
}

func (m *MemoryStore) Save(_ context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.fields = Encode(s)
	m.mu.Unlock()

	if m.broker != nil {
		m.broker.Emit(events.SettingsChanged, "device", m.device)
	}
	return nil
}

// MemoryProvider keeps one MemoryStore per device.
type MemoryProvider struct {
	mu     sync.Mutex
	broker *events.Broker
	stores map[string]*MemoryStore
}

func NewMemoryProvider(broker *events.Broker) *MemoryProvider {
	return &MemoryProvider{broker: broker, stores: make(map[string]*MemoryStore)}
}

func (p *MemoryProvider) For(deviceID string) Store {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.stores[deviceID]
	if !ok {
		st = NewMemoryStore(p.broker)
		st.device = deviceID
		p.stores[deviceID] = st
	}
	return st
}
