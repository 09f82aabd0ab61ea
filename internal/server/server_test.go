package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
	"github.com/taiwoajasa245/march16-verse-api/internal/events"
	"github.com/taiwoajasa245/march16-verse-api/internal/region"
	"github.com/taiwoajasa245/march16-verse-api/internal/settings"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore/versestoretest"
	"github.com/taiwoajasa245/march16-verse-api/pkg/config"
	"github.com/taiwoajasa245/march16-verse-api/pkg/response"
)

// stubDB reports healthy and is never queried by these tests.
type stubDB struct{ status string }

func (s stubDB) Health() map[string]string { return map[string]string{"status": s.status} }
func (stubDB) Close() error                { return nil }
func (stubDB) DB() *sql.DB                 { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		TZName:           "UTC",
		JWTSecret:        "test-secret",
		JWTTTLDays:       1,
		LocalLanguage:    "ko",
		RestrictedRegion: "GBR",
	}
}

func newTestServer(t *testing.T) (*Server, *events.Broker) {
	t.Helper()
	broker := events.NewBroker()
	t.Cleanup(broker.Close)

	cal := calendar.New(time.UTC).WithClock(func() time.Time {
		return time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	})
	s, err := NewServer(testConfig(), Deps{
		DB:       stubDB{status: "up"},
		Store:    versestoretest.Open(t),
		Settings: settings.NewMemoryProvider(broker),
		Broker:   broker,
		Region:   region.NewDetector(region.StaticSource("KOR"), broker, nil),
		Calendar: &cal,
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s, broker
}

func TestNewServer_Errors(t *testing.T) {
	if _, err := NewServer(testConfig(), Deps{}); err == nil {
		t.Error("expected error for missing deps")
	}

	broker := events.NewBroker()
	defer broker.Close()
	_, err := NewServer(testConfig(), Deps{
		DB:       stubDB{status: "down"},
		Store:    versestoretest.Open(t),
		Settings: settings.NewMemoryProvider(nil),
		Broker:   broker,
	})
	if err == nil {
		t.Error("expected error for unhealthy database")
	}

	cfg := testConfig()
	cfg.JWTSecret = ""
	_, err = NewServer(cfg, Deps{
		DB:       stubDB{status: "up"},
		Store:    versestoretest.Open(t),
		Settings: settings.NewMemoryProvider(nil),
		Broker:   broker,
	})
	if err == nil {
		t.Error("expected error for missing JWT secret")
	}
}

func TestRoutes(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"home", http.MethodGet, "/", http.StatusOK},
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"docs redirect", http.MethodGet, apiPrefix + "/docs", http.StatusMovedPermanently},
		{"today", http.MethodGet, apiPrefix + "/daily-verse/today", http.StatusOK},
		{"calendar", http.MethodGet, apiPrefix + "/calendar/2025/3", http.StatusOK},
		{"translations", http.MethodGet, apiPrefix + "/translations", http.StatusOK},
		{"widget", http.MethodGet, apiPrefix + "/widget", http.StatusOK},
		{"settings needs a token", http.MethodGet, apiPrefix + "/settings", http.StatusUnauthorized},
		{"bookmarks need a token", http.MethodGet, apiPrefix + "/bookmarks", http.StatusUnauthorized},
		{"me needs a token", http.MethodGet, apiPrefix + "/auth/me", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d, body %s", rr.Code, tt.status, rr.Body.String())
			}
		})
	}
}

func TestSettingsWithToken(t *testing.T) {
	s, _ := newTestServer(t)
	token, err := s.tokens.Generate("5f0c2a64-0000-4000-8000-000000000001", "ios", "")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPatch, apiPrefix+"/settings", strings.NewReader(`{"notification_hour":6}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var body struct {
		response.APIResponse
		Data settings.Settings `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Data.NotificationHour != 6 {
		t.Errorf("hour = %d", body.Data.NotificationHour)
	}
}

func TestSettingsArePerDevice(t *testing.T) {
	s, _ := newTestServer(t)
	tokenA, _ := s.tokens.Generate("5f0c2a64-0000-4000-8000-00000000000a", "ios", "")
	tokenB, _ := s.tokens.Generate("5f0c2a64-0000-4000-8000-00000000000b", "ios", "")

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, apiPrefix+path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)
		return rr
	}

	if rr := do(http.MethodPatch, "/settings", tokenA, `{"selected_bible_version":"WEBBE","notification_hour":6}`); rr.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rr.Code, rr.Body.String())
	}

	readSettings := func(token string) settings.Settings {
		rr := do(http.MethodGet, "/settings", token, "")
		var body struct {
			response.APIResponse
			Data settings.Settings `json:"data"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		return body.Data
	}
	if got := readSettings(tokenB); got.NotificationHour != 9 || got.SelectedVersion != "" {
		t.Errorf("device B settings changed: %+v", got)
	}
	if got := readSettings(tokenA); got.NotificationHour != 6 {
		t.Errorf("device A settings = %+v", got)
	}

	verse := func(token string) string {
		rr := do(http.MethodGet, "/daily-verse/today?lang=ko", token, "")
		var body struct {
			response.APIResponse
			Data struct {
				Reference string `json:"reference"`
			} `json:"data"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		return body.Data.Reference
	}
	if got := verse(tokenA); got != "John 3:16" {
		t.Errorf("device A verse = %q, want its WEBBE override", got)
	}
	if got := verse(tokenB); got != "요한복음 3:16" {
		t.Errorf("device B verse = %q", got)
	}
	if got := verse(""); got != "요한복음 3:16" {
		t.Errorf("anonymous verse = %q", got)
	}

	if rr := do(http.MethodGet, "/daily-verse/today", "not-a-token", ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d", rr.Code)
	}
}

func TestEventsWebsocket(t *testing.T) {
	s, broker := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.hub.Run(ctx)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + apiPrefix + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.hub.Clients() == 0 || broker.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	broker.Emit(events.SecondaryAttached, "path", "/data/kjv.sqlite")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev events.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Kind != events.SecondaryAttached || ev.Data["path"] != "/data/kjv.sqlite" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestStartBackgroundJobs_DetectsRegion(t *testing.T) {
	s, _ := newTestServer(t)
	s.StartBackgroundJobs()
	defer s.StopBackgroundJobs()

	select {
	case <-s.deps.Region.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("region detection did not finish")
	}
	if code, ok := s.deps.Region.Code(); !ok || code != "KOR" {
		t.Fatalf("region = %q, %v", code, ok)
	}
}

func TestEventsWebsocket_AfterHubStops(t *testing.T) {
	s, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.hub.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + apiPrefix + "/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		conn.Close()
		t.Fatal("dial succeeded after the hub stopped")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("response = %+v, want 503", resp)
	}
	if s.hub.Clients() != 0 {
		t.Errorf("clients = %d", s.hub.Clients())
	}
}
