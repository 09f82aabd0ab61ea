package bookmark

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/march16-verse-api/internal/auth"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore/versestoretest"
	"github.com/taiwoajasa245/march16-verse-api/pkg/response"
)

type fixedTranslator struct {
	code translation.Code
	lang string
}

func (f *fixedTranslator) EffectiveTranslation(_ context.Context, lang string) (translation.Code, error) {
	f.lang = lang
	return f.code, nil
}

func newTestHandler(t *testing.T, code translation.Code) (*Handler, *fixedTranslator) {
	t.Helper()
	tr := &fixedTranslator{code: code}
	svc := NewService(&memoryRepo{}, versestoretest.Open(t), nil)
	return NewHandler(svc, tr), tr
}

func asDevice(r *http.Request, id string) *http.Request {
	return r.WithContext(auth.WithDeviceID(r.Context(), id))
}

func TestToggleHandler(t *testing.T) {
	h, _ := newTestHandler(t, translation.WEBBE)

	for _, want := range []bool{true, false} {
		req := httptest.NewRequest(http.MethodPatch, "/bookmarks/toggle", strings.NewReader(`{"daily_verse_id":2}`))
		rr := httptest.NewRecorder()
		h.ToggleHandler(rr, asDevice(req, "device-1"))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
		}
		var body struct {
			response.APIResponse
			Data ToggleResult `json:"data"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body.Data.Bookmarked != want || body.Data.DailyVerseID != 2 {
			t.Fatalf("result = %+v, want bookmarked=%v", body.Data, want)
		}
	}
}

func TestToggleHandler_Errors(t *testing.T) {
	h, _ := newTestHandler(t, translation.WEBBE)

	tests := []struct {
		name   string
		device string
		body   string
		status int
	}{
		{"no device", "", `{"daily_verse_id":2}`, http.StatusUnauthorized},
		{"bad json", "device-1", `{`, http.StatusBadRequest},
		{"zero id", "device-1", `{"daily_verse_id":0}`, http.StatusBadRequest},
		{"unknown verse", "device-1", `{"daily_verse_id":404}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/bookmarks/toggle", strings.NewReader(tt.body))
			if tt.device != "" {
				req = asDevice(req, tt.device)
			}
			rr := httptest.NewRecorder()
			h.ToggleHandler(rr, req)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d", rr.Code, tt.status)
			}
		})
	}
}

func TestListHandler_Translation(t *testing.T) {
	h, tr := newTestHandler(t, translation.NKRV)

	req := httptest.NewRequest(http.MethodPatch, "/bookmarks/toggle", strings.NewReader(`{"daily_verse_id":2}`))
	h.ToggleHandler(httptest.NewRecorder(), asDevice(req, "device-1"))

	tests := []struct {
		name      string
		url       string
		reference string
	}{
		{"effective translation", "/bookmarks?lang=ko", "요한복음 3:16"},
		{"explicit version", "/bookmarks?version=webbe", "John 3:16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ListHandler(rr, asDevice(httptest.NewRequest(http.MethodGet, tt.url, nil), "device-1"))
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
			}
			var body struct {
				response.APIResponse
				Data []Bookmark `json:"data"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if len(body.Data) != 1 || body.Data[0].Reference != tt.reference {
				t.Fatalf("bookmarks = %+v, want reference %q", body.Data, tt.reference)
			}
		})
	}

	if tr.lang != "ko" {
		t.Errorf("translator saw lang %q, want ko", tr.lang)
	}
}

func TestListHandler_UnknownVersion(t *testing.T) {
	h, _ := newTestHandler(t, translation.WEBBE)

	rr := httptest.NewRecorder()
	h.ListHandler(rr, asDevice(httptest.NewRequest(http.MethodGet, "/bookmarks?version=ESV", nil), "device-1"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	h, _ := newTestHandler(t, translation.WEBBE)
	r := chi.NewRouter()
	r.Get("/bookmarks/{dailyVerseId}", h.StatusHandler)

	status := func(device, id string) (*httptest.ResponseRecorder, ToggleResult) {
		req := httptest.NewRequest(http.MethodGet, "/bookmarks/"+id, nil)
		if device != "" {
			req = asDevice(req, device)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		var body struct {
			response.APIResponse
			Data ToggleResult `json:"data"`
		}
		if rr.Code == http.StatusOK {
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
		}
		return rr, body.Data
	}

	if rr, got := status("device-1", "2"); rr.Code != http.StatusOK || got.Bookmarked || got.DailyVerseID != 2 {
		t.Fatalf("before toggle: status %d, %+v", rr.Code, got)
	}

	req := httptest.NewRequest(http.MethodPatch, "/bookmarks/toggle", strings.NewReader(`{"daily_verse_id":2}`))
	h.ToggleHandler(httptest.NewRecorder(), asDevice(req, "device-1"))

	if _, got := status("device-1", "2"); !got.Bookmarked {
		t.Error("device-1 should see its bookmark")
	}
	if _, got := status("device-2", "2"); got.Bookmarked {
		t.Error("device-2 sees device-1's bookmark")
	}

	tests := []struct {
		name   string
		device string
		id     string
		want   int
	}{
		{"no device", "", "2", http.StatusUnauthorized},
		{"not a number", "device-1", "abc", http.StatusBadRequest},
		{"zero", "device-1", "0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr, _ := status(tt.device, tt.id); rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
