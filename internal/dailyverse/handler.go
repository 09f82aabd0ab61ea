package dailyverse

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/march16-verse-api/internal/auth"
	"github.com/taiwoajasa245/march16-verse-api/internal/settings"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func versionParam(r *http.Request) (translation.Code, error) {
	v := r.URL.Query().Get("version")
	if v == "" {
		return "", nil
	}
	return translation.Parse(v)
}

// GetVerseHandler godoc
// @Summary Verse for a day
// @Description Resolves the verse for ?date (YYYY-MM-DD, default today) in ?version or the effective translation.
// @Tags daily-verse
// @Produce json
// @Param date query string false "Date, YYYY-MM-DD"
// @Param version query string false "Translation code"
// @Param lang query string false "Language, overrides Accept-Language"
// @Success 200 {object} response.APIResponse{data=DailyVerse}
// @Failure 400 {object} response.APIResponse
// @Router /daily-verse [get]
func (h *Handler) GetVerseHandler(w http.ResponseWriter, r *http.Request) {
	date := h.service.Calendar().Now()
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := time.ParseInLocation(dateLayout, q, h.service.Calendar().Location())
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date", map[string]string{
				"date": "Expected YYYY-MM-DD",
			})
			return
		}
		date = parsed
	}
	h.writeVerse(w, r, date)
}

// GetTodayHandler godoc
// @Summary Today's verse
// @Tags daily-verse
// @Produce json
// @Param version query string false "Translation code"
// @Param lang query string false "Language, overrides Accept-Language"
// @Success 200 {object} response.APIResponse{data=DailyVerse}
// @Router /daily-verse/today [get]
func (h *Handler) GetTodayHandler(w http.ResponseWriter, r *http.Request) {
	h.writeVerse(w, r, h.service.Calendar().Now())
}

func (h *Handler) writeVerse(w http.ResponseWriter, r *http.Request, date time.Time) {
	code, err := versionParam(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Unknown translation", err.Error())
		return
	}

	verse, err := h.service.Verse(r.Context(), date, code, auth.ReaderLanguage(r))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to get daily verse", err.Error())
		return
	}
	response.Success(w, verse, "Daily verse fetched successfully")
}

// GetMonthHandler godoc
// @Summary Month grid
// @Description Sunday-first weeks for the month; 0 marks cells outside it.
// @Tags calendar
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month, 1-12"
// @Success 200 {object} response.APIResponse{data=MonthView}
// @Failure 400 {object} response.APIResponse
// @Router /calendar/{year}/{month} [get]
func (h *Handler) GetMonthHandler(w http.ResponseWriter, r *http.Request) {
	year, yerr := strconv.Atoi(chi.URLParam(r, "year"))
	month, merr := strconv.Atoi(chi.URLParam(r, "month"))
	if yerr != nil || merr != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date", "year and month must be numbers")
		return
	}

	view, err := h.service.Month(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			response.Error(w, http.StatusBadRequest, "Invalid date", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to build calendar", err.Error())
		return
	}
	response.Success(w, view, "Calendar fetched successfully")
}

// GetTranslationsHandler godoc
// @Summary Available translations
// @Tags settings
// @Produce json
// @Param lang query string false "Language, overrides Accept-Language"
// @Success 200 {object} response.APIResponse{data=Translations}
// @Router /translations [get]
func (h *Handler) GetTranslationsHandler(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Translations(r.Context(), auth.ReaderLanguage(r))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to get translations", err.Error())
		return
	}
	response.Success(w, out, "Translations fetched successfully")
}

// GetSettingsHandler godoc
// @Summary Reader settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=settings.Settings}
// @Router /settings [get]
func (h *Handler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Settings(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to get settings", err.Error())
		return
	}
	response.Success(w, st, "Settings fetched successfully")
}

// UpdateSettingsHandler godoc
// @Summary Update reader settings
// @Description Partial update. An empty selected_bible_version clears the choice.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body settings.Patch true "Fields to change"
// @Success 200 {object} response.APIResponse{data=settings.Settings}
// @Failure 400 {object} response.APIResponse
// @Router /settings [patch]
func (h *Handler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var p settings.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	st, err := h.service.UpdateSettings(r.Context(), p)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidSettings) {
			response.Error(w, http.StatusBadRequest, "Invalid settings", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to save settings", err.Error())
		return
	}
	response.Success(w, st, "Settings updated successfully")
}

// GetWidgetHandler godoc
// @Summary Widget entry
// @Description Today's verse as the widget shows it, with the time to refresh.
// @Tags daily-verse
// @Produce json
// @Param lang query string false "Language, overrides Accept-Language"
// @Success 200 {object} response.APIResponse{data=WidgetEntry}
// @Router /widget [get]
func (h *Handler) GetWidgetHandler(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.Widget(r.Context(), h.service.Calendar().Now(), auth.ReaderLanguage(r))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to build widget entry", err.Error())
		return
	}
	response.Success(w, entry, "Widget entry fetched successfully")
}
