package bookmark

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/march16-verse-api/internal/auth"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/pkg/response"
)

// Translator picks the translation a listing is shown in.
type Translator interface {
	EffectiveTranslation(ctx context.Context, lang string) (translation.Code, error)
}

type Handler struct {
	service    Service
	translator Translator
}

func NewHandler(service Service, translator Translator) *Handler {
	return &Handler{service: service, translator: translator}
}

// ToggleHandler godoc
// @Summary Toggle a bookmark
// @Description Bookmarks the daily verse, or removes the bookmark if it already exists.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ToggleRequest true "Verse"
// @Success 200 {object} response.APIResponse{data=ToggleResult}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /bookmarks/toggle [patch]
func (h *Handler) ToggleHandler(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := auth.GetDeviceIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "device not found")
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DailyVerseID <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid request body", map[string]string{
			"daily_verse_id": "A positive daily verse id is required",
		})
		return
	}

	bookmarked, err := h.service.Toggle(r.Context(), deviceID, req.DailyVerseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Verse not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to toggle bookmark", err.Error())
		return
	}

	msg := "Bookmark removed"
	if bookmarked {
		msg = "Bookmark added"
	}
	response.Success(w, ToggleResult{DailyVerseID: req.DailyVerseID, Bookmarked: bookmarked}, msg)
}

// StatusHandler godoc
// @Summary Bookmark status
// @Description Reports whether the calling device has bookmarked the daily verse.
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param dailyVerseId path int true "Daily verse id"
// @Success 200 {object} response.APIResponse{data=ToggleResult}
// @Failure 400 {object} response.APIResponse
// @Router /bookmarks/{dailyVerseId} [get]
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := auth.GetDeviceIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "device not found")
		return
	}

	verseID, err := strconv.ParseInt(chi.URLParam(r, "dailyVerseId"), 10, 64)
	if err != nil || verseID <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid daily verse id", map[string]string{
			"daily_verse_id": "A positive daily verse id is required",
		})
		return
	}

	bookmarked, err := h.service.IsBookmarked(r.Context(), deviceID, verseID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to check bookmark", err.Error())
		return
	}
	response.Success(w, ToggleResult{DailyVerseID: verseID, Bookmarked: bookmarked}, "Bookmark status fetched")
}

// ListHandler godoc
// @Summary List bookmarks
// @Description Newest first, each with the verse in the requested or effective translation.
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param version query string false "Translation code"
// @Success 200 {object} response.APIResponse{data=[]Bookmark}
// @Router /bookmarks [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := auth.GetDeviceIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "device not found")
		return
	}

	var code translation.Code
	if v := r.URL.Query().Get("version"); v != "" {
		parsed, err := translation.Parse(v)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Unknown translation", err.Error())
			return
		}
		code = parsed
	} else {
		effective, err := h.translator.EffectiveTranslation(r.Context(), auth.ReaderLanguage(r))
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Failed to resolve translation", err.Error())
			return
		}
		code = effective
	}

	bookmarks, err := h.service.List(r.Context(), deviceID, code)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to fetch bookmarks", err.Error())
		return
	}

	response.Success(w, bookmarks, "Bookmarks fetched successfully")
}
