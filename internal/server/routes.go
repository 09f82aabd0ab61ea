package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/taiwoajasa245/march16-verse-api/docs"
	"github.com/taiwoajasa245/march16-verse-api/internal/auth"
	"github.com/taiwoajasa245/march16-verse-api/internal/bookmark"
	"github.com/taiwoajasa245/march16-verse-api/internal/dailyverse"
	"github.com/taiwoajasa245/march16-verse-api/pkg/response"
)

const apiPrefix = "/march16-verse-api/v1"

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.ServerIsWorking)
	r.Get("/health", s.HealthHandler)

	r.Get(apiPrefix+"/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route(apiPrefix, func(r chi.Router) {
		r.Get("/", s.ServerIsWorking)
		r.Get("/health", s.HealthHandler)
		s.loadAuthRoutes(r)
		s.loadVerseRoutes(r)
		s.loadBookmarkRoutes(r)
		r.Get("/events", s.hub.ServeWS)
	})

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to March16 verse api"
	response.Success(w, resp, "Success")
}

// HealthHandler godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.deps.DB.Health()
	health := map[string]any{
		"database":           stats,
		"secondary_attached": s.deps.Store.SecondaryAttached(),
		"websocket_clients":  s.hub.Clients(),
	}
	if code, ok := s.regionCode(); ok {
		health["region"] = code
	}

	if err := s.deps.Store.Ping(r.Context()); err != nil {
		health["verse_store"] = err.Error()
		response.Error(w, http.StatusServiceUnavailable, "Verse store unavailable", health)
		return
	}
	health["verse_store"] = "up"

	if stats["status"] != "up" {
		response.Error(w, http.StatusServiceUnavailable, "Database unavailable", health)
		return
	}
	response.Success(w, health, "Healthy")
}

func (s *Server) regionCode() (string, bool) {
	if s.deps.Region == nil {
		return "", false
	}
	return s.deps.Region.Code()
}

func (s *Server) loadAuthRoutes(router chi.Router) {
	authHandler := auth.NewHandler(s.auth)

	router.Post("/auth/register-device", authHandler.RegisterDeviceHandler)

	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(s.tokens))
		r.Get("/auth/me", authHandler.GetDeviceHandler)
	})
}

func (s *Server) loadVerseRoutes(router chi.Router) {
	h := dailyverse.NewHandler(s.daily)

	router.Get("/calendar/{year}/{month}", h.GetMonthHandler)

	router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuthMiddleware(s.tokens))
		r.Get("/daily-verse", h.GetVerseHandler)
		r.Get("/daily-verse/today", h.GetTodayHandler)
		r.Get("/translations", h.GetTranslationsHandler)
		r.Get("/widget", h.GetWidgetHandler)
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(s.tokens))
		r.Get("/settings", h.GetSettingsHandler)
		r.Patch("/settings", h.UpdateSettingsHandler)
	})
}

func (s *Server) loadBookmarkRoutes(router chi.Router) {
	h := bookmark.NewHandler(s.bookmarks, s.daily)

	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(s.tokens))
		r.Get("/bookmarks", h.ListHandler)
		r.Patch("/bookmarks/toggle", h.ToggleHandler)
		r.Get("/bookmarks/{dailyVerseId}", h.StatusHandler)
	})
}
