package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taiwoajasa245/march16-verse-api/internal/auth"
	"github.com/taiwoajasa245/march16-verse-api/internal/bookmark"
	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
	"github.com/taiwoajasa245/march16-verse-api/internal/dailyverse"
	"github.com/taiwoajasa245/march16-verse-api/internal/database"
	"github.com/taiwoajasa245/march16-verse-api/internal/events"
	"github.com/taiwoajasa245/march16-verse-api/internal/notification"
	"github.com/taiwoajasa245/march16-verse-api/internal/ondemand"
	"github.com/taiwoajasa245/march16-verse-api/internal/region"
	"github.com/taiwoajasa245/march16-verse-api/internal/resolver"
	"github.com/taiwoajasa245/march16-verse-api/internal/settings"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
	"github.com/taiwoajasa245/march16-verse-api/pkg/config"
	"github.com/taiwoajasa245/march16-verse-api/pkg/util"
)

// Deps are the long-lived resources built in main.
type Deps struct {
	DB        database.Service
	Store     *versestore.Store
	Settings  settings.Provider
	Broker    *events.Broker
	Region    *region.Detector
	Secondary *ondemand.Task
	Delivery  notification.Delivery
	Logger    *slog.Logger
	// Calendar overrides the one built from TZ_NAME.
	Calendar *calendar.Calendar
}

type Server struct {
	port    string
	cfg     *config.Config
	deps    Deps
	logger  *slog.Logger
	handler http.Handler

	tokens    *util.TokenManager
	policy    translation.Policy
	daily     *dailyverse.Service
	auth      auth.AuthService
	bookmarks bookmark.Service
	scheduler *notification.Scheduler
	hub       *Hub

	cancel context.CancelFunc
}

// NewServer constructs the app server with all dependencies injected.
func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.DB == nil || deps.Store == nil || deps.Settings == nil || deps.Broker == nil {
		return nil, errors.New("server: database, verse store, settings and broker are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	stats := deps.DB.Health()
	if stats["status"] != "up" {
		return nil, fmt.Errorf("database connection failed: %s", stats["error"])
	}
	logger.Info("database connection successful", "open_connections", stats["open_connections"])

	tokens, err := util.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLDays)*24*time.Hour)
	if err != nil {
		return nil, err
	}

	cal := calendar.New(cfg.Location())
	if deps.Calendar != nil {
		cal = *deps.Calendar
	}

	policy := translation.Policy{LocalLanguage: cfg.LocalLanguage, RestrictedRegion: cfg.RestrictedRegion}

	var regionCode dailyverse.RegionCode
	if deps.Region != nil {
		regionCode = deps.Region
	}
	daily := dailyverse.NewService(resolver.New(deps.Store, cal), deps.Store, deps.Settings, regionCode, policy, logger)

	s := &Server{
		port:      cfg.Port,
		cfg:       cfg,
		deps:      deps,
		logger:    logger,
		tokens:    tokens,
		policy:    policy,
		daily:     daily,
		auth:      auth.NewAuthService(auth.NewRepository(deps.DB), tokens, logger),
		bookmarks: bookmark.NewService(bookmark.NewRepository(deps.DB), deps.Store, logger),
		scheduler: notification.NewScheduler(notification.Config{
			Language: cfg.NotificationLanguage,
			Days:     cfg.NotificationDays,
			Tick:     cfg.NotificationTick,
			Device:   cfg.NotifyDeviceID,
		}, cal, daily, deps.Settings.For(cfg.NotifyDeviceID), deps.Delivery, deps.Broker, logger),
		hub: NewHub(deps.Broker, logger),
	}

	s.handler = s.RegisterRoutes()
	return s, nil
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (s *Server) Handler() http.Handler { return s.handler }

// StartBackgroundJobs runs region detection, the secondary download, the
// websocket hub and the reminder scheduler until StopBackgroundJobs.
func (s *Server) StartBackgroundJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.hub.Run(ctx)

	if s.deps.Region != nil {
		go func() {
			if _, err := s.deps.Region.Detect(ctx); err != nil {
				s.logger.Warn("region detection failed", "error", err)
			}
		}()
		if s.deps.Secondary != nil {
			go ondemand.StartAfterRegion(ctx, s.deps.Secondary, s.deps.Region, s.policy.Restricted)
		}
	} else if s.deps.Secondary != nil {
		s.deps.Secondary.Start(ctx)
	}

	go s.scheduler.Start(ctx)
	s.logger.Info("background jobs started")
}

func (s *Server) StopBackgroundJobs() {
	if s.cancel != nil {
		s.cancel()
		s.logger.Info("background jobs stopped gracefully")
	}
}
