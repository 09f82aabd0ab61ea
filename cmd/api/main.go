package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taiwoajasa245/march16-verse-api/docs"
	"github.com/taiwoajasa245/march16-verse-api/internal/database"
	"github.com/taiwoajasa245/march16-verse-api/internal/events"
	"github.com/taiwoajasa245/march16-verse-api/internal/mail"
	"github.com/taiwoajasa245/march16-verse-api/internal/notification"
	"github.com/taiwoajasa245/march16-verse-api/internal/ondemand"
	"github.com/taiwoajasa245/march16-verse-api/internal/region"
	"github.com/taiwoajasa245/march16-verse-api/internal/server"
	"github.com/taiwoajasa245/march16-verse-api/internal/settings"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
	"github.com/taiwoajasa245/march16-verse-api/pkg/config"
)

// @title March16 Verse API
// @version 1.0
// @description Daily Bible verse, calendar, translations, bookmarks and reminders.
// @host localhost:8080
// @BasePath /march16-verse-api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the device token.

func gracefulShutdown(apiServer *http.Server, srv *server.Server, logger *slog.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	srv.StopBackgroundJobs()

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if cfg.IsProduction() {
		opts.Level = slog.LevelInfo
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func main() {
	cfg := config.LoadConfig()
	logger := newLogger(cfg)
	slog.SetDefault(logger)
	docs.SwaggerInfo.Host = cfg.SwaggerHost

	if err := run(cfg, logger); err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	db, err := database.New(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Database: cfg.DBName,
		Username: cfg.DBUser,
		Password: cfg.DBPassword,
		Schema:   cfg.DBSchema,
	}, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	store, err := versestore.Open(ctx, cfg.VerseDBPath, versestore.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("verse store %s: %w", cfg.VerseDBPath, err)
	}
	defer store.Close()

	broker := events.NewBroker()
	defer broker.Close()

	settingsProvider, err := newSettingsProvider(cfg, broker, logger)
	if err != nil {
		return err
	}

	secondary, err := newSecondaryTask(ctx, cfg, store, broker, logger)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(cfg, server.Deps{
		DB:        db,
		Store:     store,
		Settings:  settingsProvider,
		Broker:    broker,
		Region:    region.NewDetector(region.StaticSource(cfg.StorefrontCountry), broker, logger),
		Secondary: secondary,
		Delivery:  newDelivery(cfg, logger),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	apiServer := srv.HTTPServer()
	srv.StartBackgroundJobs()

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(apiServer, srv, logger, done)

	logger.Info("server listening", "addr", apiServer.Addr, "env", cfg.AppEnv)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	// Wait for the graceful shutdown to complete
	<-done
	logger.Info("graceful shutdown complete")
	return nil
}

// newSettingsProvider uses Redis when REDIS_ADDR is set and keeps settings in
// memory otherwise. Each device gets its own namespace.
func newSettingsProvider(cfg *config.Config, broker *events.Broker, logger *slog.Logger) (settings.Provider, error) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, settings are kept in memory")
		return settings.NewMemoryProvider(broker), nil
	}
	client, err := settings.NewRedisClient(settings.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("settings stored in redis", "addr", cfg.RedisAddr, "namespace", cfg.SettingsNamespace)
	return settings.NewRedisProvider(client, cfg.SettingsNamespace, broker), nil
}

// newSecondaryTask picks S3 when a bucket is configured, then a local
// file. With neither the secondary translation is never offered.
func newSecondaryTask(ctx context.Context, cfg *config.Config, store *versestore.Store, broker *events.Broker, logger *slog.Logger) (*ondemand.Task, error) {
	var fetcher ondemand.Fetcher
	switch {
	case cfg.S3Bucket != "":
		f, err := ondemand.NewS3Fetcher(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Key)
		if err != nil {
			return nil, fmt.Errorf("s3 fetcher: %w", err)
		}
		fetcher = f
	case cfg.SecondarySource != "":
		fetcher = ondemand.FileFetcher{Path: cfg.SecondarySource}
	default:
		logger.Info("no secondary translation source configured")
		return nil, nil
	}

	var digest versestore.Digest
	if cfg.SecondaryDigest != "" {
		d, err := versestore.ParseDigest(cfg.SecondaryDigest)
		if err != nil {
			return nil, fmt.Errorf("SECONDARY_DIGEST: %w", err)
		}
		digest = d
	}

	return ondemand.NewTask(ondemand.Config{
		DataDir:  cfg.DataDir,
		FileName: cfg.SecondaryFileName,
		Digest:   digest,
	}, fetcher, store, broker, logger), nil
}

func newDelivery(cfg *config.Config, logger *slog.Logger) notification.Delivery {
	if len(cfg.NotifyRecipients) == 0 {
		return notification.LogDelivery{Logger: logger}
	}
	m, err := mail.NewMailer(mail.Config{
		FromName:   "March16",
		From:       cfg.SmtpFrom,
		Password:   cfg.SmtpPassword,
		Host:       cfg.SmtpHost,
		Port:       cfg.SmtpPort,
		Recipients: cfg.NotifyRecipients,
		Lang:       cfg.NotificationLanguage,
	}, logger)
	if err != nil {
		logger.Error("mailer unavailable, reminders will only be logged", "error", err)
		return notification.LogDelivery{Logger: logger}
	}
	return m
}
