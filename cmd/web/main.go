package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hotelbook/hotel-web/internal/hotel"
	"github.com/hotelbook/hotel-web/internal/session"
	"github.com/hotelbook/hotel-web/internal/web"
	"github.com/hotelbook/hotel-web/pkg/config"
	"github.com/hotelbook/hotel-web/pkg/events"
	"github.com/hotelbook/hotel-web/pkg/logger"
	mw "github.com/hotelbook/hotel-web/pkg/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	// Session store: Redis when configured, in-process memory otherwise.
	var sessions session.Store
	if cfg.Redis.Enabled {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Error("Invalid Redis URL", "error", err)
			os.Exit(1)
		}
		opt.DB = cfg.Redis.DB
		sessions = session.NewRedisStore(redis.NewClient(opt))
		logger.Info("Using Redis session store", "url", cfg.Redis.URL)
	} else {
		sessions = session.NewMemoryStore()
		logger.Warn("Using in-memory session store; sessions will not survive restarts")
	}

	// Event publisher: best-effort notifications, no-op when NATS is off.
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATS.Enabled {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	api := hotel.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	webServer, err := web.NewServer(api, sessions, publisher, web.Options{
		CookieName:   cfg.Session.CookieName,
		SessionTTL:   cfg.Session.TTL,
		SecureCookie: cfg.Session.Secure,
	})
	if err != nil {
		logger.Error("Failed to initialize web server", "error", err)
		os.Exit(1)
	}

	// Setup router
	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("web"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(mw.Health)
	r.Mount("/", webServer.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down web front end...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Web front end shutdown error", "error", err)
		}
	}()

	logger.Info("Starting web front end", "port", cfg.Server.Port, "api", cfg.API.BaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Web front end server error", "error", err)
		os.Exit(1)
	}
}
