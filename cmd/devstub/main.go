package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hotelbook/hotel-web/internal/devstub"
	"github.com/hotelbook/hotel-web/internal/hotel"
	"github.com/hotelbook/hotel-web/pkg/config"
	"github.com/hotelbook/hotel-web/pkg/logger"
	mw "github.com/hotelbook/hotel-web/pkg/middleware"
)

func main() {
	cfg := config.Load()

	store := devstub.NewStore()
	if err := store.AddUser(cfg.Devstub.SeedUser, cfg.Devstub.SeedPassword); err != nil {
		logger.Error("Failed to seed user", "error", err)
		os.Exit(1)
	}

	// Several physical rooms share a type on purpose: the front end's
	// room-type dropdown deduplicates them.
	store.SeedRooms([]hotel.Room{
		{ID: 101, Number: "101", Type: "Single", PricePerNight: 95},
		{ID: 102, Number: "102", Type: "Single", PricePerNight: 95},
		{ID: 201, Number: "201", Type: "Double", PricePerNight: 140},
		{ID: 202, Number: "202", Type: "Double", PricePerNight: 140},
		{ID: 301, Number: "301", Type: "Suite", PricePerNight: 250},
		{ID: 401, Number: "401", Type: "Deluxe", PricePerNight: 320},
	})

	stub := devstub.NewServer(store, cfg.Devstub.JWTSecret, cfg.Devstub.TokenTTL)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("devstub"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)
	r.Mount("/", stub.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Devstub.Port,
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

		logger.Info("Shutting down devstub...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Devstub shutdown error", "error", err)
		}
	}()

	logger.Info("Starting hotel API devstub", "port", cfg.Devstub.Port, "seed_user", cfg.Devstub.SeedUser)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Devstub server error", "error", err)
		os.Exit(1)
	}
}
