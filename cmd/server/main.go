package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"appointment-booking-api/internal/booking"
	"appointment-booking-api/internal/config"
	"appointment-booking-api/internal/handler"
	"appointment-booking-api/internal/logger"
	"appointment-booking-api/internal/metrics"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/schedule"
	"appointment-booking-api/internal/store"
)

func main() {
	_ = godotenv.Load()
	logger.SetupDefault(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		fatal("config", err)
	}

	// schema first, pool second
	if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
		fatal("migrations", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		fatal("db", err)
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		fatal("db ping", err)
	}
	slog.Info("connected to postgres")

	st := store.New(pool)
	cal := schedule.NewCalendar(schedule.Config{
		OpenHour:    cfg.OpenHour,
		CloseHour:   cfg.CloseHour,
		SlotMinutes: cfg.SlotMinutes,
	})
	svc := booking.New(cal, st)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	h := handler.New(svc, st, cfg.JWTSecret, cfg.TokenTTL, collector)
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Router(rl, metrics.Handler(reg)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("http listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http", "error", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
