package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abdelali-01/car-sales-backend/internal/config"
	"github.com/abdelali-01/car-sales-backend/internal/logger"
	"github.com/abdelali-01/car-sales-backend/internal/middleware"
	"github.com/abdelali-01/car-sales-backend/internal/modules/client"
	"github.com/abdelali-01/car-sales-backend/internal/modules/offer"
	"github.com/abdelali-01/car-sales-backend/internal/modules/order"
	"github.com/abdelali-01/car-sales-backend/internal/modules/payment"
	"github.com/abdelali-01/car-sales-backend/internal/store"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	db, err := store.Open(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()
	log.Info("database connection established")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(chimw.Recoverer)
	router.Use(logger.RequestIDMiddleware)
	router.Use(logger.LoggingMiddleware)
	router.Use(middleware.RateLimit)

	// ── Inventory ───────────────────────────────────────────
	offerRepo := offer.NewPostgresRepository(db)
	offerService := offer.NewService(offerRepo)
	offer.NewHandler(offerService).RegisterRoutes(router)

	// ── Clients ─────────────────────────────────────────────
	clientRepo := client.NewPostgresRepository(db)
	clientService := client.NewService(clientRepo)
	client.NewHandler(clientService).RegisterRoutes(router)

	// ── Orders ──────────────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, cfg.RequireFullPayment)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Payments ────────────────────────────────────────────
	paymentRepo := payment.NewPostgresRepository(db)
	paymentService := payment.NewService(paymentRepo)
	payment.NewHandler(paymentService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("api server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}
