// Package main is the entry point for the Saveur storefront service: menu
// browsing, a persistent shopping cart with currency conversion, checkout
// and order tracking, reservations, reviews and scripted support chat for a
// single restaurant, all served from local SQLite storage.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/saveur/storefront/internal/config"
	"github.com/saveur/storefront/internal/database"
	"github.com/saveur/storefront/internal/modules/cart"
	carthandlers "github.com/saveur/storefront/internal/modules/cart/handlers"
	"github.com/saveur/storefront/internal/modules/menu"
	menuhandlers "github.com/saveur/storefront/internal/modules/menu/handlers"
	"github.com/saveur/storefront/internal/modules/orders"
	ordershandlers "github.com/saveur/storefront/internal/modules/orders/handlers"
	"github.com/saveur/storefront/internal/modules/reservations"
	reservationhandlers "github.com/saveur/storefront/internal/modules/reservations/handlers"
	"github.com/saveur/storefront/internal/modules/reviews"
	reviewhandlers "github.com/saveur/storefront/internal/modules/reviews/handlers"
	"github.com/saveur/storefront/internal/modules/support"
	supporthandlers "github.com/saveur/storefront/internal/modules/support/handlers"
	"github.com/saveur/storefront/internal/scheduler"
	"github.com/saveur/storefront/internal/server"
	"github.com/saveur/storefront/pkg/logger"
)

// menuCacheTTL bounds how long a rendered per-currency menu view is served
// from cache.db before being rebuilt from the catalog
const menuCacheTTL = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})
	logger.SetGlobalLogger(log)

	log.Info().Str("data_dir", cfg.DataDir).Msg("Starting Saveur storefront")

	// Three-database layout:
	// - store.db:  catalog, cart snapshot, reservations, reviews, refunds
	// - orders.db: append-only order audit trail (ledger profile)
	// - cache.db:  rendered menu views (cache profile, safe to delete)
	storeDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "store.db"),
		Profile: database.ProfileStandard,
		Name:    "store",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store database")
	}
	defer storeDB.Close()

	orderDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "orders.db"),
		Profile: database.ProfileLedger,
		Name:    "orders",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open orders database")
	}
	defer orderDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	for _, db := range []*database.DB{storeDB, orderDB, cacheDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("database", db.Name()).Msg("Failed to migrate database")
		}
	}

	// Cart core: store + snapshot persistence. The cart survives restarts
	// through its snapshot; display prices are recomputed on restore.
	snapshotRepo := cart.NewSQLiteSnapshotRepository(storeDB.Conn(), log)
	cartStore := cart.NewStore(snapshotRepo, log)
	cartStore.Restore()

	// Menu catalog with per-currency view cache
	menuRepo := menu.NewRepository(storeDB.Conn(), log)
	menuCache := menu.NewViewCache(cacheDB.Conn(), menuCacheTTL, log)
	menuService := menu.NewService(menuRepo, menuCache, log)

	// Checkout and tracking over the order ledger
	orderRepo := orders.NewRepository(orderDB.Conn(), log)
	orderService := orders.NewService(cartStore, orderRepo, log)

	reservationService := reservations.NewService(storeDB.Conn(), log)
	reviewService := reviews.NewService(storeDB.Conn(), log)
	refundService := support.NewRefundService(storeDB.Conn(), log)

	srv := server.New(server.Config{
		Log:                 log,
		Config:              cfg,
		StoreDB:             storeDB,
		OrderDB:             orderDB,
		CacheDB:             cacheDB,
		CartHandlers:        carthandlers.NewHandler(cartStore, log),
		MenuHandlers:        menuhandlers.NewHandler(menuService, log),
		OrderHandlers:       ordershandlers.NewHandler(orderService, log),
		ReservationHandlers: reservationhandlers.NewHandler(reservationService, log),
		ReviewHandlers:      reviewhandlers.NewHandler(reviewService, log),
		SupportHandlers:     supporthandlers.NewHandler(refundService, log),
	})

	// Background maintenance
	sched := scheduler.New(log)
	if err := sched.AddJob("@daily", scheduler.NewCheckpointJob(log, storeDB, orderDB, cacheDB)); err != nil {
		log.Error().Err(err).Msg("Failed to register checkpoint job")
	}
	if err := sched.AddJob("@hourly", scheduler.NewMenuCachePurgeJob(menuCache, log)); err != nil {
		log.Error().Err(err).Msg("Failed to register menu cache purge job")
	}
	sched.Start()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server stopped unexpectedly")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Storefront stopped")
}
