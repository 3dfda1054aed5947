package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/config"
	"github.com/mamadbah2/freshstock/internal/idgen"
	"github.com/mamadbah2/freshstock/internal/repository"
	"github.com/mamadbah2/freshstock/internal/repository/memory"
	"github.com/mamadbah2/freshstock/internal/repository/mongodb"
	redisstore "github.com/mamadbah2/freshstock/internal/repository/redis"
	"github.com/mamadbah2/freshstock/internal/repository/sheets"
	"github.com/mamadbah2/freshstock/internal/scheduler"
	"github.com/mamadbah2/freshstock/internal/server/handlers"
	"github.com/mamadbah2/freshstock/internal/server/router"
	inventorysvc "github.com/mamadbah2/freshstock/internal/service/inventory"
	ordersvc "github.com/mamadbah2/freshstock/internal/service/orders"
	reportingsvc "github.com/mamadbah2/freshstock/internal/service/reporting"
	"github.com/mamadbah2/freshstock/internal/service/transfer"
	whatsappclient "github.com/mamadbah2/freshstock/pkg/clients/whatsapp"
	"github.com/mamadbah2/freshstock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, closeStore, err := openStore(context.Background(), cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to open document store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()

	itemRepo := repository.NewItemRepository(store, baseLogger.Named("repo.items"))
	orderRepo := repository.NewOrderRepository(store, baseLogger.Named("repo.orders"))

	// Every read-modify-write of the two documents goes through this lock.
	mu := &sync.Mutex{}
	ids := idgen.New(nil)
	thresholds := inventorysvc.Thresholds{List: cfg.Expiry.ListDays, Dashboard: cfg.Expiry.DashboardDays}

	coordinator := transfer.NewCoordinator(itemRepo, orderRepo, ids, mu, baseLogger.Named("svc.transfer"))
	inventorySvc := inventorysvc.NewService(itemRepo, ids, mu, thresholds, baseLogger.Named("svc.inventory"))
	orderSvc := ordersvc.NewService(orderRepo, coordinator, mu, baseLogger.Named("svc.orders"))

	var sheetRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetRepo = repo
	} else {
		baseLogger.Warn("google sheets credentials missing, valuation export disabled")
	}
	reportingSvc := reportingsvc.NewService(itemRepo, sheetRepo, thresholds, baseLogger.Named("svc.reporting"))

	var notifier whatsappclient.Notifier
	if cfg.WhatsApp.Enabled() {
		notifier = whatsappclient.NewClient(cfg.WhatsApp)
	} else {
		baseLogger.Warn("whatsapp token missing, digest alerts disabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifier, cfg.WhatsApp.AlertTo, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	engine := router.New(router.Handlers{
		Inventory: handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory")),
		Orders:    handlers.NewOrdersHandler(orderSvc, baseLogger.Named("handlers.orders")),
		Reports:   handlers.NewReportsHandler(reportingSvc, baseLogger.Named("handlers.reports")),
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStore connects the configured document store backend and returns a
// matching close function.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.DocumentStore, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendMongoDB:
		store, err := mongodb.NewDocumentStore(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(context.Background()); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}, nil

	case config.BackendRedis:
		store := redisstore.NewDocumentStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error("failed to close redis connection", zap.Error(err))
			}
		}, nil

	default:
		log.Warn("using in-memory document store, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}
}
