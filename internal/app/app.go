// Package app wires configuration, storage, domain services and the HTTP
// server into a running application.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/optimus-erp/procure-api/internal/domain/auth"
	"github.com/optimus-erp/procure-api/internal/domain/event"
	"github.com/optimus-erp/procure-api/internal/domain/order"
	"github.com/optimus-erp/procure-api/internal/domain/product"
	"github.com/optimus-erp/procure-api/internal/domain/supplier"
	"github.com/optimus-erp/procure-api/internal/handler"
	"github.com/optimus-erp/procure-api/internal/repository"
	"github.com/optimus-erp/procure-api/internal/repository/memory"
	"github.com/optimus-erp/procure-api/pkg/health"
	"github.com/optimus-erp/procure-api/pkg/httpmiddleware"
)

// deps bundles the storage implementations the server runs on.
type deps struct {
	products  product.Repository
	suppliers supplier.Repository
	orders    order.Repository
	orderIDs  order.IDSource
	apikeys   auth.Repository
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	healthSvc := health.New()

	var d deps
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := repository.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}

		orderRepo := repository.NewOrderRepository(pool)
		d = deps{
			products:  repository.NewProductRepository(pool),
			suppliers: repository.NewSupplierRepository(pool),
			orders:    orderRepo,
			orderIDs:  orderRepo,
			apikeys:   repository.NewAPIKeyRepository(pool),
		}

		healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
	} else {
		lg.Warn("No database URL configured, using in-memory demo store")
		stores, err := memory.NewSeededStores()
		if err != nil {
			return errors.Wrap(err, "seed memory store")
		}
		if cfg.APIKeyPepper != "" {
			stores.APIKeys.Add(
				handler.HashAPIKey("dev-api-key", []byte(cfg.APIKeyPepper)),
				"dev", []string{"write"},
			)
		}
		d = deps{
			products:  stores.Products,
			suppliers: stores.Suppliers,
			orders:    stores.Orders,
			orderIDs:  stores.Orders,
			apikeys:   stores.APIKeys,
		}
	}

	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Domain services.
	eventLog := event.NewMemoryLog()
	orderService := order.NewService(
		d.products, d.suppliers, d.orders, d.orderIDs, eventLog, cfg.LowStockThreshold)

	// HTTP handlers.
	h := handler.NewHandler(
		handler.Config{Locale: cfg.Locale, LowStockThreshold: cfg.LowStockThreshold},
		d.products, d.suppliers, d.orders, orderService, eventLog,
	)
	apiRoutes := h.Routes(handler.RequireAPIKey(d.apikeys, []byte(cfg.APIKeyPepper)))

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", apiRoutes)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization", handler.APIKeyHeader},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("procure-api", m),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
