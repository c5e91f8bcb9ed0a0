package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/kittohq/kitto-backend/api/routes"
	"github.com/kittohq/kitto-backend/internal/bankdetails"
	"github.com/kittohq/kitto-backend/internal/catalog"
	"github.com/kittohq/kitto-backend/internal/locations"
	"github.com/kittohq/kitto-backend/internal/operators"
	"github.com/kittohq/kitto-backend/internal/orders"
	"github.com/kittohq/kitto-backend/internal/withdrawals"
	"github.com/kittohq/kitto-backend/pkg/config"
	"github.com/kittohq/kitto-backend/pkg/db"
	"github.com/kittohq/kitto-backend/pkg/logger"
	"github.com/kittohq/kitto-backend/pkg/metrics"
	"github.com/kittohq/kitto-backend/pkg/migrate"
	pkgredis "github.com/kittohq/kitto-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := pkgredis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	gdb := dbClient.DB()

	operatorsSvc, err := operators.NewService(operators.ServiceParams{
		Repo:           operators.NewRepository(gdb),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	exitOnError(logg, "create operators service", err)

	bankRepo := bankdetails.NewRepository(gdb)
	bankSvc, err := bankdetails.NewService(bankRepo)
	exitOnError(logg, "create bank details service", err)

	locationsSvc, err := locations.NewService(locations.NewRepository(gdb))
	exitOnError(logg, "create locations service", err)

	catalogRepo := catalog.NewRepository(gdb)
	catalogSvc, err := catalog.NewService(catalogRepo)
	exitOnError(logg, "create catalog service", err)

	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Repo:      orders.NewRepository(gdb),
		Tx:        dbClient,
		Catalog:   catalogRepo,
		Locations: locationsSvc,
		Orders:    cfg.Orders,
	})
	exitOnError(logg, "create orders service", err)

	withdrawalsSvc, err := withdrawals.NewService(withdrawals.NewRepository(gdb), bankRepo)
	exitOnError(logg, "create withdrawals service", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.NewRouter(routes.RouterParams{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		Metrics:        httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Operators:      operatorsSvc,
		BankDetails:    bankSvc,
		Locations:      locationsSvc,
		Catalog:        catalogSvc,
		Orders:         ordersSvc,
		Withdrawals:    withdrawalsSvc,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		closeErr := multierr.Combine(
			server.Shutdown(shutdownCtx),
			redisClient.Close(),
			dbClient.Close(),
		)
		if closeErr != nil {
			logg.Error(ctx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
	}
}

func exitOnError(logg *logger.Logger, msg string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
