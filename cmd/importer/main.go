package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/vendas-backend/internal/importer"
	"github.com/angelmondragon/vendas-backend/internal/sales"
	"github.com/angelmondragon/vendas-backend/pkg/config"
	"github.com/angelmondragon/vendas-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/vendas-backend/pkg/errors"
	"github.com/angelmondragon/vendas-backend/pkg/logger"
	"github.com/angelmondragon/vendas-backend/pkg/metrics"
	"github.com/angelmondragon/vendas-backend/pkg/migrate"
	"github.com/angelmondragon/vendas-backend/pkg/redis"
)

const serviceName = "importer"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one import and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	path, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "usage: importer <sales-file>")
		return pkgerrors.ExitCode(err)
	}

	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		return pkgerrors.ExitCode(pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid configuration"))
	}
	// The importer is the only writer.
	cfg.DB.ReadOnly = false

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Console:     cfg.App.ConsoleLogs(),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		return pkgerrors.ExitCode(err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to ensure schema", err)
		return pkgerrors.ExitCode(err)
	}

	params := importer.ServiceParams{
		Logger:  logg,
		DB:      dbClient,
		Applier: sales.NewExecutor(sales.NewRepository(dbClient.DB())),
	}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			return pkgerrors.ExitCode(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()

		lock, err := importer.NewRedisLock(redisClient, cfg.Import.LockKey, cfg.Import.LockTTL)
		if err != nil {
			logg.Error(ctx, "failed to create import lock", err)
			return pkgerrors.ExitCode(err)
		}
		params.Lock = lock
		params.State = redisClient
		params.StateKey = redisClient.ImportKey("last")
	}

	registry := prometheus.NewRegistry()
	params.Metrics = metrics.NewImportMetrics(registry)

	service, err := importer.NewService(params)
	if err != nil {
		logg.Error(ctx, "failed to create import service", err)
		return pkgerrors.ExitCode(err)
	}

	summary, runErr := service.Run(ctx, path)

	if err := metrics.WriteTextfile(cfg.Import.MetricsTextfile, registry); err != nil {
		logg.Error(ctx, "failed to write metrics textfile", err)
	}

	if runErr != nil {
		fmt.Fprintln(stderr, runErr)
		return pkgerrors.ExitCode(runErr)
	}

	fmt.Fprintf(stdout, "imported %d records from %s\n", summary.Records, summary.File)
	return 0
}

func parseArgs(args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("expected exactly one sales file argument, got %d", len(args)))
	}
	return args[0], nil
}
