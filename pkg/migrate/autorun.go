package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/vendas-backend/pkg/config"
	"github.com/angelmondragon/vendas-backend/pkg/db"
	"github.com/angelmondragon/vendas-backend/pkg/logger"
)

// MaybeRun ensures the sales schema exists before an import when the
// auto-migrate flag is enabled. Read-only connections are never migrated.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate || cfg.DB.ReadOnly {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithField(ctx, "dialect", client.Dialect())
	logg.Debug(ctx, "ensuring schema")

	applied, err := Up(ctx, sqlDB, client.Dialect())
	if err != nil {
		return db.ClassifyError(fmt.Errorf("running goose up: %w", err))
	}

	if applied > 0 {
		logg.Info(logg.WithField(ctx, "applied", applied), "schema migrations applied")
	}
	return nil
}
