// Package dbtest opens throwaway SQLite stores with the sales schema applied.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/vendas-backend/pkg/config"
	"github.com/angelmondragon/vendas-backend/pkg/db"
	"github.com/angelmondragon/vendas-backend/pkg/migrate"
)

// NewSQLite returns a client over a fresh SQLite file in t.TempDir(), with
// foreign keys enforced and the schema migrated. It is closed on cleanup.
func NewSQLite(t testing.TB) *db.Client {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vendas.db")
	conn, err := gorm.Open(sqlite.Open(db.SQLiteDSN(path, false)), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if _, err := migrate.Up(context.Background(), sqlDB, config.DriverSQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db.NewFromGorm(conn, config.DriverSQLite)
}

// Count returns the number of rows in table.
func Count(t testing.TB, client *db.Client, table string) int64 {
	t.Helper()

	var n int64
	if err := client.DB().Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
