package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens a gorm connection to PostgreSQL and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*gorm.DB, func() error, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	cleanup := func() error {
		return sqlDB.Close()
	}
	return db, cleanup, nil
}

// ConnectFromEnv connects using the POSTGRES_DSN environment variable. When
// the variable is unset or the connection fails, the caller receives a nil
// database and a no-op cleanup, so the process can fall back to in-memory
// adapters.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		if logger != nil {
			logger.Warn("POSTGRES_DSN not set, persistence disabled")
		}
		return nil, func() {}
	}
	db, cleanup, err := Connect(ctx, dsn)
	if err != nil {
		if logger != nil {
			logger.Warn("postgres connection failed", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	return db, func() { _ = cleanup() }
}
