package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	userspostgres "github.com/happypaws/happypaws-api/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/happypaws/happypaws-api/internal/platform/postgres"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := run(logger); err != nil {
		logger.Error("session purge failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		return errors.New("POSTGRES_DSN not set or connection failed, nothing to purge")
	}

	ttl := sessionTTLFromEnv()
	store := userspostgres.NewSessionStore(db, ttl)
	start := time.Now()
	if err := store.PurgeExpired(ctx); err != nil {
		return err
	}
	logger.Info("expired sessions purged",
		slog.Duration("ttl", ttl),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func sessionTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS"))
	if raw == "" {
		return userspostgres.DefaultSessionTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return userspostgres.DefaultSessionTTL
	}
	return time.Duration(hours) * time.Hour
}
