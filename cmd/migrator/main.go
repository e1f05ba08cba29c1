package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"shopapi/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	m, err := migrate.New(
		fmt.Sprintf("file://%s", cfg.Migrations.Path),
		cfg.Database.GetDSN(),
	)
	if err != nil {
		slog.Error("failed to create migrator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("no migrations to apply")

			return
		}

		slog.Error("failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("migrations applied successfully")
}
