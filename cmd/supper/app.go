package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/dukerupert/supper/internal/config"
	"github.com/dukerupert/supper/internal/database"
	"github.com/dukerupert/supper/internal/logging"
)

// env is what every command starts from: the loaded config, a logger and
// the opened database.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
}

func setup(cmd *cli.Command) (*env, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.Setup(cfg.App.LogLevel, cfg.App.LogFormat)
	logger.Debug("configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel))

	db, err := database.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &env{cfg: cfg, logger: logger, db: db}, nil
}
