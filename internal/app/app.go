// Package app initializes and orchestrates the main components of the Code
// Critic application. It wires together the configuration, server, storage,
// and analyzer.
package app

import (
	"context"
	"log/slog"

	"github.com/mpetrov/code-critic/internal/config"
	"github.com/mpetrov/code-critic/internal/core"
	"github.com/mpetrov/code-critic/internal/db"
	"github.com/mpetrov/code-critic/internal/server"
	"github.com/mpetrov/code-critic/internal/storage"
)

// App holds the main application components. The fields are exported so the
// CLI can drive the same analyzer and store without going through HTTP.
type App struct {
	Ctx      context.Context
	Cfg      *config.Config
	Logger   *slog.Logger
	Server   *server.Server
	Store    storage.Store
	Analyzer core.Analyzer
	DB       *db.DB
}

// NewApp assembles the application from its already-constructed parts.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, srv *server.Server, store storage.Store, analyzer core.Analyzer, dbConn *db.DB) *App {
	return &App{
		Ctx:      ctx,
		Cfg:      cfg,
		Logger:   logger,
		Server:   srv,
		Store:    store,
		Analyzer: analyzer,
		DB:       dbConn,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.Logger.Info("starting Code Critic",
		"server_port", a.Cfg.ServerPort,
		"model", a.Cfg.ModelName,
		"database", a.Cfg.DatabasePath,
	)

	if err := a.Server.Start(); err != nil {
		a.Logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly. The database connection is closed
// by the cleanup function returned from initialization.
func (a *App) Stop() error {
	a.Logger.Info("shutting down Code Critic services")

	if err := a.Server.Stop(); err != nil {
		a.Logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}

	a.Logger.Info("Code Critic stopped successfully")
	return nil
}
