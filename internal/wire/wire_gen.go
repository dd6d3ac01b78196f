// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/mpetrov/code-critic/internal/app"
	"github.com/mpetrov/code-critic/internal/config"
	"github.com/mpetrov/code-critic/internal/db"
	"github.com/mpetrov/code-critic/internal/llm"
	"github.com/mpetrov/code-critic/internal/logger"
	"github.com/mpetrov/code-critic/internal/server"
	"github.com/mpetrov/code-critic/internal/server/handler"
	"github.com/mpetrov/code-critic/internal/server/view"
	"github.com/mpetrov/code-critic/internal/storage"
)

// InitializeApp creates and wires all application dependencies. The returned
// cleanup function closes the database connection.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	slogLogger := logger.NewLogger(provideLoggerConfig(cfg), provideLogWriter())

	dbConn, dbCleanup, err := db.NewDatabase(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Schema bootstrap runs exactly once at startup and is idempotent.
	if err := dbConn.RunMigrations(); err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store := storage.NewStore(provideSqlxDB(dbConn))

	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	groqClient := llm.NewGroqClient(cfg)
	analyzer := llm.NewAnalyzer(cfg, groqClient, promptMgr, slogLogger)

	renderer, err := view.NewRenderer()
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to create view renderer: %w", err)
	}

	pages := handler.NewPageHandler(analyzer, store, renderer, slogLogger)
	httpServer := server.NewServer(ctx, cfg, pages, slogLogger)

	application := app.NewApp(ctx, cfg, slogLogger, httpServer, store, analyzer, dbConn)
	return application, dbCleanup, nil
}
