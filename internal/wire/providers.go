package wire

import (
	"io"
	"os"

	"github.com/google/wire"
	"github.com/jmoiron/sqlx"

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

// AppSet lists every provider needed to build the application.
var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	handler.NewPageHandler,
	view.NewRenderer,
	logger.NewLogger,
	config.LoadConfig,
	db.NewDatabase,
	storage.NewStore,
	llm.NewGroqClient,
	llm.NewPromptManager,
	llm.NewAnalyzer,
	provideLoggerConfig,
	provideLogWriter,
	provideSqlxDB,
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter() io.Writer {
	return os.Stdout
}

func provideSqlxDB(dbConn *db.DB) *sqlx.DB {
	return dbConn.DB
}
