package server

import (
	"os"

	"github.com/sirupsen/logrus"

	"tribute-api/internal/config"
	"tribute-api/internal/handlers"
	"tribute-api/internal/services"
	"tribute-api/pkg/lambda"
)

// Container holds all application dependencies. It holds no database
// connection; every invocation opens and closes its own session.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Sessions *services.DatabaseSessions
	Tributes *handlers.TributeHandler
	Warmer   *lambda.Warmer
}

// NewContainer creates a new dependency injection container. A missing
// database URL or token is not an error here; the handlers report it per
// request.
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := NewLogger(cfg)
	sessions := services.NewDatabaseSessions(cfg.Database, logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Sessions: sessions,
		Tributes: handlers.NewTributeHandler(cfg, sessions, logger),
		Warmer:   lambda.NewWarmer(logger),
	}, nil
}

// NewLogger creates the application logger. Lambda output is JSON so log
// tooling can parse the fields.
func NewLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if config.IsServerlessMode() || cfg.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
