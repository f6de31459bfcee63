package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"tribute-api/internal/config"
	"tribute-api/internal/database"
	"tribute-api/internal/repositories"
	"tribute-api/internal/repositories/sqlite"
)

// Session is a tribute service bound to one database connection
type Session struct {
	Tributes TributeService
	release  func() error
}

// NewSession wraps a service and the function that releases its resources
func NewSession(tributes TributeService, release func() error) *Session {
	return &Session{Tributes: tributes, release: release}
}

// Close releases the session. It is safe to call more than once.
func (s *Session) Close() error {
	if s == nil || s.release == nil {
		return nil
	}
	release := s.release
	s.release = nil
	return release()
}

// DatabaseSessions opens a new database connection for every session
type DatabaseSessions struct {
	config       config.DatabaseConfig
	ensureSchema bool
	logger       *logrus.Logger
}

// NewDatabaseSessions creates a session opener for the configured database.
// When cfg.AutoCreateSchema is set each session makes sure the tributes
// table exists before it is used.
func NewDatabaseSessions(cfg config.DatabaseConfig, logger *logrus.Logger) *DatabaseSessions {
	if logger == nil {
		logger = logrus.New()
	}
	return &DatabaseSessions{
		config:       cfg,
		ensureSchema: cfg.AutoCreateSchema,
		logger:       logger,
	}
}

func (d *DatabaseSessions) connectionManager() *database.ConnectionManager {
	return database.NewConnectionManager(&database.ConnectionConfig{
		URL:             d.config.URL,
		AuthToken:       d.config.AuthToken,
		MaxOpenConns:    d.config.MaxOpenConns,
		ConnMaxLifetime: d.config.ConnMaxLifetime,
		Logger:          d.logger,
	})
}

// CheckHealth connects, runs a trivial query and disconnects
func (d *DatabaseSessions) CheckHealth(ctx context.Context) error {
	cm := d.connectionManager()
	if err := cm.Connect(ctx); err != nil {
		return repositories.ConnectionError(err)
	}
	defer cm.Close()

	return cm.HealthCheck(ctx)
}

// OpenSession connects to the database and returns a ready session
func (d *DatabaseSessions) OpenSession(ctx context.Context) (*Session, error) {
	cm := d.connectionManager()
	if err := cm.Connect(ctx); err != nil {
		return nil, repositories.ConnectionError(err)
	}

	if d.ensureSchema {
		if err := cm.EnsureSchema(ctx); err != nil {
			cm.Close()
			return nil, err
		}
	}

	repo := sqlite.NewTributeRepository(cm.GetDB(), d.logger)
	return NewSession(NewTributeService(repo, d.logger), cm.Close), nil
}
