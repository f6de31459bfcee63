package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// TributesSchema creates the tributes table if it is missing
const TributesSchema = `
CREATE TABLE IF NOT EXISTS tributes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	from_name TEXT NOT NULL,
	message TEXT NOT NULL,
	photos TEXT,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tributes_created_at ON tributes (created_at DESC);
`

// EnsureSchema creates the tributes table on a connected database. It is
// idempotent and is meant for local development and tests.
func (cm *ConnectionManager) EnsureSchema(ctx context.Context) error {
	if cm.db == nil {
		return fmt.Errorf("database connection not established")
	}

	if _, err := cm.db.ExecContext(ctx, TributesSchema); err != nil {
		return fmt.Errorf("failed to create tributes schema: %w", err)
	}

	cm.config.Logger.WithFields(logrus.Fields{"table": "tributes"}).Debug("Schema ensured")
	return nil
}
