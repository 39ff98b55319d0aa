package database

import (
	"fmt"
	"log"
)

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	createAuditRunsTable := `
	CREATE TABLE IF NOT EXISTS audit_runs (
		id UUID PRIMARY KEY,
		store_url VARCHAR(2048) NOT NULL,
		status VARCHAR(50) NOT NULL,
		line_count INTEGER NOT NULL DEFAULT 0,
		detail TEXT,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_audit_runs_store_url ON audit_runs(store_url);
	CREATE INDEX IF NOT EXISTS idx_audit_runs_status ON audit_runs(status);
	`

	_, err := DB.Exec(createAuditRunsTable)
	if err != nil {
		return fmt.Errorf("failed to create audit_runs table: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
