package repository

import (
	"database/sql"
	"fmt"

	"github.com/atid-store/storecheck/internal/audit"
	"github.com/atid-store/storecheck/internal/database"
)

// AuditRepository handles database operations for audit runs
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a repository over the shared connection
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{
		db: database.DB,
	}
}

// NewAuditRepositoryWithDB creates a repository with a specific database connection
func NewAuditRepositoryWithDB(db *sql.DB) *AuditRepository {
	return &AuditRepository{
		db: db,
	}
}

// CreateRun persists a finished audit run
func (r *AuditRepository) CreateRun(run *audit.Run) error {
	query := `
		INSERT INTO audit_runs (id, store_url, status, line_count, detail, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.StoreURL,
		run.Status,
		run.LineCount,
		run.Detail,
		run.StartedAt,
		run.FinishedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create audit run: %w", err)
	}

	return nil
}

// GetRun retrieves an audit run by its id
func (r *AuditRepository) GetRun(id string) (*audit.Run, error) {
	query := `
		SELECT id, store_url, status, line_count, COALESCE(detail, ''), started_at, finished_at
		FROM audit_runs
		WHERE id = $1
	`

	run := &audit.Run{}
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.StoreURL,
		&run.Status,
		&run.LineCount,
		&run.Detail,
		&run.StartedAt,
		&run.FinishedAt,
	)

	if err == sql.ErrNoRows {
		return nil, audit.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit run: %w", err)
	}

	return run, nil
}

// RecentRuns retrieves the most recently started runs for a store
func (r *AuditRepository) RecentRuns(storeURL string, limit int) ([]*audit.Run, error) {
	query := `
		SELECT id, store_url, status, line_count, COALESCE(detail, ''), started_at, finished_at
		FROM audit_runs
		WHERE store_url = $1
		ORDER BY started_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, storeURL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit runs: %w", err)
	}
	defer rows.Close()

	var runs []*audit.Run
	for rows.Next() {
		run := &audit.Run{}
		if err := rows.Scan(
			&run.ID,
			&run.StoreURL,
			&run.Status,
			&run.LineCount,
			&run.Detail,
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit runs: %w", err)
	}

	return runs, nil
}
