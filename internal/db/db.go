// Package db provides PostgreSQL persistence for pipeline runs, their
// intermediate artifacts, and their trace records. Persistence is optional:
// the pipeline degrades to file-only output when no database is configured.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/cv-automation/internal/types"
)

// Artifact categories, one per pipeline stage.
const (
	CategoryExtraction = "extraction"
	CategoryRules      = "rules"
	CategoryMatching   = "matching"
	CategoryMapping    = "mapping"
	CategoryReport     = "report"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateRun records a new pipeline run keyed by its input artifacts.
func (db *DB) CreateRun(ctx context.Context, runID uuid.UUID, cvPath, instructionsPath, templatePath string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO pipeline_runs (id, cv_path, instructions_path, template_path, status)
		 VALUES ($1, $2, $3, $4, 'running')`,
		runID, cvPath, instructionsPath, templatePath,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun marks a pipeline run as completed or failed.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE pipeline_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact for a pipeline run.
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, step, category string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, category, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id, step) DO UPDATE SET category = $3, content = $4, created_at = NOW()`,
		runID, step, category, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// SaveTraceRecords bulk-inserts the run's trace records. Records are
// append-only; re-running a persisted run creates a new run row instead of
// mutating existing records.
func (db *DB) SaveTraceRecords(ctx context.Context, runID uuid.UUID, records []types.TraceRecord) error {
	for _, rec := range records {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO trace_records (run_id, seq, step, input_ref, output_ref, status, reason, recorded_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			runID, rec.ID, rec.Step, rec.InputRef, rec.OutputRef, string(rec.Status), rec.Reason, rec.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to save trace record: %w", err)
		}
	}
	return nil
}
