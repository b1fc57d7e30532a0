package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dev/bravebird/ui-check-go/pkg/models"

	_ "github.com/go-sql-driver/mysql"
)

// DB represents the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection
func New(dsn string) (*DB, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// ==================== Suite Runs ====================

// CreateSuiteRun creates a new suite run
func (db *DB) CreateSuiteRun(ctx context.Context, run *models.SuiteRun) error {
	query := `
		INSERT INTO suite_runs (id, suite_name, target_url, temporal_run_id, temporal_workflow_id, status, started_at, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.conn.ExecContext(ctx, query,
		run.ID,
		run.SuiteName,
		run.TargetURL,
		run.TemporalRunID,
		run.TemporalWorkflowID,
		run.Status,
		run.StartedAt,
		run.ErrorMessage,
	)

	return err
}

// GetSuiteRun retrieves a suite run by ID
func (db *DB) GetSuiteRun(ctx context.Context, id string) (*models.SuiteRun, error) {
	query := `
		SELECT id, suite_name, target_url, temporal_run_id, temporal_workflow_id,
		       status, started_at, completed_at, error_message
		FROM suite_runs
		WHERE id = ?
	`

	var run models.SuiteRun
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.SuiteName,
		&run.TargetURL,
		&run.TemporalRunID,
		&run.TemporalWorkflowID,
		&run.Status,
		&run.StartedAt,
		&run.CompletedAt,
		&run.ErrorMessage,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &run, nil
}

// ListSuiteRuns retrieves runs, optionally filtered by suite name
func (db *DB) ListSuiteRuns(ctx context.Context, suiteName string) ([]models.SuiteRun, error) {
	query := `
		SELECT id, suite_name, target_url, temporal_run_id, temporal_workflow_id,
		       status, started_at, completed_at, error_message
		FROM suite_runs
	`
	args := []interface{}{}
	if suiteName != "" {
		query += ` WHERE suite_name = ?`
		args = append(args, suiteName)
	}
	query += ` ORDER BY started_at DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.SuiteRun
	for rows.Next() {
		var run models.SuiteRun
		err := rows.Scan(
			&run.ID,
			&run.SuiteName,
			&run.TargetURL,
			&run.TemporalRunID,
			&run.TemporalWorkflowID,
			&run.Status,
			&run.StartedAt,
			&run.CompletedAt,
			&run.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, nil
}

// UpdateSuiteRunStatus updates the status of a suite run
func (db *DB) UpdateSuiteRunStatus(ctx context.Context, id string, status models.RunStatus, errorMsg string) error {
	query := `
		UPDATE suite_runs
		SET status = ?, error_message = ?,
		    completed_at = CASE WHEN ? IN ('passed', 'failed', 'canceled') THEN NOW() ELSE completed_at END
		WHERE id = ?
	`

	_, err := db.conn.ExecContext(ctx, query, status, errorMsg, status, id)
	return err
}

// UpdateSuiteRunTemporalIDs records the Temporal workflow identifiers
func (db *DB) UpdateSuiteRunTemporalIDs(ctx context.Context, id, workflowID, runID string) error {
	query := `
		UPDATE suite_runs
		SET temporal_workflow_id = ?, temporal_run_id = ?
		WHERE id = ?
	`

	_, err := db.conn.ExecContext(ctx, query, workflowID, runID, id)
	return err
}

// ==================== Check Results ====================

// CreateCheckResults inserts the results of a completed run
func (db *DB) CreateCheckResults(ctx context.Context, runID string, results []models.CheckResult) error {
	query := `
		INSERT INTO check_results (id, run_id, sequence_id, check_type, status, observed, expected, screenshot_path, error_message, executed_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, result := range results {
		_, err := stmt.ExecContext(ctx,
			result.ID,
			runID,
			result.SequenceID,
			result.Type,
			result.Status,
			result.Observed,
			result.Expected,
			result.ScreenshotPath,
			result.ErrorMessage,
			result.ExecutedAt,
			result.Duration,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result: %w", err)
		}
	}

	return tx.Commit()
}

// GetCheckResults retrieves check results for a run
func (db *DB) GetCheckResults(ctx context.Context, runID string) ([]models.CheckResult, error) {
	query := `
		SELECT id, run_id, sequence_id, check_type, status, observed, expected,
		       screenshot_path, error_message, executed_at, duration_ms
		FROM check_results
		WHERE run_id = ?
		ORDER BY sequence_id
	`

	rows, err := db.conn.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	defer rows.Close()

	var results []models.CheckResult
	for rows.Next() {
		var result models.CheckResult
		err := rows.Scan(
			&result.ID,
			&result.RunID,
			&result.SequenceID,
			&result.Type,
			&result.Status,
			&result.Observed,
			&result.Expected,
			&result.ScreenshotPath,
			&result.ErrorMessage,
			&result.ExecutedAt,
			&result.Duration,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, result)
	}

	return results, nil
}
