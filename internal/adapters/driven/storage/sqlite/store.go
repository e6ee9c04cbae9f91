package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docsmith-labs/docsmith-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
)

// typeSeparator joins document types into a single column value. Types
// never contain commas, so a plain join is unambiguous.
const typeSeparator = ","

// RunStore is a SQLite-backed run history store.
type RunStore struct {
	db   *sql.DB
	path string
}

var _ driven.RunStore = (*RunStore)(nil)

// NewRunStore creates a SQLite run store at the specified data directory.
// If dataDir is empty, defaults to ~/.docsmith/data/runs.db.
func NewRunStore(dataDir string) (*RunStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docsmith", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &RunStore{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *RunStore) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *RunStore) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveRun stores or updates a run record.
func (s *RunStore) SaveRun(ctx context.Context, run domain.RunRecord) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run ID is required", domain.ErrValidation)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, request, state, document_types, output_dir, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			request = excluded.request,
			state = excluded.state,
			document_types = excluded.document_types,
			output_dir = excluded.output_dir,
			error = excluded.error,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`, run.ID, run.Request, string(run.State), joinTypes(run.DocumentTypes),
		run.OutputDir, run.Error, run.StartedAt, nullTime(run.FinishedAt))

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// SaveSteps stores the step records of a run in append order.
func (s *RunStore) SaveSteps(ctx context.Context, runID string, steps []domain.StepRecord) error {
	if len(steps) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_steps (run_id, position, step, status, detail, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, step := range steps {
		if _, err := stmt.ExecContext(ctx, runID, i, step.Step, string(step.Status),
			step.Detail, step.StartedAt, step.FinishedAt); err != nil {
			return fmt.Errorf("saving step %q: %w", step.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(ctx context.Context, runID string) (*domain.RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, request, state, document_types, output_dir, error, started_at, finished_at
		FROM runs WHERE id = ?
	`, runID)

	run, err := scanRun(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// GetSteps retrieves the step records of a run in append order.
func (s *RunStore) GetSteps(ctx context.Context, runID string) ([]domain.StepRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT step, status, detail, started_at, finished_at
		FROM run_steps WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying steps: %w", err)
	}
	defer rows.Close()

	var steps []domain.StepRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var step domain.StepRecord
		var status string
		var startedAt, finishedAt sql.NullTime
		if err := rows.Scan(&step.Step, &status, &step.Detail, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning step: %w", err)
		}
		step.Status = domain.StepStatus(status)
		if startedAt.Valid {
			step.StartedAt = startedAt.Time
		}
		if finishedAt.Valid {
			step.FinishedAt = finishedAt.Time
		}
		steps = append(steps, step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating steps: %w", err)
	}

	return steps, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request, state, document_types, output_dir, error, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// scanRun scans a run record via the given row scan function.
func scanRun(scan func(dest ...any) error) (*domain.RunRecord, error) {
	var run domain.RunRecord
	var state, types string
	var errMsg sql.NullString
	var startedAt, finishedAt sql.NullTime

	if err := scan(&run.ID, &run.Request, &state, &types,
		&run.OutputDir, &errMsg, &startedAt, &finishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.State = domain.RunState(state)
	run.DocumentTypes = splitTypes(types)
	run.Error = errMsg.String
	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	return &run, nil
}

// joinTypes encodes document types as a comma-separated column value.
func joinTypes(types []domain.DocumentType) string {
	if len(types) == 0 {
		return ""
	}
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, typeSeparator)
}

// splitTypes decodes a comma-separated column value into document types.
func splitTypes(value string) []domain.DocumentType {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, typeSeparator)
	types := make([]domain.DocumentType, len(parts))
	for i, p := range parts {
		types[i] = domain.DocumentType(p)
	}
	return types
}

// nullTime converts a zero time to NULL for storage.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
