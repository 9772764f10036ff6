package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/importsweep/importsweep/internal/model"
)

// SessionDB provides SQLite-based storage for cleanup session history.
// It manages connection pooling and provides methods for saving and
// querying session reports.
//
// Design decision: We use a single database file shared by every corpus
// root rather than a file per corpus. This keeps history queries across
// projects in one place and simplifies backup/restore operations.
type SessionDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures SessionDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a SessionDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*SessionDB, error) {
	dbPath := filepath.Join(dbDir, "importsweep.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// modernc.org/sqlite uses URI-style parameters. When CreateIfNotExists
	// is false, mode=rw prevents creating new files; mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer, so keep the pool at a single
	// connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SessionDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *SessionDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *SessionDB) createTables() error {
	schema := `
	-- Session records store complete session reports as JSON, keyed by
	-- the corpus root they were run against.
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		status TEXT NOT NULL,
		report_json TEXT NOT NULL,
		impact_summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_root ON sessions(root);
	CREATE INDEX IF NOT EXISTS idx_sessions_timestamp ON sessions(timestamp);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveSessionReport saves a complete session report as JSON under the
// given corpus root.
func (sdb *SessionDB) SaveSessionReport(ctx context.Context, root string, report *model.SessionReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	// The impact summary is stored separately so history listings can
	// show it without unmarshaling the full report.
	impactJSON, _ := json.Marshal(report.Impact) //nolint:errcheck,errchkjson // Impact is a flat struct; Marshal won't fail

	query := `
	INSERT INTO sessions (root, status, report_json, impact_summary)
	VALUES (?, ?, ?, ?)
	`

	_, err = sdb.db.ExecContext(ctx, query,
		root,
		report.SessionInfo.Status,
		string(reportJSON),
		string(impactJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save session report: %w", err)
	}

	return nil
}

// GetLatestSessionReport retrieves the most recent session report for a
// corpus root. Returns nil without error when no report exists.
func (sdb *SessionDB) GetLatestSessionReport(ctx context.Context, root string) (*model.SessionReport, error) {
	query := `
	SELECT report_json FROM sessions
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := sdb.db.QueryRowContext(ctx, query, root).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session report: %w", err)
	}

	var report model.SessionReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListRoots returns every corpus root that has at least one saved session.
func (sdb *SessionDB) ListRoots(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT root FROM sessions
	ORDER BY root
	`

	rows, err := sdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("failed to scan root: %w", err)
		}
		roots = append(roots, root)
	}

	return roots, rows.Err()
}

// GetHistory retrieves all session reports for a corpus root, newest first.
func (sdb *SessionDB) GetHistory(ctx context.Context, root string) ([]*model.SessionReport, error) {
	query := `
	SELECT report_json FROM sessions
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := sdb.db.QueryContext(ctx, query, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get session history: %w", err)
	}
	defer rows.Close()

	var reports []*model.SessionReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report model.SessionReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// SessionMetadata contains summary information about a stored session.
// This is used for displaying session history without loading the full
// report.
type SessionMetadata struct {
	// ID is the unique identifier of the session in the database.
	ID int64

	// Root is the corpus root the session ran against.
	Root string

	// Timestamp is when the session was saved.
	Timestamp time.Time

	// Status is the session outcome ("done" or "failed").
	Status string

	// Impact summarizes what the session did to the corpus.
	Impact model.Impact
}

// GetHistoryWithMetadata retrieves session metadata for a corpus root.
// This is more efficient than GetHistory when only metadata is needed.
func (sdb *SessionDB) GetHistoryWithMetadata(ctx context.Context, root string) ([]SessionMetadata, error) {
	query := `
	SELECT id, root, timestamp, status, impact_summary
	FROM sessions
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := sdb.db.QueryContext(ctx, query, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get session history: %w", err)
	}
	defer rows.Close()

	var results []SessionMetadata
	for rows.Next() {
		var meta SessionMetadata
		var timestamp string
		var impactJSON sql.NullString

		if err := rows.Scan(&meta.ID, &meta.Root, &timestamp, &meta.Status, &impactJSON); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)

		if impactJSON.Valid && impactJSON.String != "" {
			if err := json.Unmarshal([]byte(impactJSON.String), &meta.Impact); err != nil {
				meta.Impact = model.Impact{}
			}
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetSessionReportByID retrieves a session report by its database ID.
// Returns nil without error when no such row exists.
func (sdb *SessionDB) GetSessionReportByID(ctx context.Context, id int64) (*model.SessionReport, error) {
	query := `
	SELECT report_json FROM sessions
	WHERE id = ?
	`

	var reportJSON string
	err := sdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session report: %w", err)
	}

	var report model.SessionReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
