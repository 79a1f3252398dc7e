package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"runner-dashboard/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDSN keeps uploads in a shared in-memory database that lives as long
// as the process.
const DefaultDSN = "file:runner?mode=memory&cache=shared"

// ErrNotFound is returned when an upload id is unknown.
var ErrNotFound = errors.New("upload not found")

// SQLiteStore holds processed uploads, their records and their errors
type SQLiteStore struct {
	db *sql.DB
}

// New opens the database and creates tables if they do not exist
func New(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	// a single connection keeps the in-memory database alive and avoids
	// shared-cache table locks between writers
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	uploadTable := `
	CREATE TABLE IF NOT EXISTS uploads (
		id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL,
		checksum TEXT NOT NULL,
		status TEXT NOT NULL,
		record_count INTEGER NOT NULL DEFAULT 0,
		error_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_uploads_checksum ON uploads(checksum);
	`
	recordTable := `
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		upload_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		run_date TEXT NOT NULL,
		person TEXT NOT NULL,
		miles REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_records_upload ON records(upload_id, position);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS upload_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		upload_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		row_num INTEGER NOT NULL,
		field TEXT NOT NULL,
		message TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_upload_errors_upload ON upload_errors(upload_id, position);
	`

	for _, stmt := range []string{uploadTable, recordTable, errorTable} {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveUpload stores an upload together with its records and errors in one transaction
func (s *SQLiteStore) SaveUpload(ctx context.Context, upload *model.Upload, records []model.Record, errs []model.ValidationError) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO uploads (id, file_name, checksum, status, record_count, error_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		upload.ID, upload.FileName, upload.Checksum, upload.Status, upload.RecordCount, upload.ErrorCount, upload.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("store: insert upload: %w", err)
	}

	if len(records) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (upload_id, position, run_date, person, miles) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("store: prepare records: %w", err)
		}
		defer stmt.Close()
		for i, rec := range records {
			if _, err := stmt.ExecContext(ctx, upload.ID, i, rec.Date, rec.Person, rec.Miles); err != nil {
				return fmt.Errorf("store: insert record %d: %w", i, err)
			}
		}
	}

	if len(errs) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO upload_errors (upload_id, position, row_num, field, message) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("store: prepare errors: %w", err)
		}
		defer stmt.Close()
		for i, e := range errs {
			if _, err := stmt.ExecContext(ctx, upload.ID, i, e.Row, e.Field, e.Message); err != nil {
				return fmt.Errorf("store: insert error %d: %w", i, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

const uploadColumns = `id, file_name, checksum, status, record_count, error_count, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUpload(row rowScanner) (*model.Upload, error) {
	u := &model.Upload{}
	var createdAt time.Time
	if err := row.Scan(&u.ID, &u.FileName, &u.Checksum, &u.Status, &u.RecordCount, &u.ErrorCount, &createdAt); err != nil {
		return nil, err
	}
	u.CreatedAt = createdAt.UTC()
	return u, nil
}

// GetUpload fetches one upload by id
func (s *SQLiteStore) GetUpload(ctx context.Context, id string) (*model.Upload, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+uploadColumns+` FROM uploads WHERE id = ?`, id)
	u, err := scanUpload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("store: get upload: %w", err)
	}
	return u, nil
}

// FindValidByChecksum returns the most recent valid upload with the given checksum
func (s *SQLiteStore) FindValidByChecksum(ctx context.Context, checksum string) (*model.Upload, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+uploadColumns+` FROM uploads WHERE checksum = ? AND status = ? ORDER BY created_at DESC LIMIT 1`,
		checksum, model.StatusValid)
	u, err := scanUpload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("store: find by checksum: %w", err)
	}
	return u, nil
}

// ListUploads returns all uploads, newest first
func (s *SQLiteStore) ListUploads(ctx context.Context) ([]*model.Upload, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+uploadColumns+` FROM uploads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list uploads: %w", err)
	}
	defer rows.Close()

	uploads := make([]*model.Upload, 0)
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan upload: %w", err)
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// GetRecords returns the records of an upload in file order
func (s *SQLiteStore) GetRecords(ctx context.Context, uploadID string) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_date, person, miles FROM records WHERE upload_id = ? ORDER BY position`, uploadID)
	if err != nil {
		return nil, fmt.Errorf("store: get records: %w", err)
	}
	defer rows.Close()

	records := make([]model.Record, 0)
	for rows.Next() {
		var rec model.Record
		if err := rows.Scan(&rec.Date, &rec.Person, &rec.Miles); err != nil {
			return nil, fmt.Errorf("store: scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetErrors returns the validation errors of an upload in discovery order
func (s *SQLiteStore) GetErrors(ctx context.Context, uploadID string) ([]model.ValidationError, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT row_num, field, message FROM upload_errors WHERE upload_id = ? ORDER BY position`, uploadID)
	if err != nil {
		return nil, fmt.Errorf("store: get errors: %w", err)
	}
	defer rows.Close()

	errs := make([]model.ValidationError, 0)
	for rows.Next() {
		var e model.ValidationError
		if err := rows.Scan(&e.Row, &e.Field, &e.Message); err != nil {
			return nil, fmt.Errorf("store: scan error: %w", err)
		}
		errs = append(errs, e)
	}
	return errs, rows.Err()
}

// DeleteUpload removes an upload with its records and errors
func (s *SQLiteStore) DeleteUpload(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM records WHERE upload_id = ?`,
		`DELETE FROM upload_errors WHERE upload_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("store: delete upload: %w", err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM uploads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete upload: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// Close releases the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
