// Package drafts keeps unsubmitted work-performed items per job so an
// operator can leave the work step and come back without losing input.
package drafts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"fieldops-backend/internal/models"
)

var ErrNoDraft = errors.New("no draft for job")

// Draft is the cached work step input for one job.
type Draft struct {
	JobID     uuid.UUID               `json:"job_id"`
	Items     []models.WorkEntryInput `json:"items"`
	UpdatedBy uuid.UUID               `json:"updated_by"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Repository is the draft contract: save, load, and clear once the items
// have been submitted.
type Repository interface {
	Save(ctx context.Context, d *Draft) error
	Load(ctx context.Context, jobID uuid.UUID) (*Draft, error)
	Clear(ctx context.Context, jobID uuid.UUID) error
}

const schema = `
CREATE TABLE IF NOT EXISTS work_drafts (
	job_id     TEXT PRIMARY KEY,
	items      TEXT NOT NULL,
	updated_by TEXT NOT NULL,
	updated_at DATETIME NOT NULL
)`

// SQLiteRepository stores drafts in a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

// Open opens (creating if needed) the draft database at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*SQLiteRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create drafts directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open drafts database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize drafts schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Save replaces the job's draft.
func (r *SQLiteRepository) Save(ctx context.Context, d *Draft) error {
	if d.JobID == uuid.Nil {
		return fmt.Errorf("draft requires a job id")
	}
	items, err := json.Marshal(d.Items)
	if err != nil {
		return fmt.Errorf("failed to encode draft items: %w", err)
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now().UTC()
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO work_drafts (job_id, items, updated_by, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(job_id) DO UPDATE SET items = excluded.items, updated_by = excluded.updated_by, updated_at = excluded.updated_at`,
		d.JobID.String(), string(items), d.UpdatedBy.String(), d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context, jobID uuid.UUID) (*Draft, error) {
	var items, updatedBy string
	d := Draft{JobID: jobID}
	err := r.db.QueryRowContext(ctx,
		`SELECT items, updated_by, updated_at FROM work_drafts WHERE job_id = ?`,
		jobID.String(),
	).Scan(&items, &updatedBy, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job %s: %w", jobID, ErrNoDraft)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &d.Items); err != nil {
		return nil, fmt.Errorf("failed to decode draft items: %w", err)
	}
	if d.UpdatedBy, err = uuid.Parse(updatedBy); err != nil {
		return nil, fmt.Errorf("failed to decode draft author: %w", err)
	}
	return &d, nil
}

// Clear removes the job's draft. Clearing a missing draft is not an error.
func (r *SQLiteRepository) Clear(ctx context.Context, jobID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_drafts WHERE job_id = ?`, jobID.String()); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
