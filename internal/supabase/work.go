package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fieldops-backend/internal/models"
)

func (d *DatabaseClient) CreateWorkEntry(ctx context.Context, entry *models.WorkEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to encode work details: %w", err)
	}
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO work_performed (id, job_id, item_name, quantity, notes, kind, details, work_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, entry.ID, entry.JobID, entry.ItemName, entry.Quantity, entry.Notes,
		entry.Details.Kind(), details, entry.WorkDate, entry.CreatedBy)
	return classify(err, "create work entry")
}

func (d *DatabaseClient) ListWorkEntries(ctx context.Context, jobID uuid.UUID) ([]models.WorkEntry, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, job_id, item_name, quantity, notes, kind, details, work_date, created_by, created_at
		FROM work_performed
		WHERE job_id = $1
		ORDER BY created_at ASC
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work entries: %w", err)
	}
	defer rows.Close()

	var entries []models.WorkEntry
	for rows.Next() {
		var (
			e    models.WorkEntry
			kind models.WorkKind
			raw  []byte
		)
		if err := rows.Scan(&e.ID, &e.JobID, &e.ItemName, &e.Quantity, &e.Notes, &kind, &raw,
			&e.WorkDate, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan work entry: %w", err)
		}
		if e.Details, err = models.DecodeWorkDetails(kind, raw); err != nil {
			return nil, fmt.Errorf("work entry %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (d *DatabaseClient) CountWorkEntries(ctx context.Context, jobID uuid.UUID) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM work_performed WHERE job_id = $1`, jobID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count work entries: %w", err)
	}
	return n, nil
}

// StartStandby opens a standby log. A second active log for the same job is
// rejected by a partial unique index.
func (d *DatabaseClient) StartStandby(ctx context.Context, log *models.StandbyLog) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO standby_logs (id, job_id, started_at, reason, status)
		VALUES ($1, $2, $3, $4, 'active')
	`, log.ID, log.JobID, log.StartedAt, log.Reason)
	return classify(err, "start standby")
}

func (d *DatabaseClient) StopStandby(ctx context.Context, jobID, logID uuid.UUID, endedAt time.Time, hours decimal.Decimal) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE standby_logs
		SET ended_at = $1, duration_hours = $2, status = 'completed'
		WHERE id = $3 AND job_id = $4 AND status = 'active'
	`, endedAt, hours, logID, jobID)
	if err != nil {
		return classify(err, "stop standby")
	}
	return expectOne(res, "stop standby")
}

func (d *DatabaseClient) GetStandbyLog(ctx context.Context, logID uuid.UUID) (*models.StandbyLog, error) {
	var l models.StandbyLog
	err := d.db.QueryRowContext(ctx, `
		SELECT id, job_id, started_at, ended_at, duration_hours, reason, status, created_at
		FROM standby_logs WHERE id = $1
	`, logID).Scan(&l.ID, &l.JobID, &l.StartedAt, &l.EndedAt, &l.DurationHours, &l.Reason, &l.Status, &l.CreatedAt)
	if err != nil {
		return nil, classify(err, "get standby log")
	}
	return &l, nil
}

func (d *DatabaseClient) ListStandbyLogs(ctx context.Context, jobID uuid.UUID) ([]models.StandbyLog, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, job_id, started_at, ended_at, duration_hours, reason, status, created_at
		FROM standby_logs
		WHERE job_id = $1
		ORDER BY started_at ASC
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standby logs: %w", err)
	}
	defer rows.Close()

	var logs []models.StandbyLog
	for rows.Next() {
		var l models.StandbyLog
		if err := rows.Scan(&l.ID, &l.JobID, &l.StartedAt, &l.EndedAt, &l.DurationHours,
			&l.Reason, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan standby log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
