package supabase

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
)

const jobColumns = `id, job_number, customer_name, customer_contact, location, description,
	operator_id, priority, difficulty, scheduled_date, arrival_time, estimated_days, status,
	quoted_amount, completion_signer_name, completion_signature, completion_signed_at,
	contact_not_on_site, completed_at, rating_overall, rating_cleanliness, rating_communication,
	agreement_pdf_path, agreement_pdf_generated_at, liability_release_pdf_path,
	liability_release_pdf_generated_at, silica_pdf_path, silica_pdf_generated_at,
	created_at, updated_at`

func scanJob(row rowScanner) (*models.Job, error) {
	var job models.Job
	err := row.Scan(
		&job.ID, &job.JobNumber, &job.CustomerName, &job.CustomerContact, &job.Location, &job.Description,
		&job.OperatorID, &job.Priority, &job.Difficulty, &job.ScheduledDate, &job.ArrivalTime, &job.EstimatedDays, &job.Status,
		&job.QuotedAmount, &job.CompletionSignerName, &job.CompletionSignature, &job.CompletionSignedAt,
		&job.ContactNotOnSite, &job.CompletedAt, &job.RatingOverall, &job.RatingCleanliness, &job.RatingCommunication,
		&job.AgreementPDF.Path, &job.AgreementPDF.GeneratedAt, &job.LiabilityReleasePDF.Path,
		&job.LiabilityReleasePDF.GeneratedAt, &job.SilicaPDF.Path, &job.SilicaPDF.GeneratedAt,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (d *DatabaseClient) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	row := d.db.QueryRowContext(ctx, `
		INSERT INTO jobs (id, job_number, customer_name, customer_contact, location, description,
			operator_id, priority, difficulty, scheduled_date, estimated_days, status, quoted_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+jobColumns,
		job.ID, job.JobNumber, job.CustomerName, job.CustomerContact, job.Location, job.Description,
		job.OperatorID, job.Priority, job.Difficulty, job.ScheduledDate, job.EstimatedDays, job.Status, job.QuotedAmount,
	)
	created, err := scanJob(row)
	if err != nil {
		return nil, classify(err, "create job")
	}
	return created, nil
}

func (d *DatabaseClient) GetJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
	job, err := scanJob(row)
	if err != nil {
		return nil, classify(err, "get job")
	}
	return job, nil
}

func (d *DatabaseClient) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.OperatorID.Valid {
		args = append(args, filter.OperatorID.UUID)
		where = append(where, fmt.Sprintf("operator_id = $%d", len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if filter.Status == models.JobStatusCompleted {
		query += " ORDER BY completed_at DESC NULLS LAST"
	} else {
		query += " ORDER BY scheduled_date ASC NULLS LAST, created_at DESC"
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// ScheduleJob assigns an operator and date. Only unassigned or scheduled jobs
// are updated.
func (d *DatabaseClient) ScheduleJob(ctx context.Context, jobID, operatorID uuid.UUID, date time.Time) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE jobs
		SET operator_id = $1, scheduled_date = $2, status = 'scheduled'
		WHERE id = $3 AND status IN ('unassigned', 'scheduled')
	`, operatorID, date, jobID)
	if err != nil {
		return classify(err, "schedule job")
	}
	return expectOne(res, "schedule job")
}

// RecordArrival stamps the arrival time and moves a scheduled job to
// in_progress. An in-progress job only accepts a new arrival when the
// previous one was cleared by End Day.
func (d *DatabaseClient) RecordArrival(ctx context.Context, jobID uuid.UUID, at time.Time) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE jobs
		SET arrival_time = $1, status = 'in_progress'
		WHERE id = $2
		  AND (status = 'scheduled' OR (status = 'in_progress' AND arrival_time IS NULL))
	`, at, jobID)
	if err != nil {
		return classify(err, "record arrival")
	}
	return expectOne(res, "record arrival")
}

// CompleteJob writes the sign-off and moves an in-progress job to completed.
func (d *DatabaseClient) CompleteJob(ctx context.Context, jobID uuid.UUID, rec models.CompletionRecord) error {
	var (
		signer, signature sql.NullString
		signedAt          sql.NullTime
		overall           sql.NullInt32
		cleanliness       sql.NullInt32
		communication     sql.NullInt32
	)
	if rec.SignerName != "" {
		signer = sql.NullString{String: rec.SignerName, Valid: true}
	}
	if rec.Signature != "" {
		signature = sql.NullString{String: rec.Signature, Valid: true}
	}
	if rec.SignedAt != nil {
		signedAt = sql.NullTime{Time: *rec.SignedAt, Valid: true}
	}
	if rec.Ratings != nil {
		overall = sql.NullInt32{Int32: int32(rec.Ratings.Overall), Valid: true}
		cleanliness = sql.NullInt32{Int32: int32(rec.Ratings.Cleanliness), Valid: true}
		communication = sql.NullInt32{Int32: int32(rec.Ratings.Communication), Valid: true}
	}

	res, err := d.db.ExecContext(ctx, `
		UPDATE jobs
		SET status = 'completed',
			completion_signer_name = $1,
			completion_signature = $2,
			completion_signed_at = $3,
			contact_not_on_site = $4,
			completed_at = $5,
			rating_overall = $6,
			rating_cleanliness = $7,
			rating_communication = $8
		WHERE id = $9 AND status = 'in_progress'
	`, signer, signature, signedAt, rec.ContactNotOnSite, rec.CompletedAt,
		overall, cleanliness, communication, jobID)
	if err != nil {
		return classify(err, "complete job")
	}
	return expectOne(res, "complete job")
}

// EndDay records a daily log and clears the arrival time in one transaction;
// the job stays in_progress.
func (d *DatabaseClient) EndDay(ctx context.Context, log *models.DailyLog) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE jobs SET arrival_time = NULL
		WHERE id = $1 AND status = 'in_progress' AND arrival_time IS NOT NULL
	`, log.JobID)
	if err != nil {
		return classify(err, "end day")
	}
	if err := expectOne(res, "end day"); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO daily_logs (id, job_id, work_date, started_at, ended_at, hours, notes, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, log.ID, log.JobID, log.WorkDate, log.StartedAt, log.EndedAt, log.Hours, log.Notes,
		log.Latitude, log.Longitude); err != nil {
		return classify(err, "create daily log")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit end day: %w", err)
	}
	return nil
}

func (d *DatabaseClient) ListDailyLogs(ctx context.Context, jobID uuid.UUID) ([]models.DailyLog, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, job_id, work_date, started_at, ended_at, hours, notes, latitude, longitude, created_at
		FROM daily_logs
		WHERE job_id = $1
		ORDER BY work_date ASC, started_at ASC
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		var l models.DailyLog
		if err := rows.Scan(&l.ID, &l.JobID, &l.WorkDate, &l.StartedAt, &l.EndedAt, &l.Hours,
			&l.Notes, &l.Latitude, &l.Longitude, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// SetDocumentRef records where a generated document was stored.
func (d *DatabaseClient) SetDocumentRef(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind, path string, generatedAt time.Time) error {
	var query string
	switch kind {
	case models.DocumentAgreement:
		query = `UPDATE jobs SET agreement_pdf_path = $1, agreement_pdf_generated_at = $2 WHERE id = $3`
	case models.DocumentLiabilityRelease:
		query = `UPDATE jobs SET liability_release_pdf_path = $1, liability_release_pdf_generated_at = $2 WHERE id = $3`
	case models.DocumentSilicaPlan:
		tx, err := d.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()
		if _, err := tx.ExecContext(ctx, `UPDATE silica_plans SET pdf_path = $1, pdf_generated_at = $2 WHERE job_id = $3`,
			path, generatedAt, jobID); err != nil {
			return classify(err, "set silica plan pdf")
		}
		if _, err := tx.ExecContext(ctx, `UPDATE jobs SET silica_pdf_path = $1, silica_pdf_generated_at = $2 WHERE id = $3`,
			path, generatedAt, jobID); err != nil {
			return classify(err, "set job silica pdf")
		}
		return tx.Commit()
	default:
		return fmt.Errorf("unknown document kind %q", kind)
	}

	res, err := d.db.ExecContext(ctx, query, path, generatedAt, jobID)
	if err != nil {
		return classify(err, "set document reference")
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("set document reference: %w", ErrNotFound)
	}
	return nil
}
