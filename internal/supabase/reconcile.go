package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fieldops-backend/internal/models"
)

var childTables = map[models.ChildCollection]string{
	models.CollectionDailyLogs:     "daily_logs",
	models.CollectionWorkPerformed: "work_performed",
	models.CollectionStandbyLogs:   "standby_logs",
	models.CollectionSilicaPlans:   "silica_plans",
}

func childTable(c models.ChildCollection) (string, error) {
	table, ok := childTables[c]
	if !ok {
		return "", fmt.Errorf("unknown collection %q", c)
	}
	return table, nil
}

func (d *DatabaseClient) ListJobSnapshots(ctx context.Context) ([]models.JobSnapshot, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, job_number, status, completion_signed_at IS NOT NULL, contact_not_on_site, estimated_days
		FROM jobs
		ORDER BY job_number ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.JobSnapshot
	for rows.Next() {
		var j models.JobSnapshot
		if err := rows.Scan(&j.ID, &j.JobNumber, &j.Status, &j.SignatureCaptured, &j.ContactNotOnSite, &j.EstimatedDays); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (d *DatabaseClient) ListChildRefs(ctx context.Context, c models.ChildCollection) ([]models.ChildRef, error) {
	table, err := childTable(c)
	if err != nil {
		return nil, err
	}
	rows, err := d.db.QueryContext(ctx, `SELECT id, job_id FROM `+table+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	var refs []models.ChildRef
	for rows.Next() {
		var r models.ChildRef
		if err := rows.Scan(&r.ID, &r.JobID); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// DeleteChildren removes the listed rows whose job no longer exists. Rows
// whose job is present are left alone.
func (d *DatabaseClient) DeleteChildren(ctx context.Context, c models.ChildCollection, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	table, err := childTable(c)
	if err != nil {
		return 0, err
	}
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}
	res, err := d.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ANY($1::uuid[])
		 AND NOT EXISTS (SELECT 1 FROM jobs WHERE jobs.id = `+table+`.job_id)`, pq.Array(strIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return res.RowsAffected()
}

// AdvanceJobStatus moves a job from one status to a later one, matching on
// the expected current status.
func (d *DatabaseClient) AdvanceJobStatus(ctx context.Context, jobID uuid.UUID, from, to models.JobStatus) error {
	res, err := d.db.ExecContext(ctx, `UPDATE jobs SET status = $1 WHERE id = $2 AND status = $3`, to, jobID, from)
	if err != nil {
		return classify(err, "advance job status")
	}
	return expectOne(res, "advance job status")
}
