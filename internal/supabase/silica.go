package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
)

// SingletonExists reports whether the per-job singleton document of kind has
// been submitted.
func (d *DatabaseClient) SingletonExists(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind) (bool, error) {
	if kind != models.DocumentSilicaPlan {
		return false, fmt.Errorf("%s is not a per-job singleton", kind)
	}
	var exists bool
	err := d.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM silica_plans WHERE job_id = $1)`, jobID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check silica plan: %w", err)
	}
	return exists, nil
}

// CreateSilicaPlan inserts the plan. The unique constraint on job_id turns a
// racing second submission into ErrDuplicate.
func (d *DatabaseClient) CreateSilicaPlan(ctx context.Context, plan *models.SilicaPlan) error {
	employees, err := marshalJSON(plan.Employees)
	if err != nil {
		return fmt.Errorf("failed to encode employees: %w", err)
	}
	workTypes, err := marshalJSON(plan.WorkTypes)
	if err != nil {
		return fmt.Errorf("failed to encode work types: %w", err)
	}
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO silica_plans (id, job_id, employees, work_types, water_delivery, work_area,
			cutting_time, respirator_required, safety_notes, signer_name, signature, submitted_by, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, plan.ID, plan.JobID, employees, workTypes, plan.WaterDelivery, plan.WorkArea,
		plan.CuttingTime, plan.RespiratorRequired, plan.SafetyNotes, plan.SignerName, plan.Signature,
		plan.SubmittedBy, plan.SubmittedAt)
	return classify(err, "create silica plan")
}

func (d *DatabaseClient) GetSilicaPlan(ctx context.Context, jobID uuid.UUID) (*models.SilicaPlan, error) {
	var (
		p                    models.SilicaPlan
		employees, workTypes []byte
	)
	err := d.db.QueryRowContext(ctx, `
		SELECT id, job_id, employees, work_types, water_delivery, work_area, cutting_time,
			respirator_required, safety_notes, signer_name, signature, submitted_by, submitted_at,
			pdf_path, pdf_generated_at
		FROM silica_plans
		WHERE job_id = $1
	`, jobID).Scan(&p.ID, &p.JobID, &employees, &workTypes, &p.WaterDelivery, &p.WorkArea, &p.CuttingTime,
		&p.RespiratorRequired, &p.SafetyNotes, &p.SignerName, &p.Signature, &p.SubmittedBy, &p.SubmittedAt,
		&p.PDF.Path, &p.PDF.GeneratedAt)
	if err != nil {
		return nil, classify(err, "get silica plan")
	}
	if err := unmarshalJSON(employees, &p.Employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	if err := unmarshalJSON(workTypes, &p.WorkTypes); err != nil {
		return nil, fmt.Errorf("failed to decode work types: %w", err)
	}
	return &p, nil
}
