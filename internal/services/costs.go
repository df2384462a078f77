package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fieldops-backend/internal/costing"
	"fieldops-backend/internal/models"
	"fieldops-backend/internal/session"
	"fieldops-backend/internal/supabase"
	"fieldops-backend/internal/workflow"
)

// Costs computes the profitability breakdown of a completed job. The
// assigned operator's hourly rate overrides the configured labor rate.
func (s *JobService) Costs(ctx context.Context, jobID uuid.UUID) (*costing.Breakdown, error) {
	if _, err := requireRole(ctx, session.RoleAdmin); err != nil {
		return nil, err
	}
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusCompleted {
		return nil, fmt.Errorf("%w: costs are available once job %s is completed", workflow.ErrNotAllowed, job.JobNumber)
	}

	in := costing.Input{Job: *job}
	if in.WorkEntries, err = s.store.ListWorkEntries(ctx, job.ID); err != nil {
		return nil, err
	}
	if in.StandbyLogs, err = s.store.ListStandbyLogs(ctx, job.ID); err != nil {
		return nil, err
	}
	if in.DailyLogs, err = s.store.ListDailyLogs(ctx, job.ID); err != nil {
		return nil, err
	}
	if job.OperatorID.Valid {
		op, err := s.store.GetOperator(ctx, job.OperatorID.UUID)
		switch {
		case err == nil:
			in.HourlyRate = op.HourlyRate
		case !errors.Is(err, supabase.ErrNotFound):
			return nil, err
		}
	}

	b, err := costing.Calculate(in, s.rates)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", job.JobNumber, err)
	}
	return &b, nil
}
