package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/reports"
	"fieldops-backend/internal/session"
	"fieldops-backend/internal/supabase"
	"fieldops-backend/internal/workflow"
)

// CreateJob adds a job order. It starts scheduled when both an operator and
// a date are supplied, unassigned otherwise.
func (s *JobService) CreateJob(ctx context.Context, req models.CreateJobRequest) (*models.Job, error) {
	if _, err := requireRole(ctx, session.RoleAdmin); err != nil {
		return nil, err
	}

	f := req.Canonical()
	switch {
	case f.JobNumber == "":
		return nil, invalid("job_number is required")
	case f.CustomerName == "":
		return nil, invalid("customer name is required")
	case f.Location == "":
		return nil, invalid("location is required")
	case req.QuotedAmount.IsNegative():
		return nil, invalid("quoted_amount cannot be negative")
	case req.Difficulty < 0 || req.Difficulty > models.MaxProficiency:
		return nil, invalid("difficulty must be between %d and %d", models.MinProficiency, models.MaxProficiency)
	case req.EstimatedDays < 0:
		return nil, invalid("estimated_days cannot be negative")
	}

	job := &models.Job{
		ID:              uuid.New(),
		JobNumber:       f.JobNumber,
		CustomerName:    f.CustomerName,
		CustomerContact: f.CustomerContact,
		Location:        f.Location,
		Description:     f.Description,
		Priority:        strings.TrimSpace(req.Priority),
		Difficulty:      req.Difficulty,
		EstimatedDays:   req.EstimatedDays,
		Status:          models.JobStatusUnassigned,
		QuotedAmount:    req.QuotedAmount,
	}
	if job.Priority == "" {
		job.Priority = "normal"
	}
	if job.EstimatedDays == 0 {
		job.EstimatedDays = 1
	}
	if req.OperatorID != nil {
		if _, err := s.store.GetOperator(ctx, *req.OperatorID); err != nil {
			if errors.Is(err, supabase.ErrNotFound) {
				return nil, invalid("unknown operator %s", *req.OperatorID)
			}
			return nil, err
		}
		job.OperatorID = uuid.NullUUID{UUID: *req.OperatorID, Valid: true}
	}
	if req.ScheduledDate != nil {
		job.ScheduledDate.Time, job.ScheduledDate.Valid = *req.ScheduledDate, true
	}
	if job.OperatorID.Valid && job.ScheduledDate.Valid {
		job.Status = models.JobStatusScheduled
	}

	created, err := s.store.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}
	if created.Status == models.JobStatusScheduled {
		s.events.Notify(created.ID, supabase.EventJobScheduled,
			supabase.StatusPayload(string(models.JobStatusUnassigned), string(models.JobStatusScheduled)))
	}
	return created, nil
}

func (s *JobService) GetJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	job, _, err := s.loadJob(ctx, jobID)
	return job, err
}

// ListJobs returns jobs in the given status, or all when status is empty.
// Operators see only their own assignments.
func (s *JobService) ListJobs(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, invalid("unknown status %q", status)
	}

	filter := models.JobFilter{Status: status}
	if !sess.IsAdmin() {
		op, err := callerOperator(ctx, s.store, sess)
		if err != nil {
			if errors.Is(err, session.ErrForbidden) {
				return []models.Job{}, nil
			}
			return nil, err
		}
		filter.OperatorID = uuid.NullUUID{UUID: op.ID, Valid: true}
	}

	jobs, err := s.store.ListJobs(ctx, filter)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// CompletedJobs lists completed jobs, most recent first, with the number
// closed out without a customer signature.
func (s *JobService) CompletedJobs(ctx context.Context) (*models.CompletedJobsResponse, error) {
	jobs, err := s.ListJobs(ctx, models.JobStatusCompleted)
	if err != nil {
		return nil, err
	}
	return &models.CompletedJobsResponse{
		Jobs:                  jobs,
		ContactNotOnSiteCount: reports.ContactNotOnSiteCount(jobs),
	}, nil
}

// AssignJob sets the operator and date and moves the job to scheduled.
func (s *JobService) AssignJob(ctx context.Context, jobID uuid.UUID, req models.AssignJobRequest) (*models.Job, error) {
	if _, err := requireRole(ctx, session.RoleAdmin); err != nil {
		return nil, err
	}
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanSchedule(job.Status).Error(); err != nil {
		return nil, err
	}
	if req.ScheduledDate.IsZero() {
		return nil, invalid("scheduled_date is required")
	}
	if _, err := s.store.GetOperator(ctx, req.OperatorID); err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			return nil, invalid("unknown operator %s", req.OperatorID)
		}
		return nil, err
	}

	if err := s.store.ScheduleJob(ctx, jobID, req.OperatorID, req.ScheduledDate); err != nil {
		return nil, err
	}
	s.events.Notify(jobID, supabase.EventJobScheduled,
		supabase.StatusPayload(string(job.Status), string(models.JobStatusScheduled)))
	return s.store.GetJob(ctx, jobID)
}

// Arrive records the operator on site. The first arrival moves the job to
// in_progress; on a multi-day job it starts the next day.
func (s *JobService) Arrive(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	p, err := s.progress(ctx, job)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanArrive(p).Error(); err != nil {
		return nil, err
	}

	if err := s.store.RecordArrival(ctx, jobID, s.now().UTC()); err != nil {
		return nil, err
	}
	s.events.Notify(jobID, supabase.EventJobArrived,
		supabase.StatusPayload(string(job.Status), string(models.JobStatusInProgress)))
	return s.store.GetJob(ctx, jobID)
}

// Workflow returns the sequencer view for a job.
func (s *JobService) Workflow(ctx context.Context, jobID uuid.UUID) (*workflow.View, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	p, err := s.progress(ctx, job)
	if err != nil {
		return nil, err
	}
	v := workflow.Sequence(job.ID, p)
	return &v, nil
}

// progress collects the completion flags the sequencer reads.
func (s *JobService) progress(ctx context.Context, job *models.Job) (workflow.Progress, error) {
	silica, err := s.guard.Exists(ctx, job.ID, models.DocumentSilicaPlan)
	if err != nil {
		return workflow.Progress{}, err
	}
	work, err := s.store.CountWorkEntries(ctx, job.ID)
	if err != nil {
		return workflow.Progress{}, fmt.Errorf("job %s: %w", job.ID, err)
	}
	standby, err := s.store.ListStandbyLogs(ctx, job.ID)
	if err != nil {
		return workflow.Progress{}, fmt.Errorf("job %s: %w", job.ID, err)
	}
	days, err := s.store.ListDailyLogs(ctx, job.ID)
	if err != nil {
		return workflow.Progress{}, fmt.Errorf("job %s: %w", job.ID, err)
	}

	p := workflow.Progress{
		Status:            job.Status,
		Arrived:           job.ArrivalTime.Valid,
		SilicaSubmitted:   silica,
		WorkRecorded:      work > 0,
		SignatureCaptured: job.SignatureCaptured(),
		ContactNotOnSite:  job.ContactNotOnSite,
		MultiDay:          len(days) > 0 || job.EstimatedDays > 1,
	}
	for _, l := range standby {
		if l.Status == models.StandbyActive {
			p.StandbyActive = true
			break
		}
	}
	return p, nil
}
