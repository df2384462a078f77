package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"fieldops-backend/internal/documents"
	"fieldops-backend/internal/drafts"
	"fieldops-backend/internal/models"
	"fieldops-backend/internal/supabase"
	"fieldops-backend/internal/workflow"
)

// SilicaPlan reports whether the job's exposure plan exists and returns it.
func (s *JobService) SilicaPlan(ctx context.Context, jobID uuid.UUID) (*models.SilicaPlanStatusResponse, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	exists, err := s.guard.Exists(ctx, job.ID, models.DocumentSilicaPlan)
	if err != nil {
		return nil, err
	}
	resp := &models.SilicaPlanStatusResponse{Exists: exists}
	if !exists {
		return resp, nil
	}
	plan, err := s.store.GetSilicaPlan(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	resp.Plan = plan
	return resp, nil
}

// SubmitSilicaPlan saves the job's one exposure plan and stores its PDF. A
// second submission is rejected with guard.ErrAlreadySubmitted before any
// write. A PDF failure leaves the saved plan in place.
func (s *JobService) SubmitSilicaPlan(ctx context.Context, jobID uuid.UUID, in models.SilicaPlanInput) (*models.SilicaPlanResponse, error) {
	job, sess, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	p, err := s.progress(ctx, job)
	if err != nil {
		return nil, err
	}

	plan := in.ToPlan(job.ID, uuid.NullUUID{UUID: sess.UserID, Valid: true}, s.now().UTC())
	err = s.guard.Submit(ctx, job.ID, models.DocumentSilicaPlan, func(ctx context.Context) error {
		if err := in.Validate(); err != nil {
			return invalid("%v", err)
		}
		if err := workflow.CanEnter(p, workflow.StepSilicaPlan).Error(); err != nil {
			return err
		}
		return s.store.CreateSilicaPlan(ctx, &plan)
	})
	if err != nil {
		return nil, err
	}
	s.events.Notify(job.ID, supabase.EventSilicaSubmitted, map[string]interface{}{"plan_id": plan.ID.String()})

	resp := &models.SilicaPlanResponse{Plan: plan}
	stored, err := s.persist(ctx, documents.SilicaPlanDocument{Job: *job, Plan: plan})
	if err != nil {
		resp.DocumentError = err.Error()
		return resp, nil
	}
	info := s.documentInfo(stored)
	resp.Document = &info
	resp.Plan.PDF.Path.String, resp.Plan.PDF.Path.Valid = stored.Path, true
	resp.Plan.PDF.GeneratedAt.Time, resp.Plan.PDF.GeneratedAt.Valid = stored.GeneratedAt, true
	return resp, nil
}

// AddWork appends work-performed entries. Entries are never singleton and
// accumulate across the days of a job. The draft is cleared on success.
func (s *JobService) AddWork(ctx context.Context, jobID uuid.UUID, items []models.WorkEntryInput) ([]models.WorkEntry, error) {
	job, sess, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	p, err := s.progress(ctx, job)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanEnter(p, workflow.StepWorkPerformed).Error(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, invalid("at least one work item is required")
	}

	now := s.now().UTC()
	entries := make([]models.WorkEntry, 0, len(items))
	for i, item := range items {
		details, err := item.Decode()
		if err != nil {
			return nil, invalid("item %d: %v", i+1, err)
		}
		entries = append(entries, models.WorkEntry{
			ID:        uuid.New(),
			JobID:     job.ID,
			ItemName:  strings.TrimSpace(item.ItemName),
			Quantity:  item.Quantity,
			Notes:     strings.TrimSpace(item.Notes),
			Details:   details,
			WorkDate:  workDate(now),
			CreatedBy: uuid.NullUUID{UUID: sess.UserID, Valid: true},
			CreatedAt: now,
		})
	}
	for i := range entries {
		if err := s.store.CreateWorkEntry(ctx, &entries[i]); err != nil {
			return nil, fmt.Errorf("job %s: save work item %d: %w", job.JobNumber, i+1, err)
		}
	}

	s.clearDraft(ctx, job.ID)
	s.events.Notify(job.ID, supabase.EventWorkRecorded, map[string]interface{}{"count": len(entries)})
	return entries, nil
}

func (s *JobService) ListWork(ctx context.Context, jobID uuid.UUID) ([]models.WorkEntry, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListWorkEntries(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.WorkEntry{}
	}
	return entries, nil
}

// SaveDraft keeps unsent work items for the job. Drafts are not validated.
func (s *JobService) SaveDraft(ctx context.Context, jobID uuid.UUID, items []models.WorkEntryInput) (*drafts.Draft, error) {
	job, sess, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == models.JobStatusCompleted {
		return nil, fmt.Errorf("%w: job is already completed", workflow.ErrNotAllowed)
	}
	d := &drafts.Draft{
		JobID:     job.ID,
		Items:     items,
		UpdatedBy: sess.UserID,
		UpdatedAt: s.now().UTC(),
	}
	if s.drafts == nil {
		return nil, ErrDraftsUnavailable
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *JobService) LoadDraft(ctx context.Context, jobID uuid.UUID) (*drafts.Draft, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if s.drafts == nil {
		return nil, ErrDraftsUnavailable
	}
	return s.drafts.Load(ctx, job.ID)
}

func (s *JobService) ClearDraft(ctx context.Context, jobID uuid.UUID) error {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return err
	}
	if s.drafts == nil {
		return ErrDraftsUnavailable
	}
	return s.drafts.Clear(ctx, job.ID)
}

func (s *JobService) clearDraft(ctx context.Context, jobID uuid.UUID) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.Clear(ctx, jobID); err != nil && !errors.Is(err, drafts.ErrNoDraft) {
		log.Printf("Warning: job %s: clear draft: %v", jobID, err)
	}
}

// StartStandby opens a standby log. Only one may be active per job.
func (s *JobService) StartStandby(ctx context.Context, jobID uuid.UUID, reason string) (*models.StandbyLog, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	p, err := s.progress(ctx, job)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanEnter(p, workflow.StepStandby).Error(); err != nil {
		return nil, err
	}
	if p.StandbyActive {
		return nil, fmt.Errorf("%w: a standby log is already active", workflow.ErrNotAllowed)
	}

	l := &models.StandbyLog{
		ID:        uuid.New(),
		JobID:     job.ID,
		StartedAt: s.now().UTC(),
		Reason:    strings.TrimSpace(reason),
		Status:    models.StandbyActive,
	}
	if err := s.store.StartStandby(ctx, l); err != nil {
		return nil, err
	}
	s.events.Notify(job.ID, supabase.EventStandbyStarted, map[string]interface{}{"log_id": l.ID.String()})
	return s.store.GetStandbyLog(ctx, l.ID)
}

// StopStandby closes an active standby log and records its duration in
// fractional hours.
func (s *JobService) StopStandby(ctx context.Context, jobID, logID uuid.UUID) (*models.StandbyLog, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	l, err := s.store.GetStandbyLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	if l.JobID != job.ID {
		return nil, fmt.Errorf("standby log %s: %w", logID, supabase.ErrNotFound)
	}
	if l.Status != models.StandbyActive {
		return nil, fmt.Errorf("%w: standby log already stopped", workflow.ErrNotAllowed)
	}

	end := s.now().UTC()
	if end.Before(l.StartedAt) {
		end = l.StartedAt
	}
	hours := models.HoursBetween(l.StartedAt, end)
	if err := s.store.StopStandby(ctx, job.ID, l.ID, end, hours); err != nil {
		return nil, err
	}
	s.events.Notify(job.ID, supabase.EventStandbyStopped, map[string]interface{}{
		"log_id":         l.ID.String(),
		"duration_hours": hours.String(),
	})
	return s.store.GetStandbyLog(ctx, l.ID)
}

func (s *JobService) ListStandby(ctx context.Context, jobID uuid.UUID) ([]models.StandbyLog, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	logs, err := s.store.ListStandbyLogs(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.StandbyLog{}
	}
	return logs, nil
}

// EndDay closes the current day of a multi-day job. The job stays
// in_progress and needs a new arrival before work continues. Location is
// best-effort.
func (s *JobService) EndDay(ctx context.Context, jobID uuid.UUID, req models.EndDayRequest) (*models.EndDayResponse, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	p, err := s.progress(ctx, job)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanEndDay(p).Error(); err != nil {
		return nil, err
	}

	started := job.ArrivalTime.Time
	ended := s.now().UTC()
	if ended.Before(started) {
		ended = started
	}
	day := &models.DailyLog{
		ID:        uuid.New(),
		JobID:     job.ID,
		WorkDate:  workDate(started),
		StartedAt: started,
		EndedAt:   ended,
		Hours:     models.HoursBetween(started, ended),
		Notes:     strings.TrimSpace(req.Notes),
	}
	resp := &models.EndDayResponse{}
	if c, ok := s.locate(ctx, job.ID, req); ok {
		day.Latitude.Float64, day.Latitude.Valid = c.Latitude, true
		day.Longitude.Float64, day.Longitude.Valid = c.Longitude, true
		resp.LocationCaptured = true
	}

	if err := s.store.EndDay(ctx, day); err != nil {
		return nil, err
	}
	s.events.Notify(job.ID, supabase.EventDayEnded, map[string]interface{}{
		"daily_log_id": day.ID.String(),
		"hours":        day.Hours.String(),
	})
	resp.DailyLog = *day
	return resp, nil
}

func workDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
