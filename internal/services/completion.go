package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fieldops-backend/internal/costing"
	"fieldops-backend/internal/documents"
	"fieldops-backend/internal/models"
	"fieldops-backend/internal/supabase"
	"fieldops-backend/internal/workflow"
)

// CompleteJob records the customer sign-off, or the contact-not-on-site
// override, and moves the job to completed. The operator's metrics and
// rating means are rolled up and the agreement and liability release are
// stored. Neither side effect can undo the completion; failures are logged
// and document failures are reported in DocumentError.
func (s *JobService) CompleteJob(ctx context.Context, jobID uuid.UUID, req models.CompleteJobRequest) (*models.CompleteJobResponse, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	p, err := s.progress(ctx, job)
	if err != nil {
		return nil, err
	}

	signed := strings.TrimSpace(req.Signature) != ""
	if err := workflow.CanComplete(p, signed, req.ContactNotOnSite).Error(); err != nil {
		return nil, err
	}
	signer := strings.TrimSpace(req.SignerName)
	if signed && signer == "" {
		return nil, invalid("signer_name is required with a signature")
	}
	if req.Ratings != nil && !req.Ratings.Valid() {
		return nil, invalid("ratings must each be between %d and %d", models.MinProficiency, models.MaxProficiency)
	}

	now := s.now().UTC()
	rec := models.CompletionRecord{
		CompletedAt:      now,
		ContactNotOnSite: !signed && req.ContactNotOnSite,
		Ratings:          req.Ratings,
	}
	if signed {
		rec.SignerName = signer
		rec.Signature = req.Signature
		rec.SignedAt = &now
	}
	if err := s.store.CompleteJob(ctx, job.ID, rec); err != nil {
		return nil, err
	}
	s.events.Notify(job.ID, supabase.EventJobCompleted,
		supabase.StatusPayload(string(job.Status), string(models.JobStatusCompleted)))

	completed, err := s.store.GetJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	s.rollUp(ctx, *completed, req.Ratings)
	s.clearDraft(ctx, job.ID)

	resp := &models.CompleteJobResponse{Job: *completed, Documents: []models.DocumentInfo{}}
	var failures []string
	for _, kind := range []models.DocumentKind{models.DocumentAgreement, models.DocumentLiabilityRelease} {
		doc, err := s.buildDocument(ctx, *completed, kind)
		if err != nil {
			log.Printf("Warning: complete job %s: build %s: %v", job.ID, kind, err)
			failures = append(failures, err.Error())
			continue
		}
		stored, err := s.persist(ctx, doc)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		resp.Documents = append(resp.Documents, s.documentInfo(stored))
	}
	if len(failures) > 0 {
		resp.DocumentError = strings.Join(failures, "; ")
	}
	if refreshed, err := s.store.GetJob(ctx, job.ID); err == nil {
		resp.Job = *refreshed
	}
	return resp, nil
}

// rollUp folds the completed job into its operator's profile.
func (s *JobService) rollUp(ctx context.Context, job models.Job, ratings *models.JobRatings) {
	if !job.OperatorID.Valid {
		return
	}
	op, err := s.store.GetOperator(ctx, job.OperatorID.UUID)
	if err != nil {
		log.Printf("Warning: complete job %s: load operator %s: %v", job.ID, job.OperatorID.UUID, err)
		return
	}
	days, err := s.store.ListDailyLogs(ctx, job.ID)
	if err != nil {
		log.Printf("Warning: complete job %s: list daily logs: %v", job.ID, err)
	}
	hours, err := costing.JobHours(job, days)
	if err != nil {
		log.Printf("Warning: complete job %s: job hours: %v", job.ID, err)
		hours = decimal.Zero
	}

	m, r := RollUp(op.Metrics, op.Ratings, models.OperatorCompletion{
		Hours:   hours,
		Revenue: job.QuotedAmount,
		Ratings: ratings,
	})
	if err := s.store.UpdateOperatorPerformance(ctx, op.ID, m, r); err != nil {
		log.Printf("Warning: complete job %s: update operator %s: %v", job.ID, op.ID, err)
	}
}

// RollUp adds one completed job to an operator's metrics. Ratings, when
// given, update the running means as avg' = (avg*n + r)/(n+1).
func RollUp(m models.OperatorMetrics, r models.OperatorRatings, c models.OperatorCompletion) (models.OperatorMetrics, models.OperatorRatings) {
	m.JobsCompleted++
	m.HoursWorked = m.HoursWorked.Add(c.Hours)
	m.RevenueGenerated = m.RevenueGenerated.Add(c.Revenue)
	if m.HoursWorked.IsPositive() {
		m.AverageProductionRate = m.RevenueGenerated.Div(m.HoursWorked).InexactFloat64()
	}
	if c.Ratings != nil {
		r = r.Add(*c.Ratings)
	}
	return m, r
}

// persist stores a rendered document and publishes the outcome.
func (s *JobService) persist(ctx context.Context, doc documents.Document) (*documents.Stored, error) {
	stored, err := s.documents.Persist(ctx, doc)
	if err != nil {
		log.Printf("Warning: job %s: persist %s pdf: %v", doc.JobID(), doc.Kind(), err)
		s.events.Notify(doc.JobID(), supabase.EventDocumentFailed,
			supabase.DocumentFailedPayload(string(doc.Kind()), err.Error()))
		return nil, err
	}
	s.events.Notify(doc.JobID(), supabase.EventDocumentGenerated,
		supabase.DocumentPayload(string(doc.Kind()), stored.Path))
	return stored, nil
}
