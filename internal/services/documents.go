package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fieldops-backend/internal/documents"
	"fieldops-backend/internal/models"
	"fieldops-backend/internal/supabase"
	"fieldops-backend/internal/workflow"
)

// buildDocument assembles a document of kind from the job's stored records.
func (s *JobService) buildDocument(ctx context.Context, job models.Job, kind models.DocumentKind) (documents.Document, error) {
	switch kind {
	case models.DocumentSilicaPlan:
		plan, err := s.store.GetSilicaPlan(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		return documents.SilicaPlanDocument{Job: job, Plan: *plan}, nil

	case models.DocumentAgreement:
		if job.Status != models.JobStatusCompleted {
			return nil, fmt.Errorf("%w: job %s is not completed", workflow.ErrNotAllowed, job.JobNumber)
		}
		entries, err := s.store.ListWorkEntries(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		standby, err := s.store.ListStandbyLogs(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		doc := documents.AgreementDocument{Job: job, WorkEntries: entries, StandbyLogs: standby}
		if job.OperatorID.Valid {
			op, err := s.store.GetOperator(ctx, job.OperatorID.UUID)
			if err != nil && !errors.Is(err, supabase.ErrNotFound) {
				return nil, err
			}
			if op != nil {
				doc.OperatorName = op.Name
			}
		}
		return doc, nil

	case models.DocumentLiabilityRelease:
		if job.Status != models.JobStatusCompleted {
			return nil, fmt.Errorf("%w: job %s is not completed", workflow.ErrNotAllowed, job.JobNumber)
		}
		return documents.LiabilityReleaseDocument{Job: job}, nil
	}
	return nil, invalid("unknown document kind %q", kind)
}

// RenderDocument renders a job document for download without storing it.
func (s *JobService) RenderDocument(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind) ([]byte, string, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, "", err
	}
	doc, err := s.buildDocument(ctx, *job, kind)
	if err != nil {
		return nil, "", err
	}
	data, err := s.documents.Generator().Render(doc)
	if err != nil {
		return nil, "", err
	}
	return data, documents.Filename(doc), nil
}

// StoreDocument regenerates and stores a job document. It is the retry path
// after a failed render or upload.
func (s *JobService) StoreDocument(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind) (*models.DocumentInfo, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	doc, err := s.buildDocument(ctx, *job, kind)
	if err != nil {
		return nil, err
	}
	stored, err := s.persist(ctx, doc)
	if err != nil {
		return nil, err
	}
	info := s.documentInfo(stored)
	return &info, nil
}
