// Package services orchestrates the job workflow operations on top of the
// record store, object store and the domain packages. Every operation takes
// the caller's session from the context.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fieldops-backend/internal/costing"
	"fieldops-backend/internal/documents"
	"fieldops-backend/internal/drafts"
	"fieldops-backend/internal/guard"
	"fieldops-backend/internal/models"
	"fieldops-backend/internal/session"
	"fieldops-backend/internal/supabase"
)

// ErrValidation marks input the caller must correct.
var ErrValidation = errors.New("validation failed")

var ErrDraftsUnavailable = errors.New("drafts are not configured")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

type JobStore interface {
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	ScheduleJob(ctx context.Context, jobID, operatorID uuid.UUID, date time.Time) error
	RecordArrival(ctx context.Context, jobID uuid.UUID, at time.Time) error
	CompleteJob(ctx context.Context, jobID uuid.UUID, rec models.CompletionRecord) error
	EndDay(ctx context.Context, log *models.DailyLog) error
	ListDailyLogs(ctx context.Context, jobID uuid.UUID) ([]models.DailyLog, error)
	SetDocumentRef(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind, path string, generatedAt time.Time) error

	SingletonExists(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind) (bool, error)
	CreateSilicaPlan(ctx context.Context, plan *models.SilicaPlan) error
	GetSilicaPlan(ctx context.Context, jobID uuid.UUID) (*models.SilicaPlan, error)

	CreateWorkEntry(ctx context.Context, entry *models.WorkEntry) error
	ListWorkEntries(ctx context.Context, jobID uuid.UUID) ([]models.WorkEntry, error)
	CountWorkEntries(ctx context.Context, jobID uuid.UUID) (int, error)

	StartStandby(ctx context.Context, log *models.StandbyLog) error
	StopStandby(ctx context.Context, jobID, logID uuid.UUID, endedAt time.Time, hours decimal.Decimal) error
	GetStandbyLog(ctx context.Context, logID uuid.UUID) (*models.StandbyLog, error)
	ListStandbyLogs(ctx context.Context, jobID uuid.UUID) ([]models.StandbyLog, error)
}

type OperatorStore interface {
	CreateOperator(ctx context.Context, o *models.Operator) (*models.Operator, error)
	GetOperator(ctx context.Context, id uuid.UUID) (*models.Operator, error)
	GetOperatorByUserID(ctx context.Context, userID uuid.UUID) (*models.Operator, error)
	ListOperators(ctx context.Context) ([]models.Operator, error)
	UpdateOperatorProfile(ctx context.Context, o *models.Operator) error
	UpdateOperatorPerformance(ctx context.Context, id uuid.UUID, m models.OperatorMetrics, r models.OperatorRatings) error
	AddCertification(ctx context.Context, c *models.Certification) error
	ListCertifications(ctx context.Context, operatorID uuid.UUID) ([]models.Certification, error)
}

type Store interface {
	JobStore
	OperatorStore
}

// ObjectStore is the binary store for generated documents and uploads.
type ObjectStore interface {
	Upload(path, contentType string, data []byte) error
	Delete(path string) error
	PublicURL(path string) string
}

// Publisher receives job events. Publishing never fails the operation.
type Publisher interface {
	Notify(jobID uuid.UUID, event string, payload map[string]interface{})
}

type noopPublisher struct{}

func (noopPublisher) Notify(uuid.UUID, string, map[string]interface{}) {}

// Deps wires a JobService.
type Deps struct {
	Store      Store
	Objects    ObjectStore
	Drafts     drafts.Repository
	Events     Publisher
	Locator    Locator
	Letterhead documents.Letterhead
	Rates      costing.Rates
	// LocateTimeout bounds the End Day location lookup.
	LocateTimeout time.Duration
}

type JobService struct {
	store         Store
	objects       ObjectStore
	guard         *guard.Guard
	documents     *documents.Persister
	drafts        drafts.Repository
	events        Publisher
	locator       Locator
	locateTimeout time.Duration
	rates         costing.Rates
	now           func() time.Time
}

func NewJobService(d Deps) *JobService {
	events := d.Events
	if events == nil {
		events = noopPublisher{}
	}
	timeout := d.LocateTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &JobService{
		store:         d.Store,
		objects:       d.Objects,
		guard:         guard.New(d.Store),
		documents:     documents.NewPersister(documents.NewGenerator(d.Letterhead), d.Objects, d.Store),
		drafts:        d.Drafts,
		events:        events,
		locator:       d.Locator,
		locateTimeout: timeout,
		rates:         d.Rates,
		now:           time.Now,
	}
}

func requireRole(ctx context.Context, roles ...session.Role) (session.Session, error) {
	sess, _ := session.FromContext(ctx)
	if err := sess.Require(roles...); err != nil {
		return sess, err
	}
	return sess, nil
}

func requireSession(ctx context.Context) (session.Session, error) {
	return requireRole(ctx, session.RoleAdmin, session.RoleOperator)
}

// callerOperator resolves the operator profile linked to a session.
func callerOperator(ctx context.Context, store OperatorStore, sess session.Session) (*models.Operator, error) {
	op, err := store.GetOperatorByUserID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			return nil, fmt.Errorf("%w: no operator profile for this user", session.ErrForbidden)
		}
		return nil, err
	}
	return op, nil
}

// loadJob fetches a job the caller may act on. Admins may act on any job;
// operators only on jobs assigned to them.
func (s *JobService) loadJob(ctx context.Context, jobID uuid.UUID) (*models.Job, session.Session, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, sess, err
	}
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, sess, err
	}
	if sess.IsAdmin() {
		return job, sess, nil
	}
	op, err := callerOperator(ctx, s.store, sess)
	if err != nil {
		return nil, sess, err
	}
	if !job.OperatorID.Valid || job.OperatorID.UUID != op.ID {
		return nil, sess, fmt.Errorf("%w: job %s is not assigned to you", session.ErrForbidden, job.JobNumber)
	}
	return job, sess, nil
}

func (s *JobService) documentInfo(stored *documents.Stored) models.DocumentInfo {
	return models.DocumentInfo{
		Kind:        stored.Kind,
		Path:        stored.Path,
		URL:         s.objects.PublicURL(stored.Path),
		GeneratedAt: stored.GeneratedAt,
	}
}
