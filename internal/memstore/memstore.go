// Package memstore is an in-process implementation of the record and object
// stores. It backs the server when no DATABASE_URL is configured and the
// service and handler tests. Conditional updates behave like their SQL
// counterparts: a missed precondition returns supabase.ErrConflict and a
// broken uniqueness constraint returns supabase.ErrDuplicate.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/supabase"
)

type Store struct {
	mu sync.Mutex

	jobs      map[uuid.UUID]*models.Job
	work      map[uuid.UUID]*models.WorkEntry
	standby   map[uuid.UUID]*models.StandbyLog
	days      map[uuid.UUID]*models.DailyLog
	silica    map[uuid.UUID]*models.SilicaPlan // keyed by job id
	operators map[uuid.UUID]*models.Operator
	certs     map[uuid.UUID]*models.Certification
	assets    map[uuid.UUID]*models.Asset

	// Fail injects an error for the named method, e.g. "CompleteJob".
	Fail map[string]error
	// Writes counts successful mutating calls by method name.
	Writes map[string]int

	now func() time.Time
}

func New() *Store {
	return &Store{
		jobs:      make(map[uuid.UUID]*models.Job),
		work:      make(map[uuid.UUID]*models.WorkEntry),
		standby:   make(map[uuid.UUID]*models.StandbyLog),
		days:      make(map[uuid.UUID]*models.DailyLog),
		silica:    make(map[uuid.UUID]*models.SilicaPlan),
		operators: make(map[uuid.UUID]*models.Operator),
		certs:     make(map[uuid.UUID]*models.Certification),
		assets:    make(map[uuid.UUID]*models.Asset),
		Fail:      make(map[string]error),
		Writes:    make(map[string]int),
		now:       time.Now,
	}
}

func (s *Store) fail(method string) error {
	return s.Fail[method]
}

func (s *Store) wrote(method string) {
	s.Writes[method]++
}

func (s *Store) Ping(ctx context.Context) error {
	return s.fail("Ping")
}

// DeleteJob removes only the job row, leaving its children behind.
func (s *Store) DeleteJob(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, supabase.ErrNotFound)
}

func conflict(what string) error {
	return fmt.Errorf("%s: %w", what, supabase.ErrConflict)
}

func duplicate(what string) error {
	return fmt.Errorf("%s: %w", what, supabase.ErrDuplicate)
}

// Jobs

func (s *Store) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateJob"); err != nil {
		return nil, err
	}
	for _, j := range s.jobs {
		if j.JobNumber == job.JobNumber {
			return nil, duplicate("create job")
		}
	}
	j := *job
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	now := s.now()
	j.CreatedAt, j.UpdatedAt = now, now
	s.jobs[j.ID] = &j
	s.wrote("CreateJob")
	out := j
	return &out, nil
}

func (s *Store) GetJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetJob"); err != nil {
		return nil, err
	}
	j, ok := s.jobs[jobID]
	if !ok {
		return nil, notFound("get job")
	}
	out := *j
	return &out, nil
}

func (s *Store) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListJobs"); err != nil {
		return nil, err
	}
	var jobs []models.Job
	for _, j := range s.jobs {
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		if filter.OperatorID.Valid && (!j.OperatorID.Valid || j.OperatorID.UUID != filter.OperatorID.UUID) {
			continue
		}
		jobs = append(jobs, *j)
	}
	if filter.Status == models.JobStatusCompleted {
		sort.Slice(jobs, func(a, b int) bool {
			return jobs[a].CompletedAt.Time.After(jobs[b].CompletedAt.Time)
		})
	} else {
		sort.Slice(jobs, func(a, b int) bool {
			return jobs[a].JobNumber < jobs[b].JobNumber
		})
	}
	return jobs, nil
}

func (s *Store) ScheduleJob(ctx context.Context, jobID, operatorID uuid.UUID, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ScheduleJob"); err != nil {
		return err
	}
	j, ok := s.jobs[jobID]
	if !ok || (j.Status != models.JobStatusUnassigned && j.Status != models.JobStatusScheduled) {
		return conflict("schedule job")
	}
	j.OperatorID = uuid.NullUUID{UUID: operatorID, Valid: true}
	j.ScheduledDate.Time, j.ScheduledDate.Valid = date, true
	j.Status = models.JobStatusScheduled
	j.UpdatedAt = s.now()
	s.wrote("ScheduleJob")
	return nil
}

func (s *Store) RecordArrival(ctx context.Context, jobID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("RecordArrival"); err != nil {
		return err
	}
	j, ok := s.jobs[jobID]
	if !ok {
		return conflict("record arrival")
	}
	if j.Status != models.JobStatusScheduled && !(j.Status == models.JobStatusInProgress && !j.ArrivalTime.Valid) {
		return conflict("record arrival")
	}
	j.ArrivalTime.Time, j.ArrivalTime.Valid = at, true
	j.Status = models.JobStatusInProgress
	j.UpdatedAt = s.now()
	s.wrote("RecordArrival")
	return nil
}

func (s *Store) CompleteJob(ctx context.Context, jobID uuid.UUID, rec models.CompletionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CompleteJob"); err != nil {
		return err
	}
	j, ok := s.jobs[jobID]
	if !ok || j.Status != models.JobStatusInProgress {
		return conflict("complete job")
	}
	j.Status = models.JobStatusCompleted
	j.CompletionSignerName.String, j.CompletionSignerName.Valid = rec.SignerName, rec.SignerName != ""
	j.CompletionSignature.String, j.CompletionSignature.Valid = rec.Signature, rec.Signature != ""
	j.CompletionSignedAt.Valid = rec.SignedAt != nil
	if rec.SignedAt != nil {
		j.CompletionSignedAt.Time = *rec.SignedAt
	}
	j.ContactNotOnSite = rec.ContactNotOnSite
	j.CompletedAt.Time, j.CompletedAt.Valid = rec.CompletedAt, true
	if r := rec.Ratings; r != nil {
		j.RatingOverall.Int32, j.RatingOverall.Valid = int32(r.Overall), true
		j.RatingCleanliness.Int32, j.RatingCleanliness.Valid = int32(r.Cleanliness), true
		j.RatingCommunication.Int32, j.RatingCommunication.Valid = int32(r.Communication), true
	}
	j.UpdatedAt = s.now()
	s.wrote("CompleteJob")
	return nil
}

func (s *Store) EndDay(ctx context.Context, log *models.DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("EndDay"); err != nil {
		return err
	}
	j, ok := s.jobs[log.JobID]
	if !ok || j.Status != models.JobStatusInProgress || !j.ArrivalTime.Valid {
		return conflict("end day")
	}
	j.ArrivalTime.Valid = false
	j.ArrivalTime.Time = time.Time{}
	l := *log
	l.CreatedAt = s.now()
	s.days[l.ID] = &l
	s.wrote("EndDay")
	return nil
}

func (s *Store) ListDailyLogs(ctx context.Context, jobID uuid.UUID) ([]models.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListDailyLogs"); err != nil {
		return nil, err
	}
	var logs []models.DailyLog
	for _, l := range s.days {
		if l.JobID == jobID {
			logs = append(logs, *l)
		}
	}
	sort.Slice(logs, func(a, b int) bool { return logs[a].StartedAt.Before(logs[b].StartedAt) })
	return logs, nil
}

func (s *Store) SetDocumentRef(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind, path string, generatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("SetDocumentRef"); err != nil {
		return err
	}
	j, ok := s.jobs[jobID]
	if !ok {
		return notFound("set document reference")
	}
	ref := models.DocumentRef{}
	ref.Path.String, ref.Path.Valid = path, true
	ref.GeneratedAt.Time, ref.GeneratedAt.Valid = generatedAt, true
	switch kind {
	case models.DocumentAgreement:
		j.AgreementPDF = ref
	case models.DocumentLiabilityRelease:
		j.LiabilityReleasePDF = ref
	case models.DocumentSilicaPlan:
		j.SilicaPDF = ref
		if p, ok := s.silica[jobID]; ok {
			p.PDF = ref
		}
	default:
		return fmt.Errorf("unknown document kind %q", kind)
	}
	s.wrote("SetDocumentRef")
	return nil
}

// Silica plans

func (s *Store) SingletonExists(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("SingletonExists"); err != nil {
		return false, err
	}
	if kind != models.DocumentSilicaPlan {
		return false, fmt.Errorf("%s is not a per-job singleton", kind)
	}
	_, ok := s.silica[jobID]
	return ok, nil
}

func (s *Store) CreateSilicaPlan(ctx context.Context, plan *models.SilicaPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateSilicaPlan"); err != nil {
		return err
	}
	if _, ok := s.silica[plan.JobID]; ok {
		return duplicate("create silica plan")
	}
	p := *plan
	s.silica[p.JobID] = &p
	s.wrote("CreateSilicaPlan")
	return nil
}

func (s *Store) GetSilicaPlan(ctx context.Context, jobID uuid.UUID) (*models.SilicaPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetSilicaPlan"); err != nil {
		return nil, err
	}
	p, ok := s.silica[jobID]
	if !ok {
		return nil, notFound("get silica plan")
	}
	out := *p
	return &out, nil
}

// Work performed and standby

func (s *Store) CreateWorkEntry(ctx context.Context, entry *models.WorkEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateWorkEntry"); err != nil {
		return err
	}
	if _, ok := s.work[entry.ID]; ok {
		return duplicate("create work entry")
	}
	e := *entry
	e.CreatedAt = s.now()
	s.work[e.ID] = &e
	s.wrote("CreateWorkEntry")
	return nil
}

func (s *Store) ListWorkEntries(ctx context.Context, jobID uuid.UUID) ([]models.WorkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListWorkEntries"); err != nil {
		return nil, err
	}
	var entries []models.WorkEntry
	for _, e := range s.work {
		if e.JobID == jobID {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].CreatedAt.Before(entries[b].CreatedAt) })
	return entries, nil
}

func (s *Store) CountWorkEntries(ctx context.Context, jobID uuid.UUID) (int, error) {
	entries, err := s.ListWorkEntries(ctx, jobID)
	return len(entries), err
}

// AddWorkEntry inserts a work entry without any job check, for seeding
// orphaned rows.
func (s *Store) AddWorkEntry(e models.WorkEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.work[e.ID] = &e
}

func (s *Store) StartStandby(ctx context.Context, log *models.StandbyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("StartStandby"); err != nil {
		return err
	}
	for _, l := range s.standby {
		if l.JobID == log.JobID && l.Status == models.StandbyActive {
			return duplicate("start standby")
		}
	}
	l := *log
	l.Status = models.StandbyActive
	l.CreatedAt = s.now()
	s.standby[l.ID] = &l
	s.wrote("StartStandby")
	return nil
}

func (s *Store) StopStandby(ctx context.Context, jobID, logID uuid.UUID, endedAt time.Time, hours decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("StopStandby"); err != nil {
		return err
	}
	l, ok := s.standby[logID]
	if !ok || l.JobID != jobID || l.Status != models.StandbyActive {
		return conflict("stop standby")
	}
	l.EndedAt.Time, l.EndedAt.Valid = endedAt, true
	l.DurationHours = hours
	l.Status = models.StandbyCompleted
	s.wrote("StopStandby")
	return nil
}

func (s *Store) GetStandbyLog(ctx context.Context, logID uuid.UUID) (*models.StandbyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetStandbyLog"); err != nil {
		return nil, err
	}
	l, ok := s.standby[logID]
	if !ok {
		return nil, notFound("get standby log")
	}
	out := *l
	return &out, nil
}

func (s *Store) ListStandbyLogs(ctx context.Context, jobID uuid.UUID) ([]models.StandbyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListStandbyLogs"); err != nil {
		return nil, err
	}
	var logs []models.StandbyLog
	for _, l := range s.standby {
		if l.JobID == jobID {
			logs = append(logs, *l)
		}
	}
	sort.Slice(logs, func(a, b int) bool { return logs[a].StartedAt.Before(logs[b].StartedAt) })
	return logs, nil
}

// Operators

func copyOperator(o *models.Operator) *models.Operator {
	out := *o
	out.TaskSkills = make(map[string]int, len(o.TaskSkills))
	for k, v := range o.TaskSkills {
		out.TaskSkills[k] = v
	}
	out.Equipment = make(map[string]models.EquipmentQualification, len(o.Equipment))
	for k, v := range o.Equipment {
		out.Equipment[k] = v
	}
	return &out
}

func (s *Store) CreateOperator(ctx context.Context, o *models.Operator) (*models.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateOperator"); err != nil {
		return nil, err
	}
	if o.UserID.Valid {
		for _, existing := range s.operators {
			if existing.UserID.Valid && existing.UserID.UUID == o.UserID.UUID {
				return nil, duplicate("create operator")
			}
		}
	}
	stored := copyOperator(o)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	now := s.now()
	stored.CreatedAt, stored.UpdatedAt = now, now
	s.operators[stored.ID] = stored
	s.wrote("CreateOperator")
	return copyOperator(stored), nil
}

func (s *Store) GetOperator(ctx context.Context, id uuid.UUID) (*models.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetOperator"); err != nil {
		return nil, err
	}
	o, ok := s.operators[id]
	if !ok {
		return nil, notFound("get operator")
	}
	return copyOperator(o), nil
}

func (s *Store) GetOperatorByUserID(ctx context.Context, userID uuid.UUID) (*models.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetOperatorByUserID"); err != nil {
		return nil, err
	}
	for _, o := range s.operators {
		if o.UserID.Valid && o.UserID.UUID == userID {
			return copyOperator(o), nil
		}
	}
	return nil, notFound("get operator by user")
}

func (s *Store) ListOperators(ctx context.Context) ([]models.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListOperators"); err != nil {
		return nil, err
	}
	ops := make([]models.Operator, 0, len(s.operators))
	for _, o := range s.operators {
		ops = append(ops, *copyOperator(o))
	}
	sort.Slice(ops, func(a, b int) bool { return ops[a].Name < ops[b].Name })
	return ops, nil
}

func (s *Store) UpdateOperatorProfile(ctx context.Context, o *models.Operator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateOperatorProfile"); err != nil {
		return err
	}
	existing, ok := s.operators[o.ID]
	if !ok {
		return notFound("update operator")
	}
	updated := copyOperator(o)
	updated.Metrics, updated.Ratings = existing.Metrics, existing.Ratings
	updated.UserID, updated.CreatedAt = existing.UserID, existing.CreatedAt
	updated.UpdatedAt = s.now()
	s.operators[o.ID] = updated
	s.wrote("UpdateOperatorProfile")
	return nil
}

func (s *Store) UpdateOperatorPerformance(ctx context.Context, id uuid.UUID, m models.OperatorMetrics, r models.OperatorRatings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateOperatorPerformance"); err != nil {
		return err
	}
	o, ok := s.operators[id]
	if !ok {
		return notFound("update operator performance")
	}
	o.Metrics, o.Ratings = m, r
	o.UpdatedAt = s.now()
	s.wrote("UpdateOperatorPerformance")
	return nil
}

func (s *Store) AddCertification(ctx context.Context, c *models.Certification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("AddCertification"); err != nil {
		return err
	}
	if _, ok := s.operators[c.OperatorID]; !ok {
		return fmt.Errorf("failed to add certification: unknown operator %s", c.OperatorID)
	}
	cert := *c
	cert.CreatedAt = s.now()
	s.certs[cert.ID] = &cert
	s.wrote("AddCertification")
	return nil
}

func (s *Store) ListCertifications(ctx context.Context, operatorID uuid.UUID) ([]models.Certification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListCertifications"); err != nil {
		return nil, err
	}
	var certs []models.Certification
	for _, c := range s.certs {
		if c.OperatorID == operatorID {
			certs = append(certs, *c)
		}
	}
	sort.Slice(certs, func(a, b int) bool { return certs[a].IssuedDate.After(certs[b].IssuedDate) })
	return certs, nil
}

// Assets

func (s *Store) CreateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateAsset"); err != nil {
		return nil, err
	}
	stored := *a
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.Status = models.AssetActive
	stored.CreatedAt = s.now()
	s.assets[stored.ID] = &stored
	s.wrote("CreateAsset")
	out := stored
	return &out, nil
}

func (s *Store) GetAsset(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetAsset"); err != nil {
		return nil, err
	}
	a, ok := s.assets[id]
	if !ok {
		return nil, notFound("get asset")
	}
	out := *a
	return &out, nil
}

func (s *Store) ListAssets(ctx context.Context, filter models.AssetFilter) ([]models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListAssets"); err != nil {
		return nil, err
	}
	var assets []models.Asset
	for _, a := range s.assets {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.OperatorID.Valid && (!a.OperatorID.Valid || a.OperatorID.UUID != filter.OperatorID.UUID) {
			continue
		}
		assets = append(assets, *a)
	}
	sort.Slice(assets, func(i, j int) bool {
		if assets[i].Brand != assets[j].Brand {
			return assets[i].Brand < assets[j].Brand
		}
		return assets[i].CreatedAt.Before(assets[j].CreatedAt)
	})
	return assets, nil
}

func (s *Store) AddAssetUsage(ctx context.Context, id uuid.UUID, u models.AssetUsage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("AddAssetUsage"); err != nil {
		return false, err
	}
	a, ok := s.assets[id]
	if !ok || a.Status != models.AssetActive {
		return false, nil
	}
	a.LinearFeet += u.LinearFeet
	a.InchesDrilled += u.InchesDrilled
	a.HoleCount += u.Holes
	s.wrote("AddAssetUsage")
	return true, nil
}

func (s *Store) RetireAsset(ctx context.Context, id uuid.UUID, reason, photo string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("RetireAsset"); err != nil {
		return err
	}
	a, ok := s.assets[id]
	if !ok || a.Status != models.AssetActive {
		return conflict("retire asset")
	}
	a.Status = models.AssetRetired
	a.RetiredReason.String, a.RetiredReason.Valid = reason, true
	a.RetiredPhoto.String, a.RetiredPhoto.Valid = photo, photo != ""
	a.RetiredAt.Time, a.RetiredAt.Valid = at, true
	s.wrote("RetireAsset")
	return nil
}

// Reconciliation

func (s *Store) ListJobSnapshots(ctx context.Context) ([]models.JobSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListJobSnapshots"); err != nil {
		return nil, err
	}
	snaps := make([]models.JobSnapshot, 0, len(s.jobs))
	for _, j := range s.jobs {
		snaps = append(snaps, models.JobSnapshot{
			ID:                j.ID,
			JobNumber:         j.JobNumber,
			Status:            j.Status,
			SignatureCaptured: j.CompletionSignedAt.Valid,
			ContactNotOnSite:  j.ContactNotOnSite,
			EstimatedDays:     j.EstimatedDays,
		})
	}
	sort.Slice(snaps, func(a, b int) bool { return snaps[a].JobNumber < snaps[b].JobNumber })
	return snaps, nil
}

func (s *Store) ListChildRefs(ctx context.Context, c models.ChildCollection) ([]models.ChildRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListChildRefs"); err != nil {
		return nil, err
	}
	var refs []models.ChildRef
	switch c {
	case models.CollectionWorkPerformed:
		for _, e := range s.work {
			refs = append(refs, models.ChildRef{ID: e.ID, JobID: e.JobID})
		}
	case models.CollectionStandbyLogs:
		for _, l := range s.standby {
			refs = append(refs, models.ChildRef{ID: l.ID, JobID: l.JobID})
		}
	case models.CollectionDailyLogs:
		for _, l := range s.days {
			refs = append(refs, models.ChildRef{ID: l.ID, JobID: l.JobID})
		}
	case models.CollectionSilicaPlans:
		for _, p := range s.silica {
			refs = append(refs, models.ChildRef{ID: p.ID, JobID: p.JobID})
		}
	default:
		return nil, fmt.Errorf("unknown collection %q", c)
	}
	sort.Slice(refs, func(a, b int) bool { return refs[a].ID.String() < refs[b].ID.String() })
	return refs, nil
}

func (s *Store) DeleteChildren(ctx context.Context, c models.ChildCollection, ids []uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("DeleteChildren"); err != nil {
		return 0, err
	}
	orphaned := func(jobID uuid.UUID) bool {
		_, ok := s.jobs[jobID]
		return !ok
	}
	var n int64
	for _, id := range ids {
		switch c {
		case models.CollectionWorkPerformed:
			if e, ok := s.work[id]; ok && orphaned(e.JobID) {
				delete(s.work, id)
				n++
			}
		case models.CollectionStandbyLogs:
			if l, ok := s.standby[id]; ok && orphaned(l.JobID) {
				delete(s.standby, id)
				n++
			}
		case models.CollectionDailyLogs:
			if l, ok := s.days[id]; ok && orphaned(l.JobID) {
				delete(s.days, id)
				n++
			}
		case models.CollectionSilicaPlans:
			for jobID, p := range s.silica {
				if p.ID == id && orphaned(jobID) {
					delete(s.silica, jobID)
					n++
				}
			}
		default:
			return n, fmt.Errorf("unknown collection %q", c)
		}
	}
	s.wrote("DeleteChildren")
	return n, nil
}

func (s *Store) AdvanceJobStatus(ctx context.Context, jobID uuid.UUID, from, to models.JobStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("AdvanceJobStatus"); err != nil {
		return err
	}
	j, ok := s.jobs[jobID]
	if !ok || j.Status != from {
		return conflict("advance job status")
	}
	j.Status = to
	j.UpdatedAt = s.now()
	s.wrote("AdvanceJobStatus")
	return nil
}
