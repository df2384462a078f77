// Package reconcile audits job orders against their dependent records. Every
// check reads independently, so one failing check never hides the others.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/supabase"
)

var ErrNotConfirmed = errors.New("cleanup must be confirmed")

type Store interface {
	ListJobSnapshots(ctx context.Context) ([]models.JobSnapshot, error)
	ListChildRefs(ctx context.Context, c models.ChildCollection) ([]models.ChildRef, error)
	// DeleteChildren removes the listed records, skipping any whose job
	// exists at the time of deletion.
	DeleteChildren(ctx context.Context, c models.ChildCollection, ids []uuid.UUID) (int64, error)
	AdvanceJobStatus(ctx context.Context, jobID uuid.UUID, from, to models.JobStatus) error
}

// OrphanSet holds child record ids whose parent job does not exist, keyed by
// collection. Ids are sorted.
type OrphanSet map[models.ChildCollection][]uuid.UUID

func (s OrphanSet) Count() int {
	n := 0
	for _, ids := range s {
		n += len(ids)
	}
	return n
}

func (s OrphanSet) Contains(c models.ChildCollection, id uuid.UUID) bool {
	for _, got := range s[c] {
		if got == id {
			return true
		}
	}
	return false
}

type MultiDayJob struct {
	JobID     uuid.UUID        `json:"job_id"`
	JobNumber string           `json:"job_number"`
	Status    models.JobStatus `json:"status"`
	DailyLogs int              `json:"daily_logs"`
}

// Drift is a job whose dependent records imply a later status than it holds.
type Drift struct {
	JobID     uuid.UUID        `json:"job_id"`
	JobNumber string           `json:"job_number"`
	Status    models.JobStatus `json:"status"`
	Expected  models.JobStatus `json:"expected"`
	Reason    string           `json:"reason"`
}

type CheckError struct {
	Check string `json:"check"`
	Error string `json:"error"`
}

type Report struct {
	GeneratedAt  time.Time                `json:"generated_at"`
	TotalJobs    int                      `json:"total_jobs"`
	StatusCounts map[models.JobStatus]int `json:"status_counts"`
	MultiDay     []MultiDayJob            `json:"multi_day"`
	Orphans      OrphanSet                `json:"orphans"`
	OrphanCount  int                      `json:"orphan_count"`
	Drift        []Drift                  `json:"drift"`
	Errors       []CheckError             `json:"errors,omitempty"`
}

type Utility struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Utility {
	return &Utility{store: store, now: time.Now}
}

// Run executes every check and collects failures per check.
func (u *Utility) Run(ctx context.Context) *Report {
	report := &Report{GeneratedAt: u.now().UTC()}
	fail := func(check string, err error) {
		log.Printf("reconcile %s: %v", check, err)
		report.Errors = append(report.Errors, CheckError{Check: check, Error: err.Error()})
	}

	if counts, total, err := u.StatusBreakdown(ctx); err != nil {
		fail("status_breakdown", err)
	} else {
		report.StatusCounts, report.TotalJobs = counts, total
	}
	if multi, err := u.MultiDayJobs(ctx); err != nil {
		fail("multi_day", err)
	} else {
		report.MultiDay = multi
	}
	orphans, err := u.FindOrphans(ctx)
	if err != nil {
		fail("orphans", err)
	}
	report.Orphans, report.OrphanCount = orphans, orphans.Count()
	if drift, err := u.FindDrift(ctx); err != nil {
		fail("drift", err)
	} else {
		report.Drift = drift
	}
	return report
}

// StatusBreakdown counts jobs per status. Every known status is present.
func (u *Utility) StatusBreakdown(ctx context.Context) (map[models.JobStatus]int, int, error) {
	jobs, err := u.store.ListJobSnapshots(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	counts := make(map[models.JobStatus]int, len(models.JobStatuses))
	for _, s := range models.JobStatuses {
		counts[s] = 0
	}
	for _, j := range jobs {
		counts[j.Status]++
	}
	return counts, len(jobs), nil
}

// MultiDayJobs lists jobs with more than one daily log.
func (u *Utility) MultiDayJobs(ctx context.Context) ([]MultiDayJob, error) {
	jobs, err := u.store.ListJobSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	logs, err := u.store.ListChildRefs(ctx, models.CollectionDailyLogs)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	perJob := countByJob(logs)

	var out []MultiDayJob
	for _, j := range jobs {
		if n := perJob[j.ID]; n > 1 {
			out = append(out, MultiDayJob{JobID: j.ID, JobNumber: j.JobNumber, Status: j.Status, DailyLogs: n})
		}
	}
	return out, nil
}

// FindOrphans returns child records whose job id has no job. It never
// mutates. When one collection cannot be read the others are still checked
// and the returned error names the failures.
func (u *Utility) FindOrphans(ctx context.Context) (OrphanSet, error) {
	set := OrphanSet{}
	jobs, err := u.store.ListJobSnapshots(ctx)
	if err != nil {
		return set, fmt.Errorf("list jobs: %w", err)
	}
	known := make(map[uuid.UUID]struct{}, len(jobs))
	for _, j := range jobs {
		known[j.ID] = struct{}{}
	}

	var errs []error
	for _, c := range models.ChildCollections {
		refs, err := u.store.ListChildRefs(ctx, c)
		if err != nil {
			errs = append(errs, fmt.Errorf("list %s: %w", c, err))
			continue
		}
		var ids []uuid.UUID
		for _, r := range refs {
			if _, ok := known[r.JobID]; !ok {
				ids = append(ids, r.ID)
			}
		}
		if len(ids) > 0 {
			sortIDs(ids)
			set[c] = ids
		}
	}
	return set, errors.Join(errs...)
}

// FindDrift reports jobs that should have advanced: work or daily logs on a
// job not yet in progress, or a completion sign-off on a job not completed.
func (u *Utility) FindDrift(ctx context.Context) ([]Drift, error) {
	jobs, err := u.store.ListJobSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	work, err := u.store.ListChildRefs(ctx, models.CollectionWorkPerformed)
	if err != nil {
		return nil, fmt.Errorf("list work performed: %w", err)
	}
	days, err := u.store.ListChildRefs(ctx, models.CollectionDailyLogs)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	workByJob, daysByJob := countByJob(work), countByJob(days)

	var out []Drift
	for _, j := range jobs {
		d := Drift{JobID: j.ID, JobNumber: j.JobNumber, Status: j.Status}
		switch {
		case (j.SignatureCaptured || j.ContactNotOnSite) && j.Status != models.JobStatusCompleted:
			d.Expected = models.JobStatusCompleted
			d.Reason = "completion sign-off recorded"
		case j.Status.Rank() < models.JobStatusInProgress.Rank() && workByJob[j.ID] > 0:
			d.Expected = models.JobStatusInProgress
			d.Reason = fmt.Sprintf("%d work entries recorded", workByJob[j.ID])
		case j.Status.Rank() < models.JobStatusInProgress.Rank() && daysByJob[j.ID] > 0:
			d.Expected = models.JobStatusInProgress
			d.Reason = fmt.Sprintf("%d daily logs recorded", daysByJob[j.ID])
		default:
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type CleanupResult struct {
	Deleted map[models.ChildCollection]int64 `json:"deleted"`
	Total   int64                            `json:"total"`
	Errors  []CheckError                     `json:"errors,omitempty"`
}

// Cleanup deletes the ids in set, which must come from an earlier FindOrphans
// the caller has confirmed. Nothing is recomputed here, but the store only
// deletes a record while its job is still missing, so an id whose job
// exists is never removed.
func (u *Utility) Cleanup(ctx context.Context, set OrphanSet, confirmed bool) (*CleanupResult, error) {
	if !confirmed {
		return nil, ErrNotConfirmed
	}
	for c := range set {
		if !c.Valid() {
			return nil, fmt.Errorf("unknown collection %q", c)
		}
	}
	result := &CleanupResult{Deleted: map[models.ChildCollection]int64{}}
	for _, c := range models.ChildCollections {
		ids := set[c]
		if len(ids) == 0 {
			continue
		}
		n, err := u.store.DeleteChildren(ctx, c, ids)
		if err != nil {
			log.Printf("reconcile cleanup %s: %v", c, err)
			result.Errors = append(result.Errors, CheckError{Check: string(c), Error: err.Error()})
			continue
		}
		result.Deleted[c] = n
		result.Total += n
	}
	return result, nil
}

type RepairResult struct {
	Advanced []Drift      `json:"advanced"`
	Skipped  []Drift      `json:"skipped,omitempty"`
	Errors   []CheckError `json:"errors,omitempty"`
}

// Repair advances each drifted job to its expected status. Status only
// moves forward; a job whose status changed since detection is skipped.
func (u *Utility) Repair(ctx context.Context, drift []Drift) *RepairResult {
	result := &RepairResult{}
	for _, d := range drift {
		if d.Expected.Rank() <= d.Status.Rank() {
			result.Skipped = append(result.Skipped, d)
			continue
		}
		err := u.store.AdvanceJobStatus(ctx, d.JobID, d.Status, d.Expected)
		switch {
		case err == nil:
			result.Advanced = append(result.Advanced, d)
		case errors.Is(err, supabase.ErrConflict):
			result.Skipped = append(result.Skipped, d)
		default:
			log.Printf("reconcile repair job %s: %v", d.JobID, err)
			result.Errors = append(result.Errors, CheckError{Check: d.JobID.String(), Error: err.Error()})
		}
	}
	return result
}

func countByJob(refs []models.ChildRef) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for _, r := range refs {
		counts[r.JobID]++
	}
	return counts
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
