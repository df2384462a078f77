package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/supabase"
)

type fakeStore struct {
	jobs     []models.JobSnapshot
	children map[models.ChildCollection][]models.ChildRef
	failJobs error
	failList map[models.ChildCollection]error
	deletes  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		children: map[models.ChildCollection][]models.ChildRef{},
		failList: map[models.ChildCollection]error{},
	}
}

func (f *fakeStore) addJob(status models.JobStatus) models.JobSnapshot {
	j := models.JobSnapshot{ID: uuid.New(), JobNumber: fmt.Sprintf("J-%d", len(f.jobs)+1), Status: status}
	f.jobs = append(f.jobs, j)
	return j
}

func (f *fakeStore) addChild(c models.ChildCollection, jobID uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.children[c] = append(f.children[c], models.ChildRef{ID: id, JobID: jobID})
	return id
}

func (f *fakeStore) ListJobSnapshots(context.Context) ([]models.JobSnapshot, error) {
	if f.failJobs != nil {
		return nil, f.failJobs
	}
	return append([]models.JobSnapshot(nil), f.jobs...), nil
}

func (f *fakeStore) ListChildRefs(_ context.Context, c models.ChildCollection) ([]models.ChildRef, error) {
	if err := f.failList[c]; err != nil {
		return nil, err
	}
	return append([]models.ChildRef(nil), f.children[c]...), nil
}

func (f *fakeStore) DeleteChildren(_ context.Context, c models.ChildCollection, ids []uuid.UUID) (int64, error) {
	f.deletes++
	live := map[uuid.UUID]bool{}
	for _, j := range f.jobs {
		live[j.ID] = true
	}
	drop := map[uuid.UUID]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	var kept []models.ChildRef
	var n int64
	for _, r := range f.children[c] {
		if drop[r.ID] && !live[r.JobID] {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.children[c] = kept
	return n, nil
}

func (f *fakeStore) AdvanceJobStatus(_ context.Context, jobID uuid.UUID, from, to models.JobStatus) error {
	for i := range f.jobs {
		if f.jobs[i].ID == jobID {
			if f.jobs[i].Status != from {
				return fmt.Errorf("advance job status: %w", supabase.ErrConflict)
			}
			f.jobs[i].Status = to
			return nil
		}
	}
	return fmt.Errorf("advance job status: %w", supabase.ErrConflict)
}

func TestFindOrphans_DeletedJobAndCleanup(t *testing.T) {
	store := newFakeStore()
	live := store.addJob(models.JobStatusInProgress)
	kept := store.addChild(models.CollectionWorkPerformed, live.ID)
	orphan := store.addChild(models.CollectionWorkPerformed, uuid.New())

	u := New(store)
	ctx := context.Background()

	set, err := u.FindOrphans(ctx)
	require.NoError(t, err)
	assert.True(t, set.Contains(models.CollectionWorkPerformed, orphan))
	assert.False(t, set.Contains(models.CollectionWorkPerformed, kept))
	assert.Equal(t, 1, set.Count())

	result, err := u.Cleanup(ctx, set, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	after, err := u.FindOrphans(ctx)
	require.NoError(t, err)
	assert.False(t, after.Contains(models.CollectionWorkPerformed, orphan))
	assert.Zero(t, after.Count())
	assert.Len(t, store.children[models.CollectionWorkPerformed], 1)
}

func TestFindOrphans_Idempotent(t *testing.T) {
	store := newFakeStore()
	job := store.addJob(models.JobStatusScheduled)
	store.addChild(models.CollectionDailyLogs, job.ID)
	for i := 0; i < 5; i++ {
		store.addChild(models.CollectionWorkPerformed, uuid.New())
		store.addChild(models.CollectionStandbyLogs, uuid.New())
	}

	u := New(store)
	first, err := u.FindOrphans(context.Background())
	require.NoError(t, err)
	second, err := u.FindOrphans(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 10, first.Count())
	assert.Zero(t, store.deletes, "detection must not mutate")
}

func TestFindOrphans_OneCollectionFailing(t *testing.T) {
	store := newFakeStore()
	store.addJob(models.JobStatusScheduled)
	orphan := store.addChild(models.CollectionStandbyLogs, uuid.New())
	store.failList[models.CollectionDailyLogs] = errors.New("network down")

	set, err := New(store).FindOrphans(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily_logs")
	assert.True(t, set.Contains(models.CollectionStandbyLogs, orphan))
}

func TestFindOrphans_NoJobsListedMeansNoOrphans(t *testing.T) {
	store := newFakeStore()
	store.addChild(models.CollectionWorkPerformed, uuid.New())
	store.failJobs = errors.New("timeout")

	set, err := New(store).FindOrphans(context.Background())
	require.Error(t, err)
	assert.Zero(t, set.Count(), "an unreadable job table must not turn every child into an orphan")
}

func TestCleanup_RequiresConfirmation(t *testing.T) {
	store := newFakeStore()
	store.addChild(models.CollectionWorkPerformed, uuid.New())
	u := New(store)

	set, err := u.FindOrphans(context.Background())
	require.NoError(t, err)

	_, err = u.Cleanup(context.Background(), set, false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Zero(t, store.deletes)
	assert.Len(t, store.children[models.CollectionWorkPerformed], 1)
}

func TestCleanup_OnlyPreviouslyIdentifiedSet(t *testing.T) {
	store := newFakeStore()
	first := store.addChild(models.CollectionWorkPerformed, uuid.New())
	u := New(store)

	set, err := u.FindOrphans(context.Background())
	require.NoError(t, err)

	// Orphaned after detection: not part of the confirmed set.
	later := store.addChild(models.CollectionWorkPerformed, uuid.New())

	_, err = u.Cleanup(context.Background(), set, true)
	require.NoError(t, err)
	require.Len(t, store.children[models.CollectionWorkPerformed], 1)
	assert.Equal(t, later, store.children[models.CollectionWorkPerformed][0].ID)
	assert.NotEqual(t, first, later)
}

func TestCleanup_KeepsRecordsWithLiveJob(t *testing.T) {
	store := newFakeStore()
	job := store.addJob(models.JobStatusInProgress)
	work := store.addChild(models.CollectionWorkPerformed, job.ID)
	plan := store.addChild(models.CollectionSilicaPlans, job.ID)
	orphan := store.addChild(models.CollectionWorkPerformed, uuid.New())

	set := OrphanSet{
		models.CollectionWorkPerformed: {work, orphan},
		models.CollectionSilicaPlans:   {plan},
	}
	result, err := New(store).Cleanup(context.Background(), set, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, store.children[models.CollectionWorkPerformed], 1)
	assert.Equal(t, work, store.children[models.CollectionWorkPerformed][0].ID)
	assert.Len(t, store.children[models.CollectionSilicaPlans], 1)
}

func TestCleanup_UnknownCollection(t *testing.T) {
	_, err := New(newFakeStore()).Cleanup(context.Background(), OrphanSet{"photos": {uuid.New()}}, true)
	assert.Error(t, err)
}

func TestRun_ChecksIndependent(t *testing.T) {
	store := newFakeStore()
	store.addJob(models.JobStatusScheduled)
	store.addJob(models.JobStatusCompleted)
	store.failList[models.CollectionDailyLogs] = errors.New("network down")

	report := New(store).Run(context.Background())

	assert.Equal(t, 2, report.TotalJobs)
	assert.Equal(t, 1, report.StatusCounts[models.JobStatusScheduled])
	assert.Equal(t, 1, report.StatusCounts[models.JobStatusCompleted])
	assert.Equal(t, 0, report.StatusCounts[models.JobStatusUnassigned])

	var failed []string
	for _, e := range report.Errors {
		failed = append(failed, e.Check)
	}
	assert.ElementsMatch(t, []string{"multi_day", "orphans", "drift"}, failed)
}

func TestMultiDayJobs(t *testing.T) {
	store := newFakeStore()
	single := store.addJob(models.JobStatusInProgress)
	multi := store.addJob(models.JobStatusInProgress)
	store.addChild(models.CollectionDailyLogs, single.ID)
	store.addChild(models.CollectionDailyLogs, multi.ID)
	store.addChild(models.CollectionDailyLogs, multi.ID)

	jobs, err := New(store).MultiDayJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, multi.ID, jobs[0].JobID)
	assert.Equal(t, 2, jobs[0].DailyLogs)
}

func TestFindDriftAndRepair(t *testing.T) {
	store := newFakeStore()
	working := store.addJob(models.JobStatusScheduled)
	store.addChild(models.CollectionWorkPerformed, working.ID)

	signed := store.addJob(models.JobStatusInProgress)
	store.jobs[1].SignatureCaptured = true

	clean := store.addJob(models.JobStatusCompleted)
	store.addChild(models.CollectionWorkPerformed, clean.ID)

	u := New(store)
	drift, err := u.FindDrift(context.Background())
	require.NoError(t, err)
	require.Len(t, drift, 2)

	expected := map[uuid.UUID]models.JobStatus{}
	for _, d := range drift {
		expected[d.JobID] = d.Expected
	}
	assert.Equal(t, models.JobStatusInProgress, expected[working.ID])
	assert.Equal(t, models.JobStatusCompleted, expected[signed.ID])

	result := u.Repair(context.Background(), drift)
	assert.Len(t, result.Advanced, 2)
	assert.Empty(t, result.Errors)

	after, err := u.FindDrift(context.Background())
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestRepair_NeverRegresses(t *testing.T) {
	store := newFakeStore()
	job := store.addJob(models.JobStatusCompleted)

	result := New(store).Repair(context.Background(), []Drift{{
		JobID: job.ID, Status: models.JobStatusCompleted, Expected: models.JobStatusInProgress,
	}})
	assert.Len(t, result.Skipped, 1)
	assert.Equal(t, models.JobStatusCompleted, store.jobs[0].Status)
}

func TestRepair_SkipsJobChangedSinceDetection(t *testing.T) {
	store := newFakeStore()
	job := store.addJob(models.JobStatusScheduled)
	store.addChild(models.CollectionWorkPerformed, job.ID)
	u := New(store)

	drift, err := u.FindDrift(context.Background())
	require.NoError(t, err)
	store.jobs[0].Status = models.JobStatusInProgress

	result := u.Repair(context.Background(), drift)
	assert.Empty(t, result.Advanced)
	assert.Len(t, result.Skipped, 1)
}
