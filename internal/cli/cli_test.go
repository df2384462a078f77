package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fieldops-backend/internal/memstore"
	"fieldops-backend/internal/models"
	"fieldops-backend/internal/reports"
)

type closingStore struct {
	*memstore.Store
}

func (closingStore) Close() error { return nil }

func useStore(t *testing.T, store *memstore.Store) {
	t.Helper()
	color.NoColor = true
	prev := openStore
	openStore = func(string) (Store, error) { return closingStore{store}, nil }
	t.Cleanup(func() { openStore = prev })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--database-url", "postgres://test"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func addJob(t *testing.T, store *memstore.Store, number string, status models.JobStatus) *models.Job {
	t.Helper()
	job, err := store.CreateJob(context.Background(), &models.Job{
		JobNumber:    number,
		CustomerName: "Acme Builders",
		Location:     "400 Harbor Blvd",
		Status:       status,
	})
	require.NoError(t, err)
	return job
}

func addWork(store *memstore.Store, jobID uuid.UUID) uuid.UUID {
	id := uuid.New()
	store.AddWorkEntry(models.WorkEntry{ID: id, JobID: jobID, ItemName: "Core drilling", Details: models.GeneralSpec{}})
	return id
}

func TestReconcileReport(t *testing.T) {
	store := memstore.New()
	useStore(t, store)

	addJob(t, store, "J-1", models.JobStatusUnassigned)
	drifted := addJob(t, store, "J-2", models.JobStatusScheduled)
	addWork(store, drifted.ID)
	gone := addJob(t, store, "J-3", models.JobStatusInProgress)
	orphan := addWork(store, gone.ID)
	store.DeleteJob(gone.ID)

	out, err := run(t, "reconcile", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Jobs: 2")
	assert.Contains(t, out, "Orphaned records: 1")
	assert.Contains(t, out, orphan.String())
	assert.Contains(t, out, "J-2: scheduled, expected in_progress")
}

func TestReconcileCleanup(t *testing.T) {
	store := memstore.New()
	useStore(t, store)

	gone := addJob(t, store, "J-1", models.JobStatusInProgress)
	addWork(store, gone.ID)
	addWork(store, gone.ID)
	store.DeleteJob(gone.ID)

	out, err := run(t, "reconcile", "cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "dry run")
	assert.Zero(t, store.Writes["DeleteChildren"])

	out, err = run(t, "reconcile", "cleanup", "--confirm")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 2 records")

	out, err = run(t, "reconcile", "cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "Orphaned records: none")
}

func TestReconcileRepair(t *testing.T) {
	store := memstore.New()
	useStore(t, store)

	job := addJob(t, store, "J-1", models.JobStatusScheduled)
	addWork(store, job.ID)

	out, err := run(t, "reconcile", "repair")
	require.NoError(t, err)
	assert.Contains(t, out, "advanced J-1: scheduled -> in_progress")

	got, err := store.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInProgress, got.Status)

	out, err = run(t, "reconcile", "repair")
	require.NoError(t, err)
	assert.Contains(t, out, "no status drift")
}

func TestExportCompleted(t *testing.T) {
	store := memstore.New()
	useStore(t, store)

	job := addJob(t, store, "J-1", models.JobStatusInProgress)
	require.NoError(t, store.CompleteJob(context.Background(), job.ID, models.CompletionRecord{
		CompletedAt:      time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC),
		ContactNotOnSite: true,
	}))
	addJob(t, store, "J-2", models.JobStatusScheduled)

	path := filepath.Join(t.TempDir(), "done.xlsx")
	out, err := run(t, "export", "completed", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 1 completed jobs")
	assert.Contains(t, out, "1 contact not on site")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(reports.CompletedSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "J-1", rows[1][0])
}

func TestMissingDatabaseURL(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--database-url", "", "reconcile", "report"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
