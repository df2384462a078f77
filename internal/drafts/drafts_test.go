package drafts

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops-backend/internal/models"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "drafts", "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func holeItem(qty int) models.WorkEntryInput {
	return models.WorkEntryInput{
		ItemName: "Core holes",
		Quantity: float64(qty),
		Kind:     models.WorkKindHoles,
		Details:  json.RawMessage(`{"holes":[{"quantity":2,"diameter_in":4,"depth_in":8}]}`),
	}
}

func TestSaveLoad(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	job, user := uuid.New(), uuid.New()
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, &Draft{JobID: job, Items: []models.WorkEntryInput{holeItem(2)}, UpdatedBy: user, UpdatedAt: at}))

	got, err := repo.Load(ctx, job)
	require.NoError(t, err)
	assert.Equal(t, job, got.JobID)
	assert.Equal(t, user, got.UpdatedBy)
	assert.True(t, at.Equal(got.UpdatedAt))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Core holes", got.Items[0].ItemName)
	assert.JSONEq(t, `{"holes":[{"quantity":2,"diameter_in":4,"depth_in":8}]}`, string(got.Items[0].Details))

	details, err := got.Items[0].Decode()
	require.NoError(t, err)
	assert.Equal(t, 2, details.(models.HoleSpec).TotalHoles())
}

func TestSave_Replaces(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	job := uuid.New()

	require.NoError(t, repo.Save(ctx, &Draft{JobID: job, Items: []models.WorkEntryInput{holeItem(1)}}))
	require.NoError(t, repo.Save(ctx, &Draft{JobID: job, Items: []models.WorkEntryInput{holeItem(1), holeItem(3)}}))

	got, err := repo.Load(ctx, job)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestClear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	job, other := uuid.New(), uuid.New()

	require.NoError(t, repo.Save(ctx, &Draft{JobID: job, Items: []models.WorkEntryInput{holeItem(1)}}))
	require.NoError(t, repo.Save(ctx, &Draft{JobID: other, Items: []models.WorkEntryInput{holeItem(1)}}))

	require.NoError(t, repo.Clear(ctx, job))
	_, err := repo.Load(ctx, job)
	assert.ErrorIs(t, err, ErrNoDraft)

	_, err = repo.Load(ctx, other)
	assert.NoError(t, err, "clearing one job leaves other drafts")

	assert.NoError(t, repo.Clear(ctx, job), "clearing twice is fine")
}

func TestLoad_Missing(t *testing.T) {
	_, err := setupRepo(t).Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestSave_RequiresJob(t *testing.T) {
	assert.Error(t, setupRepo(t).Save(context.Background(), &Draft{}))
}

func TestOpen_InMemory(t *testing.T) {
	repo, err := Open(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	job := uuid.New()
	require.NoError(t, repo.Save(context.Background(), &Draft{JobID: job}))
	_, err = repo.Load(context.Background(), job)
	assert.NoError(t, err)
}
