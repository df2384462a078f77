package reports

import (
	"bytes"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fieldops-backend/internal/models"
)

func completedJob(number string, signed bool, operator uuid.UUID) models.Job {
	at := time.Date(2025, 4, 2, 15, 30, 0, 0, time.UTC)
	j := models.Job{
		ID:           uuid.New(),
		JobNumber:    number,
		CustomerName: "Acme",
		Location:     "1 Dock Rd",
		OperatorID:   uuid.NullUUID{UUID: operator, Valid: true},
		Status:       models.JobStatusCompleted,
		QuotedAmount: decimal.RequireFromString("1250.50"),
		CompletedAt:  sql.NullTime{Time: at, Valid: true},
	}
	if signed {
		j.CompletionSignerName = sql.NullString{String: "Pat Lee", Valid: true}
		j.CompletionSignedAt = sql.NullTime{Time: at, Valid: true}
	} else {
		j.ContactNotOnSite = true
	}
	return j
}

func TestBuildCompletedWorkbook(t *testing.T) {
	op := uuid.New()
	jobs := []models.Job{
		completedJob("J-2", true, op),
		completedJob("J-1", false, op),
		{JobNumber: "J-3", Status: models.JobStatusInProgress},
	}

	data, err := BuildCompletedWorkbook(CompletedJobs{
		Jobs:        jobs,
		Operators:   map[uuid.UUID]string{op: "Sam Ortiz"},
		GeneratedAt: time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(CompletedSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two completed jobs")
	assert.Equal(t, "Job Number", rows[0][0])
	assert.Equal(t, []string{"J-2", "Acme", "1 Dock Rd", "Sam Ortiz", "2025-04-02 15:30", "Pat Lee", "1250.5"}, rows[1])
	assert.Equal(t, "J-1", rows[2][0])
	assert.Equal(t, "Contact Not On Site", rows[2][5])

	count, err := f.GetCellValue(SummarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", count)

	completed, err := f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", completed)
}

func TestContactNotOnSiteCount(t *testing.T) {
	op := uuid.New()
	jobs := []models.Job{
		completedJob("J-1", false, op),
		completedJob("J-2", false, op),
		completedJob("J-3", true, op),
		{Status: models.JobStatusInProgress, ContactNotOnSite: true},
	}
	assert.Equal(t, 2, ContactNotOnSiteCount(jobs))
}

func TestBuildCompletedWorkbook_Empty(t *testing.T) {
	data, err := BuildCompletedWorkbook(CompletedJobs{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(CompletedSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
