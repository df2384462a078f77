package documents

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops-backend/internal/models"
)

var (
	testLetterhead = Letterhead{Name: "Precision Concrete Cutting", Address: "12 Main St", Phone: "555-0100"}
	submitted      = time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)
	signed         = time.Date(2025, 3, 4, 17, 0, 0, 0, time.UTC)
)

func testJob() models.Job {
	return models.Job{
		ID:              uuid.MustParse("7b0c2f64-8a7e-4c3b-9d53-2b1f0a9e6c11"),
		JobNumber:       "J-1042",
		CustomerName:    "Acme Builders",
		CustomerContact: "Pat Lee 555-0199",
		Location:        "400 Harbor Blvd",
		Description:     "Core drilling for plumbing",
		Status:          models.JobStatusCompleted,
		QuotedAmount:    decimal.NewFromInt(1000),
		ArrivalTime:     sql.NullTime{Time: signed.Add(-8 * time.Hour), Valid: true},

		CompletionSignerName: sql.NullString{String: "Pat Lee", Valid: true},
		CompletionSignature:  sql.NullString{String: "Pat Lee", Valid: true},
		CompletionSignedAt:   sql.NullTime{Time: signed, Valid: true},
		CompletedAt:          sql.NullTime{Time: signed, Valid: true},
	}
}

func testPlan() models.SilicaPlan {
	return models.SilicaPlan{
		ID:                 uuid.New(),
		JobID:              testJob().ID,
		Employees:          []string{"Sam Ortiz", "Dee Park"},
		WorkTypes:          []string{"core_drilling", "wall_sawing"},
		WaterDelivery:      true,
		WorkArea:           models.SilicaIndoor,
		CuttingTime:        models.CuttingOverFourHours,
		RespiratorRequired: true,
		SafetyNotes:        "Ventilate stairwell, keep doors open",
		SignerName:         "Sam Ortiz",
		Signature:          "Sam Ortiz",
		SubmittedAt:        submitted,
	}
}

func testAgreement() AgreementDocument {
	return AgreementDocument{
		Job:          testJob(),
		OperatorName: "Sam Ortiz",
		WorkEntries: []models.WorkEntry{
			{ItemName: "Core holes", Quantity: 6, Details: models.HoleSpec{Holes: []models.Hole{{Quantity: 6, DiameterIn: 4, DepthIn: 8}}}},
			{ItemName: "Wall cut", Quantity: 1, Details: models.CutSpec{Cuts: []models.Cut{{LinearFeet: 12.5, DepthIn: 6}}}},
			{ItemName: "Cleanup", Details: models.GeneralSpec{DurationHours: 1.5, Equipment: []models.EquipmentUse{{Name: "slurry vac", Hours: 1}}}},
		},
		StandbyLogs: []models.StandbyLog{
			{StartedAt: signed.Add(-3 * time.Hour), DurationHours: decimal.NewFromInt(1), Reason: "GC lockout", Status: models.StandbyCompleted},
			{StartedAt: signed.Add(-1 * time.Hour), Reason: "still open", Status: models.StandbyActive},
		},
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	g := NewGenerator(testLetterhead)

	docs := []Document{
		SilicaPlanDocument{Job: testJob(), Plan: testPlan()},
		testAgreement(),
		LiabilityReleaseDocument{Job: testJob()},
	}
	for _, doc := range docs {
		t.Run(string(doc.Kind()), func(t *testing.T) {
			data, err := g.Render(doc)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
			assert.True(t, bytes.Contains(data, []byte("%%EOF")))
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	g := NewGenerator(testLetterhead)

	first, err := g.Render(testAgreement())
	require.NoError(t, err)
	// Cross a second boundary so any clock dependence would show.
	time.Sleep(1100 * time.Millisecond)
	second, err := g.Render(testAgreement())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_ContactNotOnSite(t *testing.T) {
	job := testJob()
	job.CompletionSignerName = sql.NullString{}
	job.CompletionSignature = sql.NullString{}
	job.CompletionSignedAt = sql.NullTime{}
	job.ContactNotOnSite = true

	doc := AgreementDocument{Job: job}
	assert.Equal(t, signed, doc.GeneratedAt(), "falls back to completed_at")

	data, err := NewGenerator(testLetterhead).Render(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRender_InvalidSignatureImageFallsBackToText(t *testing.T) {
	plan := testPlan()
	plan.Signature = "data:image/png;base64,not-really-a-png"

	data, err := NewGenerator(testLetterhead).Render(SilicaPlanDocument{Job: testJob(), Plan: plan})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRender_Nil(t *testing.T) {
	_, err := NewGenerator(testLetterhead).Render(nil)
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "silica_plan_7b0c2f64-8a7e-4c3b-9d53-2b1f0a9e6c11.pdf",
		Filename(SilicaPlanDocument{Job: testJob(), Plan: testPlan()}))
}

type fakeObjects struct {
	uploads map[string][]byte
	deleted []string
	failErr error
}

func (f *fakeObjects) Upload(path, contentType string, data []byte) error {
	if f.failErr != nil {
		return f.failErr
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[path] = data
	return nil
}

func (f *fakeObjects) Delete(path string) error {
	f.deleted = append(f.deleted, path)
	delete(f.uploads, path)
	return nil
}

type fakeRefs struct {
	paths   map[models.DocumentKind]string
	failErr error
}

func (f *fakeRefs) SetDocumentRef(_ context.Context, _ uuid.UUID, kind models.DocumentKind, path string, _ time.Time) error {
	if f.failErr != nil {
		return f.failErr
	}
	if f.paths == nil {
		f.paths = map[models.DocumentKind]string{}
	}
	f.paths[kind] = path
	return nil
}

func TestPersist_MatchesDownload(t *testing.T) {
	objects, refs := &fakeObjects{}, &fakeRefs{}
	g := NewGenerator(testLetterhead)
	p := NewPersister(g, objects, refs)
	doc := SilicaPlanDocument{Job: testJob(), Plan: testPlan()}

	stored, err := p.Persist(context.Background(), doc)
	require.NoError(t, err)

	download, err := g.Render(doc)
	require.NoError(t, err)

	assert.Equal(t, download, stored.Data)
	assert.Equal(t, download, objects.uploads[stored.Path])
	assert.Equal(t, "jobs/7b0c2f64-8a7e-4c3b-9d53-2b1f0a9e6c11/silica_plan_20250304T093000Z.pdf", stored.Path)
	assert.Equal(t, stored.Path, refs.paths[models.DocumentSilicaPlan])
	assert.Equal(t, submitted, stored.GeneratedAt)
}

func TestPersist_UploadFailure(t *testing.T) {
	objects := &fakeObjects{failErr: errors.New("bucket unavailable")}
	refs := &fakeRefs{}
	p := NewPersister(NewGenerator(testLetterhead), objects, refs)

	_, err := p.Persist(context.Background(), testAgreement())
	assert.ErrorIs(t, err, objects.failErr)
	assert.Empty(t, refs.paths)
}

func TestPersist_RefFailureRemovesUpload(t *testing.T) {
	objects := &fakeObjects{}
	refs := &fakeRefs{failErr: errors.New("db down")}
	p := NewPersister(NewGenerator(testLetterhead), objects, refs)

	_, err := p.Persist(context.Background(), testAgreement())
	assert.ErrorIs(t, err, refs.failErr)
	assert.Len(t, objects.deleted, 1)
	assert.Empty(t, objects.uploads)
}
