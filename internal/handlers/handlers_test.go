package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops-backend/internal/assets"
	"fieldops-backend/internal/config"
	"fieldops-backend/internal/costing"
	"fieldops-backend/internal/documents"
	"fieldops-backend/internal/drafts"
	"fieldops-backend/internal/guard"
	"fieldops-backend/internal/memstore"
	"fieldops-backend/internal/models"
	"fieldops-backend/internal/reconcile"
	"fieldops-backend/internal/reports"
	"fieldops-backend/internal/services"
	"fieldops-backend/internal/session"
	"fieldops-backend/internal/supabase"
	"fieldops-backend/internal/workflow"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

type nopPublisher struct{}

func (nopPublisher) Notify(uuid.UUID, string, map[string]interface{}) {}

type testServer struct {
	router   *gin.Engine
	store    *memstore.Store
	objects  *memstore.Objects
	admin    string
	operator string
	op       *models.Operator
}

func signToken(t *testing.T, userID uuid.UUID, role session.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":          userID.String(),
		"exp":          time.Now().Add(time.Hour).Unix(),
		"app_metadata": map[string]interface{}{"role": string(role)},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	objects := memstore.NewObjects()
	repo, err := drafts.Open(filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	jobs := services.NewJobService(services.Deps{
		Store:      store,
		Objects:    objects,
		Drafts:     repo,
		Locator:    services.DeviceLocator{},
		Letterhead: documents.Letterhead{Name: "Precision Concrete Cutting"},
		Rates:      costing.NewRates(40, 75, 10, nil, nil),
	})
	operators := services.NewOperatorService(store, objects)

	router := gin.New()
	Register(router, &config.Config{SupabaseJWTSecret: testSecret}, Set{
		Health:    NewHealthHandler(store),
		Jobs:      NewJobsHandler(jobs),
		OnSite:    NewOnSiteHandler(jobs),
		Documents: NewDocumentsHandler(jobs),
		Operators: NewOperatorsHandler(operators),
		Assets:    NewAssetsHandler(assets.NewTracker(store, objects)),
		Admin:     NewAdminHandler(reconcile.New(store), jobs, operators, nopPublisher{}),
	})

	adminID, opUser := uuid.New(), uuid.New()
	adminCtx := session.NewContext(context.Background(), session.Session{UserID: adminID, Role: session.RoleAdmin})
	op, err := operators.Create(adminCtx, models.CreateOperatorRequest{UserID: &opUser, Name: "Dana Ruiz"})
	require.NoError(t, err)

	return &testServer{
		router:   router,
		store:    store,
		objects:  objects,
		admin:    signToken(t, adminID, session.RoleAdmin),
		operator: signToken(t, opUser, session.RoleOperator),
		op:       op,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// createJob creates a job scheduled for the test operator and returns its id.
func (s *testServer) createJob(t *testing.T, number string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/jobs", s.admin, map[string]interface{}{
		"job_number":     number,
		"customer":       "Acme Builders",
		"address":        "400 Harbor Blvd",
		"operator_id":    s.op.ID,
		"scheduled_date": time.Now().UTC(),
		"quoted_amount":  "1000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var job struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, string(models.JobStatusScheduled), job.Status)
	return job.ID
}

func silicaBody() map[string]interface{} {
	return map[string]interface{}{
		"employees":      []string{"Dana Ruiz"},
		"work_types":     []string{"wall_sawing"},
		"water_delivery": true,
		"work_area":      models.SilicaOutdoor,
		"cutting_time":   models.CuttingUnderFourHours,
		"signer_name":    "Dana Ruiz",
	}
}

// workThrough takes a job through arrival, the silica plan and one work entry.
func (s *testServer) workThrough(t *testing.T, jobID string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/arrive", s.operator, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/silica-plan", s.operator, silicaBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/work-performed", s.operator, map[string]interface{}{
		"items": []map[string]interface{}{{
			"item_name": "Wall sawing",
			"quantity":  1,
			"kind":      models.WorkKindGeneral,
		}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	s.store.Fail["Ping"] = errors.New("connection refused")
	w = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}

func TestRoutes_Auth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/jobs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/jobs", s.operator, map[string]interface{}{"job_number": "J-1"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/reconcile", s.operator, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/reconcile", s.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJobs_InvalidID(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/jobs/not-a-uuid", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid job id")

	w = s.do(t, http.MethodGet, "/api/v1/jobs/"+uuid.NewString(), s.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJobs_OutOfOrderStep(t *testing.T) {
	s := newTestServer(t)
	jobID := s.createJob(t, "J-100")

	w := s.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/silica-plan", s.operator, silicaBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSilicaPlan_SecondSubmission(t *testing.T) {
	s := newTestServer(t)
	jobID := s.createJob(t, "J-101")

	w := s.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/arrive", s.operator, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/silica-plan", s.operator, silicaBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/silica-plan", s.operator, silicaBody())
	assert.Equal(t, http.StatusConflict, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.AlreadySubmitted)
	assert.Equal(t, 1, s.store.Writes["CreateSilicaPlan"])
}

func TestCompleteAndCosts(t *testing.T) {
	s := newTestServer(t)
	jobID := s.createJob(t, "J-102")
	s.workThrough(t, jobID)

	w := s.do(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/costs", s.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "costs need a completed job")

	w = s.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/complete", s.operator, map[string]interface{}{
		"contact_not_on_site": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var done models.CompleteJobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &done))
	assert.Equal(t, models.JobStatusCompleted, done.Job.Status)
	assert.Empty(t, done.DocumentError)
	assert.Len(t, done.Documents, 2)

	w = s.do(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/costs", s.operator, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/costs", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var costs models.CostBreakdownResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &costs))
	assert.Equal(t, jobID, costs.JobID)
	assert.True(t, costs.QuotedAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, costs.LaborRate.Equal(decimal.NewFromInt(40)))

	w = s.do(t, http.MethodGet, "/api/v1/jobs/completed", s.operator, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"contact_not_on_site_count":1`)
}

func TestDocuments(t *testing.T) {
	s := newTestServer(t)
	jobID := s.createJob(t, "J-103")
	s.workThrough(t, jobID)

	w := s.do(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/documents/silica_plan", s.operator, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, supabase.ContentTypePDF, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), fmt.Sprintf("silica_plan_%s.pdf", jobID))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	// the copy stored at submission is the same document
	paths := s.objects.Paths("jobs/" + jobID + "/")
	require.Len(t, paths, 1)
	stored, err := s.objects.Download(paths[0])
	require.NoError(t, err)
	assert.Equal(t, w.Body.Bytes(), stored)

	w = s.do(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/documents/agreement", s.operator, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "agreement needs a completed job")

	w = s.do(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/documents/invoice", s.operator, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssets_CostIsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	body := map[string]interface{}{"type": "core_bit", "brand": "Hilti", "cost": "120.50"}

	w := s.do(t, http.MethodPost, "/api/v1/assets", s.operator, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/assets", s.admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/assets", s.operator, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hilti")
	assert.NotContains(t, w.Body.String(), "120.5")
}

func TestAdmin_CleanupNeedsConfirmation(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/admin/reconcile/cleanup", s.admin, map[string]interface{}{
		"orphans": map[string][]string{"work_performed": {uuid.NewString()}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_CleanupSparesLiveJobRecords(t *testing.T) {
	s := newTestServer(t)
	jobID := s.createJob(t, "J-1")
	s.workThrough(t, jobID)

	ctx := context.Background()
	work, err := s.store.ListChildRefs(ctx, models.CollectionWorkPerformed)
	require.NoError(t, err)
	require.Len(t, work, 1)
	plans, err := s.store.ListChildRefs(ctx, models.CollectionSilicaPlans)
	require.NoError(t, err)
	require.Len(t, plans, 1)

	w := s.do(t, http.MethodPost, "/api/v1/admin/reconcile/cleanup", s.admin, map[string]interface{}{
		"confirm": true,
		"orphans": map[string][]uuid.UUID{
			"work_performed": {work[0].ID},
			"silica_plans":   {plans[0].ID},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result reconcile.CleanupResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Zero(t, result.Total)

	work, err = s.store.ListChildRefs(ctx, models.CollectionWorkPerformed)
	require.NoError(t, err)
	assert.Len(t, work, 1)

	// The plan is still there, so a second submission stays blocked.
	w = s.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/silica-plan", s.operator, silicaBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdmin_CompletedReport(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/admin/reports/completed.xlsx", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, reports.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "completed_jobs_")
	// XLSX is a zip archive
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", services.ErrValidation), http.StatusBadRequest},
		{assets.ErrPhotoRequired, http.StatusBadRequest},
		{reconcile.ErrNotConfirmed, http.StatusBadRequest},
		{session.ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("%w: operator", session.ErrForbidden), http.StatusForbidden},
		{supabase.ErrNotFound, http.StatusNotFound},
		{drafts.ErrNoDraft, http.StatusNotFound},
		{guard.ErrAlreadySubmitted, http.StatusConflict},
		{workflow.ErrNotAllowed, http.StatusConflict},
		{assets.ErrRetired, http.StatusConflict},
		{costing.ErrNotCompleted, http.StatusConflict},
		{services.ErrDraftsUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: got text/plain", assets.ErrPhotoType), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
