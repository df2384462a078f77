package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/services"
)

type JobsHandler struct {
	jobs *services.JobService
}

func NewJobsHandler(jobs *services.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// CreateJob godoc
// @Summary     Create a job order
// @Description Creates a job order. Supplying both operator_id and scheduled_date creates it scheduled, otherwise it starts unassigned.
// @Description Legacy field names (title, customer, address) are accepted and normalized.
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateJobRequest true "Job order"
// @Success     201 {object} models.Job
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs [post]
func (h *JobsHandler) CreateJob(c *gin.Context) {
	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	job, err := h.jobs.CreateJob(c.Request.Context(), req)
	if err != nil {
		respondError(c, "failed to create job", err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// ListJobs godoc
// @Summary     List jobs
// @Description Lists job orders, optionally filtered by status. Operators only see jobs assigned to them.
// @Tags        jobs
// @Produce     json
// @Security    Bearer
// @Param       status query string false "unassigned, scheduled, in_progress or completed"
// @Success     200 {object} models.JobListResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /jobs [get]
func (h *JobsHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.ListJobs(c.Request.Context(), models.JobStatus(c.Query("status")))
	if err != nil {
		respondError(c, "failed to list jobs", err)
		return
	}
	c.JSON(http.StatusOK, models.JobListResponse{Jobs: jobs})
}

// CompletedJobs godoc
// @Summary     List completed jobs
// @Description Completed jobs, most recent first, with the number closed out without a customer signature.
// @Tags        jobs
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CompletedJobsResponse
// @Router      /jobs/completed [get]
func (h *JobsHandler) CompletedJobs(c *gin.Context) {
	resp, err := h.jobs.CompletedJobs(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list completed jobs", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetJob godoc
// @Summary     Get a job
// @Tags        jobs
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.Job
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /jobs/{job_id} [get]
func (h *JobsHandler) GetJob(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	job, err := h.jobs.GetJob(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, "job not found", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// AssignJob godoc
// @Summary     Assign and schedule a job
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       job_id  path string                  true "Job ID (UUID)"
// @Param       request body models.AssignJobRequest true "Operator and date"
// @Success     200 {object} models.Job
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/assign [patch]
func (h *JobsHandler) AssignJob(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	var req models.AssignJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	job, err := h.jobs.AssignJob(c.Request.Context(), jobID, req)
	if err != nil {
		respondError(c, "failed to assign job", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Arrive godoc
// @Summary     Record arrival on site
// @Description Moves a scheduled job to in_progress. On a multi-day job it starts the next day after End Day.
// @Tags        jobs
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.Job
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/arrive [post]
func (h *JobsHandler) Arrive(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	job, err := h.jobs.Arrive(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, "failed to record arrival", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Workflow godoc
// @Summary     Workflow state
// @Description Returns the current step, the state of each step and the actions available for this visit.
// @Tags        jobs
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} workflow.View
// @Router      /jobs/{job_id}/workflow [get]
func (h *JobsHandler) Workflow(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	view, err := h.jobs.Workflow(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, "failed to load workflow", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Complete godoc
// @Summary     Complete job and capture signature
// @Description Completes the job with a customer signature, or with contact_not_on_site when nobody can sign.
// @Description The agreement and liability release PDFs are stored; a storage failure is reported in document_error and does not undo the completion.
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       job_id  path string                    true "Job ID (UUID)"
// @Param       request body models.CompleteJobRequest true "Sign-off"
// @Success     200 {object} models.CompleteJobResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/complete [post]
func (h *JobsHandler) Complete(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	var req models.CompleteJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	resp, err := h.jobs.CompleteJob(c.Request.Context(), jobID, req)
	if err != nil {
		respondError(c, "failed to complete job", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Costs godoc
// @Summary     Cost and profitability breakdown
// @Description Labor, standby, equipment, material and overhead costs for a completed job. Money is rounded to cents.
// @Tags        jobs
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.CostBreakdownResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/costs [get]
func (h *JobsHandler) Costs(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	b, err := h.jobs.Costs(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, "failed to calculate costs", err)
		return
	}
	c.JSON(http.StatusOK, models.CostBreakdownResponse{
		JobID:             jobID.String(),
		QuotedAmount:      b.QuotedAmount.Round(2),
		TotalJobHours:     b.TotalJobHours.Round(2),
		TotalStandbyHours: b.TotalStandbyHours.Round(2),
		LaborRate:         b.LaborRate.Round(2),
		LaborCost:         b.LaborCost.Round(2),
		StandbyRate:       b.StandbyRate.Round(2),
		StandbyCharge:     b.StandbyCharge.Round(2),
		EquipmentCost:     b.EquipmentCost.Round(2),
		MaterialCost:      b.MaterialCost.Round(2),
		OverheadPercent:   b.OverheadPercent.Round(2),
		OverheadAmount:    b.OverheadAmount.Round(2),
		TotalCost:         b.TotalCost.Round(2),
		NetProfit:         b.NetProfit.Round(2),
		ProfitMargin:      b.ProfitMargin().Round(2),
	})
}
