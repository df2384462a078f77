package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/services"
)

type OnSiteHandler struct {
	jobs *services.JobService
}

func NewOnSiteHandler(jobs *services.JobService) *OnSiteHandler {
	return &OnSiteHandler{jobs: jobs}
}

// GetSilicaPlan godoc
// @Summary     Silica exposure plan status
// @Description Reports whether the plan was submitted, with the plan when it exists.
// @Tags        silica
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.SilicaPlanStatusResponse
// @Router      /jobs/{job_id}/silica-plan [get]
func (h *OnSiteHandler) GetSilicaPlan(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	resp, err := h.jobs.SilicaPlan(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, "failed to load silica plan", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitSilicaPlan godoc
// @Summary     Submit the silica exposure plan
// @Description One plan per job. A second submission returns 409 with already_submitted set.
// @Description The plan is kept when its PDF cannot be stored; document_error explains why.
// @Tags        silica
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       job_id  path string                 true "Job ID (UUID)"
// @Param       request body models.SilicaPlanInput true "Exposure plan"
// @Success     201 {object} models.SilicaPlanResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/silica-plan [post]
func (h *OnSiteHandler) SubmitSilicaPlan(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	var in models.SilicaPlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	resp, err := h.jobs.SubmitSilicaPlan(c.Request.Context(), jobID, in)
	if err != nil {
		respondError(c, "failed to submit silica plan", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListWork godoc
// @Summary     List work performed
// @Tags        work
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.WorkPerformedResponse
// @Router      /jobs/{job_id}/work-performed [get]
func (h *OnSiteHandler) ListWork(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	entries, err := h.jobs.ListWork(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, "failed to list work performed", err)
		return
	}
	c.JSON(http.StatusOK, models.WorkPerformedResponse{Entries: entries})
}

// AddWork godoc
// @Summary     Record work performed
// @Description Appends entries. kind selects the details shape: holes, cuts or general.
// @Tags        work
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       job_id  path string                      true "Job ID (UUID)"
// @Param       request body models.WorkPerformedRequest true "Work items"
// @Success     201 {object} models.WorkPerformedResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/work-performed [post]
func (h *OnSiteHandler) AddWork(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	var req models.WorkPerformedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	entries, err := h.jobs.AddWork(c.Request.Context(), jobID, req.Items)
	if err != nil {
		respondError(c, "failed to record work performed", err)
		return
	}
	c.JSON(http.StatusCreated, models.WorkPerformedResponse{Entries: entries})
}

// GetDraft godoc
// @Summary     Load the work draft
// @Tags        work
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.DraftResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/draft [get]
func (h *OnSiteHandler) GetDraft(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	d, err := h.jobs.LoadDraft(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, "draft not found", err)
		return
	}
	c.JSON(http.StatusOK, models.DraftResponse{Items: d.Items, UpdatedAt: d.UpdatedAt})
}

// SaveDraft godoc
// @Summary     Save the work draft
// @Description Keeps unsent work items so the operator can leave the step without losing input. Items are not validated.
// @Tags        work
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       job_id  path string              true "Job ID (UUID)"
// @Param       request body models.DraftRequest true "Draft items"
// @Success     200 {object} models.DraftResponse
// @Router      /jobs/{job_id}/draft [put]
func (h *OnSiteHandler) SaveDraft(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	var req models.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	d, err := h.jobs.SaveDraft(c.Request.Context(), jobID, req.Items)
	if err != nil {
		respondError(c, "failed to save draft", err)
		return
	}
	c.JSON(http.StatusOK, models.DraftResponse{Items: d.Items, UpdatedAt: d.UpdatedAt})
}

// ClearDraft godoc
// @Summary     Discard the work draft
// @Tags        work
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     204
// @Router      /jobs/{job_id}/draft [delete]
func (h *OnSiteHandler) ClearDraft(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	if err := h.jobs.ClearDraft(c.Request.Context(), jobID); err != nil {
		respondError(c, "failed to clear draft", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListStandby godoc
// @Summary     List standby logs
// @Tags        standby
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.StandbyListResponse
// @Router      /jobs/{job_id}/standby [get]
func (h *OnSiteHandler) ListStandby(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	logs, err := h.jobs.ListStandby(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, "failed to list standby logs", err)
		return
	}
	c.JSON(http.StatusOK, models.StandbyListResponse{Logs: logs})
}

// StartStandby godoc
// @Summary     Start standby time
// @Description Opens a standby log. Only one may be active per job.
// @Tags        standby
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       job_id  path string                     true  "Job ID (UUID)"
// @Param       request body models.StartStandbyRequest false "Reason"
// @Success     201 {object} models.StandbyLog
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/standby/start [post]
func (h *OnSiteHandler) StartStandby(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	var req models.StartStandbyRequest
	// Body is optional
	_ = c.ShouldBindJSON(&req)

	l, err := h.jobs.StartStandby(c.Request.Context(), jobID, req.Reason)
	if err != nil {
		respondError(c, "failed to start standby", err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// StopStandby godoc
// @Summary     Stop standby time
// @Tags        standby
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Param       log_id path string true "Standby log ID (UUID)"
// @Success     200 {object} models.StandbyLog
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/standby/{log_id}/stop [post]
func (h *OnSiteHandler) StopStandby(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	logID, ok := parseID(c, "log_id", "standby log")
	if !ok {
		return
	}
	l, err := h.jobs.StopStandby(c.Request.Context(), jobID, logID)
	if err != nil {
		respondError(c, "failed to stop standby", err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// EndDay godoc
// @Summary     End day and continue tomorrow
// @Description Closes the current day of a multi-day job. Location is recorded when the device reports one in time.
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       job_id  path string               true  "Job ID (UUID)"
// @Param       request body models.EndDayRequest false "Notes and location"
// @Success     200 {object} models.EndDayResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/end-day [post]
func (h *OnSiteHandler) EndDay(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	var req models.EndDayRequest
	// Body is optional
	_ = c.ShouldBindJSON(&req)

	resp, err := h.jobs.EndDay(c.Request.Context(), jobID, req)
	if err != nil {
		respondError(c, "failed to end day", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
