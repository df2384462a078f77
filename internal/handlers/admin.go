package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/reconcile"
	"fieldops-backend/internal/reports"
	"fieldops-backend/internal/services"
	"fieldops-backend/internal/supabase"
)

type AdminHandler struct {
	reconciler *reconcile.Utility
	jobs       *services.JobService
	operators  *services.OperatorService
	events     services.Publisher
}

func NewAdminHandler(reconciler *reconcile.Utility, jobs *services.JobService, operators *services.OperatorService, events services.Publisher) *AdminHandler {
	return &AdminHandler{
		reconciler: reconciler,
		jobs:       jobs,
		operators:  operators,
		events:     events,
	}
}

// Reconcile godoc
// @Summary     Reconciliation report
// @Description Status breakdown, multi-day jobs, orphaned child records and status drift. Each check runs independently; failures are listed in errors.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} reconcile.Report
// @Router      /admin/reconcile [get]
func (h *AdminHandler) Reconcile(c *gin.Context) {
	c.JSON(http.StatusOK, h.reconciler.Run(c.Request.Context()))
}

// Cleanup godoc
// @Summary     Delete confirmed orphans
// @Description Deletes exactly the ids listed, as returned by the report. confirm must be true.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CleanupRequest true "Confirmed orphan set"
// @Success     200 {object} reconcile.CleanupResult
// @Failure     400 {object} models.ErrorResponse
// @Router      /admin/reconcile/cleanup [post]
func (h *AdminHandler) Cleanup(c *gin.Context) {
	var req models.CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	result, err := h.reconciler.Cleanup(c.Request.Context(), reconcile.OrphanSet(req.Orphans), req.Confirm)
	if err != nil {
		if errors.Is(err, reconcile.ErrNotConfirmed) {
			respondError(c, "cleanup not confirmed", err)
			return
		}
		badRequest(c, "invalid orphan set", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Repair godoc
// @Summary     Repair status drift
// @Description Advances each drifted job to the status its records imply. Status never moves backward.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} reconcile.RepairResult
// @Router      /admin/reconcile/repair [post]
func (h *AdminHandler) Repair(c *gin.Context) {
	drift, err := h.reconciler.FindDrift(c.Request.Context())
	if err != nil {
		respondError(c, "failed to detect drift", err)
		return
	}
	result := h.reconciler.Repair(c.Request.Context(), drift)
	for _, d := range result.Advanced {
		h.events.Notify(d.JobID, supabase.EventStatusRepaired,
			supabase.StatusPayload(string(d.Status), string(d.Expected)))
	}
	c.JSON(http.StatusOK, result)
}

// CompletedReport godoc
// @Summary     Completed jobs spreadsheet
// @Description One row per completed job plus a summary sheet.
// @Tags        admin
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    Bearer
// @Success     200 {file} binary
// @Router      /admin/reports/completed.xlsx [get]
func (h *AdminHandler) CompletedReport(c *gin.Context) {
	ctx := c.Request.Context()
	completed, err := h.jobs.CompletedJobs(ctx)
	if err != nil {
		respondError(c, "failed to list completed jobs", err)
		return
	}
	ops, err := h.operators.List(ctx)
	if err != nil {
		respondError(c, "failed to list operators", err)
		return
	}
	names := make(map[uuid.UUID]string, len(ops))
	for _, op := range ops {
		names[op.ID] = op.Name
	}

	now := time.Now().UTC()
	data, err := reports.BuildCompletedWorkbook(reports.CompletedJobs{
		Jobs:        completed.Jobs,
		Operators:   names,
		GeneratedAt: now,
	})
	if err != nil {
		respondError(c, "failed to build report", err)
		return
	}
	filename := fmt.Sprintf("completed_jobs_%s.xlsx", now.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, reports.ContentTypeXLSX, data)
}
