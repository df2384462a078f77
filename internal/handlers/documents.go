package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/services"
	"fieldops-backend/internal/supabase"
)

type DocumentsHandler struct {
	jobs *services.JobService
}

func NewDocumentsHandler(jobs *services.JobService) *DocumentsHandler {
	return &DocumentsHandler{jobs: jobs}
}

func documentKind(c *gin.Context) (models.DocumentKind, bool) {
	kind := models.DocumentKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid document kind",
			Message: fmt.Sprintf("expected %s, %s or %s", models.DocumentSilicaPlan, models.DocumentAgreement, models.DocumentLiabilityRelease),
		})
		return "", false
	}
	return kind, true
}

// DownloadDocument godoc
// @Summary     Download a job document
// @Description Renders the PDF from the stored records without storing it. The agreement and liability release are available once the job is completed.
// @Tags        documents
// @Produce     application/pdf
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Param       kind   path string true "silica_plan, agreement or liability_release"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/documents/{kind} [get]
func (h *DocumentsHandler) DownloadDocument(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	kind, ok := documentKind(c)
	if !ok {
		return
	}
	data, filename, err := h.jobs.RenderDocument(c.Request.Context(), jobID, kind)
	if err != nil {
		respondError(c, "failed to render document", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, supabase.ContentTypePDF, data)
}

// StoreDocument godoc
// @Summary     Regenerate and store a job document
// @Description Re-renders the PDF and stores it, replacing the job's reference. Use after a failed generation.
// @Tags        documents
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Param       kind   path string true "silica_plan, agreement or liability_release"
// @Success     201 {object} models.DocumentInfo
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/documents/{kind} [post]
func (h *DocumentsHandler) StoreDocument(c *gin.Context) {
	jobID, ok := parseID(c, "job_id", "job")
	if !ok {
		return
	}
	kind, ok := documentKind(c)
	if !ok {
		return
	}
	info, err := h.jobs.StoreDocument(c.Request.Context(), jobID, kind)
	if err != nil {
		respondError(c, "failed to store document", err)
		return
	}
	c.JSON(http.StatusCreated, info)
}
