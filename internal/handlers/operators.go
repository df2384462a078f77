package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/services"
)

const (
	dateLayout         = "2006-01-02"
	maxCertificateSize = 10 << 20
)

type OperatorsHandler struct {
	operators *services.OperatorService
}

func NewOperatorsHandler(operators *services.OperatorService) *OperatorsHandler {
	return &OperatorsHandler{operators: operators}
}

// ListOperators godoc
// @Summary     List operators
// @Description Hourly rates are only returned to admins.
// @Tags        operators
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OperatorListResponse
// @Router      /operators [get]
func (h *OperatorsHandler) ListOperators(c *gin.Context) {
	ops, err := h.operators.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list operators", err)
		return
	}
	c.JSON(http.StatusOK, models.OperatorListResponse{Operators: ops})
}

// GetOperator godoc
// @Summary     Get an operator profile
// @Tags        operators
// @Produce     json
// @Security    Bearer
// @Param       operator_id path string true "Operator ID (UUID)"
// @Success     200 {object} models.OperatorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /operators/{operator_id} [get]
func (h *OperatorsHandler) GetOperator(c *gin.Context) {
	id, ok := parseID(c, "operator_id", "operator")
	if !ok {
		return
	}
	resp, err := h.operators.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "operator not found", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateOperator godoc
// @Summary     Create an operator profile
// @Description Skill and equipment proficiencies are clamped to 1..10.
// @Tags        operators
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateOperatorRequest true "Profile"
// @Success     201 {object} models.Operator
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /operators [post]
func (h *OperatorsHandler) CreateOperator(c *gin.Context) {
	var req models.CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	op, err := h.operators.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "failed to create operator", err)
		return
	}
	c.JSON(http.StatusCreated, op)
}

// UpdateOperator godoc
// @Summary     Update an operator profile
// @Description Partial update. Metrics and ratings are only changed by job completion.
// @Tags        operators
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       operator_id path string                       true "Operator ID (UUID)"
// @Param       request     body models.UpdateOperatorRequest true "Changed fields"
// @Success     200 {object} models.Operator
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /operators/{operator_id} [patch]
func (h *OperatorsHandler) UpdateOperator(c *gin.Context) {
	id, ok := parseID(c, "operator_id", "operator")
	if !ok {
		return
	}
	var req models.UpdateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	op, err := h.operators.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "failed to update operator", err)
		return
	}
	c.JSON(http.StatusOK, op)
}

// AddCertification godoc
// @Summary     Add a certification
// @Tags        operators
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       operator_id  path     string true  "Operator ID (UUID)"
// @Param       name         formData string true  "Certification name"
// @Param       issued_date  formData string true  "Issue date (YYYY-MM-DD)"
// @Param       expires_date formData string false "Expiry date (YYYY-MM-DD)"
// @Param       document     formData file   false "Scanned certificate"
// @Success     201 {object} models.Certification
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /operators/{operator_id}/certifications [post]
func (h *OperatorsHandler) AddCertification(c *gin.Context) {
	id, ok := parseID(c, "operator_id", "operator")
	if !ok {
		return
	}

	issued, err := time.Parse(dateLayout, c.PostForm("issued_date"))
	if err != nil {
		badRequest(c, "invalid issued_date", err)
		return
	}
	var expires *time.Time
	if v := c.PostForm("expires_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			badRequest(c, "invalid expires_date", err)
			return
		}
		expires = &t
	}

	var upload *services.CertificationUpload
	if fh, err := c.FormFile("document"); err == nil {
		if fh.Size > maxCertificateSize {
			badRequest(c, "document too large", fmt.Errorf("limit is %d bytes", maxCertificateSize))
			return
		}
		f, err := fh.Open()
		if err != nil {
			badRequest(c, "failed to open document", err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			badRequest(c, "failed to read document", err)
			return
		}
		upload = &services.CertificationUpload{Filename: fh.Filename, Data: data}
	}

	cert, err := h.operators.AddCertification(c.Request.Context(), id, c.PostForm("name"), issued, expires, upload)
	if err != nil {
		respondError(c, "failed to add certification", err)
		return
	}
	c.JSON(http.StatusCreated, cert)
}
