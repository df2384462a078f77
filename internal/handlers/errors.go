package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fieldops-backend/internal/assets"
	"fieldops-backend/internal/costing"
	"fieldops-backend/internal/drafts"
	"fieldops-backend/internal/guard"
	"fieldops-backend/internal/models"
	"fieldops-backend/internal/reconcile"
	"fieldops-backend/internal/services"
	"fieldops-backend/internal/session"
	"fieldops-backend/internal/supabase"
	"fieldops-backend/internal/workflow"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, assets.ErrReasonRequired),
		errors.Is(err, assets.ErrPhotoRequired),
		errors.Is(err, assets.ErrPhotoType),
		errors.Is(err, assets.ErrInvalidUsage),
		errors.Is(err, assets.ErrInvalidAsset),
		errors.Is(err, reconcile.ErrNotConfirmed):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, supabase.ErrNotFound),
		errors.Is(err, drafts.ErrNoDraft):
		return http.StatusNotFound
	case errors.Is(err, guard.ErrAlreadySubmitted),
		errors.Is(err, supabase.ErrDuplicate),
		errors.Is(err, supabase.ErrConflict),
		errors.Is(err, workflow.ErrNotAllowed),
		errors.Is(err, assets.ErrRetired),
		errors.Is(err, costing.ErrNotCompleted),
		errors.Is(err, costing.ErrMissingStart),
		errors.Is(err, costing.ErrNegativeInterval):
		return http.StatusConflict
	case errors.Is(err, services.ErrDraftsUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, what string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("Warning: %s: %v", what, err)
	}
	c.JSON(status, models.ErrorResponse{
		Error:            what,
		Message:          err.Error(),
		AlreadySubmitted: errors.Is(err, guard.ErrAlreadySubmitted),
	})
}

func parseID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + what + " id"})
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, what string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: what, Message: err.Error()})
}
