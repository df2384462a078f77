package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateJobRequest accepts the legacy field aliases through JobInput.
// Supplying both operator_id and scheduled_date creates the job scheduled.
type CreateJobRequest struct {
	JobInput
	OperatorID    *uuid.UUID      `json:"operator_id,omitempty"`
	ScheduledDate *time.Time      `json:"scheduled_date,omitempty"`
	Priority      string          `json:"priority,omitempty" example:"normal"`
	Difficulty    int             `json:"difficulty,omitempty" example:"5"`
	EstimatedDays int             `json:"estimated_days,omitempty" example:"1"`
	QuotedAmount  decimal.Decimal `json:"quoted_amount" swaggertype:"string" example:"1000.00"`
}

type AssignJobRequest struct {
	OperatorID    uuid.UUID `json:"operator_id" binding:"required"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
}

type WorkPerformedRequest struct {
	Items []WorkEntryInput `json:"items" binding:"required"`
}

type DraftRequest struct {
	Items []WorkEntryInput `json:"items"`
}

type StartStandbyRequest struct {
	Reason string `json:"reason" example:"Waiting on GC to clear area"`
}

// EndDayRequest closes out the current day. Latitude and longitude are the
// device fix when the client could get one.
type EndDayRequest struct {
	Notes     string   `json:"notes,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type CompleteJobRequest struct {
	SignerName string `json:"signer_name,omitempty"`
	// Signature is a PNG data URL captured on the device.
	Signature        string      `json:"signature,omitempty"`
	ContactNotOnSite bool        `json:"contact_not_on_site"`
	Ratings          *JobRatings `json:"ratings,omitempty"`
}

type CreateOperatorRequest struct {
	UserID     *uuid.UUID                        `json:"user_id,omitempty"`
	Name       string                            `json:"name" binding:"required"`
	Email      string                            `json:"email,omitempty"`
	Phone      string                            `json:"phone,omitempty"`
	HourlyRate *decimal.Decimal                  `json:"hourly_rate,omitempty" swaggertype:"string"`
	TaskSkills map[string]int                    `json:"task_skills,omitempty"`
	Equipment  map[string]EquipmentQualification `json:"equipment,omitempty"`
}

// UpdateOperatorRequest is a partial update; nil fields are left alone.
type UpdateOperatorRequest struct {
	Name       *string                           `json:"name,omitempty"`
	Email      *string                           `json:"email,omitempty"`
	Phone      *string                           `json:"phone,omitempty"`
	HourlyRate *decimal.Decimal                  `json:"hourly_rate,omitempty" swaggertype:"string"`
	TaskSkills map[string]int                    `json:"task_skills,omitempty"`
	Equipment  map[string]EquipmentQualification `json:"equipment,omitempty"`
}

type CreateAssetRequest struct {
	Type         AssetType        `json:"type" binding:"required" example:"wall_saw"`
	Brand        string           `json:"brand" binding:"required" example:"Husqvarna"`
	Size         string           `json:"size,omitempty" example:"30in"`
	SerialNumber string           `json:"serial_number,omitempty"`
	PurchaseDate *time.Time       `json:"purchase_date,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty" swaggertype:"string"`
	OperatorID   *uuid.UUID       `json:"operator_id,omitempty"`
}

// CleanupRequest deletes the orphan ids listed, as returned by the
// reconciliation report. Ids whose job exists again are skipped.
type CleanupRequest struct {
	Orphans map[ChildCollection][]uuid.UUID `json:"orphans"`
	Confirm bool                            `json:"confirm"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	// AlreadySubmitted marks a duplicate one-per-job submission.
	AlreadySubmitted bool `json:"already_submitted,omitempty"`
}
