package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type JobStatus string

const (
	JobStatusUnassigned JobStatus = "unassigned"
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
)

var jobStatusRank = map[JobStatus]int{
	JobStatusUnassigned: 0,
	JobStatusScheduled:  1,
	JobStatusInProgress: 2,
	JobStatusCompleted:  3,
}

// JobStatuses lists every status in lifecycle order.
var JobStatuses = []JobStatus{
	JobStatusUnassigned,
	JobStatusScheduled,
	JobStatusInProgress,
	JobStatusCompleted,
}

func (s JobStatus) Valid() bool {
	_, ok := jobStatusRank[s]
	return ok
}

// Rank orders statuses along the lifecycle. Unknown statuses rank -1.
func (s JobStatus) Rank() int {
	if r, ok := jobStatusRank[s]; ok {
		return r
	}
	return -1
}

// DocumentRef points at a generated document in object storage.
type DocumentRef struct {
	Path        sql.NullString `json:"path"`
	GeneratedAt sql.NullTime   `json:"generated_at"`
}

func (r DocumentRef) Present() bool {
	return r.Path.Valid && r.Path.String != ""
}

type JobRatings struct {
	Overall       int `json:"overall"`
	Cleanliness   int `json:"cleanliness"`
	Communication int `json:"communication"`
}

func (r JobRatings) Valid() bool {
	return inRatingRange(r.Overall) && inRatingRange(r.Cleanliness) && inRatingRange(r.Communication)
}

func inRatingRange(v int) bool {
	return v >= MinProficiency && v <= MaxProficiency
}

type Job struct {
	ID              uuid.UUID       `json:"id"`
	JobNumber       string          `json:"job_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerContact string          `json:"customer_contact"`
	Location        string          `json:"location"`
	Description     string          `json:"description"`
	OperatorID      uuid.NullUUID   `json:"operator_id"`
	Priority        string          `json:"priority"`
	Difficulty      int             `json:"difficulty"`
	ScheduledDate   sql.NullTime    `json:"scheduled_date"`
	ArrivalTime     sql.NullTime    `json:"arrival_time"`
	EstimatedDays   int             `json:"estimated_days"`
	Status          JobStatus       `json:"status"`
	QuotedAmount    decimal.Decimal `json:"quoted_amount"`

	CompletionSignerName sql.NullString `json:"completion_signer_name"`
	CompletionSignature  sql.NullString `json:"completion_signature"`
	CompletionSignedAt   sql.NullTime   `json:"completion_signed_at"`
	ContactNotOnSite     bool           `json:"contact_not_on_site"`
	CompletedAt          sql.NullTime   `json:"completed_at"`

	RatingOverall       sql.NullInt32 `json:"rating_overall"`
	RatingCleanliness   sql.NullInt32 `json:"rating_cleanliness"`
	RatingCommunication sql.NullInt32 `json:"rating_communication"`

	AgreementPDF        DocumentRef `json:"agreement_pdf"`
	LiabilityReleasePDF DocumentRef `json:"liability_release_pdf"`
	SilicaPDF           DocumentRef `json:"silica_pdf"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignatureCaptured reports whether the customer sign-off exists.
func (j *Job) SignatureCaptured() bool {
	return j.CompletionSignedAt.Valid
}

// CompletionSatisfied reports whether the record may carry status completed.
func (j *Job) CompletionSatisfied() bool {
	return j.CompletionSignedAt.Valid || j.ContactNotOnSite
}

func (j *Job) Document(kind DocumentKind) DocumentRef {
	switch kind {
	case DocumentAgreement:
		return j.AgreementPDF
	case DocumentLiabilityRelease:
		return j.LiabilityReleasePDF
	case DocumentSilicaPlan:
		return j.SilicaPDF
	}
	return DocumentRef{}
}

// JobFilter narrows job list queries.
type JobFilter struct {
	Status     JobStatus
	OperatorID uuid.NullUUID
}

// CompletionRecord carries the fields written when a job reaches completed.
type CompletionRecord struct {
	SignerName       string
	Signature        string
	SignedAt         *time.Time
	ContactNotOnSite bool
	CompletedAt      time.Time
	Ratings          *JobRatings
}

// DailyLog closes out one calendar day of a multi-day job.
type DailyLog struct {
	ID        uuid.UUID       `json:"id"`
	JobID     uuid.UUID       `json:"job_id"`
	WorkDate  time.Time       `json:"work_date"`
	StartedAt time.Time       `json:"started_at"`
	EndedAt   time.Time       `json:"ended_at"`
	Hours     decimal.Decimal `json:"hours"`
	Notes     string          `json:"notes"`
	Latitude  sql.NullFloat64 `json:"latitude"`
	Longitude sql.NullFloat64 `json:"longitude"`
	CreatedAt time.Time       `json:"created_at"`
}

// JobEvent is published for realtime dashboards.
type JobEvent struct {
	JobID   uuid.UUID
	Event   string
	Payload map[string]interface{}
}
