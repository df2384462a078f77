package models

import "github.com/google/uuid"

// ChildCollection names a table whose rows reference a job order.
type ChildCollection string

const (
	CollectionDailyLogs     ChildCollection = "daily_logs"
	CollectionWorkPerformed ChildCollection = "work_performed"
	CollectionStandbyLogs   ChildCollection = "standby_logs"
	CollectionSilicaPlans   ChildCollection = "silica_plans"
)

// ChildCollections lists every dependent collection checked for orphans.
var ChildCollections = []ChildCollection{
	CollectionDailyLogs,
	CollectionWorkPerformed,
	CollectionStandbyLogs,
	CollectionSilicaPlans,
}

func (c ChildCollection) Valid() bool {
	for _, known := range ChildCollections {
		if c == known {
			return true
		}
	}
	return false
}

type ChildRef struct {
	ID    uuid.UUID `json:"id"`
	JobID uuid.UUID `json:"job_id"`
}

// JobSnapshot is the slice of a job the reconciliation checks need.
type JobSnapshot struct {
	ID                uuid.UUID `json:"id"`
	JobNumber         string    `json:"job_number"`
	Status            JobStatus `json:"status"`
	SignatureCaptured bool      `json:"signature_captured"`
	ContactNotOnSite  bool      `json:"contact_not_on_site"`
	EstimatedDays     int       `json:"estimated_days"`
}
