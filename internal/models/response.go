package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type JobListResponse struct {
	Jobs []Job `json:"jobs"`
}

type CompletedJobsResponse struct {
	Jobs                  []Job `json:"jobs"`
	ContactNotOnSiteCount int   `json:"contact_not_on_site_count"`
}

// DocumentInfo describes a stored PDF.
type DocumentInfo struct {
	Kind        DocumentKind `json:"kind"`
	Path        string       `json:"path"`
	URL         string       `json:"url,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
}

type SilicaPlanStatusResponse struct {
	Exists bool        `json:"exists"`
	Plan   *SilicaPlan `json:"plan,omitempty"`
}

// SilicaPlanResponse is returned after a submission. DocumentError is set when
// the plan was saved but its PDF could not be stored.
type SilicaPlanResponse struct {
	Plan          SilicaPlan    `json:"plan"`
	Document      *DocumentInfo `json:"document,omitempty"`
	DocumentError string        `json:"document_error,omitempty"`
}

type WorkPerformedResponse struct {
	Entries []WorkEntry `json:"entries"`
}

type DraftResponse struct {
	Items     []WorkEntryInput `json:"items"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type StandbyListResponse struct {
	Logs []StandbyLog `json:"logs"`
}

type EndDayResponse struct {
	DailyLog         DailyLog `json:"daily_log"`
	LocationCaptured bool     `json:"location_captured"`
}

type CompleteJobResponse struct {
	Job           Job            `json:"job"`
	Documents     []DocumentInfo `json:"documents"`
	DocumentError string         `json:"document_error,omitempty"`
}

// CostBreakdownResponse carries money rounded to cents and hours to two
// places.
type CostBreakdownResponse struct {
	JobID             string          `json:"job_id"`
	QuotedAmount      decimal.Decimal `json:"quoted_amount" swaggertype:"string"`
	TotalJobHours     decimal.Decimal `json:"total_job_hours" swaggertype:"string"`
	TotalStandbyHours decimal.Decimal `json:"total_standby_hours" swaggertype:"string"`
	LaborRate         decimal.Decimal `json:"labor_rate" swaggertype:"string"`
	LaborCost         decimal.Decimal `json:"labor_cost" swaggertype:"string"`
	StandbyRate       decimal.Decimal `json:"standby_rate" swaggertype:"string"`
	StandbyCharge     decimal.Decimal `json:"standby_charge" swaggertype:"string"`
	EquipmentCost     decimal.Decimal `json:"equipment_cost" swaggertype:"string"`
	MaterialCost      decimal.Decimal `json:"material_cost" swaggertype:"string"`
	OverheadPercent   decimal.Decimal `json:"overhead_percent" swaggertype:"string"`
	OverheadAmount    decimal.Decimal `json:"overhead_amount" swaggertype:"string"`
	TotalCost         decimal.Decimal `json:"total_cost" swaggertype:"string"`
	NetProfit         decimal.Decimal `json:"net_profit" swaggertype:"string"`
	ProfitMargin      decimal.Decimal `json:"profit_margin" swaggertype:"string"`
}

type OperatorListResponse struct {
	Operators []Operator `json:"operators"`
}

type OperatorResponse struct {
	Operator       Operator        `json:"operator"`
	Certifications []Certification `json:"certifications"`
}

type AssetListResponse struct {
	Assets []Asset `json:"assets"`
}

// AssetUsageResponse reports Applied=false when the asset was already
// retired and nothing changed.
type AssetUsageResponse struct {
	Asset   Asset `json:"asset"`
	Applied bool  `json:"applied"`
}
