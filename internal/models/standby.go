package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StandbyStatus string

const (
	StandbyActive    StandbyStatus = "active"
	StandbyCompleted StandbyStatus = "completed"
)

type StandbyLog struct {
	ID            uuid.UUID       `json:"id"`
	JobID         uuid.UUID       `json:"job_id"`
	StartedAt     time.Time       `json:"started_at"`
	EndedAt       sql.NullTime    `json:"ended_at"`
	DurationHours decimal.Decimal `json:"duration_hours"`
	Reason        string          `json:"reason"`
	Status        StandbyStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

var msPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// HoursBetween converts a wall-clock interval to fractional hours using
// millisecond resolution. No rounding is applied.
func HoursBetween(start, end time.Time) decimal.Decimal {
	return decimal.NewFromInt(end.Sub(start).Milliseconds()).Div(msPerHour)
}
