package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinProficiency = 1
	MaxProficiency = 10
)

// ClampProficiency pins a skill or proficiency value into [1,10].
func ClampProficiency(v int) int {
	if v < MinProficiency {
		return MinProficiency
	}
	if v > MaxProficiency {
		return MaxProficiency
	}
	return v
}

type EquipmentQualification struct {
	Qualified   bool `json:"qualified"`
	Proficiency int  `json:"proficiency"`
}

type Certification struct {
	ID           uuid.UUID      `json:"id"`
	OperatorID   uuid.UUID      `json:"operator_id"`
	Name         string         `json:"name"`
	IssuedDate   time.Time      `json:"issued_date"`
	ExpiresDate  sql.NullTime   `json:"expires_date"`
	DocumentPath sql.NullString `json:"document_path"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (c Certification) Expired(now time.Time) bool {
	return c.ExpiresDate.Valid && c.ExpiresDate.Time.Before(now)
}

type OperatorMetrics struct {
	JobsCompleted         int             `json:"jobs_completed"`
	RevenueGenerated      decimal.Decimal `json:"revenue_generated"`
	HoursWorked           decimal.Decimal `json:"hours_worked"`
	AverageProductionRate float64         `json:"average_production_rate"`
}

// OperatorRatings holds running means of customer ratings.
type OperatorRatings struct {
	Cleanliness   float64 `json:"cleanliness"`
	Communication float64 `json:"communication"`
	Overall       float64 `json:"overall"`
	Count         int     `json:"count"`
}

// Add folds one job's ratings into the running means.
func (r OperatorRatings) Add(j JobRatings) OperatorRatings {
	n := float64(r.Count)
	return OperatorRatings{
		Cleanliness:   (r.Cleanliness*n + float64(j.Cleanliness)) / (n + 1),
		Communication: (r.Communication*n + float64(j.Communication)) / (n + 1),
		Overall:       (r.Overall*n + float64(j.Overall)) / (n + 1),
		Count:         r.Count + 1,
	}
}

type Operator struct {
	ID         uuid.UUID                         `json:"id"`
	UserID     uuid.NullUUID                     `json:"user_id"`
	Name       string                            `json:"name"`
	Email      string                            `json:"email"`
	Phone      string                            `json:"phone"`
	HourlyRate decimal.NullDecimal               `json:"hourly_rate"`
	TaskSkills map[string]int                    `json:"task_skills"`
	Equipment  map[string]EquipmentQualification `json:"equipment"`
	Metrics    OperatorMetrics                   `json:"metrics"`
	Ratings    OperatorRatings                   `json:"ratings"`
	CreatedAt  time.Time                         `json:"created_at"`
	UpdatedAt  time.Time                         `json:"updated_at"`
}

// Normalize clamps every proficiency value into range.
func (o *Operator) Normalize() {
	for k, v := range o.TaskSkills {
		o.TaskSkills[k] = ClampProficiency(v)
	}
	for k, q := range o.Equipment {
		q.Proficiency = ClampProficiency(q.Proficiency)
		o.Equipment[k] = q
	}
}

// Redacted strips admin-only fields.
func (o Operator) Redacted() Operator {
	o.HourlyRate = decimal.NullDecimal{}
	return o
}

// OperatorCompletion is the side effect of one job completion on a profile.
type OperatorCompletion struct {
	Hours   decimal.Decimal
	Revenue decimal.Decimal
	Ratings *JobRatings
}
