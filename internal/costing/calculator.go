// Package costing derives labor, equipment, material and overhead costs for a
// completed job and the resulting net profit. Values are kept at full decimal
// precision; rounding happens only when a Breakdown is rendered.
package costing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fieldops-backend/internal/models"
)

var (
	ErrNotCompleted     = errors.New("job has no completion time")
	ErrMissingStart     = errors.New("job has neither arrival time nor scheduled date")
	ErrNegativeInterval = errors.New("completion precedes start")
)

var hundred = decimal.NewFromInt(100)

// Rates is the per-deployment rate card.
type Rates struct {
	LaborRate       decimal.Decimal
	StandbyRate     decimal.Decimal
	OverheadPercent decimal.Decimal
	EquipmentRates  map[string]decimal.Decimal
	MaterialCosts   map[string]decimal.Decimal
}

// NewRates builds a rate card from plain configuration values.
func NewRates(labor, standby, overheadPercent float64, equipment, materials map[string]float64) Rates {
	r := Rates{
		LaborRate:       decimal.NewFromFloat(labor),
		StandbyRate:     decimal.NewFromFloat(standby),
		OverheadPercent: decimal.NewFromFloat(overheadPercent),
		EquipmentRates:  make(map[string]decimal.Decimal, len(equipment)),
		MaterialCosts:   make(map[string]decimal.Decimal, len(materials)),
	}
	for k, v := range equipment {
		r.EquipmentRates[k] = decimal.NewFromFloat(v)
	}
	for k, v := range materials {
		r.MaterialCosts[k] = decimal.NewFromFloat(v)
	}
	return r
}

type Input struct {
	Job         models.Job
	WorkEntries []models.WorkEntry
	StandbyLogs []models.StandbyLog
	DailyLogs   []models.DailyLog
	// HourlyRate is the assigned operator's rate; the rate card's labor rate
	// applies when it is not set.
	HourlyRate decimal.NullDecimal
}

type Breakdown struct {
	QuotedAmount      decimal.Decimal
	TotalJobHours     decimal.Decimal
	TotalStandbyHours decimal.Decimal
	LaborRate         decimal.Decimal
	LaborCost         decimal.Decimal
	StandbyRate       decimal.Decimal
	StandbyCharge     decimal.Decimal
	EquipmentCost     decimal.Decimal
	MaterialCost      decimal.Decimal
	OverheadPercent   decimal.Decimal
	OverheadAmount    decimal.Decimal
	TotalCost         decimal.Decimal
	NetProfit         decimal.Decimal
}

// ProfitMargin is net profit as a percentage of the quote, zero for an
// unquoted job.
func (b Breakdown) ProfitMargin() decimal.Decimal {
	if b.QuotedAmount.IsZero() {
		return decimal.Zero
	}
	return b.NetProfit.Div(b.QuotedAmount).Mul(hundred)
}

// Calculate computes the cost breakdown for a completed job.
func Calculate(in Input, rates Rates) (Breakdown, error) {
	jobHours, err := JobHours(in.Job, in.DailyLogs)
	if err != nil {
		return Breakdown{}, err
	}

	laborRate := rates.LaborRate
	if in.HourlyRate.Valid {
		laborRate = in.HourlyRate.Decimal
	}

	b := Breakdown{
		QuotedAmount:      in.Job.QuotedAmount,
		TotalJobHours:     jobHours,
		TotalStandbyHours: StandbyHours(in.StandbyLogs),
		LaborRate:         laborRate,
		StandbyRate:       rates.StandbyRate,
		OverheadPercent:   rates.OverheadPercent,
		EquipmentCost:     EquipmentCost(in.WorkEntries, rates.EquipmentRates),
		MaterialCost:      MaterialCost(in.WorkEntries, rates.MaterialCosts),
	}
	b.LaborCost = b.TotalJobHours.Mul(laborRate)
	b.StandbyCharge = b.TotalStandbyHours.Mul(rates.StandbyRate)
	b.OverheadAmount = rates.OverheadPercent.Div(hundred).Mul(b.QuotedAmount)
	b.TotalCost = b.LaborCost.Add(b.EquipmentCost).Add(b.MaterialCost).Add(b.OverheadAmount)
	b.NetProfit = b.QuotedAmount.Sub(b.TotalCost)
	return b, nil
}

// JobHours is the on-site wall-clock time: closed days from the daily logs
// plus the final visit from arrival (or the scheduled date) to completion.
func JobHours(job models.Job, days []models.DailyLog) (decimal.Decimal, error) {
	end, ok := completionTime(job)
	if !ok {
		return decimal.Zero, ErrNotCompleted
	}
	var start time.Time
	switch {
	case job.ArrivalTime.Valid:
		start = job.ArrivalTime.Time
	case job.ScheduledDate.Valid:
		start = job.ScheduledDate.Time
	default:
		return decimal.Zero, ErrMissingStart
	}
	if end.Before(start) {
		return decimal.Zero, fmt.Errorf("%w: %s before %s", ErrNegativeInterval, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	total := models.HoursBetween(start, end)
	for _, d := range days {
		total = total.Add(d.Hours)
	}
	return total, nil
}

func completionTime(job models.Job) (time.Time, bool) {
	if job.CompletionSignedAt.Valid {
		return job.CompletionSignedAt.Time, true
	}
	if job.CompletedAt.Valid {
		return job.CompletedAt.Time, true
	}
	return time.Time{}, false
}

// StandbyHours sums completed standby logs. Active logs are ignored.
func StandbyHours(logs []models.StandbyLog) decimal.Decimal {
	total := decimal.Zero
	for _, l := range logs {
		if l.Status != models.StandbyCompleted {
			continue
		}
		total = total.Add(l.DurationHours)
	}
	return total
}

// EquipmentCost prices equipment hours on general entries. Equipment without
// a rate contributes nothing.
func EquipmentCost(entries []models.WorkEntry, rates map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		g, ok := e.Details.(models.GeneralSpec)
		if !ok {
			continue
		}
		for _, eq := range g.Equipment {
			rate, ok := rates[eq.Name]
			if !ok {
				continue
			}
			total = total.Add(decimal.NewFromFloat(eq.Hours).Mul(rate))
		}
	}
	return total
}

// MaterialCost prices entries whose item name appears in the material list.
func MaterialCost(entries []models.WorkEntry, costs map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		unit, ok := costs[e.ItemName]
		if !ok {
			continue
		}
		total = total.Add(decimal.NewFromFloat(e.Quantity).Mul(unit))
	}
	return total
}
