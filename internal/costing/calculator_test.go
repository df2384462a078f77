package costing_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops-backend/internal/costing"
	"fieldops-backend/internal/models"
)

var arrival = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

func completedJob(quoted int64, hours time.Duration) models.Job {
	return models.Job{
		ID:                 uuid.New(),
		Status:             models.JobStatusCompleted,
		QuotedAmount:       decimal.NewFromInt(quoted),
		ArrivalTime:        sql.NullTime{Time: arrival, Valid: true},
		CompletionSignedAt: sql.NullTime{Time: arrival.Add(hours), Valid: true},
	}
}

func standby(hours string, status models.StandbyStatus) models.StandbyLog {
	return models.StandbyLog{
		ID:            uuid.New(),
		DurationHours: decimal.RequireFromString(hours),
		Status:        status,
	}
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	in := costing.Input{
		Job:         completedJob(1000, 8*time.Hour),
		StandbyLogs: []models.StandbyLog{standby("1", models.StandbyCompleted)},
		HourlyRate:  decimal.NewNullDecimal(decimal.NewFromInt(50)),
	}
	rates := costing.NewRates(75, 189, 10, nil, nil)

	b, err := costing.Calculate(in, rates)
	require.NoError(t, err)

	assert.True(t, b.TotalJobHours.Equal(decimal.NewFromInt(8)), b.TotalJobHours.String())
	assert.True(t, b.TotalStandbyHours.Equal(decimal.NewFromInt(1)))
	assert.True(t, b.LaborCost.Equal(decimal.NewFromInt(400)), b.LaborCost.String())
	assert.True(t, b.OverheadAmount.Equal(decimal.NewFromInt(100)), b.OverheadAmount.String())
	assert.True(t, b.StandbyCharge.Equal(decimal.NewFromInt(189)))
	assert.True(t, b.NetProfit.Equal(decimal.NewFromInt(500)), b.NetProfit.String())
	assert.True(t, b.ProfitMargin().Equal(decimal.NewFromInt(50)))
}

func TestCalculate_FallsBackToConfiguredLaborRate(t *testing.T) {
	b, err := costing.Calculate(costing.Input{Job: completedJob(2000, 4*time.Hour)}, costing.NewRates(75, 0, 0, nil, nil))
	require.NoError(t, err)
	assert.True(t, b.LaborCost.Equal(decimal.NewFromInt(300)), b.LaborCost.String())
}

func TestCalculate_FractionalHours(t *testing.T) {
	b, err := costing.Calculate(costing.Input{
		Job:        completedJob(900, 7*time.Hour+30*time.Minute),
		HourlyRate: decimal.NewNullDecimal(decimal.NewFromInt(40)),
	}, costing.NewRates(0, 0, 0, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "7.5", b.TotalJobHours.String())
	assert.True(t, b.LaborCost.Equal(decimal.NewFromInt(300)))
}

func TestCalculate_NetProfitIsAdditive(t *testing.T) {
	entries := []models.WorkEntry{
		{ItemName: "core_bit_water", Quantity: 12, Details: models.HoleSpec{Holes: []models.Hole{{Quantity: 12, DiameterIn: 4, DepthIn: 8}}}},
		{ItemName: "wall saw setup", Quantity: 1, Details: models.GeneralSpec{
			DurationHours: 2.25,
			Equipment:     []models.EquipmentUse{{Name: "wall_saw", Hours: 2.25}, {Name: "unpriced", Hours: 3}},
		}},
	}
	rates := costing.NewRates(75, 189, 12.5, map[string]float64{"wall_saw": 45.1}, map[string]float64{"core_bit_water": 2.35})

	job := completedJob(3333, 9*time.Hour+17*time.Minute)
	b, err := costing.Calculate(costing.Input{Job: job, WorkEntries: entries, HourlyRate: decimal.NewNullDecimal(decimal.RequireFromString("61.75"))}, rates)
	require.NoError(t, err)

	assert.True(t, b.EquipmentCost.Equal(decimal.RequireFromString("101.475")), b.EquipmentCost.String())
	assert.True(t, b.MaterialCost.Equal(decimal.RequireFromString("28.2")), b.MaterialCost.String())

	want := b.QuotedAmount.Sub(b.LaborCost).Sub(b.EquipmentCost).Sub(b.MaterialCost).Sub(b.OverheadAmount)
	assert.True(t, b.NetProfit.Equal(want), "net %s, want %s", b.NetProfit, want)
}

func TestCalculate_NoWorkEntriesIsPureTimeBilling(t *testing.T) {
	b, err := costing.Calculate(costing.Input{
		Job:        completedJob(500, 2*time.Hour),
		HourlyRate: decimal.NewNullDecimal(decimal.NewFromInt(50)),
	}, costing.NewRates(0, 0, 0, map[string]float64{"wall_saw": 45}, nil))
	require.NoError(t, err)
	assert.True(t, b.LaborCost.Equal(decimal.NewFromInt(100)))
	assert.True(t, b.EquipmentCost.IsZero())
	assert.True(t, b.MaterialCost.IsZero())
}

func TestCalculate_ScheduledDateFallback(t *testing.T) {
	job := completedJob(100, 0)
	job.ArrivalTime = sql.NullTime{}
	job.ScheduledDate = sql.NullTime{Time: arrival, Valid: true}
	job.CompletionSignedAt = sql.NullTime{Time: arrival.Add(3 * time.Hour), Valid: true}

	hours, err := costing.JobHours(job, nil)
	require.NoError(t, err)
	assert.True(t, hours.Equal(decimal.NewFromInt(3)))
}

func TestCalculate_ContactNotOnSiteUsesCompletedAt(t *testing.T) {
	job := completedJob(100, 0)
	job.CompletionSignedAt = sql.NullTime{}
	job.ContactNotOnSite = true
	job.CompletedAt = sql.NullTime{Time: arrival.Add(6 * time.Hour), Valid: true}

	hours, err := costing.JobHours(job, nil)
	require.NoError(t, err)
	assert.True(t, hours.Equal(decimal.NewFromInt(6)))
}

func TestCalculate_MultiDayAddsClosedDays(t *testing.T) {
	job := completedJob(100, 5*time.Hour)
	days := []models.DailyLog{
		{Hours: decimal.RequireFromString("8.5")},
		{Hours: decimal.RequireFromString("7.25")},
	}
	hours, err := costing.JobHours(job, days)
	require.NoError(t, err)
	assert.Equal(t, "20.75", hours.String())
}

func TestCalculate_Errors(t *testing.T) {
	open := completedJob(100, time.Hour)
	open.CompletionSignedAt = sql.NullTime{}
	_, err := costing.Calculate(costing.Input{Job: open}, costing.Rates{})
	assert.ErrorIs(t, err, costing.ErrNotCompleted)

	noStart := completedJob(100, time.Hour)
	noStart.ArrivalTime = sql.NullTime{}
	_, err = costing.Calculate(costing.Input{Job: noStart}, costing.Rates{})
	assert.ErrorIs(t, err, costing.ErrMissingStart)

	backwards := completedJob(100, -time.Hour)
	_, err = costing.Calculate(costing.Input{Job: backwards}, costing.Rates{})
	assert.ErrorIs(t, err, costing.ErrNegativeInterval)
}

func TestStandbyHours_IgnoresActiveLogs(t *testing.T) {
	total := costing.StandbyHours([]models.StandbyLog{
		standby("1.5", models.StandbyCompleted),
		standby("4", models.StandbyActive),
		standby("0.25", models.StandbyCompleted),
	})
	assert.Equal(t, "1.75", total.String())
}
