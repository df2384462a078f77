package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical_LegacyAliases(t *testing.T) {
	tests := []struct {
		name string
		in   JobInput
		want CanonicalJobFields
	}{
		{
			name: "canonical names",
			in:   JobInput{JobNumber: " J-1 ", CustomerName: "Acme", CustomerContact: "Lee", Location: "Pier 4", Description: "Core holes"},
			want: CanonicalJobFields{JobNumber: "J-1", CustomerName: "Acme", CustomerContact: "Lee", Location: "Pier 4", Description: "Core holes"},
		},
		{
			name: "legacy names",
			in:   JobInput{JobNumber: "J-2", Customer: "Acme", ContactName: "Lee", ContactPhone: "555-0100", Address: "Pier 4", JobType: "Wall sawing"},
			want: CanonicalJobFields{JobNumber: "J-2", CustomerName: "Acme", CustomerContact: "Lee 555-0100", Location: "Pier 4", Description: "Wall sawing"},
		},
		{
			name: "job_location wins over address",
			in:   JobInput{JobNumber: "J-3", Customer: "Acme", JobLocation: "Dock B", Address: "Pier 4"},
			want: CanonicalJobFields{JobNumber: "J-3", CustomerName: "Acme", Location: "Dock B"},
		},
		{
			name: "phone alone",
			in:   JobInput{JobNumber: "J-4", Customer: "Acme", ContactPhone: "555-0100", Location: "Pier 4"},
			want: CanonicalJobFields{JobNumber: "J-4", CustomerName: "Acme", CustomerContact: "555-0100", Location: "Pier 4"},
		},
		{
			name: "phone already in contact",
			in:   JobInput{JobNumber: "J-5", Customer: "Acme", ContactName: "Lee 555-0100", ContactPhone: "555-0100", Location: "Pier 4"},
			want: CanonicalJobFields{JobNumber: "J-5", CustomerName: "Acme", CustomerContact: "Lee 555-0100", Location: "Pier 4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Canonical())
		})
	}
}

func TestOperatorNormalize(t *testing.T) {
	o := Operator{
		TaskSkills: map[string]int{"core_drilling": 14, "wall_sawing": 0, "grinding": 6},
		Equipment:  map[string]EquipmentQualification{"wall_saw": {Qualified: true, Proficiency: -3}},
	}
	o.Normalize()
	assert.Equal(t, 10, o.TaskSkills["core_drilling"])
	assert.Equal(t, 1, o.TaskSkills["wall_sawing"])
	assert.Equal(t, 6, o.TaskSkills["grinding"])
	assert.Equal(t, 1, o.Equipment["wall_saw"].Proficiency)
	assert.True(t, o.Equipment["wall_saw"].Qualified)
}

func TestOperatorRatings_Add(t *testing.T) {
	r := OperatorRatings{}.Add(JobRatings{Overall: 8, Cleanliness: 10, Communication: 6})
	r = r.Add(JobRatings{Overall: 10, Cleanliness: 7, Communication: 9})
	assert.Equal(t, 2, r.Count)
	assert.InDelta(t, 9.0, r.Overall, 1e-9)
	assert.InDelta(t, 8.5, r.Cleanliness, 1e-9)
	assert.InDelta(t, 7.5, r.Communication, 1e-9)

	assert.False(t, JobRatings{Overall: 11, Cleanliness: 5, Communication: 5}.Valid())
	assert.False(t, JobRatings{Overall: 5, Cleanliness: 0, Communication: 5}.Valid())
}

func TestSilicaPlanInput(t *testing.T) {
	in := SilicaPlanInput{
		Employees:     []string{" Dana Ruiz ", ""},
		WorkTypes:     []string{"core_drilling"},
		WaterDelivery: true,
		WorkArea:      SilicaOutdoor,
		CuttingTime:   CuttingUnderFourHours,
		SignerName:    "Dana Ruiz",
	}
	require.NoError(t, in.Validate())
	assert.False(t, in.RespiratorRecommended())

	plan := in.ToPlan(uuid.New(), uuid.NullUUID{}, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"Dana Ruiz"}, plan.Employees)
	assert.False(t, plan.RespiratorRequired)

	indoor := in
	indoor.WorkArea = SilicaIndoor
	assert.True(t, indoor.RespiratorRecommended())
	assert.True(t, indoor.ToPlan(uuid.New(), uuid.NullUUID{}, time.Now()).RespiratorRequired)

	bad := in
	bad.WorkTypes = []string{"blasting"}
	assert.Error(t, bad.Validate())

	bad = in
	bad.Employees = []string{"  "}
	assert.Error(t, bad.Validate())

	bad = in
	bad.CuttingTime = "all_day"
	assert.Error(t, bad.Validate())
}

func TestDecodeWorkDetails(t *testing.T) {
	d, err := DecodeWorkDetails(WorkKindHoles, []byte(`{"holes":[{"quantity":3,"diameter_in":4,"depth_in":8},{"quantity":1,"diameter_in":6,"depth_in":12}]}`))
	require.NoError(t, err)
	holes := d.(HoleSpec)
	assert.Equal(t, 4, holes.TotalHoles())
	assert.InDelta(t, 36, holes.TotalInches(), 1e-9)

	d, err = DecodeWorkDetails(WorkKindCuts, []byte(`{"cuts":[{"linear_feet":12.5,"depth_in":6},{"linear_feet":7.5,"depth_in":6}]}`))
	require.NoError(t, err)
	assert.InDelta(t, 20, d.(CutSpec).TotalLinearFeet(), 1e-9)

	d, err = DecodeWorkDetails(WorkKindCuts, []byte(`{"cuts":[]}`))
	require.NoError(t, err)
	assert.Error(t, d.Validate())

	_, err = DecodeWorkDetails("drilling", nil)
	assert.Error(t, err)

	d, err = DecodeWorkDetails(WorkKindGeneral, nil)
	require.NoError(t, err)
	assert.Equal(t, WorkKindGeneral, d.Kind())
}

func TestHoursBetween(t *testing.T) {
	start := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	assert.True(t, HoursBetween(start, start.Add(90*time.Minute)).Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, HoursBetween(start, start.Add(20*time.Minute)).Sub(decimal.NewFromInt(1).Div(decimal.NewFromInt(3))).Abs().LessThan(decimal.NewFromFloat(1e-9)))
}
