package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SilicaWorkTypes is the fixed vocabulary offered on the exposure plan.
var SilicaWorkTypes = []string{
	"wall_sawing",
	"slab_sawing",
	"core_drilling",
	"hand_sawing",
	"chainsaw_cutting",
	"wire_sawing",
	"grinding",
	"demolition",
}

const (
	SilicaIndoor  = "indoor"
	SilicaOutdoor = "outdoor"

	CuttingUnderFourHours = "less_than_4_hours"
	CuttingOverFourHours  = "more_than_4_hours"
)

type SilicaPlan struct {
	ID                 uuid.UUID     `json:"id"`
	JobID              uuid.UUID     `json:"job_id"`
	Employees          []string      `json:"employees"`
	WorkTypes          []string      `json:"work_types"`
	WaterDelivery      bool          `json:"water_delivery"`
	WorkArea           string        `json:"work_area"`
	CuttingTime        string        `json:"cutting_time"`
	RespiratorRequired bool          `json:"respirator_required"`
	SafetyNotes        string        `json:"safety_notes"`
	SignerName         string        `json:"signer_name"`
	Signature          string        `json:"signature,omitempty"`
	SubmittedBy        uuid.NullUUID `json:"submitted_by"`
	SubmittedAt        time.Time     `json:"submitted_at"`
	PDF                DocumentRef   `json:"pdf"`
}

// SilicaPlanInput is the form body for a new exposure plan.
type SilicaPlanInput struct {
	Employees          []string `json:"employees"`
	WorkTypes          []string `json:"work_types"`
	WaterDelivery      bool     `json:"water_delivery"`
	WorkArea           string   `json:"work_area"`
	CuttingTime        string   `json:"cutting_time"`
	RespiratorRequired bool     `json:"respirator_required"`
	SafetyNotes        string   `json:"safety_notes"`
	SignerName         string   `json:"signer_name"`
	Signature          string   `json:"signature"`
}

func (in SilicaPlanInput) Validate() error {
	employees := 0
	for _, e := range in.Employees {
		if strings.TrimSpace(e) != "" {
			employees++
		}
	}
	if employees == 0 {
		return fmt.Errorf("at least one employee is required")
	}
	if len(in.WorkTypes) == 0 {
		return fmt.Errorf("select at least one work type")
	}
	for _, wt := range in.WorkTypes {
		if !knownWorkType(wt) {
			return fmt.Errorf("unknown work type %q", wt)
		}
	}
	if in.WorkArea != SilicaIndoor && in.WorkArea != SilicaOutdoor {
		return fmt.Errorf("work_area must be %q or %q", SilicaIndoor, SilicaOutdoor)
	}
	if in.CuttingTime != CuttingUnderFourHours && in.CuttingTime != CuttingOverFourHours {
		return fmt.Errorf("cutting_time must be %q or %q", CuttingUnderFourHours, CuttingOverFourHours)
	}
	if strings.TrimSpace(in.SignerName) == "" {
		return fmt.Errorf("signer_name is required")
	}
	return nil
}

// RespiratorRecommended applies the engineering-control table: dry cutting,
// enclosed areas and shifts over four hours call for respiratory protection.
func (in SilicaPlanInput) RespiratorRecommended() bool {
	return !in.WaterDelivery || in.WorkArea == SilicaIndoor || in.CuttingTime == CuttingOverFourHours
}

func (in SilicaPlanInput) ToPlan(jobID uuid.UUID, submittedBy uuid.NullUUID, at time.Time) SilicaPlan {
	employees := make([]string, 0, len(in.Employees))
	for _, e := range in.Employees {
		if e = strings.TrimSpace(e); e != "" {
			employees = append(employees, e)
		}
	}
	return SilicaPlan{
		ID:                 uuid.New(),
		JobID:              jobID,
		Employees:          employees,
		WorkTypes:          append([]string(nil), in.WorkTypes...),
		WaterDelivery:      in.WaterDelivery,
		WorkArea:           in.WorkArea,
		CuttingTime:        in.CuttingTime,
		RespiratorRequired: in.RespiratorRequired || in.RespiratorRecommended(),
		SafetyNotes:        strings.TrimSpace(in.SafetyNotes),
		SignerName:         strings.TrimSpace(in.SignerName),
		Signature:          in.Signature,
		SubmittedBy:        submittedBy,
		SubmittedAt:        at,
	}
}

func knownWorkType(wt string) bool {
	for _, known := range SilicaWorkTypes {
		if wt == known {
			return true
		}
	}
	return false
}
