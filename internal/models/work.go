package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type WorkKind string

const (
	WorkKindHoles   WorkKind = "holes"
	WorkKindCuts    WorkKind = "cuts"
	WorkKindGeneral WorkKind = "general"
)

// WorkDetails is the type-specific part of a work-performed entry. The
// concrete types are HoleSpec, CutSpec and GeneralSpec.
type WorkDetails interface {
	Kind() WorkKind
	Validate() error
}

type Hole struct {
	Quantity   int     `json:"quantity"`
	DiameterIn float64 `json:"diameter_in"`
	DepthIn    float64 `json:"depth_in"`
}

type HoleSpec struct {
	Holes []Hole `json:"holes"`
}

func (HoleSpec) Kind() WorkKind { return WorkKindHoles }

func (s HoleSpec) Validate() error {
	if len(s.Holes) == 0 {
		return fmt.Errorf("at least one hole is required")
	}
	for i, h := range s.Holes {
		if h.Quantity <= 0 || h.DiameterIn <= 0 || h.DepthIn <= 0 {
			return fmt.Errorf("hole %d: quantity, diameter and depth must be positive", i+1)
		}
	}
	return nil
}

// TotalHoles and TotalInches feed core-bit usage.
func (s HoleSpec) TotalHoles() int {
	n := 0
	for _, h := range s.Holes {
		n += h.Quantity
	}
	return n
}

func (s HoleSpec) TotalInches() float64 {
	var in float64
	for _, h := range s.Holes {
		in += float64(h.Quantity) * h.DepthIn
	}
	return in
}

type Cut struct {
	LinearFeet float64 `json:"linear_feet"`
	DepthIn    float64 `json:"depth_in"`
}

type CutSpec struct {
	Cuts []Cut `json:"cuts"`
}

func (CutSpec) Kind() WorkKind { return WorkKindCuts }

func (s CutSpec) Validate() error {
	if len(s.Cuts) == 0 {
		return fmt.Errorf("at least one cut is required")
	}
	for i, c := range s.Cuts {
		if c.LinearFeet <= 0 || c.DepthIn <= 0 {
			return fmt.Errorf("cut %d: linear feet and depth must be positive", i+1)
		}
	}
	return nil
}

func (s CutSpec) TotalLinearFeet() float64 {
	var ft float64
	for _, c := range s.Cuts {
		ft += c.LinearFeet
	}
	return ft
}

type EquipmentUse struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

type GeneralSpec struct {
	DurationHours float64        `json:"duration_hours"`
	Equipment     []EquipmentUse `json:"equipment,omitempty"`
}

func (GeneralSpec) Kind() WorkKind { return WorkKindGeneral }

func (s GeneralSpec) Validate() error {
	if s.DurationHours < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	for i, e := range s.Equipment {
		if e.Name == "" || e.Hours < 0 {
			return fmt.Errorf("equipment %d: name is required and hours cannot be negative", i+1)
		}
	}
	return nil
}

// DecodeWorkDetails turns a stored kind + JSON body back into its variant.
func DecodeWorkDetails(kind WorkKind, raw []byte) (WorkDetails, error) {
	switch kind {
	case WorkKindHoles:
		var s HoleSpec
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("failed to decode hole details: %w", err)
		}
		return s, nil
	case WorkKindCuts:
		var s CutSpec
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("failed to decode cut details: %w", err)
		}
		return s, nil
	case WorkKindGeneral:
		var s GeneralSpec
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, fmt.Errorf("failed to decode general details: %w", err)
			}
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown work kind %q", kind)
}

// WorkEntry is one itemized unit of labor or material recorded on a job.
// Entries are append-only and accumulate across days.
type WorkEntry struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	ItemName  string
	Quantity  float64
	Notes     string
	Details   WorkDetails
	WorkDate  time.Time
	CreatedBy uuid.NullUUID
	CreatedAt time.Time
}

type workEntryJSON struct {
	ID        uuid.UUID       `json:"id"`
	JobID     uuid.UUID       `json:"job_id"`
	ItemName  string          `json:"item_name"`
	Quantity  float64         `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
	Kind      WorkKind        `json:"kind"`
	Details   json.RawMessage `json:"details"`
	WorkDate  time.Time       `json:"work_date"`
	CreatedBy uuid.NullUUID   `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func (e WorkEntry) MarshalJSON() ([]byte, error) {
	out := workEntryJSON{
		ID:        e.ID,
		JobID:     e.JobID,
		ItemName:  e.ItemName,
		Quantity:  e.Quantity,
		Notes:     e.Notes,
		WorkDate:  e.WorkDate,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
	if e.Details != nil {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return nil, err
		}
		out.Kind = e.Details.Kind()
		out.Details = raw
	}
	return json.Marshal(out)
}

func (e *WorkEntry) UnmarshalJSON(data []byte) error {
	var in workEntryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = WorkEntry{
		ID:        in.ID,
		JobID:     in.JobID,
		ItemName:  in.ItemName,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
		WorkDate:  in.WorkDate,
		CreatedBy: in.CreatedBy,
		CreatedAt: in.CreatedAt,
	}
	if in.Kind == "" {
		return nil
	}
	details, err := DecodeWorkDetails(in.Kind, in.Details)
	if err != nil {
		return err
	}
	e.Details = details
	return nil
}

// WorkEntryInput is the operator-submitted form of a work entry, also the
// unit stored in local drafts.
type WorkEntryInput struct {
	ItemName string          `json:"item_name"`
	Quantity float64         `json:"quantity"`
	Notes    string          `json:"notes,omitempty"`
	Kind     WorkKind        `json:"kind"`
	Details  json.RawMessage `json:"details"`
}

// Decode validates the input and resolves its details variant.
func (in WorkEntryInput) Decode() (WorkDetails, error) {
	if in.ItemName == "" {
		return nil, fmt.Errorf("item_name is required")
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}
	details, err := DecodeWorkDetails(in.Kind, in.Details)
	if err != nil {
		return nil, err
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}
	return details, nil
}
