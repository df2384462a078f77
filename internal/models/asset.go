package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AssetType string

const (
	AssetWallSaw  AssetType = "wall_saw"
	AssetHandSaw  AssetType = "hand_saw"
	AssetSlabSaw  AssetType = "slab_saw"
	AssetChainsaw AssetType = "chainsaw"
	AssetCoreBit  AssetType = "core_bit"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetWallSaw, AssetHandSaw, AssetSlabSaw, AssetChainsaw, AssetCoreBit:
		return true
	}
	return false
}

// Drilling reports whether usage is tracked as inches and holes rather than
// linear feet.
func (t AssetType) Drilling() bool {
	return t == AssetCoreBit
}

type AssetStatus string

const (
	AssetActive  AssetStatus = "active"
	AssetRetired AssetStatus = "retired"
)

type Asset struct {
	ID            uuid.UUID           `json:"id"`
	Type          AssetType           `json:"type"`
	Brand         string              `json:"brand"`
	Size          string              `json:"size"`
	SerialNumber  string              `json:"serial_number"`
	PurchaseDate  sql.NullTime        `json:"purchase_date"`
	Cost          decimal.NullDecimal `json:"cost"`
	Status        AssetStatus         `json:"status"`
	LinearFeet    float64             `json:"linear_feet"`
	InchesDrilled float64             `json:"inches_drilled"`
	HoleCount     int                 `json:"hole_count"`
	OperatorID    uuid.NullUUID       `json:"operator_id"`
	RetiredReason sql.NullString      `json:"retired_reason"`
	RetiredAt     sql.NullTime        `json:"retired_at"`
	RetiredPhoto  sql.NullString      `json:"retired_photo"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Usage returns the primary usage measure: inches for bits, feet for saws.
func (a Asset) Usage() float64 {
	if a.Type.Drilling() {
		return a.InchesDrilled
	}
	return a.LinearFeet
}

func (a Asset) Redacted() Asset {
	a.Cost = decimal.NullDecimal{}
	return a
}

// AssetUsage is an increment to an asset's counters.
type AssetUsage struct {
	LinearFeet    float64 `json:"linear_feet"`
	InchesDrilled float64 `json:"inches_drilled"`
	Holes         int     `json:"holes"`
}

func (u AssetUsage) Zero() bool {
	return u.LinearFeet == 0 && u.InchesDrilled == 0 && u.Holes == 0
}

type AssetFilter struct {
	Status     AssetStatus
	Type       AssetType
	OperatorID uuid.NullUUID
}
