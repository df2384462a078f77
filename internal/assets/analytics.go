package assets

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fieldops-backend/internal/models"
)

// BrandStats aggregates frozen usage and cost per brand. Saws and bits use
// different units, so feet and inches are reported separately.
type BrandStats struct {
	Brand   string `json:"brand"`
	Assets  int    `json:"assets"`
	Active  int    `json:"active"`
	Retired int    `json:"retired"`

	TotalInvestment decimal.Decimal `json:"total_investment"`

	TotalLinearFeet    float64 `json:"total_linear_feet"`
	TotalInchesDrilled float64 `json:"total_inches_drilled"`
	TotalHoles         int     `json:"total_holes"`

	// Averages over retired assets only.
	AvgFeetAtRetirement   float64 `json:"avg_feet_at_retirement"`
	AvgInchesAtRetirement float64 `json:"avg_inches_at_retirement"`
	AvgDaysInService      float64 `json:"avg_days_in_service"`

	FeetPerDollar   float64 `json:"feet_per_dollar"`
	InchesPerDollar float64 `json:"inches_per_dollar"`
}

// BrandAnalytics is a pure read-side aggregation. Brands are matched
// case-insensitively and sorted by name.
func BrandAnalytics(all []models.Asset) []BrandStats {
	type acc struct {
		stats                      BrandStats
		retiredSaws, retiredBits   int
		retiredFeet, retiredInches float64
		serviceDays                float64
		servicedRetired            int
	}
	groups := map[string]*acc{}
	var order []string

	for _, a := range all {
		key := strings.ToLower(strings.TrimSpace(a.Brand))
		g, ok := groups[key]
		if !ok {
			g = &acc{stats: BrandStats{Brand: strings.TrimSpace(a.Brand)}}
			groups[key] = g
			order = append(order, key)
		}
		s := &g.stats
		s.Assets++
		if a.Cost.Valid {
			s.TotalInvestment = s.TotalInvestment.Add(a.Cost.Decimal)
		}
		s.TotalLinearFeet += a.LinearFeet
		s.TotalInchesDrilled += a.InchesDrilled
		s.TotalHoles += a.HoleCount

		if a.Status != models.AssetRetired {
			s.Active++
			continue
		}
		s.Retired++
		if a.Type.Drilling() {
			g.retiredBits++
			g.retiredInches += a.InchesDrilled
		} else {
			g.retiredSaws++
			g.retiredFeet += a.LinearFeet
		}
		if a.RetiredAt.Valid {
			start := a.CreatedAt
			if a.PurchaseDate.Valid {
				start = a.PurchaseDate.Time
			}
			if days := a.RetiredAt.Time.Sub(start).Hours() / 24; days >= 0 {
				g.serviceDays += days
				g.servicedRetired++
			}
		}
	}

	sort.Strings(order)
	out := make([]BrandStats, 0, len(order))
	for _, key := range order {
		g := groups[key]
		s := g.stats
		if g.retiredSaws > 0 {
			s.AvgFeetAtRetirement = g.retiredFeet / float64(g.retiredSaws)
		}
		if g.retiredBits > 0 {
			s.AvgInchesAtRetirement = g.retiredInches / float64(g.retiredBits)
		}
		if g.servicedRetired > 0 {
			s.AvgDaysInService = g.serviceDays / float64(g.servicedRetired)
		}
		if s.TotalInvestment.IsPositive() {
			invested := s.TotalInvestment.InexactFloat64()
			s.FeetPerDollar = s.TotalLinearFeet / invested
			s.InchesPerDollar = s.TotalInchesDrilled / invested
		}
		out = append(out, s)
	}
	return out
}
