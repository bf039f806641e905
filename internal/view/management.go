package view

import (
	"github.com/floorview/floorview/pkg/models"
)

// ProductStatus is the management view's delivery outlook for one product.
type ProductStatus string

const (
	StatusOnTime ProductStatus = "on-time"
	StatusAtRisk ProductStatus = "at-risk"
	StatusLate   ProductStatus = "late"
)

// AtRiskMaxDays is the lateness boundary between at-risk and late.
const AtRiskMaxDays = 5

// Band is the three-tier color banding for utilization bars.
type Band string

const (
	BandCritical Band = "critical" // > 90
	BandWarning  Band = "warning"  // > 75
	BandNominal  Band = "nominal"
)

// ProductLine is one product row of the management view.
type ProductLine struct {
	Name         string
	Status       ProductStatus
	Progress     int
	DaysLeft     int
	LatenessDays int
	CriticalPath int
	LateParts    int
	Rework       int
	TotalTasks   int
}

// UtilizationBar is one team's utilization with its color band.
type UtilizationBar struct {
	Team     string
	Percent  int
	Capacity int
	Band     Band
}

// ManagementView is the management display model: scenario KPIs, product
// statuses, and per-team utilization bars.
type ManagementView struct {
	ScenarioID     string
	Degraded       bool
	Workforce      int
	Makespan       int
	OnTimeRate     int
	AvgUtilization int
	MaxLateness    int
	Products       []ProductLine
	Teams          []UtilizationBar
}

// statusFor derives a product's delivery status: on-time when flagged so,
// at-risk while lateness stays within AtRiskMaxDays, late beyond.
func statusFor(p models.Product) ProductStatus {
	switch {
	case p.OnTime:
		return StatusOnTime
	case p.LatenessDays <= AtRiskMaxDays:
		return StatusAtRisk
	default:
		return StatusLate
	}
}

// bandFor places a utilization percentage into its color band.
func bandFor(percent int) Band {
	switch {
	case percent > 90:
		return BandCritical
	case percent > 75:
		return BandWarning
	default:
		return BandNominal
	}
}

// Management builds the management view from a scenario snapshot.
func Management(sc *models.Scenario, sel models.FilterSelection) ManagementView {
	v := ManagementView{}
	if sc == nil {
		return v
	}

	v.ScenarioID = sc.ID
	v.Degraded = sc.Degraded
	v.Workforce = sc.TotalWorkforce
	v.Makespan = sc.Makespan
	v.OnTimeRate = sc.OnTimeRate
	v.AvgUtilization = sc.AvgUtilization
	v.MaxLateness = sc.MaxLateness

	v.Products = make([]ProductLine, 0, len(sc.Products))
	for _, p := range sc.Products {
		if sel.Product != models.FilterAll && p.Name != sel.Product {
			continue
		}
		v.Products = append(v.Products, ProductLine{
			Name:         p.Name,
			Status:       statusFor(p),
			Progress:     p.Progress,
			DaysLeft:     p.DaysRemaining,
			LatenessDays: p.LatenessDays,
			CriticalPath: p.CriticalPath,
			LateParts:    p.LatePartsCount,
			Rework:       p.ReworkCount,
			TotalTasks:   p.TotalTasks,
		})
	}

	for _, team := range sc.Teams() {
		if sel.Team != models.FilterAll && team != sel.Team {
			continue
		}
		pct := sc.Utilization[team]
		v.Teams = append(v.Teams, UtilizationBar{
			Team:     team,
			Percent:  pct,
			Capacity: sc.TeamCapacities[team],
			Band:     bandFor(pct),
		})
	}
	return v
}
