package models

// View identifies one of the dashboard's role-specific views.
type View string

const (
	ViewTeamLead   View = "team-lead"
	ViewManagement View = "management"
	ViewMechanic   View = "mechanic"
	ViewProject    View = "project"
)

// Views lists the dashboard views in tab order.
var Views = []View{ViewTeamLead, ViewManagement, ViewMechanic, ViewProject}

// FilterAll is the filter value meaning "no restriction".
const FilterAll = "all"

// FilterSelection is the session's current scenario, view, and filter
// state. One instance lives for the page session; only user interaction
// mutates it.
type FilterSelection struct {
	ScenarioID string `json:"scenario"`
	View       View   `json:"view"`
	Team       string `json:"team"`
	Shift      string `json:"shift"`
	Product    string `json:"product"`
}

// DefaultSelection returns the session's initial state: team-lead view with
// every filter open.
func DefaultSelection(scenarioID string) FilterSelection {
	return FilterSelection{
		ScenarioID: scenarioID,
		View:       ViewTeamLead,
		Team:       FilterAll,
		Shift:      FilterAll,
		Product:    FilterAll,
	}
}

// Matches reports whether the task passes all three filter predicates.
func (f FilterSelection) Matches(t Task) bool {
	if f.Team != FilterAll && t.Team != f.Team {
		return false
	}
	if f.Shift != FilterAll && t.Shift != f.Shift {
		return false
	}
	if f.Product != FilterAll && t.Product != f.Product {
		return false
	}
	return true
}
