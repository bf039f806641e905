package models

// Mechanic is one worker from the backend roster.
type Mechanic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// MechanicSchedule is the out-of-band assigned-task list for one mechanic,
// fetched separately from the scenario data.
type MechanicSchedule struct {
	MechanicID    string `json:"mechanicId"`
	Shift         string `json:"shift"`
	Date          string `json:"date"`
	Tasks         []Task `json:"tasks"`
	TotalAssigned int    `json:"totalAssigned"`
}

// ProductTaskDetail is the backend's per-product task breakdown.
type ProductTaskDetail struct {
	ProductName string           `json:"productName"`
	ProductInfo *Product         `json:"productInfo,omitempty"`
	Tasks       []Task           `json:"tasks"`
	Breakdown   map[TaskType]int `json:"taskBreakdown"`
	TotalTasks  int              `json:"totalTasks"`
}

// Team is one roster entry from the backend's team listing.
type Team struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"` // "mechanic" or "quality"
	Capacity int      `json:"capacity"`
	Shifts   []string `json:"shifts"`
}
