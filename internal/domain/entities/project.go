package entities

import "time"

// ProjectStatus is the stored lifecycle status of an exploration project.
type ProjectStatus string

const (
	StatusInProgress ProjectStatus = "in progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusPlanning   ProjectStatus = "planning"
	StatusNA         ProjectStatus = "N/A"
)

// ProjectData is a committed exploration project. Projects created from the
// drilling estimator carry the cost fields copied from the originating search
// history item; manually created projects only carry the minimal fields plus
// an assigned NPV range.
type ProjectData struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Location     string        `json:"location"`
	Country      string        `json:"country"`
	Cost         string        `json:"cost,omitempty"`
	CostPerMeter string        `json:"costPerMeter,omitempty"`
	CostRange    string        `json:"costRange,omitempty"`
	NPVRange     string        `json:"npvRange,omitempty"`
	Minerals     []MineralType `json:"minerals"`
	CreatedDate  time.Time     `json:"createdDate"`
	Status       ProjectStatus `json:"status,omitempty"`

	FromDrillingEstimator bool `json:"fromDrillingEstimator,omitempty"`
}

// DisplayStatus returns the status shown to the user. Estimator-derived
// projects always display "in progress", overriding any stored status.
func (p *ProjectData) DisplayStatus() ProjectStatus {
	if p.FromDrillingEstimator {
		return StatusInProgress
	}
	if p.Status == "" {
		return StatusNA
	}
	return p.Status
}

// FormatCreatedDate renders the creation date as day/month/year.
func (p *ProjectData) FormatCreatedDate() string {
	return p.CreatedDate.Format("02/01/2006")
}
