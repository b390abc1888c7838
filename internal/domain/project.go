package domain

import "time"

type Project struct {
	ID        string
	Code      string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    ProjectStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayID returns the best short identifier for display. It prefers
// the project code; if empty it truncates the UUID to 8 characters.
func (p *Project) DisplayID() string {
	if p.Code != "" {
		return p.Code
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

type Expense struct {
	ID          string
	ProjectID   string
	Date        time.Time
	Amount      float64
	Description string
	CostCode    string
	CreatedAt   time.Time
}
