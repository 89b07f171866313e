package domain

import "time"

// DefaultTeamName is assigned when a coach is provisioned without naming
// their team.
const DefaultTeamName = "My Team"

type Coach struct {
	ID        string
	Email     string
	FullName  string
	TeamName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
