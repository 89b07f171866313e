package domain

import "time"

// Rating bounds for the four skill categories.
const (
	RatingMin = 1
	RatingMax = 10
)

// Report is a periodic skill assessment a coach writes for a player.
type Report struct {
	ID         string
	PlayerID   string
	CoachID    string
	ReportDate time.Time

	TechnicalSkills   int
	PhysicalCondition int
	Teamwork          int
	Attitude          int

	Strengths           string
	AreasForImprovement string
	AdditionalNotes     string

	CreatedAt time.Time

	// PlayerName is populated by list queries that join the roster for
	// display; it is empty on freshly created reports.
	PlayerName string
}
