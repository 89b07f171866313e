package campsdk

import "time"

// TokenResponse is returned by signup, login and invite acceptance.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

// ErrorResponse is the error envelope every endpoint uses.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// SignUpRequest registers a new coach.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest authenticates a coach or a player, depending on the endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Player is a roster entry as coaches see it.
type Player struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Position     string     `json:"position,omitempty"`
	Age          *int       `json:"age,omitempty"`
	JerseyNumber *int       `json:"jersey_number,omitempty"`
	Email        string     `json:"email,omitempty"`
	InviteSent   bool       `json:"invite_sent"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// PlayerRequest carries the coach-editable roster fields for create/update.
type PlayerRequest struct {
	Name         string `json:"name"`
	Position     string `json:"position,omitempty"`
	Age          *int   `json:"age,omitempty"`
	JerseyNumber *int   `json:"jersey_number,omitempty"`
}

// IssueInviteRequest asks for an invite link for one player.
type IssueInviteRequest struct {
	Email string `json:"email"`
}

// IssueInviteResponse returns the minted invite.
type IssueInviteResponse struct {
	Code      string    `json:"code"`
	Link      string    `json:"link"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// InviteDetailsResponse is the join-page snapshot for a valid invite code.
type InviteDetailsResponse struct {
	Code           string    `json:"code"`
	Email          string    `json:"email"`
	PlayerName     string    `json:"player_name"`
	PlayerPosition string    `json:"player_position,omitempty"`
	CoachName      string    `json:"coach_name"`
	TeamName       string    `json:"team_name"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// AcceptInviteRequest completes an invite by setting a password.
type AcceptInviteRequest struct {
	Code            string `json:"code"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// InviteRecord is one row of a player's invite history.
type InviteRecord struct {
	Code       string     `json:"code"`
	Email      string     `json:"email"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

// ReportRequest carries one report's worth of coach input.
type ReportRequest struct {
	PlayerID            string     `json:"player_id"`
	TechnicalSkills     int        `json:"technical_skills"`
	PhysicalCondition   int        `json:"physical_condition"`
	Teamwork            int        `json:"teamwork"`
	Attitude            int        `json:"attitude"`
	Strengths           string     `json:"strengths,omitempty"`
	AreasForImprovement string     `json:"areas_for_improvement,omitempty"`
	AdditionalNotes     string     `json:"additional_notes,omitempty"`
	ReportDate          *time.Time `json:"report_date,omitempty"`
}

// Report is a performance report as returned by the API.
type Report struct {
	ID                  string    `json:"id"`
	PlayerID            string    `json:"player_id"`
	PlayerName          string    `json:"player_name"`
	TechnicalSkills     int       `json:"technical_skills"`
	PhysicalCondition   int       `json:"physical_condition"`
	Teamwork            int       `json:"teamwork"`
	Attitude            int       `json:"attitude"`
	Strengths           string    `json:"strengths,omitempty"`
	AreasForImprovement string    `json:"areas_for_improvement,omitempty"`
	AdditionalNotes     string    `json:"additional_notes,omitempty"`
	ReportDate          time.Time `json:"report_date"`
	CreatedAt           time.Time `json:"created_at"`
}

// Profile is what GET /v1/me returns for the authenticated subject.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Scope    string `json:"scope"`
	TeamName string `json:"team_name,omitempty"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies on /readyz.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
	Signer   string `json:"signer,omitempty"`
}
