package request

import (
	"strings"
	"time"
)

// TeamCredentialRequest is the credential exchange payload.
type TeamCredentialRequest struct {
	TeamID   string `json:"team_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r TeamCredentialRequest) ResolveTeamID() string {
	return strings.TrimSpace(r.TeamID)
}

// TeamLocationRequest reports the last device position of a team.
type TeamLocationRequest struct {
	Password   string     `json:"password" binding:"required"`
	Latitude   *float64   `json:"latitude" binding:"required"`
	Longitude  *float64   `json:"longitude" binding:"required"`
	Address    string     `json:"address"`
	CapturedAt *time.Time `json:"captured_at"`
}
