package entities

import "time"

// Location is the last known position reported by a team device.
type Location struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Address    string    `json:"address,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
}

// Team is a field crew sharing one operation password.
//
// Storage model (DynamoDB):
//   - PK: id
//
// PasswordHash is a bcrypt hash and never leaves the backend.
type Team struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	LastLocation *Location `json:"last_location,omitempty"`
}
