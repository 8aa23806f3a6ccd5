package models

import "time"

// Session is the identity behind a bearer token. Held only in process memory,
// so every session dies with the process.
type Session struct {
	Username  string    `json:"username"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}
