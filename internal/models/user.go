package models

const (
	ContactTypeEmail  = "email"
	ContactTypeMobile = "mobile"
)

// User is the persisted account record. The whole collection is rewritten on
// every signup, so the shape stays flat and JSON-friendly.
type User struct {
	Contact      string `json:"contact"`
	ContactType  string `json:"contactType"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	DOB          string `json:"dob,omitempty"`
}

type SignupRequest struct {
	Contact  string `json:"contact"`
	Username string `json:"username"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
