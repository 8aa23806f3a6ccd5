package models

import "time"

// OTP is the pending one-time code for a contact. One live entry per contact;
// a new send overwrites the old one.
type OTP struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SendOTPRequest struct {
	Contact string `json:"contact"`
}

type VerifyOTPRequest struct {
	Contact string `json:"contact"`
	OTP     string `json:"otp"`
}
