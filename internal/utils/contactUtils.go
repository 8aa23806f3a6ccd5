package utils

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[\w\-\.]+@([\w\-]+\.)+[\w\-]{2,}$`)
	// Indian mobile numbers: 10 digits, leading digit 6-9.
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
)

func ValidEmail(contact string) bool {
	return emailPattern.MatchString(strings.TrimSpace(contact))
}

func ValidMobile(contact string) bool {
	return mobilePattern.MatchString(strings.TrimSpace(contact))
}

// ClassifyContact reports the contact type ("email" or "mobile") and whether
// the contact is valid at all.
func ClassifyContact(contact string) (string, bool) {
	switch {
	case ValidEmail(contact):
		return "email", true
	case ValidMobile(contact):
		return "mobile", true
	default:
		return "", false
	}
}
