package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for account fields.
const (
	maxEmailLen    = 254
	minPasswordLen = 8
	maxPasswordLen = 200
)

// validateEmail checks a signup/signin email and returns the first error
// found. Intentionally shallow: the mailbox check is one @ with something
// on both sides, not a full RFC 5322 parse.
func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "Email is too long (max 254 characters)."
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "Email address is invalid."
	}
	return ""
}

// validatePassword checks a signup password and returns the first error found.
func validatePassword(password string) string {
	if password == "" {
		return "Password is required."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password is too short (min 8 characters)."
	}
	if utf8.RuneCountInString(password) > maxPasswordLen {
		return "Password is too long (max 200 characters)."
	}
	return ""
}
