package utils

import "strings"

// SanitizeEmail normalizes an email address for storage and lookup
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OptionalString returns nil for blank values, otherwise a pointer to the trimmed value
func OptionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
