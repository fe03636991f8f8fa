package utils

import "strings"

// NormalizeEmail lower-cases and trims an email address so lookups and the
// unique index treat addresses case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
