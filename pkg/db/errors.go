package db

import "strings"

// IsUniqueViolation reports whether err looks like a unique-constraint
// violation. Matching on message text keeps it working across the
// postgres and sqlite drivers; pass constraintName to pin a specific
// constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}
