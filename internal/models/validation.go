package models

import "strings"

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fieldName + " is required",
			Value:   value,
		}
	}
	return nil
}

// MissingFieldsError reports several missing fields with a single message,
// e.g. "Missing required fields (from, msg)".
func MissingFieldsError(fields ...string) *ValidationError {
	if len(fields) == 1 {
		return &ValidationError{
			Field:   fields[0],
			Message: "Missing required field: " + fields[0],
		}
	}
	return &ValidationError{
		Field:   strings.Join(fields, ","),
		Message: "Missing required fields (" + strings.Join(fields, ", ") + ")",
	}
}
