// Package form provides stateless validation for the newsletter signup
// fields.
package form

import (
	"regexp"
	"strings"
)

// Messages surfaced to the user via notifications.
const (
	MsgInvalidEmail  = "Invalid email format"
	MsgFieldRequired = "This field is required"
)

// emailPattern requires local@domain.tld with no whitespace, at least one
// character on each side of the @, and at least one dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like a deliverable address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsNonEmpty reports whether s contains anything besides whitespace.
func IsNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Result is the outcome of validating a set of fields. Errors maps field
// name to a single message; fields that pass are absent.
type Result struct {
	IsValid bool
	Errors  map[string]string
}

// ValidateForm checks every field: a field named "email" must pass the email
// format check, and every field must be non-empty.
//
// The non-empty check runs after the format check, so an empty "email" field
// reports MsgFieldRequired rather than MsgInvalidEmail — the later check
// overwrites. That precedence is long-standing observed behavior and is kept
// deliberately; see the package tests.
func ValidateForm(fields map[string]string) Result {
	errors := make(map[string]string)

	for name, value := range fields {
		if name == "email" && !IsValidEmail(value) {
			errors[name] = MsgInvalidEmail
		}
		if !IsNonEmpty(value) {
			errors[name] = MsgFieldRequired
		}
	}

	return Result{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}
