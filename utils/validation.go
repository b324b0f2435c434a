// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]\d{5,14}$`)

// ValidatePhone checks that a phone number looks like an international
// number after stripping common separators. Intake forms come from
// untrusted clients, so anything stricter just rejects real numbers.
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phonePattern.MatchString(cleaned)
}

// NormalizeClientName canonicalizes a free-text client name for
// first-visit comparisons: trimmed, lower-cased, inner whitespace
// collapsed to single spaces.
func NormalizeClientName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, " ")
}
