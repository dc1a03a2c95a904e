package security

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	MaxUserNameLength = 32
	MaxEmailLength    = 254
)

var (
	htmlPolicy = bluemonday.StrictPolicy()
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// SanitizeString removes potentially dangerous characters
func SanitizeString(input string) string {
	// Trim whitespace
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Limit length
	if len(input) > 1000 {
		input = input[:1000]
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeUserName strips markup and separators from a display name. The '#' is reserved
// for player tags.
func SanitizeUserName(input string) string {
	name := SanitizeString(SanitizeHTML(input))
	name = strings.ReplaceAll(name, "#", "")
	name = strings.Join(strings.Fields(name), " ")

	if utf8.RuneCountInString(name) > MaxUserNameLength {
		name = string([]rune(name)[:MaxUserNameLength])
	}
	return name
}

// ValidateEmail checks if an email address looks valid
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	return len(email) <= MaxEmailLength && emailRegex.MatchString(email)
}
