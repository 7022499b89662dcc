package validate

import "strings"

// Required reports whether the value carries anything besides whitespace.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}
