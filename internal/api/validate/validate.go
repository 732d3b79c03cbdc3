package validate

import "strings"

// AllPresent reports whether every value is non-blank.
func AllPresent(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
