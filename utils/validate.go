package utils

import (
	"regexp"
)

var coinIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// IsValidCoinID reports whether v looks like an upstream coin slug.
func IsValidCoinID(v string) bool {
	return len(v) <= 128 && coinIDPattern.MatchString(v)
}
