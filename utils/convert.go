// Package utils
package utils

import (
	"strconv"
	"unicode/utf8"
)

// StrToInt parses data, falling back to def when it is empty or malformed.
func StrToInt(data string, def int) int {
	i, err := strconv.Atoi(data)
	if err != nil {
		return def
	}
	return i
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func Float64Ptr(v float64) *float64 {
	return &v
}
