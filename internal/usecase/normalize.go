package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex    = regexp.MustCompile(`[^\w\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// normalizeText lower-cases s, strips non-word characters and collapses whitespace.
// Names, brands and categories are all compared in this form.
func normalizeText(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = punctuationRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// isBlank reports whether s is empty or only whitespace
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// textLength counts characters, not bytes
func textLength(s string) int {
	return utf8.RuneCountInString(s)
}
