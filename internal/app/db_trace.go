package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLen = 512

var collapseWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses whitespace and truncates long queries
// before they are attached to spans.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := collapseWhitespace.ReplaceAllString(query, " ")
	if len(normalized) > maxTracedQueryLen {
		return normalized[:maxTracedQueryLen] + "..."
	}

	return normalized
}
