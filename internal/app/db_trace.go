package app

import "strings"

const maxTracedQueryLength = 512

// formatDBQueryForTrace flattens the multi-line repository queries into a
// single line for the db.statement span attribute.
func formatDBQueryForTrace(query string) string {
	flat := strings.Join(strings.Fields(query), " ")
	flat = strings.TrimSuffix(flat, ";")
	if len(flat) > maxTracedQueryLength {
		return flat[:maxTracedQueryLength] + "..."
	}
	return flat
}
