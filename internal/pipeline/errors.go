package pipeline

import (
	"fmt"

	"runner-dashboard/internal/model"
)

// DefaultDisplayErrors is how many validation errors are shown to a user.
const DefaultDisplayErrors = 10

// DisplayErrors renders the first limit errors as "Row N, field: message"
// lines (no row prefix for file-level errors) and, when more exist, a final
// "... and K more errors" line.
func DisplayErrors(errs []model.ValidationError, limit int) []string {
	if limit <= 0 {
		limit = DefaultDisplayErrors
	}

	lines := make([]string, 0, min(len(errs), limit)+1)
	for i, e := range errs {
		if i == limit {
			break
		}
		lines = append(lines, e.Error())
	}
	if extra := len(errs) - limit; extra > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more errors", extra))
	}
	return lines
}

// ErrorHeadline summarises an error list, e.g. "Found 3 errors in CSV:".
func ErrorHeadline(count int) string {
	if count == 1 {
		return "Found 1 error in CSV:"
	}
	return fmt.Sprintf("Found %d errors in CSV:", count)
}
