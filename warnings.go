package tablescan

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal issue found while processing a page, such
// as a table candidate that was dropped.
type Warning struct {
	// Page is the 1-indexed page the warning applies to
	Page int

	// Message describes the issue
	Message string
}

// String returns the warning as "page N: message"
func (w Warning) String() string {
	if w.Page <= 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

// FormatWarnings joins warnings into a single line-per-warning string
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
