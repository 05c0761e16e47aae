package utils

import (
	"time"
)

// dueDateLayouts lists the accepted due date shapes, tried in order.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDueDate parses a due date string leniently: it returns the parsed
// time, or nil when the value does not match any accepted layout. Callers
// treat nil as "leave the due date alone" rather than an error.
func ParseDueDate(value string) *time.Time {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
