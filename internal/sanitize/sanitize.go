// Package sanitize flattens field values so they survive delimited-text storage.
package sanitize

import (
	"strings"

	"github.com/UnknownOlympus/daedalus/internal/models"
)

//nolint:gochecknoglobals // immutable replacer
var fieldReplacer = strings.NewReplacer("\n", " ", ",", "")

// Field replaces newlines with a space, drops commas and trims surrounding whitespace.
func Field(value string) string {
	return strings.TrimSpace(fieldReplacer.Replace(value))
}

// Record sanitizes every field of r in place.
func Record(r *models.EmployeeRecord) {
	r.Map(Field)
}

// Accept reports whether values form a complete row: one value per column, none empty.
func Accept(values []string) bool {
	if len(values) != len(models.FieldNames) {
		return false
	}

	for _, value := range values {
		if value == "" {
			return false
		}
	}

	return true
}
