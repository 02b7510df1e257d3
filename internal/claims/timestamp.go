package claims

import (
	"strings"
	"time"

	dErrors "sotcredit/pkg/domain-errors"
)

// caseTimestampLayouts are tried in order. The first matches CRM timestamps
// such as "2024-03-05T10:15:00.000+0000"; fractional seconds are optional.
var caseTimestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	"2006-01-02",
}

// ParseCaseTimestamp parses a case creation timestamp. Zone offsets are dropped
// and the wall-clock reading is kept, expressed in UTC. A date-only value is midnight.
//
// Errors: CodeValidation when no layout matches.
func ParseCaseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range caseTimestampLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
	}
	return time.Time{}, dErrors.Newf(dErrors.CodeValidation, "invalid case creation timestamp %q", raw).
		WithDetail("field", "CaseCreationDate")
}
