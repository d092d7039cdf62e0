package envelope

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for xs:dateTime values. Values without a zone offset are
// interpreted as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// ParseDateTime parses an xs:dateTime value into a zone-aware time
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date time")
	}
	for i, layout := range dateTimeLayouts {
		var (
			t   time.Time
			err error
		)
		if i == 0 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.UTC)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date time %q", s)
}

// FormatDateTime formats t as an xs:dateTime value with its zone offset
func FormatDateTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
