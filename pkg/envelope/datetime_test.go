package envelope

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2013-02-19T05:10:10Z", time.Date(2013, 2, 19, 5, 10, 10, 0, time.UTC)},
		{"2013-02-19T05:10:10.123Z", time.Date(2013, 2, 19, 5, 10, 10, 123000000, time.UTC)},
		{"2013-02-19T06:10:10+01:00", time.Date(2013, 2, 19, 5, 10, 10, 0, time.UTC)},
		{"  2013-02-19T05:10:10Z\n", time.Date(2013, 2, 19, 5, 10, 10, 0, time.UTC)},
		{"2013-02-19T05:10:10", time.Date(2013, 2, 19, 5, 10, 10, 0, time.UTC)},
		{"2013-02-19T05:10:10.5", time.Date(2013, 2, 19, 5, 10, 10, 500000000, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDateTime(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseDateTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "yesterday", "2013-02-19", "2013-13-45T99:00:00Z", "1361250610"} {
		_, err := ParseDateTime(input)
		assert.Error(t, err, input)
	}
}

func TestFormatDateTime_RoundTrip(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	for _, ts := range []time.Time{
		time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 12, 0, 0, 250000000, zone),
	} {
		parsed, err := ParseDateTime(FormatDateTime(ts))
		require.NoError(t, err)
		assert.True(t, ts.Equal(parsed))
		assert.Equal(t, FormatDateTime(ts), FormatDateTime(parsed))
	}
}
