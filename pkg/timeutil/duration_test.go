package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	cases := []struct {
		in    string
		want  time.Duration
		label string
	}{
		{in: "", want: week, label: "1w"},
		{in: "3d", want: 3 * day, label: "3d"},
		{in: "1w2d6h30m", want: week + 2*day + 6*time.Hour + 30*time.Minute, label: "1w2d6h30m"},
		{in: "2 Weeks 1 day", want: 2*week + day, label: "2w1d"},
		{in: "1mo", want: month, label: "4w2d"},
		{in: "90m", want: 90 * time.Minute, label: "1h30m"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, label, err := ParseWindow(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.label, label)
		})
	}
}

func TestParseWindowRejects(t *testing.T) {
	for _, in := range []string{"noop", "3", "3 fortnights", "0d", "d3"} {
		_, _, err := ParseWindow(in)
		assert.Error(t, err, in)
	}
}

func TestFormatWindowZero(t *testing.T) {
	assert.Equal(t, "0s", FormatWindow(0))
	assert.Equal(t, "0s", FormatWindow(500*time.Millisecond))
}
