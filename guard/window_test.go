package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordergate/pkg/clierr"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 1, 1, hour, minute, 0, 0, time.Local)
}

func TestCheckTradingWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		window   string
		now      time.Time
		wantCode clierr.Code // "" means pass
	}{
		{"empty window always passes", "", at(3, 0), ""},
		{"inside simple window", "09:00-17:00", at(12, 0), ""},
		{"at start bound", "09:00-17:00", at(9, 0), ""},
		{"at end bound", "09:00-17:00", at(17, 0), ""},
		{"outside simple window", "09:00-10:00", at(12, 0), clierr.SafetyPolicyBlock},
		{"wraparound late side", "23:00-02:00", at(23, 30), ""},
		{"wraparound early side", "23:00-02:00", at(1, 0), ""},
		{"wraparound outside", "23:00-02:00", at(12, 0), clierr.SafetyPolicyBlock},
		{"malformed no dash", "bad-window", at(12, 0), clierr.ValidationError},
		{"malformed missing half", "09:00", at(12, 0), clierr.ValidationError},
		{"malformed hour", "25:00-26:00", at(12, 0), clierr.ValidationError},
		{"whitespace tolerated", " 09:00 - 17:00 ", at(12, 0), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkTradingWindow(tt.window, tt.now)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, clierr.CodeOf(err))
		})
	}
}
