// internal/reminder/trigger_test.go
package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{"days", "2d", 48 * time.Hour},
		{"hours", "3h", 3 * time.Hour},
		{"minutes", "30m", 30 * time.Minute},
		{"unknown unit", "5x", 0},
		{"empty", "", 0},
		{"no number", "d", 0},
		{"garbage number", "xxh", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOffset(tt.input))
		})
	}
}

func TestTriggerTime(t *testing.T) {
	due := time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name   string
		offset string
		want   time.Time
	}{
		{"two days before", "2d", time.Date(2025, 6, 8, 23, 59, 59, 0, time.UTC)},
		{"three hours before", "3h", time.Date(2025, 6, 10, 20, 59, 59, 0, time.UTC)},
		{"unparseable unit fires at due instant", "5x", due},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TriggerTime(due, tt.offset))
		})
	}
}

func TestNextDailyOccurrence(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

	t.Run("later today", func(t *testing.T) {
		next, err := NextDailyOccurrence(now, "20:15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 10, 20, 15, 0, 0, time.UTC), next)
	})

	t.Run("already passed rolls to tomorrow", func(t *testing.T) {
		next, err := NextDailyOccurrence(now, "08:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC), next)
	})

	t.Run("malformed time", func(t *testing.T) {
		_, err := NextDailyOccurrence(now, "25:99")
		assert.Error(t, err)
	})
}

func TestDailyCronSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"morning", "08:30", "0 30 8 * * *", false},
		{"midnight", "00:00", "0 0 0 * * *", false},
		{"bad hour", "24:00", "", true},
		{"bad minute", "10:60", "", true},
		{"not a time", "soon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DailyCronSpec(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
