package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"zero", time.Time{}, "N/A"},
		{"just now", now.Add(-30 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"older", time.Date(2024, 4, 20, 9, 30, 0, 0, time.UTC), "2024-04-20 09:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRelative(tt.ts, now))
		})
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "green", StatusColor("Online"))
	assert.Equal(t, "orange", StatusColor("Degraded"))
	assert.Equal(t, "red", StatusColor("Error"))
	assert.Equal(t, "gray", StatusColor("whatever"))
}
