package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00"},
		{"negative clamps", -5 * time.Second, "00:00"},
		{"seconds", 42 * time.Second, "00:42"},
		{"minutes", 25 * time.Minute, "25:00"},
		{"mixed", 9*time.Minute + 7*time.Second, "09:07"},
		{"over an hour", time.Hour + 15*time.Minute + 3*time.Second, "1:15:03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatClock(tt.d))
		})
	}
}
