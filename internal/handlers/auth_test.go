package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		to   string
		want string
	}{
		{"", "/timelines"},
		{"/locations", "/locations"},
		{"/timeline/3/events?tab=1", "/timeline/3/events?tab=1"},
		{"https://evil.example.com", "/timelines"},
		{"//evil.example.com", "/timelines"},
		{"/\\evil.example.com", "/timelines"},
		{"relative/path", "/timelines"},
	}

	for _, tt := range tests {
		t.Run(tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, safeRedirect(tt.to, defaultRedirect))
		})
	}
}
