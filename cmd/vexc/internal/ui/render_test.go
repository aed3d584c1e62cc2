package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostics(t *testing.T) {
	assert.Empty(t, Diagnostics("a.vex", nil, nil))

	out := Diagnostics("a.vex", []string{"bad attribute"}, []string{"add a key"})
	assert.Contains(t, out, "a.vex")
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "bad attribute")
	assert.Contains(t, out, "tip")
	assert.Contains(t, out, "add a key")
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name                string
		files, errors, tips int
		want                string
	}{
		{"clean", 1, 0, 0, "Compiled 1 template in 12ms (0 warnings, 0 tips)"},
		{"with warnings", 3, 1, 2, "Compiled 3 templates in 12ms (1 warning, 2 tips)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Summary(tt.files, tt.errors, tt.tips, 12*time.Millisecond), tt.want)
		})
	}
}

func TestFailure(t *testing.T) {
	assert.Contains(t, Failure(errors.New("boom")), "boom")
}
