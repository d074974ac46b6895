package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jayk56/dslyrics/pkg/lint"
)

func TestFinding_Path(t *testing.T) {
	tests := []struct {
		name    string
		finding lint.Finding
		want    string
	}{
		{"song level", lint.Finding{}, "song"},
		{"section level", lint.Finding{Section: 2}, "section 2"},
		{"line level", lint.Finding{Section: 2, Line: 3}, "section 2, line 3"},
		{"line without section", lint.Finding{Line: 3}, "song"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.finding.Path())
		})
	}
}

func TestHasErrors(t *testing.T) {
	assert.False(t, lint.HasErrors(nil))
	assert.False(t, lint.HasErrors([]lint.Finding{
		{Severity: lint.SeverityWarning},
		{Severity: lint.SeverityInfo},
	}))
	assert.True(t, lint.HasErrors([]lint.Finding{
		{Severity: lint.SeverityWarning},
		{Severity: lint.SeverityError},
	}))
}

func TestCountBySeverity(t *testing.T) {
	counts := lint.CountBySeverity([]lint.Finding{
		{Severity: lint.SeverityError},
		{Severity: lint.SeverityWarning},
		{Severity: lint.SeverityWarning},
	})
	assert.Equal(t, 1, counts[lint.SeverityError])
	assert.Equal(t, 2, counts[lint.SeverityWarning])
	assert.Zero(t, counts[lint.SeverityInfo])
}

func TestParseSeverity(t *testing.T) {
	s, ok := lint.ParseSeverity("warning")
	assert.True(t, ok)
	assert.Equal(t, lint.SeverityWarning, s)

	_, ok = lint.ParseSeverity("fatal")
	assert.False(t, ok)
}
