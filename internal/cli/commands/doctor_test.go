package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayk56/dslyrics/pkg/grade"
	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/pipeline"
)

// writeSongbook copies fixture sheets into dir so doctor can scan them
// as a standalone songbook.
func writeSongbook(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
}

func TestNewDoctorCommand(t *testing.T) {
	cmd := NewDoctorCommand()

	assert.Equal(t, "doctor [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("format"))
}

func TestCalculateHealthScore(t *testing.T) {
	tests := []struct {
		name       string
		checks     []HealthCheck
		sheetCount int
		minScore   int
		maxScore   int
	}{
		{
			name:       "no checks returns 100",
			checks:     nil,
			sheetCount: 10,
			minScore:   100,
			maxScore:   100,
		},
		{
			name: "all passing returns 100",
			checks: []HealthCheck{
				{RuleID: "ST01", Status: "pass", IssueCount: 0},
				{RuleID: "PR01", Status: "pass", IssueCount: 0},
			},
			sheetCount: 10,
			minScore:   100,
			maxScore:   100,
		},
		{
			name: "warnings reduce score",
			checks: []HealthCheck{
				{RuleID: "ST01", Status: "pass", IssueCount: 0},
				{RuleID: "PR01", Status: "warn", IssueCount: 2},
			},
			sheetCount: 10,
			minScore:   80,
			maxScore:   100,
		},
		{
			name: "errors reduce score more",
			checks: []HealthCheck{
				{RuleID: "ST02", Status: "error", IssueCount: 2},
			},
			sheetCount: 10,
			minScore:   70,
			maxScore:   95,
		},
		{
			name: "more sheets means less impact per issue",
			checks: []HealthCheck{
				{RuleID: "PR01", Status: "warn", IssueCount: 5},
			},
			sheetCount: 100,
			minScore:   90,
			maxScore:   100,
		},
		{
			name: "many issues can reduce to 0",
			checks: []HealthCheck{
				{RuleID: "ST02", Status: "error", IssueCount: 20},
				{RuleID: "ST04", Status: "error", IssueCount: 20},
			},
			sheetCount: 5,
			minScore:   0,
			maxScore:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := calculateHealthScore(tt.checks, tt.sheetCount)
			assert.GreaterOrEqual(t, score, tt.minScore, "score should be >= %d", tt.minScore)
			assert.LessOrEqual(t, score, tt.maxScore, "score should be <= %d", tt.maxScore)
		})
	}
}

func TestGetRecommendation(t *testing.T) {
	tests := []struct {
		ruleID   string
		expected bool // whether a recommendation is returned
	}{
		{"ST01", true},
		{"ST02", true},
		{"ST03", true},
		{"ST04", true},
		{"ST05", true},
		{"ST06", true},
		{"PR01", true},
		{"PR02", true},
		{"PR03", true},
		{"MU01", true},
		{"MU02", true},
		{"UNKNOWN", false},
	}

	for _, tt := range tests {
		t.Run(tt.ruleID, func(t *testing.T) {
			rec := getRecommendation(tt.ruleID)
			if tt.expected {
				assert.NotEmpty(t, rec, "expected recommendation for %s", tt.ruleID)
			} else {
				assert.Empty(t, rec, "expected no recommendation for %s", tt.ruleID)
			}
		})
	}
}

func TestGenerateRecommendations(t *testing.T) {
	checks := []HealthCheck{
		{RuleID: "ST03", Status: "error", IssueCount: 1},
		{RuleID: "ST01", Status: "error", IssueCount: 2},
		{RuleID: "PR01", Status: "pass", IssueCount: 0},
	}

	recommendations := generateRecommendations(checks)

	require.Len(t, recommendations, 2)
	assert.Contains(t, recommendations[0], "VERSE or CHORUS")
	assert.Contains(t, recommendations[1], "metadata lines")
}

func TestGenerateRecommendations_LimitTo5(t *testing.T) {
	ruleIDs := []string{"ST01", "ST02", "ST03", "ST04", "ST05", "ST06", "PR01", "PR02"}
	checks := make([]HealthCheck, len(ruleIDs))
	for i, id := range ruleIDs {
		checks[i] = HealthCheck{RuleID: id, Status: "warn", IssueCount: 1}
	}

	recommendations := generateRecommendations(checks)

	assert.LessOrEqual(t, len(recommendations), 5)
}

func TestCollectSheets(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "drafts"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, ".archive"), 0o755))
	for _, path := range []string{
		filepath.Join(tmp, "a.lyr"),
		filepath.Join(tmp, "drafts", "b.lyr"),
		filepath.Join(tmp, ".archive", "old.lyr"),
		filepath.Join(tmp, "notes.txt"),
	} {
		require.NoError(t, os.WriteFile(path, []byte("title:X\n"), 0o644))
	}

	sheets, err := collectSheets(tmp)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmp, "a.lyr"),
		filepath.Join(tmp, "drafts", "b.lyr"),
	}, sheets)
}

func TestCollectSheets_MissingRoot(t *testing.T) {
	_, err := collectSheets(filepath.Join(t.TempDir(), "no_such_dir"))
	assert.Error(t, err)
}

func TestDisplaySheet(t *testing.T) {
	assert.Equal(t, "a.lyr", displaySheet("songs", filepath.Join("songs", "a.lyr")))
	assert.Equal(t, filepath.Join("drafts", "b.lyr"), displaySheet("songs", filepath.Join("songs", "drafts", "b.lyr")))
	assert.Equal(t, "a.lyr", displaySheet(".", "a.lyr"))
}

func TestBuildDoctorOutput(t *testing.T) {
	reports := []*pipeline.Report{
		{
			Name:  "torn.lyr",
			Valid: false,
			Findings: []lint.Finding{
				{RuleID: "ST02", Severity: lint.SeverityError, Message: "song has 1 sections, expected between 2 and 20"},
				{RuleID: "PR01", Severity: lint.SeverityWarning, Message: "line has 15 syllables, over the verse limit of 14"},
			},
			Grade: grade.Grade{Overall: 40},
			Stats: pipeline.Stats{Sections: 1, Lines: 2, Words: 10},
		},
		{
			Name:     "fine.lyr",
			Valid:    true,
			Findings: []lint.Finding{},
			Grade:    grade.Grade{Overall: 90},
			Stats:    pipeline.Stats{Sections: 5, Lines: 18, Words: 120},
		},
	}

	out := buildDoctorOutput(reports, []string{"smashed.lyr: unexpected character"})

	assert.Equal(t, 3, out.Summary.Sheets)
	assert.Equal(t, 1, out.Summary.ParseFailed)
	assert.Equal(t, 1, out.Summary.Valid)
	assert.Equal(t, 6, out.Summary.Sections)
	assert.Equal(t, 20, out.Summary.Lines)
	assert.Equal(t, 130, out.Summary.Words)
	assert.Equal(t, 65, out.Summary.AvgGrade)
	assert.Equal(t, 2, out.IssueCount)
	assert.Len(t, out.ParseErrors, 1)

	byID := make(map[string]HealthCheck, len(out.HealthChecks))
	for _, check := range out.HealthChecks {
		assert.NotEqual(t, "MU04", check.RuleID, "declared-only rules should be skipped")
		byID[check.RuleID] = check
	}

	require.Contains(t, byID, "ST02")
	assert.Equal(t, "error", byID["ST02"].Status)
	assert.Equal(t, 1, byID["ST02"].IssueCount)
	require.Len(t, byID["ST02"].Details, 1)
	assert.Equal(t, "torn.lyr: song has 1 sections, expected between 2 and 20", byID["ST02"].Details[0])

	require.Contains(t, byID, "PR01")
	assert.Equal(t, "warn", byID["PR01"].Status)

	require.Contains(t, byID, "ST03")
	assert.Equal(t, "pass", byID["ST03"].Status)
	assert.Zero(t, byID["ST03"].IssueCount)

	// Checks come out grouped structure, prosody, musical.
	require.NotEmpty(t, out.HealthChecks)
	assert.Equal(t, "structure", out.HealthChecks[0].Group)
	assert.Equal(t, "musical", out.HealthChecks[len(out.HealthChecks)-1].Group)

	// 3 sheets: one error issue (-10), one warning issue (-5), one
	// parse failure (-10).
	assert.Equal(t, 75, out.Score)

	require.Len(t, out.Recommendations, 2)
	assert.Contains(t, out.Recommendations[0], "Split oversized sheets")
	assert.Contains(t, out.Recommendations[1], "Tighten the line")
}

func TestBuildSongbookSummary_NoReports(t *testing.T) {
	summary := buildSongbookSummary(nil, 2)

	assert.Equal(t, 2, summary.Sheets)
	assert.Equal(t, 2, summary.ParseFailed)
	assert.Zero(t, summary.Valid)
	assert.Zero(t, summary.AvgGrade)
}

func TestDoctorCommand_Songbook(t *testing.T) {
	tmp := t.TempDir()
	writeSongbook(t, tmp, "validation_blues.lyr", "broken.lyr")

	cmd := NewDoctorCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{tmp})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "# Songbook Health Report")
	assert.Contains(t, out, "## Parse Failures")
	assert.Contains(t, out, "broken.lyr")
	assert.Contains(t, out, "### Structure")
	assert.Contains(t, out, "**[PASS]** ST01")
	assert.Contains(t, out, "**[WARN]** PR03")
	assert.Contains(t, out, "## Health Score")
	assert.Contains(t, out, "## Recommendations")
	assert.Contains(t, out, "Check the annotation")
}

func TestDoctorCommand_JSON(t *testing.T) {
	tmp := t.TempDir()
	writeSongbook(t, tmp, "validation_blues.lyr", "broken.lyr")

	cmd := NewDoctorCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{tmp, "--format", "json"})

	require.NoError(t, cmd.Execute())

	var out DoctorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, 2, out.Summary.Sheets)
	assert.Equal(t, 1, out.Summary.ParseFailed)
	assert.Equal(t, 1, out.Summary.Valid)
	assert.Equal(t, 5, out.Summary.Sections)
	assert.Equal(t, 18, out.Summary.Lines)

	// The starter sheet carries one informational stress finding, and
	// the broken sheet costs a flat parse penalty.
	assert.Equal(t, 1, out.IssueCount)
	assert.Equal(t, 85, out.Score)

	require.Len(t, out.ParseErrors, 1)
	assert.Contains(t, out.ParseErrors[0], "broken.lyr")

	assert.Len(t, out.HealthChecks, 11)
	require.Len(t, out.Recommendations, 1)
	assert.Contains(t, out.Recommendations[0], "annotation")
}

func TestDoctorCommand_EmptyDirectory(t *testing.T) {
	cmd := NewDoctorCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{t.TempDir()})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No lyric sheets found")
}
