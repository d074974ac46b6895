package pipeline_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayk56/dslyrics/pkg/lint"
	_ "github.com/Jayk56/dslyrics/pkg/lint/rules"
	"github.com/Jayk56/dslyrics/pkg/parser"
	"github.com/Jayk56/dslyrics/pkg/pipeline"
)

// cleanSheet passes every rule: two sections, verse of four AABB
// lines inside the syllable budget, chorus of four identical AAAA
// lines, pop tempo in range.
const cleanSheet = `title: "Pipeline Song"
tempo: 112
genre: pop

VERSE
la la la la {rhyme: A}
la la la la {rhyme: A}
la la la la {rhyme: B}
la la la la {rhyme: B}

CHORUS
la la la {rhyme: A}
la la la {rhyme: A}
la la la {rhyme: A}
la la la {rhyme: A}
`

func TestAnalyze_CleanSheet(t *testing.T) {
	a := pipeline.New(nil)

	report, err := a.Analyze("pipeline_song.lyr", cleanSheet)
	require.NoError(t, err)

	assert.Equal(t, "pipeline_song.lyr", report.Name)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Findings)
	assert.NotNil(t, report.Findings)

	assert.Equal(t, 2, report.Stats.Sections)
	assert.Equal(t, 8, report.Stats.Lines)
	assert.Equal(t, 28, report.Stats.Words)

	assert.Equal(t, 100, report.Grade.Breakdown.Structure)
	assert.Equal(t, 100, report.Grade.Breakdown.Prosody)
	assert.Equal(t, 70, report.Grade.Breakdown.Originality)
	assert.Equal(t, 100, report.Grade.Breakdown.Commerciality)
	assert.Equal(t, 93, report.Grade.Overall)

	require.NotNil(t, report.Song)
	assert.Equal(t, "Pipeline Song", report.Song.Title())
}

func TestAnalyze_WarningsKeepSongValid(t *testing.T) {
	// 90 BPM pop sits below the 100-130 range: one MU01 warning.
	src := `title: "Slow Pop"
tempo: 90
genre: pop

VERSE
la la la la {rhyme: A}
la la la la {rhyme: A}
la la la la {rhyme: B}
la la la la {rhyme: B}

CHORUS
la la la {rhyme: A}
la la la {rhyme: A}
la la la {rhyme: A}
la la la {rhyme: A}
`
	a := pipeline.New(nil)

	report, err := a.Analyze("slow.lyr", src)
	require.NoError(t, err)

	assert.True(t, report.Valid)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "MU01", report.Findings[0].RuleID)
	assert.Equal(t, lint.SeverityWarning, report.Findings[0].Severity)

	assert.Equal(t, 85, report.Grade.Breakdown.Commerciality)
	// (100+100+70+85)/4 = 88.75
	assert.Equal(t, 89, report.Grade.Overall)
}

func TestAnalyze_ErrorsInvalidateSong(t *testing.T) {
	// No chorus: ST03 fires at error severity.
	src := `title: "Verse Only"

VERSE
la la la la
la la la la
la la la la
la la la la

VERSE
la la la la
la la la la
la la la la
la la la la
`
	a := pipeline.New(nil)

	report, err := a.Analyze("verse_only.lyr", src)
	require.NoError(t, err)

	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Findings)
	assert.Equal(t, "ST03", report.Findings[0].RuleID)
	assert.Less(t, report.Grade.Breakdown.Structure, 100)
}

func TestAnalyze_ParseErrorShortCircuits(t *testing.T) {
	a := pipeline.New(nil)

	report, err := a.Analyze("broken.lyr", "title: \"x\"\n\nVERSE\n")
	require.Error(t, err)
	assert.Nil(t, report)

	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestAnalyze_ConfigDisablesRule(t *testing.T) {
	src := `title: "Slow Pop"
tempo: 90
genre: pop

VERSE
la la la la
la la la la
la la la la
la la la la

CHORUS
la la la
la la la
la la la
la la la
`
	cfg := lint.NewConfig().Disable("MU01")
	a := pipeline.New(cfg)

	report, err := a.Analyze("slow.lyr", src)
	require.NoError(t, err)

	assert.Empty(t, report.Findings)
	assert.Equal(t, 100, report.Grade.Breakdown.Commerciality)
}

func TestAnalyzeContext_MatchesAnalyze(t *testing.T) {
	cfg := lint.NewConfig()
	cfg.Workers = 4
	a := pipeline.New(cfg)

	serial, err := a.Analyze("song.lyr", cleanSheet)
	require.NoError(t, err)
	parallel, err := a.AnalyzeContext(context.Background(), "song.lyr", cleanSheet)
	require.NoError(t, err)

	assert.Equal(t, serial.Findings, parallel.Findings)
	assert.Equal(t, serial.Grade, parallel.Grade)
}

func TestAnalyzeContext_Canceled(t *testing.T) {
	cfg := lint.NewConfig()
	cfg.Workers = 2
	a := pipeline.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := a.AnalyzeContext(ctx, "song.lyr", cleanSheet)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}

func TestReport_JSONShape(t *testing.T) {
	a := pipeline.New(nil)

	report, err := a.Analyze("pipeline_song.lyr", cleanSheet)
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.NotContains(t, decoded, "id")
	assert.NotContains(t, decoded, "song")
	assert.Equal(t, true, decoded["valid"])
	findings, ok := decoded["findings"].([]any)
	require.True(t, ok, "findings must encode as an array")
	assert.Empty(t, findings)

	gradeObj := decoded["grade"].(map[string]any)
	assert.Equal(t, float64(93), gradeObj["overall"])
	breakdown := gradeObj["breakdown"].(map[string]any)
	assert.Equal(t, float64(70), breakdown["originality"])
}
