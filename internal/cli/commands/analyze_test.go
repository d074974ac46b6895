package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayk56/dslyrics/internal/cli/testutil"
	"github.com/Jayk56/dslyrics/internal/history"
	"github.com/Jayk56/dslyrics/pkg/parser"
	"github.com/Jayk56/dslyrics/pkg/pipeline"
	"github.com/Jayk56/dslyrics/pkg/token"
)

func TestNewAnalyzeCommand(t *testing.T) {
	cmd := NewAnalyzeCommand()

	assert.Equal(t, "analyze <file...>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"json", "save", "quiet"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestAnalyzeCommand_ValidSheet(t *testing.T) {
	cmd := NewAnalyzeCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "validation_blues.lyr")})

	err := cmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "validation_blues.lyr")
	assert.Contains(t, out, "Validation Blues")
	assert.Contains(t, out, "Grade:")
	assert.Contains(t, out, "5 sections")
	assert.Contains(t, out, "Summary:")
}

func TestAnalyzeCommand_ParseError(t *testing.T) {
	cmd := NewAnalyzeCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "broken.lyr")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 sheets failed analysis")
	assert.Contains(t, buf.String(), "unterminated")
}

func TestAnalyzeCommand_ErrorFindings(t *testing.T) {
	cmd := NewAnalyzeCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "single_section.lyr")})

	// The sheet parses but carries error findings, so the run fails.
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed analysis")

	out := buf.String()
	assert.Contains(t, out, "ST02")
	assert.Contains(t, out, "ST03")
}

func TestAnalyzeCommand_MissingFile(t *testing.T) {
	cmd := NewAnalyzeCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "no_such_sheet.lyr")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 sheets failed analysis")
}

func TestAnalyzeCommand_JSONSingleFile(t *testing.T) {
	cmd := NewAnalyzeCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--json", filepath.Join("testdata", "validation_blues.lyr")})

	err := cmd.Execute()
	require.NoError(t, err)

	// A single sheet emits its report bare, not wrapped in an envelope.
	var rep pipeline.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	assert.Equal(t, filepath.Join("testdata", "validation_blues.lyr"), rep.Name)
	assert.True(t, rep.Valid)
	assert.Equal(t, 5, rep.Stats.Sections)
	assert.Positive(t, rep.Grade.Overall)
	assert.NotNil(t, rep.Findings)
}

func TestAnalyzeCommand_JSONMultipleFiles(t *testing.T) {
	cmd := NewAnalyzeCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"--json",
		filepath.Join("testdata", "validation_blues.lyr"),
		filepath.Join("testdata", "broken.lyr"),
	})

	// The broken sheet makes the run fail, but the envelope still lands
	// on stdout.
	err := cmd.Execute()
	require.Error(t, err)

	var out AnalyzeJSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Reports, 1)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, filepath.Join("testdata", "broken.lyr"), out.Errors[0].Path)
	assert.Equal(t, 1, out.Errors[0].Line)
	assert.Positive(t, out.Errors[0].Column)
}

func TestAnalyzeCommand_Quiet(t *testing.T) {
	cmd := NewAnalyzeCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-q", filepath.Join("testdata", "validation_blues.lyr")})

	err := cmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "grade")
	assert.NotContains(t, out, "Grade:")
	assert.NotContains(t, out, "Summary:")
}

func TestAnalyzeCommand_SaveToHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	t.Setenv("DSLYRICS_HISTORY_PATH", dbPath)

	cmd := NewAnalyzeCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--save", filepath.Join("testdata", "validation_blues.lyr")})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "saved as")

	ctx := context.Background()
	store, err := history.Open(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Validation Blues", entries[0].Title)
	assert.True(t, entries[0].Valid)
}

func TestFileError(t *testing.T) {
	pe := &parser.ParseError{
		Pos:     token.Position{Line: 3, Column: 7},
		Message: "unterminated string literal",
	}
	fe := fileError("song.lyr", pe)
	assert.Equal(t, "song.lyr", fe.Path)
	assert.Equal(t, 3, fe.Line)
	assert.Equal(t, 7, fe.Column)
	assert.Contains(t, fe.Error, "unterminated")

	fe = fileError("song.lyr", errors.New("permission denied"))
	assert.Zero(t, fe.Line)
	assert.Zero(t, fe.Column)
}

func TestRenderReport_PipedOutputHasNoANSI(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "validation_blues.lyr"))
	require.NoError(t, err)

	rep, err := pipeline.New(nil).Analyze("song.lyr", string(content))
	require.NoError(t, err)

	tr := testutil.NewTestRendererMarkdown()
	renderReport(tr.Renderer, "song.lyr", rep, false)

	testutil.AssertNoANSI(t, tr.Output())
	testutil.AssertContains(t, tr.Output(), "Grade:")
	testutil.AssertContains(t, tr.Output(), "5 sections")
}

func TestRenderReport_QuietStatusLine(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "validation_blues.lyr"))
	require.NoError(t, err)

	rep, err := pipeline.New(nil).Analyze("song.lyr", string(content))
	require.NoError(t, err)

	tr := testutil.NewTestRendererMarkdown()
	renderReport(tr.Renderer, "song.lyr", rep, true)

	testutil.AssertContains(t, tr.Output(), "song.lyr")
	testutil.AssertContains(t, tr.Output(), "grade")
	testutil.AssertNotContains(t, tr.Output(), "Grade:")
}
