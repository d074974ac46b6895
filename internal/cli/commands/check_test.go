package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check <file...>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestCheckCommand_ValidSheet(t *testing.T) {
	cmd := NewCheckCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "validation_blues.lyr")})

	err := cmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "validation_blues.lyr")
	assert.Contains(t, out, "5 sections, 18 lines")
}

func TestCheckCommand_ParseError(t *testing.T) {
	cmd := NewCheckCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "broken.lyr")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 sheets failed to parse")
	assert.Contains(t, buf.String(), "unterminated")
}

func TestCheckCommand_MixedFiles(t *testing.T) {
	cmd := NewCheckCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		filepath.Join("testdata", "validation_blues.lyr"),
		filepath.Join("testdata", "broken.lyr"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 sheets failed to parse")

	out := buf.String()
	assert.Contains(t, out, "validation_blues.lyr")
	assert.Contains(t, out, "broken.lyr")
}

func TestCheckCommand_SkipsLinting(t *testing.T) {
	// single_section.lyr fails lint rules but parses cleanly, so check
	// accepts it.
	cmd := NewCheckCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "single_section.lyr")})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1 sections, 2 lines")
}

func TestCheckCommand_MissingFile(t *testing.T) {
	cmd := NewCheckCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "no_such_sheet.lyr")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 sheets failed to parse")
}

func TestCheckCommand_JSON(t *testing.T) {
	t.Setenv("DSLYRICS_OUTPUT", "json")

	cmd := NewCheckCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{
		filepath.Join("testdata", "validation_blues.lyr"),
		filepath.Join("testdata", "broken.lyr"),
	})

	err := cmd.Execute()
	require.Error(t, err, "the broken sheet should still fail the run")

	var results []checkResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 2)

	assert.True(t, results[0].OK)
	assert.Equal(t, 5, results[0].Sections)
	assert.Equal(t, 18, results[0].Lines)

	assert.False(t, results[1].OK)
	assert.Contains(t, results[1].Error, "unterminated")
}
