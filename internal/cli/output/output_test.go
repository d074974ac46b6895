package output_test

import (
	"bytes"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayk56/dslyrics/internal/cli/output"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newBufRenderer(mode output.Mode, isTTY bool) (*output.Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return output.NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  output.Mode
		isTTY bool
		want  output.Mode
	}{
		{"auto on tty", output.ModeAuto, true, output.ModeText},
		{"auto piped", output.ModeAuto, false, output.ModeMarkdown},
		{"explicit text piped", output.ModeText, false, output.ModeText},
		{"explicit markdown on tty", output.ModeMarkdown, true, output.ModeMarkdown},
		{"explicit json", output.ModeJSON, false, output.ModeJSON},
		{"unknown falls back to auto", output.Mode("csv"), false, output.ModeMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newBufRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestMarkdownModeHasNoANSI(t *testing.T) {
	r, out, errOut := newBufRenderer(output.ModeMarkdown, false)

	r.Header(1, "Report")
	r.Success("all good")
	r.Warning("watch out")
	r.Muted("aside")
	r.Error("broken")
	r.StatusLine("song.lyr", "success", "")

	assert.NotRegexp(t, ansiPattern, out.String())
	assert.NotRegexp(t, ansiPattern, errOut.String())
	assert.Contains(t, out.String(), "# Report")
	assert.Contains(t, out.String(), "✓ all good")
	assert.Contains(t, errOut.String(), "✗ broken")
}

func TestTextModeOnTTYStylesOutput(t *testing.T) {
	r, out, _ := newBufRenderer(output.ModeText, true)

	r.Success("done")

	assert.Regexp(t, ansiPattern, out.String())
	assert.Contains(t, out.String(), "done")
}

func TestHeaderTextMode(t *testing.T) {
	r, out, _ := newBufRenderer(output.ModeText, false)

	r.Header(1, "Findings")

	assert.Equal(t, "Findings\n", out.String())
}

func TestStatusLine(t *testing.T) {
	r, out, _ := newBufRenderer(output.ModeText, false)

	r.StatusLine("dslyrics.yaml", "success", "")
	r.StatusLine("broken.lyr", "error", "(parse failed)")
	r.StatusLine("pending.lyr", "queued", "")

	s := out.String()
	assert.Contains(t, s, "  ✓ dslyrics.yaml")
	assert.Contains(t, s, "  ✗ broken.lyr (parse failed)")
	assert.Contains(t, s, "  • pending.lyr")
}

func TestJSON(t *testing.T) {
	r, out, _ := newBufRenderer(output.ModeJSON, false)

	require.NoError(t, r.JSON(map[string]int{"overall": 92}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 92, decoded["overall"])
	assert.Contains(t, out.String(), "\n")
}

func TestWriters(t *testing.T) {
	r, out, errOut := newBufRenderer(output.ModeText, false)

	_, err := r.Writer().Write([]byte("a"))
	require.NoError(t, err)
	_, err = r.ErrWriter().Write([]byte("b"))
	require.NoError(t, err)

	assert.Equal(t, "a", out.String())
	assert.Equal(t, "b", errOut.String())
	assert.False(t, r.IsTTY())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", output.FormatHeader(1, "Title"))
	assert.Equal(t, "## Sub", output.FormatHeader(2, "Sub"))
	assert.Equal(t, "# Clamped", output.FormatHeader(0, "Clamped"))
	assert.Equal(t, "###### Deep", output.FormatHeader(9, "Deep"))

	assert.Equal(t, "- **Tempo:** 112", output.FormatKeyValue("Tempo", "112"))

	block := output.FormatCodeBlock("VERSE\nla la\n", "lyrics")
	assert.Equal(t, "```lyrics\nVERSE\nla la\n```", block)
}
