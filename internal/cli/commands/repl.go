package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/Jayk56/dslyrics/internal/cli/output"
	_ "github.com/Jayk56/dslyrics/pkg/lint/rules" // register lint rules
	"github.com/Jayk56/dslyrics/pkg/pipeline"
	"github.com/Jayk56/dslyrics/pkg/prosody"
	"github.com/Jayk56/dslyrics/pkg/song"
	"github.com/Jayk56/dslyrics/pkg/token"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive lyric sheet session",
		Long: `Start an interactive session for drafting lyric sheets.

Bare lines are appended to the session buffer and lyric lines echo
their estimated syllables, meter match, and chord count as you type.
Dot-commands inspect and analyze the buffer: .analyze runs the full
parse, lint, and grade pass over everything entered so far.`,
		Example: `  dslyrics repl`,
		RunE:    runREPL,
	}
}

// replSession holds the lyric sheet being drafted interactively.
type replSession struct {
	lines []string
	pipe  *pipeline.Analyzer
	r     *output.Renderer
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)

	p, err := cmdCtx.newPipeline()
	if err != nil {
		return err
	}
	sess := &replSession{pipe: p, r: cmdCtx.Renderer}

	// Session history lives next to the report history database.
	historyFile := filepath.Join(filepath.Dir(cmdCtx.Cfg.HistoryPath), "repl_history")
	if err := os.MkdirAll(filepath.Dir(historyFile), 0750); err != nil {
		historyFile = ""
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dslyrics> ",
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Piped sessions skip the banner so scripted input produces clean
	// output.
	if sess.r.IsTTY() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "dslyrics interactive session")
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(line), ".") {
			trimmed := strings.TrimSpace(line)
			if handled := sess.handleDotCommand(cmd, trimmed); handled {
				if trimmed == ".quit" || trimmed == ".exit" {
					break
				}
				continue
			}
		}

		sess.lines = append(sess.lines, line)
		if metrics := lineMetrics(line); metrics != "" {
			sess.r.Muted("  " + metrics)
		}
	}

	return nil
}

func (s *replSession) handleDotCommand(cmd *cobra.Command, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())
		return true

	case ".load":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .load <file>")
			return true
		}
		path := parts[1]
		content, err := os.ReadFile(path)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return true
		}
		s.lines = splitSheetLines(string(content))
		s.r.Printf("Loaded %d lines from %s\n", len(s.lines), path)
		return true

	case ".show":
		if len(s.lines) == 0 {
			s.r.Muted("(session is empty)")
			return true
		}
		for i, l := range s.lines {
			s.r.Printf("%s %s\n", s.r.Styles().Muted.Render(fmt.Sprintf("%3d", i+1)), l)
		}
		return true

	case ".analyze":
		s.analyze(cmd)
		return true

	case ".clear":
		s.lines = nil
		s.r.Println("Session cleared")
		return true

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

func (s *replSession) analyze(cmd *cobra.Command) {
	if len(s.lines) == 0 {
		s.r.Muted("(session is empty)")
		return
	}

	src := strings.Join(s.lines, "\n") + "\n"
	rep, err := s.pipe.AnalyzeContext(cmd.Context(), "(session)", src)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	renderReport(s.r, "(session)", rep, false)
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .load <file>    Replace the session with a sheet from disk
  .show           Print the session buffer with line numbers
  .analyze        Parse, lint, and grade the session
  .clear          Discard the session buffer
  .quit / .exit   Exit the REPL

Tips:
  - Lyric lines take attributes in braces: My heart beats on {rhyme:A, chord:Em}
  - Section headers are uppercase keywords: VERSE[1], CHORUS, BRIDGE
  - Lyric lines echo syllable, meter, and chord estimates as you type
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter completes dot-commands, section keywords, and
// metadata keys.
func newREPLCompleter() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("VERSE"),
		readline.PcItem("CHORUS"),
		readline.PcItem("BRIDGE"),
		readline.PcItem("PRE-CHORUS"),
		readline.PcItem("INTRO"),
		readline.PcItem("OUTRO"),
		readline.PcItem("title:"),
		readline.PcItem("artist:"),
		readline.PcItem("tempo:"),
		readline.PcItem("genre:"),
		readline.PcItem(".help"),
		readline.PcItem(".load"),
		readline.PcItem(".show"),
		readline.PcItem(".analyze"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	return readline.NewPrefixCompleter(items...)
}

// splitSheetLines splits file content into session lines, dropping a
// trailing empty line.
func splitSheetLines(content string) []string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lineMetrics estimates per-line stats for the echo shown after a
// lyric line is entered. Non-lyric lines produce no echo.
func lineMetrics(line string) string {
	text, attrs, ok := lyricText(line)
	if !ok {
		return ""
	}

	parts := []string{fmt.Sprintf("%d syllables", prosody.LineSyllables(text))}

	if pat := stressPattern(attrs); pat != "" {
		if m, ok := prosody.MatchMeter(pat); ok {
			parts = append(parts, m.Name)
		} else {
			parts = append(parts, "no meter match")
		}
	}
	if n := chordCount(attrs); n > 0 {
		parts = append(parts, fmt.Sprintf("%d chords", n))
	}

	return strings.Join(parts, ", ")
}

// lyricText splits a raw session line into lyric text and its attribute
// segment. Metadata entries, section headers, and blank lines are not
// lyric lines and produce no echo.
func lyricText(line string) (text, attrs string, ok bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return "", "", false
	}

	head := s
	if i := strings.IndexAny(head, " \t[{"); i >= 0 {
		head = head[:i]
	}
	if token.LookupKeyword(head).IsSectionKeyword() {
		return "", "", false
	}

	if i := strings.IndexByte(s, ':'); i >= 0 {
		if song.IsMetaKey(strings.TrimSpace(s[:i])) {
			return "", "", false
		}
	}

	if i := strings.IndexByte(s, '{'); i >= 0 {
		return strings.TrimSpace(s[:i]), s[i:], true
	}
	return s, "", true
}

// stressPattern pulls the x// pattern out of a stress attribute, if the
// line carries one.
func stressPattern(attrs string) string {
	i := strings.Index(attrs, "stress:")
	if i < 0 {
		return ""
	}
	j := i + len("stress:")
	for j < len(attrs) && attrs[j] == ' ' {
		j++
	}
	k := j
	for k < len(attrs) && (attrs[k] == 'x' || attrs[k] == '/') {
		k++
	}
	return attrs[j:k]
}

// chordCount counts the items of a chord attribute. Items belonging to
// a following attribute (they carry a colon) end the count.
func chordCount(attrs string) int {
	i := strings.Index(attrs, "chord:")
	if i < 0 {
		return 0
	}
	seg := attrs[i+len("chord:"):]
	if j := strings.IndexByte(seg, '}'); j >= 0 {
		seg = seg[:j]
	}

	n := 0
	for _, item := range strings.Split(seg, ",") {
		item = strings.TrimSpace(item)
		if item == "" || strings.ContainsRune(item, ':') {
			break
		}
		n++
	}
	return n
}
