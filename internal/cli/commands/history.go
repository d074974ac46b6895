package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Jayk56/dslyrics/internal/cli/output"
	"github.com/Jayk56/dslyrics/internal/history"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command with subcommands.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved analysis reports",
		Long: `List analysis reports saved in the local history store.

Reports land in history through 'analyze --save' and through the HTTP
API. Running history with no subcommand lists the most recent reports.`,
		Example: `  # Most recent reports
  dslyrics history

  # Only the last five
  dslyrics history --limit 5

  # One stored report in full (short ids work)
  dslyrics history show 1a2b3c4d

  # Wipe the store
  dslyrics history clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, opts)
		},
	}

	cmd.PersistentFlags().IntVar(&opts.Limit, "limit", 20, "Maximum number of reports to list")

	cmd.AddCommand(newHistoryListCommand(opts))
	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryListCommand(opts *HistoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recent reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, opts)
		},
	}
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one stored report in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, args[0])
		},
	}
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryClear(cmd)
		},
	}
}

func runHistoryList(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	store, err := cmdCtx.openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List(cmd.Context(), opts.Limit)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(entries)
	case output.ModeMarkdown:
		return listHistoryMarkdown(r, entries)
	default:
		return listHistoryText(r, entries)
	}
}

func listHistoryText(r *output.Renderer, entries []history.Entry) error {
	styles := r.Styles()

	if len(entries) == 0 {
		r.Println(styles.Muted.Render("No reports saved yet. Run 'dslyrics analyze --save <file>' to record one."))
		return nil
	}

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Analysis History (%d reports)", len(entries))))
	r.Println("")

	tw := table.NewWriter()
	tw.SetOutputMirror(r.Writer())
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "SHEET", "VALID", "GRADE", "FINDINGS", "CREATED"})

	for _, e := range entries {
		tw.AppendRow(table.Row{
			shortID(e.ID),
			sheetLabel(e),
			validCell(e.Valid),
			fmt.Sprintf("%d", e.Overall),
			findingsCell(e),
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	tw.Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'dslyrics history show <id>' for a full report"))
	r.Println("")

	return nil
}

func listHistoryMarkdown(r *output.Renderer, entries []history.Entry) error {
	r.Println("# Analysis History")
	r.Println("")

	if len(entries) == 0 {
		r.Println("No reports saved yet.")
		return nil
	}

	for _, e := range entries {
		r.Printf("- **%s** %s - grade %d/100, %s findings, valid: %s (%s)\n",
			shortID(e.ID), sheetLabel(e), e.Overall,
			findingsCell(e), validCell(e.Valid),
			e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	r.Println("")
	return nil
}

func runHistoryShow(cmd *cobra.Command, id string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	store, err := cmdCtx.openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rep, err := store.GetReport(cmd.Context(), id)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rep)
	}

	renderReport(r, rep.Name, rep, false)
	return nil
}

func runHistoryClear(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	store, err := cmdCtx.openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	removed, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}

	r.Success(fmt.Sprintf("Removed %d report(s)", removed))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// sheetLabel prefers the song title over the file or request name.
func sheetLabel(e history.Entry) string {
	if e.Title != "" {
		return e.Title
	}
	return e.Name
}

func validCell(valid bool) string {
	if valid {
		return "yes"
	}
	return "no"
}

// findingsCell renders a finding count with its error/warning split,
// e.g. "3 (1E 2W)".
func findingsCell(e history.Entry) string {
	if e.Findings == 0 {
		return "0"
	}
	detail := make([]string, 0, 2)
	if e.Errors > 0 {
		detail = append(detail, fmt.Sprintf("%dE", e.Errors))
	}
	if e.Warnings > 0 {
		detail = append(detail, fmt.Sprintf("%dW", e.Warnings))
	}
	if len(detail) == 0 {
		return fmt.Sprintf("%d", e.Findings)
	}
	return fmt.Sprintf("%d (%s)", e.Findings, strings.Join(detail, " "))
}
