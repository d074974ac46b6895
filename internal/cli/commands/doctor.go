package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Jayk56/dslyrics/internal/cli/output"
	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/pipeline"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json, markdown
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor [directory]",
		Short: "Run a health check over a directory of lyric sheets",
		Long: `Analyze every lyric sheet under a directory and report on the
collection as a whole.

The doctor command analyzes each .lyr file it finds and produces:
- Songbook summary (sheets, sections, lines, average grade)
- Health checks per lint rule, grouped by category
- Health score (0-100)
- Actionable recommendations drawn from the rule catalog

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check the current directory
  dslyrics doctor

  # Check a songbook directory
  dslyrics doctor ./songs

  # Output as JSON
  dslyrics doctor --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runDoctor(cmd, dir, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         SongbookSummary `json:"summary"`
	HealthChecks    []HealthCheck   `json:"health_checks"`
	Score           int             `json:"score"`
	Recommendations []string        `json:"recommendations"`
	IssueCount      int             `json:"issue_count"`
	ParseErrors     []string        `json:"parse_errors,omitempty"`
}

// SongbookSummary contains collection-level statistics.
type SongbookSummary struct {
	Sheets      int `json:"sheets"`
	ParseFailed int `json:"parse_failed"`
	Valid       int `json:"valid"`
	Sections    int `json:"sections"`
	Lines       int `json:"lines"`
	Words       int `json:"words"`
	AvgGrade    int `json:"avg_grade"`
}

// HealthCheck represents one rule's result across the songbook.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, dir string, opts *DoctorOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	sheets, err := collectSheets(dir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(sheets) == 0 {
		r.Warning(fmt.Sprintf("No lyric sheets found under %s", dir))
		return nil
	}

	pipe, err := cmdCtx.newPipeline()
	if err != nil {
		return err
	}

	var (
		reports     []*pipeline.Report
		parseErrors []string
	)
	for _, path := range sheets {
		name := displaySheet(dir, path)
		data, err := os.ReadFile(path)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		rep, err := pipe.AnalyzeContext(cmd.Context(), name, string(data))
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		reports = append(reports, rep)
	}

	doctorOutput := buildDoctorOutput(reports, parseErrors)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

// collectSheets finds .lyr files under root, skipping hidden
// directories. The result is sorted so reports are deterministic.
func collectSheets(root string) ([]string, error) {
	var sheets []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".lyr") {
			sheets = append(sheets, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(sheets)
	return sheets, nil
}

// displaySheet shortens path relative to the scanned root for report
// labels.
func displaySheet(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func buildDoctorOutput(reports []*pipeline.Report, parseErrors []string) *DoctorOutput {
	summary := buildSongbookSummary(reports, len(parseErrors))

	// Group findings by rule
	detailsByRule := make(map[string][]string)
	errorsByRule := make(map[string]bool)
	issueCount := 0
	for _, rep := range reports {
		for _, f := range rep.Findings {
			issueCount++
			detailsByRule[f.RuleID] = append(detailsByRule[f.RuleID], fmt.Sprintf("%s: %s", rep.Name, f.Message))
			if f.Severity == lint.SeverityError {
				errorsByRule[f.RuleID] = true
			}
		}
	}

	// Build health checks from the registered rules. Declared-only
	// rules are skipped: they can never fire, so a "pass" would be
	// misleading.
	var healthChecks []HealthCheck
	for _, def := range lint.All() {
		if !def.Implemented() {
			continue
		}
		details := detailsByRule[def.ID]
		status := "pass"
		if len(details) > 0 {
			if errorsByRule[def.ID] {
				status = "error"
			} else {
				status = "warn"
			}
		}
		healthChecks = append(healthChecks, HealthCheck{
			RuleID:     def.ID,
			Name:       def.Name,
			Group:      def.Group,
			Status:     status,
			IssueCount: len(details),
			Details:    details,
		})
	}

	sort.Slice(healthChecks, func(i, j int) bool {
		if gi, gj := groupRank(healthChecks[i].Group), groupRank(healthChecks[j].Group); gi != gj {
			return gi < gj
		}
		return healthChecks[i].RuleID < healthChecks[j].RuleID
	})

	score := calculateHealthScore(healthChecks, summary.Sheets)
	// A sheet that does not parse never reaches the rules, so it costs
	// a flat 10 points on top of the rule penalties.
	if n := len(parseErrors); n > 0 {
		score -= n * 10
		if score < 0 {
			score = 0
		}
	}

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    healthChecks,
		Score:           score,
		Recommendations: generateRecommendations(healthChecks),
		IssueCount:      issueCount,
		ParseErrors:     parseErrors,
	}
}

func buildSongbookSummary(reports []*pipeline.Report, parseFailed int) SongbookSummary {
	summary := SongbookSummary{
		Sheets:      len(reports) + parseFailed,
		ParseFailed: parseFailed,
	}

	gradeTotal := 0
	for _, rep := range reports {
		if rep.Valid {
			summary.Valid++
		}
		summary.Sections += rep.Stats.Sections
		summary.Lines += rep.Stats.Lines
		summary.Words += rep.Stats.Words
		gradeTotal += rep.Grade.Overall
	}
	if len(reports) > 0 {
		summary.AvgGrade = gradeTotal / len(reports)
	}

	return summary
}

// calculateHealthScore computes a health score from 0-100.
// The scoring weights:
// - Each issue reduces points, errors count double
// - More sheets means issues have less individual impact
func calculateHealthScore(checks []HealthCheck, sheetCount int) int {
	if len(checks) == 0 {
		return 100
	}

	// Base score starts at 100
	score := 100.0

	// With more sheets, each individual issue has less impact
	basePenalty := 5.0
	if sheetCount > 10 {
		basePenalty = 3.0
	}
	if sheetCount > 50 {
		basePenalty = 2.0
	}
	if sheetCount > 100 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2 // Errors count double
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	// Clamp to 0-100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// generateRecommendations turns failing checks into fix guidance from
// the rule catalog, deduplicated and capped at five.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	// Limit to top 5 recommendations
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// getRecommendation returns the registered fix guidance for a rule.
func getRecommendation(ruleID string) string {
	def, ok := lint.Get(ruleID)
	if !ok {
		return ""
	}
	return def.Fix
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Songbook Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Header2.Render("Songbook Summary"))
	r.Printf("   Sheets: %d | Valid: %d | Parse failures: %d\n",
		out.Summary.Sheets, out.Summary.Valid, out.Summary.ParseFailed)
	r.Printf("   Sections: %d | Lines: %d | Words: %d\n",
		out.Summary.Sections, out.Summary.Lines, out.Summary.Words)
	r.Printf("   Average grade: %d/100\n", out.Summary.AvgGrade)
	r.Println("")

	if len(out.ParseErrors) > 0 {
		r.Println(styles.Header2.Render("Parse Failures"))
		for _, pe := range out.ParseErrors {
			r.Println("   " + styles.Error.Render("✗") + " " + pe)
		}
		r.Println("")
	}

	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("⚠")
		case "error":
			icon = styles.Error.Render("✗")
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# Songbook Health Report")
	r.Println("")

	r.Println("## Summary")
	r.Println("")
	r.Println(output.FormatKeyValue("Sheets", fmt.Sprintf("%d", out.Summary.Sheets)))
	r.Println(output.FormatKeyValue("Valid", fmt.Sprintf("%d", out.Summary.Valid)))
	r.Println(output.FormatKeyValue("Parse failures", fmt.Sprintf("%d", out.Summary.ParseFailed)))
	r.Println(output.FormatKeyValue("Sections", fmt.Sprintf("%d", out.Summary.Sections)))
	r.Println(output.FormatKeyValue("Lines", fmt.Sprintf("%d", out.Summary.Lines)))
	r.Println(output.FormatKeyValue("Words", fmt.Sprintf("%d", out.Summary.Words)))
	r.Println(output.FormatKeyValue("Average grade", fmt.Sprintf("%d/100", out.Summary.AvgGrade)))
	r.Println("")

	if len(out.ParseErrors) > 0 {
		r.Println("## Parse Failures")
		r.Println("")
		for _, pe := range out.ParseErrors {
			r.Printf("- %s\n", pe)
		}
		r.Println("")
	}

	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case "warn":
			status = "WARN"
		case "error":
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s: %s", status, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
