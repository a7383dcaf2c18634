package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hugo-lorenzo-mato/docgate/internal/checklist"
	"github.com/hugo-lorenzo-mato/docgate/internal/core"
	"github.com/hugo-lorenzo-mato/docgate/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a document against a checklist",
	Long: `Run a document through a checklist and print the validation report.

The command exits non-zero when the share of passed items falls below
the threshold of the selected mode (strict: all, standard: 70%,
lenient: 50%).

Examples:
  docgate validate docs/prd.md --checklist pm_checklist
  docgate validate docs/prd.md --checklist pm_checklist --mode strict --save-report`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var (
	validateChecklist  string
	validateMode       string
	validateSaveReport bool
	validatePretty     bool
	validateDocType    string
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateChecklist, "checklist", "c", "",
		"checklist name (required)")
	validateCmd.Flags().StringVarP(&validateMode, "mode", "m", "",
		"validation mode (strict, standard, lenient; default from config)")
	validateCmd.Flags().BoolVar(&validateSaveReport, "save-report", false,
		"save the rendered report as a workspace artifact")
	validateCmd.Flags().BoolVar(&validatePretty, "pretty", false,
		"render the report with terminal markdown styling")
	validateCmd.Flags().StringVar(&validateDocType, "doc-type", "document",
		"document type used in the saved report filename")
	_ = validateCmd.MarkFlagRequired("checklist")
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	document := string(raw)

	modeName := validateMode
	if modeName == "" {
		modeName = a.cfg.DefaultMode
	}
	mode, err := core.ParseMode(modeName)
	if err != nil {
		return err
	}

	cl, err := a.checklists.Load(validateChecklist)
	if err != nil {
		return err
	}

	result, err := checklist.Execute(cl, document, nil, mode)
	if err != nil {
		return err
	}

	recordExecution(a, cmd, result, mode)

	rendered := report.Render(result, mode, len(document))
	if err := printReport(cmd, rendered); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), summaryLine(result, mode))
	}

	if validateSaveReport {
		rel := report.ArtifactPath(result.ChecklistName, validateDocType)
		location, err := a.store.SaveArtifact(rel, rendered, report.Metadata(result, mode))
		if err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		say(cmd, "Report saved to %s", location)
	}

	if !gatePassed(result, mode) {
		return fmt.Errorf("validation failed: %d of %d items need improvement (%s mode)",
			result.FailedItems, result.TotalItems, mode)
	}
	return nil
}

// recordExecution writes the run into the history database, best effort.
func recordExecution(a *app, cmd *cobra.Command, result *core.ExecutionResult, mode core.Mode) {
	db, err := a.openHistory()
	if err != nil {
		a.logger.Warn("execution history unavailable", "error", err)
		return
	}
	defer db.Close()

	if _, err := db.Record(cmd.Context(), result, mode); err != nil {
		a.logger.Warn("failed to record execution", "error", err)
	}
}

// gatePassed reports whether the evaluated items meet the mode threshold.
// NA items are excluded from the gate.
func gatePassed(result *core.ExecutionResult, mode core.Mode) bool {
	evaluated := result.PassedItems + result.FailedItems
	if evaluated == 0 {
		return true
	}
	return float64(result.PassedItems)/float64(evaluated) >= mode.PassFraction()
}

func printReport(cmd *cobra.Command, markdown string) error {
	out := cmd.OutOrStdout()

	if validatePretty && stdoutIsTerminal() && !noColor {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			if pretty, rerr := renderer.Render(markdown); rerr == nil {
				fmt.Fprint(out, pretty)
				return nil
			}
		}
	}

	fmt.Fprintln(out, markdown)
	return nil
}

// summaryLine renders a one-line colored verdict.
func summaryLine(result *core.ExecutionResult, mode core.Mode) string {
	rate := result.PassRate()
	text := fmt.Sprintf("%s: %d/%d passed (%.1f%%, %s mode)",
		result.ChecklistName, result.PassedItems, result.TotalItems, rate, mode)

	if noColor || !stdoutIsTerminal() {
		return text
	}

	color := lipgloss.Color("9") // red
	switch {
	case rate >= 80:
		color = lipgloss.Color("10") // green
	case rate >= 70:
		color = lipgloss.Color("11") // yellow
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(text)
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
