package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/docgate/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent checklist executions",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var (
	historyLimit     int
	historyChecklist string
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20,
		"maximum number of entries to show")
	historyCmd.Flags().StringVar(&historyChecklist, "checklist", "",
		"only show executions of this checklist")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if historyLimit < 1 {
		return fmt.Errorf("--limit must be a positive integer")
	}

	db, err := a.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	var entries []history.Entry
	if historyChecklist != "" {
		entries, err = db.ForChecklist(cmd.Context(), historyChecklist, historyLimit)
	} else {
		entries, err = db.List(cmd.Context(), historyLimit)
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		say(cmd, "No executions recorded yet.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, entry := range entries {
		fmt.Fprintf(out, "%s  %-26s %-8s %3d/%-3d %6.1f%%\n",
			entry.ExecutedAt.Format("2006-01-02 15:04:05"),
			entry.Checklist, entry.Mode, entry.PassedItems, entry.TotalItems, entry.PassRate)
	}
	return nil
}
