package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var phaseCmd = &cobra.Command{
	Use:   "phase",
	Short: "Show the current project phase",
	Args:  cobra.NoArgs,
	RunE:  runPhase,
}

var phaseSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Advance the project to a new phase",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhaseSet,
}

func init() {
	phaseCmd.AddCommand(phaseSetCmd)
	rootCmd.AddCommand(phaseCmd)
}

func runPhase(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	meta, err := a.store.Meta()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Current phase: %s\n", meta.CurrentPhase)
	if len(meta.PhaseStartedAt) > 0 {
		keys := make([]string, 0, len(meta.PhaseStartedAt))
		for key := range meta.PhaseStartedAt {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(out, "  %s: %s\n", key, meta.PhaseStartedAt[key])
		}
	}
	return nil
}

func runPhaseSet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.store.UpdatePhase(args[0]); err != nil {
		return err
	}
	say(cmd, "Phase set to %s", args[0])
	return nil
}
