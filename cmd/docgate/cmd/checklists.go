package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checklistsCmd = &cobra.Command{
	Use:   "checklists",
	Short: "List available checklists",
	Args:  cobra.NoArgs,
	RunE:  runChecklists,
}

var checklistsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the sections and items of a checklist",
	Args:  cobra.ExactArgs(1),
	RunE:  runChecklistsShow,
}

func init() {
	checklistsCmd.AddCommand(checklistsShowCmd)
	rootCmd.AddCommand(checklistsCmd)
}

func runChecklists(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	names, err := a.checklists.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		say(cmd, "No checklists found in %s. Run 'docgate init' to seed starters.",
			resolveDir(a.cfg.ProjectRoot, a.cfg.ChecklistDir))
		return nil
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

func runChecklistsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	cl, err := a.checklists.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%d items)\n", cl.Name, cl.TotalItems)
	for _, section := range cl.Sections {
		fmt.Fprintf(out, "\n%s (%d items)\n", section.Title, len(section.Items))
		if section.Description != "" {
			fmt.Fprintf(out, "  %s\n", section.Description)
		}
		for _, item := range section.Items {
			fmt.Fprintf(out, "  - %s\n", item.Text)
		}
	}
	return nil
}
