package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available document templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a template's content",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

func init() {
	templatesCmd.AddCommand(templatesShowCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	names, err := a.templates.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		say(cmd, "No templates found in %s.", resolveDir(a.cfg.ProjectRoot, a.cfg.TemplateDir))
		return nil
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	content, err := a.templates.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}
