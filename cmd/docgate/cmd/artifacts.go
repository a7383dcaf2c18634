package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Manage workspace artifacts",
}

var artifactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List artifacts in the workspace",
	Args:  cobra.NoArgs,
	RunE:  runArtifactsList,
}

var artifactsShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Print an artifact's metadata and content",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtifactsShow,
}

var artifactsSaveCmd = &cobra.Command{
	Use:   "save <path> <file>",
	Short: "Save a file as a workspace artifact",
	Long: `Store a document under the workspace at the given relative path,
for example prd/main.md. Metadata fields are given as key=value pairs.`,
	Args: cobra.ExactArgs(2),
	RunE: runArtifactsSave,
}

var artifactsDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete an artifact from the workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtifactsDelete,
}

var (
	artifactsCategory string
	artifactsStatus   string
	artifactsMeta     []string
)

func init() {
	artifactsListCmd.Flags().StringVar(&artifactsCategory, "category", "",
		"filter by category (prd, stories, architecture, decisions, ideation, checklists)")
	artifactsListCmd.Flags().StringVar(&artifactsStatus, "status", "",
		"filter by metadata status field")
	artifactsSaveCmd.Flags().StringArrayVar(&artifactsMeta, "meta", nil,
		"metadata field as key=value (repeatable)")

	artifactsCmd.AddCommand(artifactsListCmd)
	artifactsCmd.AddCommand(artifactsShowCmd)
	artifactsCmd.AddCommand(artifactsSaveCmd)
	artifactsCmd.AddCommand(artifactsDeleteCmd)
	rootCmd.AddCommand(artifactsCmd)
}

func runArtifactsList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	items, err := a.store.ListArtifacts(artifactsCategory, artifactsStatus)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		say(cmd, "No artifacts found.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, item := range items {
		fmt.Fprintf(out, "%-40s %-14s %-12s %s\n", item.Path, item.Category, item.Status, item.UpdatedAt)
	}
	return nil
}

func runArtifactsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	artifact, err := a.store.LoadArtifact(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(artifact.Metadata) > 0 {
		for key, value := range artifact.Metadata {
			fmt.Fprintf(out, "%s: %v\n", key, value)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, artifact.Content)
	return nil
}

func runArtifactsSave(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	metadata, err := parseMetaFlags(artifactsMeta)
	if err != nil {
		return err
	}

	location, err := a.store.SaveArtifact(args[0], string(raw), metadata)
	if err != nil {
		return err
	}
	say(cmd, "Saved %s", location)
	return nil
}

func runArtifactsDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if !a.store.DeleteArtifact(args[0]) {
		return fmt.Errorf("artifact %s not found", args[0])
	}
	say(cmd, "Deleted %s", args[0])
	return nil
}

// parseMetaFlags converts repeated key=value flags into a metadata map.
func parseMetaFlags(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	metadata := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta %q, want key=value", pair)
		}
		metadata[key] = value
	}
	return metadata, nil
}
