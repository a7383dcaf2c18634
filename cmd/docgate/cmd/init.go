package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/docgate/internal/config"
	"github.com/hugo-lorenzo-mato/docgate/internal/core"
	"github.com/hugo-lorenzo-mato/docgate/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Initialize a docgate workspace",
	Long: `Create the .docgate/ workspace in the given directory (default:
current directory), along with starter checklists, a starter template,
and a default config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// Starter checklists seeded into new workspaces. Modeled on the product
// and story review checklists commonly used in agile document workflows.
var starterChecklists = map[string]string{
	"pm_checklist": `## Problem Definition
The product requirements document states the problem and who has it.

- [ ] Clear articulation of the problem being solved
- [ ] Identification of target users
- [ ] Goals are clear and measurable
- [ ] Success metrics are defined

## Requirements
- [ ] Functional requirements are explicit
- [ ] Non-functional requirements are listed (if applicable)
- [ ] Acceptance criteria cover the core flows
- [ ] Epic breakdown is present (if needed)

## Structure
- [ ] Document is organized into sections
- [ ] Comprehensive coverage of the product scope
`,
	"story_draft_checklist": `## Story Quality
- [ ] Story follows the user story format
- [ ] Acceptance criteria are testable
- [ ] Goals of the story are clear

## Readiness
- [ ] Technical notes are included (if applicable)
- [ ] Testing strategy is described
- [ ] Dependencies are listed (optional)
`,
	"architect_checklist": `## Technical Design
- [ ] Architecture overview is present
- [ ] Technical decisions are explained
- [ ] Security considerations are addressed
- [ ] Detailed component descriptions

## Quality
- [ ] Testing approach is described
- [ ] Document is organized into sections
- [ ] Database design is covered (if applicable)
`,
}

const starterTemplate = `# {{project_name}} Product Requirements

## Problem

## Goals

## Requirements

## Acceptance Criteria
`

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	if rootCmd.PersistentFlags().Changed("project-root") {
		root = projectRoot
	}

	st, err := store.Open(root)
	if err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}

	defaults := config.Default()

	checklistDir := resolveDir(st.Root(), defaults.ChecklistDir)
	if err := os.MkdirAll(checklistDir, 0o750); err != nil {
		return fmt.Errorf("creating checklist dir: %w", err)
	}
	seeded := 0
	for name, content := range starterChecklists {
		path := filepath.Join(checklistDir, name+".md")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
			return fmt.Errorf("seeding checklist %s: %w", name, err)
		}
		seeded++
	}

	templateDir := resolveDir(st.Root(), defaults.TemplateDir)
	if err := os.MkdirAll(templateDir, 0o750); err != nil {
		return fmt.Errorf("creating template dir: %w", err)
	}
	templatePath := filepath.Join(templateDir, "prd_template.md")
	if _, err := os.Stat(templatePath); os.IsNotExist(err) {
		if err := os.WriteFile(templatePath, []byte(starterTemplate), 0o640); err != nil {
			return fmt.Errorf("seeding template: %w", err)
		}
	}

	configPath := filepath.Join(st.Dir(), "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.AtomicWrite(configPath, []byte(defaultConfigYAML())); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	say(cmd, "Initialized docgate workspace at %s", st.Dir())
	say(cmd, "Seeded %d starter checklists in %s", seeded, checklistDir)
	say(cmd, "Current phase: %s", core.InitialPhase)
	return nil
}

func defaultConfigYAML() string {
	d := config.Default()
	return fmt.Sprintf(`checklist_dir: %s
template_dir: %s
default_mode: %s
log:
  level: %s
  format: %s
server:
  addr: %s
`, d.ChecklistDir, d.TemplateDir, d.DefaultMode, d.Log.Level, d.Log.Format, d.Server.Addr)
}
