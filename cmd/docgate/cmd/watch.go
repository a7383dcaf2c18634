package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/docgate/internal/checklist"
	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-validate a document whenever it changes",
	Long: `Watch a document file and re-run checklist validation on every
save, printing a one-line verdict each time. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchChecklist string
	watchMode      string
	watchDebounce  time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchChecklist, "checklist", "c", "",
		"checklist name (required)")
	watchCmd.Flags().StringVarP(&watchMode, "mode", "m", "",
		"validation mode (strict, standard, lenient; default from config)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond,
		"quiet period before re-validating after a change")
	_ = watchCmd.MarkFlagRequired("checklist")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	target, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("watch target: %w", err)
	}

	modeName := watchMode
	if modeName == "" {
		modeName = a.cfg.DefaultMode
	}
	mode, err := core.ParseMode(modeName)
	if err != nil {
		return err
	}

	// Resolve the checklist up front so a typo fails fast.
	if _, err := a.checklists.Load(watchChecklist); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save,
	// which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		if err := validateOnce(a, cmd, target, mode); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", filepath.Base(target), err)
		}
	}

	say(cmd, "Watching %s against %s (%s mode)", target, watchChecklist, mode)
	runOnce()

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", "error", err)
		}
	}
}

func validateOnce(a *app, cmd *cobra.Command, target string, mode core.Mode) error {
	raw, err := os.ReadFile(target)
	if err != nil {
		return err
	}

	cl, err := a.checklists.Load(watchChecklist)
	if err != nil {
		return err
	}

	result, err := checklist.Execute(cl, string(raw), nil, mode)
	if err != nil {
		return err
	}

	recordExecution(a, cmd, result, mode)
	fmt.Fprintln(cmd.OutOrStdout(), summaryLine(result, mode))
	return nil
}
