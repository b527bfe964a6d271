package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plalonde/sensorctl/internal/bulk"
	"github.com/plalonde/sensorctl/internal/resource"
	"github.com/plalonde/sensorctl/internal/tui"
)

// runBulkDelete drives the full deletion flow: enumerate matching targets,
// show them, ask for confirmation, then fan out the deletions with either a
// live progress display or plain output. The confirmation gate lives here so
// the orchestrator itself stays non-interactive.
func (a *appContext) runBulkDelete(title string, mutator bulk.Mutator, listers []bulk.Lister, sel bulk.Selector) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enum := bulk.NewOrchestrator(mutator, listers,
		bulk.WithWorkers(a.flags.workers),
		bulk.WithLogger(a.log),
	)

	targets, err := enum.Enumerate(ctx, sel)
	if err != nil {
		return fmt.Errorf("enumerating targets: %w", err)
	}
	if len(targets) == 0 {
		fmt.Fprintf(os.Stdout, "No resources match %s.\n", sel)
		return nil
	}

	if !a.flags.yes {
		if !stdinIsTerminal() {
			return fmt.Errorf("refusing to delete %d resource(s) without confirmation; re-run with --yes", len(targets))
		}
		printTargets(targets)
		if !confirmDeletion(os.Stdin, os.Stdout) {
			fmt.Fprintln(os.Stdout, "Deletion cancelled.")
			return nil
		}
	}

	var result *bulk.Result
	if stdoutIsTerminal() && !a.flags.jsonOut {
		result = a.deleteWithProgress(ctx, cancel, title, mutator, targets)
	} else {
		runner := bulk.NewOrchestrator(mutator, nil,
			bulk.WithWorkers(a.flags.workers),
			bulk.WithLogger(a.log),
		)
		result = runner.DeleteRefs(ctx, targets)
	}

	a.log.WithFields(map[string]any{
		"total":   result.Total,
		"deleted": result.Deleted,
		"skipped": result.Skipped,
		"failed":  result.Failed,
	}).Info("bulk deletion finished")

	w := a.report()
	if a.flags.jsonOut {
		if err := w.BulkJSON(result); err != nil {
			return err
		}
	} else {
		w.BulkResult(title, result)
	}

	os.Exit(result.ExitCode())
	return nil
}

// deleteWithProgress runs the deletion behind a bubbletea progress display.
// Ctrl+C cancels the context; in-flight deletions finish, queued ones are
// abandoned, and the partial result is still reported.
func (a *appContext) deleteWithProgress(ctx context.Context, cancel context.CancelFunc, title string, mutator bulk.Mutator, targets []resource.Ref) *bulk.Result {
	model := tui.NewBulkModel(title, len(targets), cancel)
	prog := tea.NewProgram(model)

	runner := bulk.NewOrchestrator(mutator, nil,
		bulk.WithWorkers(a.flags.workers),
		bulk.WithLogger(a.log),
		bulk.WithObserver(func(out bulk.Outcome) {
			prog.Send(tui.OutcomeMsg{Outcome: out})
		}),
	)

	done := make(chan *bulk.Result, 1)
	go func() {
		res := runner.DeleteRefs(ctx, targets)
		prog.Send(tui.DoneMsg{})
		done <- res
	}()

	if _, err := prog.Run(); err != nil {
		// Fall back to waiting for the run to finish without the display.
		a.log.WithFields(map[string]any{"error": err.Error()}).Warn("progress display failed")
	}
	return <-done
}

func printTargets(targets []resource.Ref) {
	fmt.Fprintf(os.Stdout, "The following %d resource(s) will be deleted:\n", len(targets))
	for _, ref := range targets {
		fmt.Fprintf(os.Stdout, "  %s\n", ref)
	}
}
