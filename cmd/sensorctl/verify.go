package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plalonde/sensorctl/internal/verify"
	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

func newVerifyCmd(flags *rootFlags) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "verify <spec-name>",
		Short: "Verify live configuration against a requirement spec",
		Long: `Verify fetches the relevant live configuration once and judges every
required key of the named spec: pass, fail, or missing. Exit code 0 when all
requirements are satisfied, 1 when any verdict is fail or missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(2)
			}

			if list || len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Available specs:\n  %s\n", strings.Join(app.registry.Names(), "\n  "))
				return nil
			}

			return runVerify(app, args[0])
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List available spec names and exit")

	return cmd
}

func runVerify(app *appContext, specName string) error {
	engine := verify.NewEngine(app.registry, app.readerResolver(), app.log)

	app.log.WithFields(map[string]any{"spec": specName}).Info("starting verification")

	summary, err := engine.Verify(context.Background(), specName)
	if err != nil {
		var notFound *sensorctlerrors.SpecNotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		var aborted *sensorctlerrors.VerificationAbortedError
		if errors.As(err, &aborted) {
			fmt.Fprintf(os.Stderr, "Verification aborted: %v\n", aborted.Err)
			os.Exit(3)
		}

		fmt.Fprintf(os.Stderr, "Verification error: %v\n", err)
		os.Exit(3)
	}

	app.log.WithFields(map[string]any{
		"total":    len(summary.Verdicts),
		"pass":     summary.Pass,
		"fail":     summary.Fail,
		"missing":  summary.Missing,
		"duration": summary.Duration.String(),
	}).Info("verification complete")

	if app.flags.jsonOut {
		if err := app.report().VerifyJSON(summary); err != nil {
			return err
		}
	} else {
		app.report().VerifySummary(summary)
	}

	os.Exit(summary.ExitCode())
	return nil
}
