package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plalonde/sensorctl/internal/api"
	"github.com/plalonde/sensorctl/internal/bulk"
	"github.com/plalonde/sensorctl/internal/profile"
)

func newSessionCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and delete test sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(flags),
		newSessionGetCmd(flags),
		newSessionStatusCmd(flags),
		newSessionDeleteCmd(flags),
	)

	return cmd
}

func newSessionListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List test sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceOrchestrator)
			if err != nil {
				return err
			}

			payload, err := c.Read(context.Background(), api.SessionsPath)
			if err != nil {
				return err
			}
			if app.flags.jsonOut {
				return app.report().RawJSON(payload)
			}

			var list api.SessionList
			if err := api.Decode(payload, &list); err != nil {
				return fmt.Errorf("decoding session listing: %w", err)
			}
			rows := make([][]string, 0, len(list.Data))
			for _, id := range list.SessionIDs() {
				rows = append(rows, []string{id})
			}
			app.report().Table("Sessions", []string{"SESSION ID"}, rows)
			return nil
		},
	}
}

func newSessionGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceOrchestrator)
			if err != nil {
				return err
			}

			payload, err := c.Read(context.Background(), api.SessionPath(args[0]))
			if err != nil {
				return err
			}
			return app.report().RawJSON(payload)
		},
	}
}

func newSessionStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status [session-id]",
		Short: "Show session statuses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceOrchestrator)
			if err != nil {
				return err
			}

			path := api.SessionStatusesPath
			if len(args) == 1 {
				path = api.SessionStatusPath(args[0])
			}
			payload, err := c.Read(context.Background(), path)
			if err != nil {
				return err
			}
			if app.flags.jsonOut || len(args) == 1 {
				return app.report().RawJSON(payload)
			}

			var list api.SessionStatusList
			if err := api.Decode(payload, &list); err != nil {
				return fmt.Errorf("decoding session statuses: %w", err)
			}
			rows := make([][]string, 0, len(list.Data))
			for _, s := range list.Data {
				rows = append(rows, []string{s.SessionID, s.Status, s.StatusMessage})
			}
			app.report().Table("Session statuses", []string{"SESSION ID", "STATUS", "MESSAGE"}, rows)
			return nil
		},
	}
}

func newSessionDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <prefix|all>",
		Short: "Delete sessions by identifier prefix, or all of them",
		Long: `Delete removes every session whose identifier starts with the given
prefix. The keyword "all" targets every session. Matching sessions are shown
and the deletion must be confirmed unless --yes is set. A session that
disappears between listing and deletion counts as skipped, not failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(2)
			}
			c, err := app.clientFor(profile.ServiceOrchestrator)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(2)
			}

			return app.runBulkDelete("Session deletion", c, api.SessionListers(c), bulk.Prefix(args[0]))
		},
	}
}
