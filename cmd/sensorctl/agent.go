package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plalonde/sensorctl/internal/api"
	"github.com/plalonde/sensorctl/internal/profile"
)

func newAgentCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Inspect sensor agents",
	}

	cmd.AddCommand(
		newAgentListCmd(flags),
		newAgentGetCmd(flags),
		newAgentConfigCmd(flags),
	)

	return cmd
}

func newAgentListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sensor agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceAgent)
			if err != nil {
				return err
			}

			payload, err := c.Read(context.Background(), api.AgentsBase)
			if err != nil {
				return err
			}
			if app.flags.jsonOut {
				return app.report().RawJSON(payload)
			}

			var list api.AgentList
			if err := api.Decode(payload, &list); err != nil {
				return fmt.Errorf("decoding agent listing: %w", err)
			}
			rows := make([][]string, 0, len(list.Data))
			for _, agent := range list.Data {
				rows = append(rows, []string{
					agent.ID,
					agent.Attributes.AgentName,
					agent.Attributes.AgentType,
					agent.Attributes.Status,
					agent.Attributes.State,
				})
			}
			app.report().Table("Agents", []string{"ID", "NAME", "TYPE", "STATUS", "STATE"}, rows)
			return nil
		},
	}
}

func newAgentGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <agent-id>",
		Short: "Show one agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceAgent)
			if err != nil {
				return err
			}

			payload, err := c.Read(context.Background(), api.AgentPath(args[0]))
			if err != nil {
				return err
			}
			return app.report().RawJSON(payload)
		},
	}
}

func newAgentConfigCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config <agent-id>",
		Short: "Show one agent's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceAgent)
			if err != nil {
				return err
			}

			payload, err := c.Read(context.Background(), api.AgentConfigPath(args[0]))
			if err != nil {
				return err
			}
			return app.report().RawJSON(payload)
		},
	}
}
