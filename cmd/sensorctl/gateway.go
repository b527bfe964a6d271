package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plalonde/sensorctl/internal/api"
	"github.com/plalonde/sensorctl/internal/profile"
)

func newGatewayCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Inspect the protocol gateway",
	}

	cmd.AddCommand(
		newGatewayEndpointsCmd(flags),
		newGatewayReadCmd(flags, "sessions", "List gateway sessions", api.GatewaySessionsPath),
		newGatewayReadCmd(flags, "services", "List gateway services", api.GatewayServicesPath),
		newGatewayReadCmd(flags, "alerts", "List gateway alert policies", api.GatewayAlertPoliciesPath),
		newGatewayReadCmd(flags, "metadata-config", "Show the gateway metadata configuration", api.GatewayMetadataConfigPath),
	)

	return cmd
}

func newGatewayEndpointsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints [endpoint-id]",
		Short: "List gateway service endpoints",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceGateway)
			if err != nil {
				return err
			}

			path := api.GatewayEndpointsPath
			if len(args) == 1 {
				path = api.GatewayEndpointPath(args[0])
			}
			payload, err := c.Read(context.Background(), path)
			if err != nil {
				return err
			}
			if app.flags.jsonOut || len(args) == 1 {
				return app.report().RawJSON(payload)
			}

			var list api.EndpointList
			if err := api.Decode(payload, &list); err != nil {
				return fmt.Errorf("decoding endpoint listing: %w", err)
			}
			rows := make([][]string, 0, len(list.Container.Endpoints))
			for _, ep := range list.Container.Endpoints {
				rows = append(rows, []string{ep.Name, ep.Type, ep.Status, ep.Description})
			}
			app.report().Table("Service endpoints", []string{"NAME", "TYPE", "STATUS", "DESCRIPTION"}, rows)
			return nil
		},
	}
}

// newGatewayReadCmd covers the plain RESTCONF listings that have no tabular
// shape worth special-casing.
func newGatewayReadCmd(flags *rootFlags, use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceGateway)
			if err != nil {
				return err
			}

			payload, err := c.Read(context.Background(), path)
			if err != nil {
				return err
			}
			return app.report().RawJSON(payload)
		},
	}
}
