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

func newPolicyCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect and delete alerting policies",
	}

	cmd.AddCommand(
		newPolicyListCmd(flags),
		newPolicyGetCmd(flags),
		newPolicyDeleteAllCmd(flags),
	)

	return cmd
}

func newPolicyListCmd(flags *rootFlags) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerting policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceAnalytics)
			if err != nil {
				return err
			}

			path := api.PoliciesV2Path
			if tag != "" {
				path = api.PoliciesByTagPath(tag)
			}
			payload, err := c.Read(context.Background(), path)
			if err != nil {
				return err
			}
			if app.flags.jsonOut {
				return app.report().RawJSON(payload)
			}

			var list api.PolicyList
			if err := api.Decode(payload, &list); err != nil {
				return fmt.Errorf("decoding policy listing: %w", err)
			}
			rows := make([][]string, 0, len(list.Data))
			for _, p := range list.Data {
				rows = append(rows, []string{p.ID, p.Attributes.Name, p.Attributes.Status})
			}
			app.report().Table("Alerting policies", []string{"ID", "NAME", "STATUS"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only list policies carrying this tag")

	return cmd
}

func newPolicyGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <policy-id>",
		Short: "Show one alerting policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceAnalytics)
			if err != nil {
				return err
			}

			payload, err := c.Read(context.Background(), api.PolicyV2Path(args[0]))
			if err != nil {
				return err
			}
			return app.report().RawJSON(payload)
		},
	}
}

func newPolicyDeleteAllCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every alerting policy on both API versions",
		Long: `Delete-all enumerates alerting policies on the v2 and v3 surfaces,
deduplicates policies visible on both by identifier, and deletes each one
through its newest surface. Matching policies are shown and the deletion must
be confirmed unless --yes is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(2)
			}
			c, err := app.clientFor(profile.ServiceAnalytics)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(2)
			}

			return app.runBulkDelete("Policy deletion", c, api.PolicyListers(c), bulk.All())
		},
	}
}
