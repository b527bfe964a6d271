package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	profilesPath string
	specsPath    string
	jsonOut      bool
	verbose      bool
	insecure     bool
	yes          bool
	workers      int
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "sensorctl",
		Short:         "sensorctl manages network-test infrastructure through orchestrator REST APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.profilesPath, "profiles", "", "Path to a service profile file (defaults to built-in local profiles)")
	cmd.PersistentFlags().StringVar(&flags.specsPath, "specs", "", "Path to a requirement spec file merged over the built-in specs")
	cmd.PersistentFlags().BoolVar(&flags.jsonOut, "json", false, "Output results in JSON format")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVarP(&flags.insecure, "insecure", "k", false, "Skip TLS certificate verification")
	cmd.PersistentFlags().BoolVarP(&flags.yes, "yes", "y", false, "Skip confirmation prompts for destructive operations")
	cmd.PersistentFlags().IntVar(&flags.workers, "workers", 4, "Concurrent deletions during bulk operations")

	cmd.AddCommand(newVerifyCmd(flags))
	cmd.AddCommand(newAgentCmd(flags))
	cmd.AddCommand(newSessionCmd(flags))
	cmd.AddCommand(newPolicyCmd(flags))
	cmd.AddCommand(newObjectCmd(flags))
	cmd.AddCommand(newMetadataCmd(flags))
	cmd.AddCommand(newGatewayCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
