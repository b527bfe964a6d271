package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/plalonde/sensorctl/internal/api"
	"github.com/plalonde/sensorctl/internal/profile"
	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

func newObjectCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "object",
		Short: "Inspect and delete monitored objects",
	}

	cmd.AddCommand(
		newObjectListCmd(flags),
		newObjectGetCmd(flags),
		newObjectDeleteCmd(flags),
	)

	return cmd
}

func newObjectListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List monitored objects",
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

			payload, err := c.Read(context.Background(), api.MonitoredObjectsPath)
			if err != nil {
				return err
			}
			if app.flags.jsonOut {
				return app.report().RawJSON(payload)
			}

			var list api.MonitoredObjectList
			if err := api.Decode(payload, &list); err != nil {
				return fmt.Errorf("decoding monitored object listing: %w", err)
			}
			rows := make([][]string, 0, len(list.Data))
			for _, obj := range list.Data {
				rows = append(rows, []string{obj.ID, obj.Attributes.Name, obj.Type})
			}
			app.report().Table("Monitored objects", []string{"ID", "NAME", "TYPE"}, rows)
			return nil
		},
	}
}

func newObjectGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <object-id>",
		Short: "Show one monitored object",
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

			payload, err := c.Read(context.Background(), api.MonitoredObjectPath(args[0]))
			if err != nil {
				return err
			}
			return app.report().RawJSON(payload)
		},
	}
}

func newObjectDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <object-id>",
		Short: "Delete one monitored object",
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

			id := args[0]
			if !app.flags.yes {
				if !stdinIsTerminal() {
					return fmt.Errorf("refusing to delete %s without confirmation; re-run with --yes", id)
				}
				fmt.Fprintf(os.Stdout, "Monitored object %s will be deleted.\n", id)
				if !confirmDeletion(os.Stdin, os.Stdout) {
					fmt.Fprintln(os.Stdout, "Deletion cancelled.")
					return nil
				}
			}

			_, err = c.Mutate(context.Background(), http.MethodDelete, api.MonitoredObjectPath(id), nil)
			if err != nil {
				var resErr *sensorctlerrors.ResourceError
				if errors.As(err, &resErr) && resErr.Kind == sensorctlerrors.KindNotFound {
					fmt.Fprintf(os.Stdout, "Monitored object %s is already gone.\n", id)
					return nil
				}
				return err
			}

			fmt.Fprintf(os.Stdout, "Deleted monitored object %s.\n", id)
			return nil
		},
	}
}
