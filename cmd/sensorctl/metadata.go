package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/plalonde/sensorctl/internal/api"
	"github.com/plalonde/sensorctl/internal/profile"
)

func newMetadataCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Inspect and adjust tenant metadata",
	}

	cmd.AddCommand(
		newMetadataMappingCmd(flags),
		newMetadataTenantCmd(flags),
		newMetadataCaseSensitiveCmd(flags),
	)

	return cmd
}

func newMetadataMappingCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mapping",
		Short: "Show the active metadata category mapping",
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

			payload, err := c.Read(context.Background(), api.MetadataMappingPath)
			if err != nil {
				return err
			}
			return app.report().RawJSON(payload)
		},
	}
}

func newMetadataTenantCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tenant [tenant-id]",
		Short: "Show a tenant's metadata document",
		Long: `Tenant reads the tenant metadata document. The tenant identifier
defaults to the one configured on the analytics profile.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceAnalytics)
			if err != nil {
				return err
			}
			tenantID, err := resolveTenantID(app, args)
			if err != nil {
				return err
			}

			payload, err := c.Read(context.Background(), api.TenantMetadataPath(tenantID))
			if err != nil {
				return err
			}
			return app.report().RawJSON(payload)
		},
	}
}

func newMetadataCaseSensitiveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "case-sensitive [tenant-id]",
		Short: "Enable case-sensitive metadata value storage for a tenant",
		Long: `Case-sensitive reads the tenant metadata document, flips
storeMetadataValueCaseSensitive on, and patches the document back with every
other attribute untouched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			c, err := app.clientFor(profile.ServiceAnalytics)
			if err != nil {
				return err
			}
			tenantID, err := resolveTenantID(app, args)
			if err != nil {
				return err
			}

			ctx := context.Background()
			payload, err := c.Read(ctx, api.TenantMetadataPath(tenantID))
			if err != nil {
				return err
			}

			var doc api.TenantMetadata
			if err := api.Decode(payload, &doc); err != nil {
				return fmt.Errorf("decoding tenant metadata: %w", err)
			}
			if doc.Data.Attributes == nil {
				doc.Data.Attributes = make(map[string]any)
			}
			if enabled, ok := doc.Data.Attributes["storeMetadataValueCaseSensitive"].(bool); ok && enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Case-sensitive metadata storage is already enabled.")
				return nil
			}
			doc.Data.Attributes["storeMetadataValueCaseSensitive"] = true

			updated, err := c.Mutate(ctx, http.MethodPatch, api.TenantMetadataPath(tenantID), doc)
			if err != nil {
				return err
			}

			app.log.WithFields(map[string]any{"tenant": tenantID}).Info("case-sensitive metadata storage enabled")
			return app.report().RawJSON(updated)
		},
	}
}

// resolveTenantID picks the tenant: explicit argument first, then the
// analytics profile's configured tenant.
func resolveTenantID(app *appContext, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	p, err := app.profiles.Get(profile.ServiceAnalytics)
	if err != nil {
		return "", err
	}
	if p.TenantID == "" {
		return "", fmt.Errorf("no tenant identifier: pass one as an argument or set tenant_id on the analytics profile")
	}
	return p.TenantID, nil
}
