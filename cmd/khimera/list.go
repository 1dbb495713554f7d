package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khimera-dev/khimera/internal/discovery"
	"github.com/khimera-dev/khimera/internal/logger"
	"github.com/khimera-dev/khimera/internal/plugin"
)

func newListCmd(flags *rootFlags, log *logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plugins that register cleanly against the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, commandLogger(flags, log))
		},
	}

	return cmd
}

func runList(cmd *cobra.Command, flags *rootFlags, log *logger.Logger) error {
	reg, err := buildRegistry(cmd, flags, log)
	if err != nil {
		return err
	}

	names := reg.List()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No plugins registered.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nPlace a plugin.yaml under one of the scanned roots to register a plugin.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tVERSION\tSTATUS\tFIELDS")

	for _, name := range names {
		p, ok := reg.Plugin(name)
		if !ok {
			continue
		}

		status := "disabled"
		if reg.IsEnabled(name) {
			status = "enabled"
		}

		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\n", p.Name(), p.Version(), status, len(p.Keys()))
	}

	return writer.Flush()
}

// buildRegistry discovers the manifests under the scanned roots and
// registers everything that validates. Duplicate names are ignored so a
// stray copy of a plugin does not abort the listing.
func buildRegistry(cmd *cobra.Command, flags *rootFlags, log *logger.Logger) (*plugin.Registry, error) {
	_, finder, err := discoverPlugins(cmd.Context(), flags, log)
	if err != nil {
		if finder == nil {
			return nil, err
		}
		log.Error(err, "some plugin manifests could not be loaded")
	}

	cfg := plugin.DefaultRegistryConfig()
	cfg.ConflictMode = plugin.ConflictIgnore
	reg := plugin.NewRegistry(cfg, log)

	for _, regErr := range discovery.Register(reg, finder, log) {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %v\n", regErr)
	}

	return reg, nil
}
