package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/khimera-dev/khimera/internal/logger"
	"github.com/khimera-dev/khimera/internal/plugin"
)

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	findingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func newValidateCmd(flags *rootFlags, log *logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate discovered plugins against the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags, commandLogger(flags, log))
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, flags *rootFlags, log *logger.Logger) error {
	_, finder, err := discoverPlugins(cmd.Context(), flags, log)
	if err != nil {
		if finder == nil {
			return err
		}
		// Partial discovery: report the broken manifests but keep
		// validating the bundles that did load.
		log.Error(err, "some plugin manifests could not be loaded")
	}

	plugins := finder.Plugins()
	if len(plugins) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No plugin manifests found.")
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0

	for _, p := range plugins {
		v := plugin.NewValidator(p)
		if v.Validate() {
			fmt.Fprintf(out, "%s %s (%s)\n", validStyle.Render("✓"), p.Name(), p.Version())
			continue
		}

		invalid++
		fmt.Fprintf(out, "%s %s (%s)\n", invalidStyle.Render("✗"), p.Name(), p.Version())
		for _, finding := range v.Summary() {
			fmt.Fprintf(out, "    %s\n", findingStyle.Render(finding))
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d plugins failed validation", invalid, len(plugins))
	}
	return err
}
