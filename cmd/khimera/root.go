package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khimera-dev/khimera/internal/logger"
)

type rootFlags struct {
	verbose bool
	model   string
	roots   []string
}

func newRootCmd(log *logger.Logger) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "khimera",
		Short:         "Khimera validates and registers plugins against declarative models",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVarP(&flags.model, "model", "m", "", "Path to the plugin model file")
	cmd.PersistentFlags().StringSliceVarP(&flags.roots, "root", "r", []string{"."}, "Directories to scan for plugin manifests")

	cmd.AddCommand(newValidateCmd(flags, log))
	cmd.AddCommand(newListCmd(flags, log))
	cmd.AddCommand(newDashboardCmd(flags, log))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}
