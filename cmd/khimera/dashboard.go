package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/khimera-dev/khimera/internal/logger"
	"github.com/khimera-dev/khimera/internal/tui"
)

func newDashboardCmd(flags *rootFlags, log *logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the interactive dashboard",
		Long:  `Launch the interactive TUI dashboard to inspect registered plugins and toggle them on or off.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, flags, commandLogger(flags, log))
		},
	}

	return cmd
}

func runDashboard(cmd *cobra.Command, flags *rootFlags, log *logger.Logger) error {
	reg, err := buildRegistry(cmd, flags, log)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(reg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}

	return nil
}
