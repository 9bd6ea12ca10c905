package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/recheck-dev/recheck/internal/infrastructure/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Step through the pending review queue interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, cleanup, err := buildService(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		p := tea.NewProgram(tui.New(svc), tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return fmt.Errorf("review session failed: %w", err)
		}

		if m, ok := final.(tui.Model); ok {
			printSummary(cmd, m.Summary())
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reviewCmd)
}
