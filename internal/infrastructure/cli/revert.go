package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var revertCmd = &cobra.Command{
	Use:   "revert <record-id>",
	Short: "Reset a committed record back to pending",
	Args:  cobra.ExactArgs(1),
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

		if err := svc.Revert(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("revert failed: %w", err)
		}
		cmd.Printf("record %s reset to pending\n", args[0])
		return nil
	},
}

func init() {
	RootCmd.AddCommand(revertCmd)
}
