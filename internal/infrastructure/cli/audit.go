package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recheck-dev/recheck/internal/infrastructure/auditlog"
)

var auditVerifyCmd = &cobra.Command{
	Use:   "audit-verify",
	Short: "Check the local audit trail's hash chain for tampering",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.AuditLogPath == "" {
			return fmt.Errorf("no audit_log configured")
		}
		if err := auditlog.Verify(cfg.AuditLogPath); err != nil {
			return err
		}
		cmd.Printf("audit log %s verified\n", cfg.AuditLogPath)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(auditVerifyCmd)
}
