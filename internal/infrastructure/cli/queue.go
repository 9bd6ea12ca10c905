package cli

import (
	"github.com/spf13/cobra"

	"github.com/recheck-dev/recheck/internal/application"
	"github.com/recheck-dev/recheck/internal/domain/review"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the pending queue position without opening a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := buildClient(cfg)
		if err != nil {
			return err
		}

		step, err := client.Next(cmd.Context(), review.QueueQuery{
			Direction: review.DirectionForward,
			SourceID:  cfg.SourceFilter,
		})
		if err != nil {
			return err
		}

		if !step.HasNext {
			cmd.Println("queue is empty — nothing pending")
			return nil
		}
		cmd.Printf("%d pending record(s)\n", step.TotalPending)
		cmd.Printf("next: %s from %s (%s)\n", step.Record.ID, step.Meta.Name, step.Meta.Type)
		if step.Record.Confidence != nil {
			cmd.Printf("confidence: %.2f\n", *step.Record.Confidence)
		}
		return nil
	},
}

func printSummary(cmd *cobra.Command, s application.Summary) {
	if s.Total == 0 {
		cmd.Println("session ended — nothing committed")
		return
	}
	cmd.Printf("session ended — %d record(s) committed in %s\n", s.Total, s.Elapsed.Truncate(1e9))
	for _, outcome := range []review.Outcome{
		review.OutcomeApproved,
		review.OutcomeCorrected,
		review.OutcomeOnHold,
		review.OutcomeRejected,
	} {
		if n := s.Outcomes[outcome]; n > 0 {
			cmd.Printf("  %-10s %d\n", outcome, n)
		}
	}
}

func init() {
	RootCmd.AddCommand(queueCmd)
}
