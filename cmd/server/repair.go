package main

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"custody/pkg/requestcontext"
)

// repairActor is recorded on action log entries written by the repair command.
const repairActor = "system:repair"

type repairOutput struct {
	Command    string `json:"command"`
	DurationMS int64  `json:"duration_ms"`
	Result     any    `json:"result"`
}

func newRepairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Data repair tools",
	}
	cmd.AddCommand(newRepairOrphansCmd())
	return cmd
}

func newRepairOrphansCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "Delete legal documents whose movement or cell assignment no longer exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := requestcontext.WithActorID(cmd.Context(), repairActor)
			ctx = requestcontext.WithRequestID(ctx, uuid.NewString())

			start := time.Now()
			report, err := a.custody.RepairOrphans(ctx, dryRun)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(repairOutput{
				Command:    "repair orphans",
				DurationMS: time.Since(start).Milliseconds(),
				Result:     report,
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report orphans without deleting them")
	return cmd
}
