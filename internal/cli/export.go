package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/reports"
)

func exportCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export job data",
	}
	cmd.AddCommand(exportCompletedCmd(opts))
	return cmd
}

func exportCompletedCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "completed",
		Short: "Write completed jobs to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			jobs, err := store.ListJobs(ctx, models.JobFilter{Status: models.JobStatusCompleted})
			if err != nil {
				return fmt.Errorf("failed to list completed jobs: %w", err)
			}
			ops, err := store.ListOperators(ctx)
			if err != nil {
				return fmt.Errorf("failed to list operators: %w", err)
			}
			names := make(map[uuid.UUID]string, len(ops))
			for _, op := range ops {
				names[op.ID] = op.Name
			}

			now := time.Now().UTC()
			data, err := reports.BuildCompletedWorkbook(reports.CompletedJobs{
				Jobs:        jobs,
				Operators:   names,
				GeneratedAt: now,
			})
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("completed_jobs_%s.xlsx", now.Format("20060102"))
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d completed jobs to %s (%d contact not on site)\n",
				ok("exported"), len(jobs), out, reports.ContactNotOnSiteCount(jobs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default completed_jobs_YYYYMMDD.xlsx)")
	return cmd
}
