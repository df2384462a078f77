package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/reconcile"
)

func reconcileCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Audit job orders against their dependent records",
	}
	cmd.AddCommand(reconcileReportCmd(opts))
	cmd.AddCommand(reconcileCleanupCmd(opts))
	cmd.AddCommand(reconcileRepairCmd(opts))
	return cmd
}

func reconcileReportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show status counts, multi-day jobs, orphans and status drift",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			report := reconcile.New(store).Run(cmd.Context())
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func reconcileCleanupCmd(opts *options) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete child records whose job no longer exists",
		Long: `Lists orphaned child records. With --confirm, deletes exactly the
records listed in the same run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			u := reconcile.New(store)
			orphans, err := u.FindOrphans(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to find orphans: %w", err)
			}
			printOrphans(out, orphans)
			if orphans.Count() == 0 {
				return nil
			}
			if !confirm {
				fmt.Fprintf(out, "\n%s re-run with --confirm to delete these records\n", warn("dry run:"))
				return nil
			}

			result, err := u.Cleanup(cmd.Context(), orphans, true)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s %d records\n", ok("deleted"), result.Total)
			printCheckErrors(out, result.Errors)
			if len(result.Errors) > 0 {
				return fmt.Errorf("cleanup finished with %d errors", len(result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Delete the listed orphans")
	return cmd
}

func reconcileRepairCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Advance drifted jobs to the status their records imply",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			u := reconcile.New(store)
			drift, err := u.FindDrift(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to detect drift: %w", err)
			}
			if len(drift) == 0 {
				fmt.Fprintln(out, ok("no status drift"))
				return nil
			}

			result := u.Repair(cmd.Context(), drift)
			for _, d := range result.Advanced {
				fmt.Fprintf(out, "  %s %s: %s -> %s\n", ok("advanced"), d.JobNumber, d.Status, d.Expected)
			}
			for _, d := range result.Skipped {
				fmt.Fprintf(out, "  %s %s: status changed since detection\n", warn("skipped"), d.JobNumber)
			}
			printCheckErrors(out, result.Errors)
			if len(result.Errors) > 0 {
				return fmt.Errorf("repair finished with %d errors", len(result.Errors))
			}
			return nil
		},
	}
}

func printReport(out io.Writer, r *reconcile.Report) {
	fmt.Fprintf(out, "%s %s\n\n", bold("Reconciliation report"), r.GeneratedAt.Format("2006-01-02 15:04 MST"))

	fmt.Fprintf(out, "Jobs: %d\n", r.TotalJobs)
	for _, s := range []models.JobStatus{
		models.JobStatusUnassigned,
		models.JobStatusScheduled,
		models.JobStatusInProgress,
		models.JobStatusCompleted,
	} {
		fmt.Fprintf(out, "  %-12s %d\n", s, r.StatusCounts[s])
	}

	fmt.Fprintf(out, "\nMulti-day jobs: %d\n", len(r.MultiDay))
	for _, m := range r.MultiDay {
		fmt.Fprintf(out, "  %s [%s] %d daily logs\n", m.JobNumber, m.Status, m.DailyLogs)
	}

	fmt.Fprintln(out)
	printOrphans(out, r.Orphans)

	fmt.Fprintf(out, "\nStatus drift: %d\n", len(r.Drift))
	for _, d := range r.Drift {
		fmt.Fprintf(out, "  %s %s: %s, expected %s (%s)\n", warn("drift"), d.JobNumber, d.Status, d.Expected, d.Reason)
	}

	printCheckErrors(out, r.Errors)
}

func printOrphans(out io.Writer, set reconcile.OrphanSet) {
	n := set.Count()
	if n == 0 {
		fmt.Fprintf(out, "Orphaned records: %s\n", ok("none"))
		return
	}
	fmt.Fprintf(out, "Orphaned records: %s\n", warn(n))
	collections := make([]string, 0, len(set))
	for c := range set {
		collections = append(collections, string(c))
	}
	sort.Strings(collections)
	for _, c := range collections {
		ids := set[models.ChildCollection(c)]
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(out, "  %s (%d)\n", c, len(ids))
		for _, id := range ids {
			fmt.Fprintf(out, "    %s\n", id)
		}
	}
}

func printCheckErrors(out io.Writer, errs []reconcile.CheckError) {
	for _, e := range errs {
		fmt.Fprintf(out, "%s %s: %s\n", bad("error"), e.Check, e.Error)
	}
}
