package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fieldops-backend/internal/database"
)

func migrateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect and apply database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List embedded migrations and whether each is applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.migrator()
			if err != nil {
				return err
			}
			defer m.Close()

			statuses, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range statuses {
				if s.Applied {
					fmt.Fprintf(out, "  %s %s (%s)\n", ok("applied"), s.Name, s.AppliedAt.Format("2006-01-02 15:04"))
				} else {
					fmt.Fprintf(out, "  %s %s\n", warn("pending"), s.Name)
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.migrator()
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Run(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok("migrations complete"))
			return nil
		},
	})
	return cmd
}

func (o *options) migrator() (*database.Migrator, error) {
	if o.databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set; pass --database-url")
	}
	return database.NewMigrator(o.databaseURL)
}
