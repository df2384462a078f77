// Package cli implements fieldctl, the administrator's command line for
// reconciliation, exports and migrations.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/reconcile"
	"fieldops-backend/internal/supabase"
)

// Store is the record store the commands work against.
type Store interface {
	reconcile.Store
	ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	ListOperators(ctx context.Context) ([]models.Operator, error)
	Close() error
}

// openStore connects to the record store. Tests swap it for an in-memory one.
var openStore = func(databaseURL string) (Store, error) {
	db, err := supabase.NewDatabaseClient(databaseURL)
	if err != nil {
		return nil, err
	}
	return db, nil
}

var (
	ok   = color.New(color.FgGreen).SprintFunc()
	warn = color.New(color.FgYellow).SprintFunc()
	bad  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

type options struct {
	databaseURL string
}

// NewRootCmd builds the fieldctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "fieldctl",
		Short: "Administration for the field operations backend",
		Long: `fieldctl talks to the job database directly. It audits job orders
against their dependent records, repairs status drift, removes orphaned
records and exports completed jobs.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"),
		"PostgreSQL connection string (default $DATABASE_URL)")

	root.AddCommand(reconcileCmd(opts))
	root.AddCommand(exportCmd(opts))
	root.AddCommand(migrateCmd(opts))
	return root
}

func (o *options) open() (Store, error) {
	if o.databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set; pass --database-url")
	}
	store, err := openStore(o.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return store, nil
}
