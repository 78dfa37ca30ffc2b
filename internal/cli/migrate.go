package cli

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/cobra"

	"github.com/vvka-141/sflink/internal/store"
	"github.com/vvka-141/sflink/internal/ui"
	"github.com/vvka-141/sflink/pkg/sflink"
)

var migrateFlags struct {
	reset bool
	force bool
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the wiki tables sflink reads and writes",
	Long: `Create the page, semantic property, category and job tables if they do not exist.

With --reset the tables are dropped first. You are asked to type the database
name to confirm; --force replaces the prompt with a countdown for scripts.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateFlags.reset, "reset", false, "Drop and recreate the wiki tables (destroys all data)")
	migrateCmd.Flags().BoolVar(&migrateFlags.force, "force", false, "With --reset, skip the confirmation prompt after a countdown")
	rootCmd.AddCommand(migrateCmd)
}

func resetMigrateFlags() {
	migrateFlags.reset = false
	migrateFlags.force = false
}

// resetApprover picks how a reset is confirmed. Without a terminal only --force can approve.
func resetApprover(force, interactive, verbose bool) (sflink.Approver, error) {
	switch {
	case force:
		return ui.NewForcedApprover(verbose), nil
	case interactive:
		return ui.NewInteractiveApprover(verbose), nil
	default:
		return nil, errors.New("invalid argument: --reset needs --force when not running in a terminal")
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migrateFlags.force && !migrateFlags.reset {
		return errors.New("invalid argument: --force only applies together with --reset")
	}

	var approver sflink.Approver
	if migrateFlags.reset {
		var err error
		if approver, err = resetApprover(migrateFlags.force, ui.IsInteractive(), globalFlags.verbose); err != nil {
			return err
		}
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if err := a.connect(ctx); err != nil {
		return err
	}

	if !migrateFlags.reset {
		if err := store.Migrate(ctx, a.conn); err != nil {
			return err
		}
		noticeOutput(cmd).Success("Wiki tables ready in %s", databaseName(a.dsn))
		return nil
	}

	dbName := databaseName(a.dsn)
	approved, err := approver.RequestApproval(ctx, dbName)
	if err != nil {
		return err
	}
	if !approved {
		return fmt.Errorf("reset of %s: %w", dbName, sflink.ErrApprovalDenied)
	}

	if err := store.Reset(ctx, a.conn); err != nil {
		return err
	}
	noticeOutput(cmd).Success("Wiki tables recreated in %s", dbName)
	return nil
}

func databaseName(dsn string) string {
	cfg, err := pgconn.ParseConfig(dsn)
	if err != nil || cfg.Database == "" {
		return "postgres"
	}
	return cfg.Database
}
