package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/terraconstructs/tasklists/cmd/cmdutil"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/migrations"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management commands",
	Long:  `Commands for managing database migrations and schema.`,
}

// withMigrator opens the database and hands a migrator over it to fn.
func withMigrator(fn func(db *bun.DB, migrator *migrate.Migrator) error) error {
	db, err := cmdutil.OpenDB(cfg)
	if err != nil {
		return err
	}
	defer bunx.Close(db)

	return fn(db, migrate.NewMigrator(db, migrations.Migrations))
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize migration tables",
	Long:  `Creates the migration tracking tables in the database. Run this once during initial setup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(_ *bun.DB, migrator *migrate.Migrator) error {
			if err := migrator.Init(cmd.Context()); err != nil {
				return fmt.Errorf("failed to initialize migrator: %w", err)
			}
			logger.Info("Migration tables initialized successfully")
			return nil
		})
	},
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  `Applies all pending migrations to the database with locking to prevent concurrent migrations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(db *bun.DB, _ *migrate.Migrator) error {
			group, err := migrations.Apply(cmd.Context(), db)
			if err != nil {
				return err
			}
			if group == 0 {
				logger.Info("No new migrations to apply")
			} else {
				logger.WithField("group", group).Info("Applied migration group")
			}
			return nil
		})
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long:  `Displays the current migration status and pending migrations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(_ *bun.DB, migrator *migrate.Migrator) error {
			ms, err := migrator.MigrationsWithStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Migrations:")
			for _, m := range ms {
				status := "pending"
				if m.GroupID > 0 {
					status = fmt.Sprintf("applied (group %d)", m.GroupID)
				}
				fmt.Fprintf(out, "  %s: %s\n", m.Name, status)
			}
			return nil
		})
	},
}

var dbRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Rollback last migration group",
	Long:  `Rolls back the most recently applied migration group with locking to prevent concurrent operations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(_ *bun.DB, migrator *migrate.Migrator) error {
			ctx := cmd.Context()

			// Acquire lock to prevent concurrent rollbacks
			if err := migrator.Lock(ctx); err != nil {
				return fmt.Errorf("failed to acquire migration lock: %w", err)
			}
			defer func() {
				if err := migrator.Unlock(ctx); err != nil {
					logger.WithError(err).Warn("Failed to release migration lock")
				}
			}()

			group, err := migrator.Rollback(ctx)
			if err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}

			if group.ID == 0 {
				logger.Info("No migrations to rollback")
			} else {
				logger.WithField("group", group.ID).Info("Rolled back migration group")
			}
			return nil
		})
	},
}

var dbLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Manually acquire migration lock",
	Long:  `Acquires the migration lock. Useful for debugging or maintenance operations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(_ *bun.DB, migrator *migrate.Migrator) error {
			if err := migrator.Lock(cmd.Context()); err != nil {
				return fmt.Errorf("failed to acquire migration lock: %w", err)
			}
			logger.Info("Migration lock acquired; run 'db unlock' when finished")
			return nil
		})
	},
}

var dbUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Force release migration lock",
	Long:  `Force releases the migration lock. Use this if a migration crashed while holding the lock.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(_ *bun.DB, migrator *migrate.Migrator) error {
			if err := migrator.Unlock(cmd.Context()); err != nil {
				return fmt.Errorf("failed to release migration lock: %w", err)
			}
			logger.Info("Migration lock released successfully")
			return nil
		})
	},
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbRollbackCmd)
	dbCmd.AddCommand(dbLockCmd)
	dbCmd.AddCommand(dbUnlockCmd)
	rootCmd.AddCommand(dbCmd)
}
