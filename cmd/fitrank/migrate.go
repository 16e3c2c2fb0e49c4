package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/HammerMeetNail/fitrank/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
	Long: `Manage the schema with the SQL files under MIGRATIONS_PATH
(default ./migrations).

  fitrank migrate up         # apply every pending migration
  fitrank migrate down       # roll back every migration
  fitrank migrate steps -1   # roll back one migration
  fitrank migrate version    # print the current version`,
	Annotations: map[string]string{skipDBAnnotation: "true"},
}

func withMigrator(fn func(m *database.Migrator) error) error {
	m, err := database.NewMigrator(cfg.Database.DSN(), cfg.Server.MigrationsPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer func() { _ = m.Close() }()
	return fn(m)
}

var migrateUpCmd = &cobra.Command{
	Use:         "up",
	Short:       "Apply all pending migrations",
	Annotations: map[string]string{skipDBAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *database.Migrator) error {
			if err := m.Up(); err != nil {
				return err
			}
			color.Green("Migrations applied")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:         "down",
	Short:       "Roll back all migrations",
	Annotations: map[string]string{skipDBAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *database.Migrator) error {
			if err := m.Down(); err != nil {
				return err
			}
			color.Yellow("Migrations rolled back")
			return nil
		})
	},
}

var migrateStepsCmd = &cobra.Command{
	Use:         "steps N",
	Short:       "Apply N migrations, or roll back when N is negative",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipDBAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return withMigrator(func(m *database.Migrator) error {
			return m.Steps(n)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the current schema version",
	Annotations: map[string]string{skipDBAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *database.Migrator) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d", version)
			if dirty {
				fmt.Fprint(cmd.OutOrStdout(), color.RedString(" (dirty)"))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStepsCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
