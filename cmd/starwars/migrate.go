package main

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/tair/starwars-api/migrations"
	"github.com/tair/starwars-api/pkg/database"
	"github.com/tair/starwars-api/pkg/logger"
)

func (a *app) newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		a.migrationCommand("up", "Apply all pending migrations", migrations.Up),
		a.migrationCommand("down", "Roll back the latest migration", migrations.Down),
		a.migrationCommand("status", "Show the state of every migration", migrations.Status),
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withSQL(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
					version, err := migrations.Version(ctx, db)
					if err != nil {
						return err
					}
					cmd.Printf("%d\n", version)
					return nil
				})
			},
		},
	)
	return cmd
}

func (a *app) migrationCommand(use, short string, run func(context.Context, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.withSQL(cmd.Context(), run); err != nil {
				return err
			}
			logger.Logger.Info().Str("command", use).Msg("Migration command finished")
			return nil
		},
	}
}

func (a *app) withSQL(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	db, err := database.NewPostgresConnection(ctx, a.cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, db)
}
