package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	catalogrepo "github.com/tair/starwars-api/internal/catalog/repository"
	"github.com/tair/starwars-api/internal/seed"
	"github.com/tair/starwars-api/pkg/cache"
	"github.com/tair/starwars-api/pkg/database"
	"github.com/tair/starwars-api/pkg/logger"
)

func (a *app) newSeedCommand() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "seed <fixtures.yaml>",
		Short: "Load catalog fixtures from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open fixtures: %w", err)
			}
			defer f.Close()

			fx, err := seed.Load(f)
			if err != nil {
				return err
			}

			db, err := database.NewGormConnection(ctx, a.cfg.DSN(), database.DefaultPoolConfig(), false)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			repo := catalogrepo.NewGormCatalogRepository(db)
			if _, err := seed.NewSeeder(repo, cost).Run(ctx, fx); err != nil {
				return err
			}

			// cached catalog responses are stale now
			client, err := cache.NewRedisClient(ctx, a.cfg.RedisAddr, a.cfg.RedisPassword)
			if err != nil {
				logger.Logger.Warn().Err(err).Msg("Skipping cache invalidation")
				return nil
			}
			if client == nil {
				return nil
			}
			defer client.Close()
			return cache.NewResponseCache(client, a.cfg.CacheTTL).Invalidate(ctx)
		},
	}

	cmd.Flags().IntVar(&cost, "bcrypt-cost", bcrypt.DefaultCost, "bcrypt cost used to hash user passwords")
	return cmd
}
