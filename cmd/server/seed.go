package main

import (
	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and a starter profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := database.Connect(cfg, true)
		if err != nil {
			return err
		}
		defer database.Close(db)

		res, err := seed.Run(cmd.Context(), db, cfg.Admin, seed.Options{Reset: seedReset}, logger)
		if err != nil {
			return err
		}
		logger.Info("seed complete",
			zap.Bool("admin_created", res.AdminCreated),
			zap.Bool("profile_created", res.ProfileCreated),
			zap.Int64("cleared", res.Cleared),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete the profile and all content collections first")
	rootCmd.AddCommand(seedCmd)
}
