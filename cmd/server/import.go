package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/legacy"
	"github.com/spf13/cobra"
)

var (
	importMongoURI string
	importDumpDir  string
)

var importCmd = &cobra.Command{
	Use:   "import-legacy",
	Short: "Import content from a MongoDB deployment or a mongodump directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (importMongoURI == "") == (importDumpDir == "") {
			return errors.New("exactly one of --mongo-uri or --dump is required")
		}
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

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		var src legacy.Source = legacy.DumpSource{Dir: importDumpDir}
		if importMongoURI != "" {
			ms, err := legacy.DialMongo(ctx, importMongoURI)
			if err != nil {
				return err
			}
			defer ms.Close(context.Background())
			src = ms
		}

		report, err := legacy.NewImporter(db, logger.Named("legacy")).Import(ctx, src)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	importCmd.Flags().StringVar(&importMongoURI, "mongo-uri", "", "MongoDB connection URI")
	importCmd.Flags().StringVar(&importDumpDir, "dump", "", "mongodump output directory holding <collection>.bson files")
	rootCmd.AddCommand(importCmd)
}
