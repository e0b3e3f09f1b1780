package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/folio-space/core/internal/client"
	"github.com/spf13/cobra"
)

var snapshotAPI string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the public site content as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		site := client.New(snapshotAPI, nil).LoadSite(ctx)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(site)
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotAPI, "api", "http://localhost:5000", "API base URL")
	rootCmd.AddCommand(snapshotCmd)
}
