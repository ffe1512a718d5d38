package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "framescan",
		Short: "Barcode scanning service for camera frames",
		Long: `Framescan decodes barcodes from still images captured off a camera feed.

It serves a stateless HTTP scan endpoint for browser capture clients, ships a
native polling client for snapshot cameras, and includes a CLI for one-shot
decodes and accuracy evaluation against labeled fixtures.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
