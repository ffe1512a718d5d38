package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"framescan/internal/capture"
	"framescan/internal/frames"
	"framescan/internal/models"
)

func newWatchCmd() *cobra.Command {
	var (
		server   string
		source   string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll a frame source and submit frames to a scan service",
		Long: `Runs the capture client loop: on a fixed interval, grab a still frame from
the configured source and submit it to a remote scan service.

The source is either an HTTP(S) snapshot URL (most IP cameras expose one) or
a local image file that is re-read on every tick. Detected barcodes are
printed as they arrive; the loop keeps polling until interrupted.`,
		Example: `  # Poll an IP camera snapshot every 500ms
  framescan watch --source http://camera.local/snapshot.jpg

  # Poll a file a capture process keeps overwriting
  framescan watch --source /tmp/frame.jpg --interval 250ms --server http://scanner:5555`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				return fmt.Errorf("--source is required")
			}

			client := capture.NewClient(server)
			if err := client.Health(cmd.Context()); err != nil {
				return fmt.Errorf("scan service not reachable at %s: %w", server, err)
			}

			poller := capture.NewPoller(frames.New(source), client, interval, func(result models.ScanResult) {
				if result.Found {
					fmt.Printf("%s\t%s\n", result.Type, result.Data)
				}
			})

			if err := poller.Start(); err != nil {
				return fmt.Errorf("failed to start capture loop: %w", err)
			}
			defer poller.Stop()

			slog.Info("Capture loop started", "source", source, "server", server, "interval", interval)
			<-cmd.Context().Done()
			slog.Info("Stopping capture loop")
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:5555", "Base URL of the scan service")
	cmd.Flags().StringVar(&source, "source", "", "Snapshot URL or image file to capture frames from")
	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "Capture interval")

	return cmd
}
