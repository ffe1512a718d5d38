package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"framescan/internal/decode"
	"framescan/internal/frames"
	"framescan/internal/scan"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [image]",
		Short: "Decode a barcode from an image file or URL",
		Long: `Runs the decode pipeline once against a local image file or an HTTP(S) URL
and prints the scan result as JSON.

Exits non-zero when the input cannot be decoded as an image. A valid image
with no barcode in it prints {"found":false} and exits zero.`,
		Example: `  framescan scan shelf.jpg
  framescan scan https://camera.local/snapshot.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := frames.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load image: %w", err)
			}

			svc := scan.NewService(decode.NewDetector())
			result, err := svc.ScanBytes(data)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			return enc.Encode(result)
		},
	}

	return cmd
}
