package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"framescan/internal/decode"
	"framescan/internal/eval/dataset"
	"framescan/internal/eval/metrics"
	"framescan/internal/eval/results"
	"framescan/internal/scan"
)

func newEvalCmd() *cobra.Command {
	var (
		manifest string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure decoder accuracy against a labeled manifest",
		Long: `Runs the decode pipeline over every image in a labeled manifest and compares
each result against the expected payload and symbology.

The manifest is a JSONL or Parquet file of records with image, data, and type
fields. Image paths are resolved relative to the manifest file. A summary is
printed and a timestamped YAML report is written under evals/.`,
		Example: `  framescan eval --manifest testdata/labels.jsonl

  # Evaluate only the first 100 records of a large Parquet manifest
  framescan eval --manifest labels.parquet --limit 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifest == "" {
				return fmt.Errorf("--manifest is required")
			}
			return executeEval(manifest, limit)
		},
	}

	cmd.Flags().StringVar(&manifest, "manifest", "", "Path to the labeled manifest (.jsonl or .parquet)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Evaluate at most this many records (0 = all)")

	return cmd
}

func executeEval(manifest string, limit int) error {
	slog.Info("Starting evaluation run", "manifest", manifest, "limit", limit)

	loader := dataset.NewLoader(manifest)

	var (
		records []dataset.Record
		err     error
	)
	if limit > 0 {
		records, err = loader.LoadSample(limit)
	} else {
		records, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	slog.Info("Manifest loaded", "records", len(records))

	svc := scan.NewService(decode.NewDetector())
	baseDir := filepath.Dir(manifest)

	outcomes := make([]metrics.Outcome, 0, len(records))
	for i, record := range records {
		slog.Info("Evaluating record", "progress", fmt.Sprintf("%d/%d", i+1, len(records)), "image", record.Image)
		outcomes = append(outcomes, evalRecord(svc, baseDir, record))
	}

	agg := metrics.AggregateOutcomes(outcomes)
	printEvalSummary(agg)

	path, err := results.SaveToYAML(manifest, agg, outcomes)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	fmt.Printf("\nReport saved to: %s\n", path)

	return nil
}

func evalRecord(svc *scan.Service, baseDir string, record dataset.Record) metrics.Outcome {
	outcome := metrics.Outcome{
		Image:        record.Image,
		ExpectedData: record.Data,
		ExpectedType: record.Type,
	}

	imagePath := record.Image
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(baseDir, imagePath)
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	start := time.Now()
	result, err := svc.ScanBytes(data)
	outcome.Elapsed = time.Since(start)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Result = result
	return outcome
}

func printEvalSummary(agg *metrics.Aggregate) {
	fmt.Printf("\nEvaluation Summary\n")
	fmt.Printf("==================\n")
	fmt.Printf("Records:      %d\n", agg.TotalRecords)
	fmt.Printf("Matched:      %d\n", agg.Matched)
	fmt.Printf("Missed:       %d\n", agg.Missed)
	fmt.Printf("Mismatched:   %d\n", agg.Mismatched)
	fmt.Printf("Decode errors: %d\n", agg.DecodeErrors)
	fmt.Printf("Accuracy:     %.1f%%\n", agg.Accuracy*100)
	fmt.Printf("Avg decode:   %s\n", agg.AverageElapsed)

	if len(agg.BySymbology) > 0 {
		fmt.Printf("\nBy symbology:\n")
		for _, name := range agg.Symbologies() {
			stats := agg.BySymbology[name]
			fmt.Printf("  %-12s %d/%d (%.1f%%)\n", name, stats.Matched, stats.Total, stats.Accuracy*100)
		}
	}
}
