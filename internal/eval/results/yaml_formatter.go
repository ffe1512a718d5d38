package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"framescan/internal/eval/metrics"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	ManifestPath string `yaml:"manifestpath"`
	SampleSize   int    `yaml:"samplesize"`
	Timestamp    string `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Image        string `yaml:"image"`
	ExpectedData string `yaml:"expecteddata"`
	ExpectedType string `yaml:"expectedtype"`
	Found        bool   `yaml:"found"`
	Data         string `yaml:"data,omitempty"`
	Type         string `yaml:"type,omitempty"`
	Matched      bool   `yaml:"matched"`
	ElapsedMS    int64  `yaml:"elapsedms"`
	Error        string `yaml:"error,omitempty"`
}

// SymbologySummary represents per-symbology accuracy in the eval YAML
type SymbologySummary struct {
	Total    int     `yaml:"total"`
	Matched  int     `yaml:"matched"`
	Accuracy float64 `yaml:"accuracy"`
}

// EvalSpec represents the complete evaluation report
type EvalSpec struct {
	Config      EvalConfig                  `yaml:"config"`
	Accuracy    float64                     `yaml:"accuracy"`
	Matched     int                         `yaml:"matched"`
	Missed      int                         `yaml:"missed"`
	Mismatched  int                         `yaml:"mismatched"`
	Errors      int                         `yaml:"errors"`
	BySymbology map[string]SymbologySummary `yaml:"bysymbology"`
	Results     []EvalResult                `yaml:"results"`
}

// SaveToYAML writes the evaluation report to a timestamped YAML file in the
// evals/ directory and returns its path.
func SaveToYAML(manifestPath string, agg *metrics.Aggregate, outcomes []metrics.Outcome) (string, error) {
	// Create evals directory
	if err := os.MkdirAll("evals", 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	spec := EvalSpec{
		Config: EvalConfig{
			ManifestPath: manifestPath,
			SampleSize:   agg.TotalRecords,
			Timestamp:    timestamp,
		},
		Accuracy:    agg.Accuracy,
		Matched:     agg.Matched,
		Missed:      agg.Missed,
		Mismatched:  agg.Mismatched,
		Errors:      agg.DecodeErrors,
		BySymbology: make(map[string]SymbologySummary, len(agg.BySymbology)),
		Results:     make([]EvalResult, 0, len(outcomes)),
	}

	for name, stats := range agg.BySymbology {
		spec.BySymbology[name] = SymbologySummary{
			Total:    stats.Total,
			Matched:  stats.Matched,
			Accuracy: stats.Accuracy,
		}
	}

	for _, outcome := range outcomes {
		spec.Results = append(spec.Results, EvalResult{
			Image:        outcome.Image,
			ExpectedData: outcome.ExpectedData,
			ExpectedType: outcome.ExpectedType,
			Found:        outcome.Result.Found,
			Data:         outcome.Result.Data,
			Type:         outcome.Result.Type,
			Matched:      outcome.Matched(),
			ElapsedMS:    outcome.Elapsed.Milliseconds(),
			Error:        outcome.Error,
		})
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	path := filepath.Join("evals", fmt.Sprintf("eval_%s.yaml", timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write results file: %w", err)
	}

	return path, nil
}
