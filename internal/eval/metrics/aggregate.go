package metrics

import (
	"sort"
	"time"

	"framescan/internal/models"
)

// Outcome is the result of decoding one labeled fixture.
type Outcome struct {
	Image        string
	ExpectedData string
	ExpectedType string
	Result       models.ScanResult
	Elapsed      time.Duration
	Error        string // If the image could not be loaded or decoded
}

// Matched reports whether the decoded result agrees with the expectation on
// both payload and symbology.
func (o Outcome) Matched() bool {
	return o.Error == "" && o.Result.Found &&
		o.Result.Data == o.ExpectedData && o.Result.Type == o.ExpectedType
}

// SymbologyStats contains statistics for one symbology
type SymbologyStats struct {
	Total      int
	Matched    int
	Missed     int
	Mismatched int
	Accuracy   float64
}

// Aggregate represents aggregated evaluation metrics
type Aggregate struct {
	TotalRecords int
	Matched      int
	Missed       int // valid image, no symbol found
	Mismatched   int // symbol found but wrong payload or symbology
	DecodeErrors int // image could not be loaded or decoded

	Accuracy float64

	BySymbology map[string]*SymbologyStats

	AverageElapsed time.Duration
	TotalElapsed   time.Duration

	EvaluatedAt time.Time
}

// AggregateOutcomes aggregates per-fixture outcomes into summary metrics.
// Per-symbology buckets are keyed by the expected symbology.
func AggregateOutcomes(outcomes []Outcome) *Aggregate {
	agg := &Aggregate{
		TotalRecords: len(outcomes),
		BySymbology:  make(map[string]*SymbologyStats),
		EvaluatedAt:  time.Now(),
	}

	decoded := 0
	for _, outcome := range outcomes {
		stats := agg.BySymbology[outcome.ExpectedType]
		if stats == nil {
			stats = &SymbologyStats{}
			agg.BySymbology[outcome.ExpectedType] = stats
		}
		stats.Total++

		if outcome.Error != "" {
			agg.DecodeErrors++
			continue
		}

		decoded++
		agg.TotalElapsed += outcome.Elapsed

		switch {
		case outcome.Matched():
			agg.Matched++
			stats.Matched++
		case outcome.Result.Found:
			agg.Mismatched++
			stats.Mismatched++
		default:
			agg.Missed++
			stats.Missed++
		}
	}

	if agg.TotalRecords > 0 {
		agg.Accuracy = float64(agg.Matched) / float64(agg.TotalRecords)
	}
	if decoded > 0 {
		agg.AverageElapsed = agg.TotalElapsed / time.Duration(decoded)
	}
	for _, stats := range agg.BySymbology {
		if stats.Total > 0 {
			stats.Accuracy = float64(stats.Matched) / float64(stats.Total)
		}
	}

	return agg
}

// Symbologies returns the bucket names in stable sorted order.
func (a *Aggregate) Symbologies() []string {
	names := make([]string, 0, len(a.BySymbology))
	for name := range a.BySymbology {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
