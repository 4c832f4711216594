package ports

import (
	"context"
	"time"
)

// Summary of a single policy within a comparison run.
type PolicyTurns struct {
	Policy       string
	TotalTurns   int
	AverageTurns float64
}

// Persisted report of a comparison run.
type ComparisonReport struct {
	RunID    string
	Samples  int
	Policies []PolicyTurns
	RanAt    time.Time
}

// Port: a sink for comparison reports.
type ComparisonRecorder interface {
	RecordComparison(ctx context.Context, report ComparisonReport) error
	ListComparisons(ctx context.Context, limit int) ([]ComparisonReport, error)
}
