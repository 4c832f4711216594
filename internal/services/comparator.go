package services

import (
	"context"
	"errors"
	"fmt"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/platform/obs"
	"parcel-robot-sim/internal/ports"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoSamples is returned when a comparison is requested with no samples.
var ErrNoSamples = errors.New("compare: sample count must be positive")

// Contender is a policy entered into a comparison with its starting memory.
type Contender struct {
	Policy Policy
	Memory Memory
}

// PolicyResult aggregates the turns a policy needed over every sample.
type PolicyResult struct {
	Policy       string  `json:"policy"`
	TotalTurns   int     `json:"total_turns"`
	AverageTurns float64 `json:"average_turns"`
}

// Comparison is the outcome of running several policies on the same samples.
type Comparison struct {
	RunID   string         `json:"run_id"`
	Samples int            `json:"samples"`
	Results []PolicyResult `json:"results"`
}

// Comparator runs contenders against identical initial states and averages
// their turn counts.
type Comparator struct {
	Runner *Runner
	// Workers bounds how many samples run at once; values below 2 run
	// samples sequentially. Results do not depend on it.
	Workers int
	// Recorder, when set, receives a report of every finished comparison.
	Recorder ports.ComparisonRecorder
	Log      *zap.Logger
}

func NewComparator(runner *Runner, workers int, log *zap.Logger) *Comparator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Comparator{Runner: runner, Workers: workers, Log: log}
}

// Compare runs a and b on the same samples and returns their average turns.
func (c *Comparator) Compare(
	ctx context.Context,
	a, b Contender,
	samples int,
	factory ports.StateFactory,
) (avgA, avgB float64, err error) {
	res, err := c.CompareAll(ctx, []Contender{a, b}, samples, factory)
	if err != nil {
		return 0, 0, err
	}
	return res.Results[0].AverageTurns, res.Results[1].AverageTurns, nil
}

// CompareAll draws samples initial states from factory and runs every
// contender against each one, each starting from its own memory.
func (c *Comparator) CompareAll(
	ctx context.Context,
	contenders []Contender,
	samples int,
	factory ports.StateFactory,
) (_ Comparison, err error) {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	defer obs.Time(ctx, log, "comparator.CompareAll")(&err)

	if samples <= 0 {
		return Comparison{}, ErrNoSamples
	}
	if len(contenders) == 0 {
		return Comparison{}, errors.New("compare: no contenders")
	}
	if factory == nil {
		return Comparison{}, errors.New("compare: state factory is nil")
	}
	runner := c.Runner
	if runner == nil {
		runner = NewRunner(log)
	}

	// States are drawn up front, in order, so a seeded factory yields the same
	// samples however many workers run them.
	states := make([]domain.WorldState, samples)
	for i := range states {
		s, err := factory.NewState()
		if err != nil {
			return Comparison{}, fmt.Errorf("compare: sample %d: new state: %w", i+1, err)
		}
		states[i] = s
	}

	turns := make([][]int, samples)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Workers, 1))

	for i, state := range states {
		turns[i] = make([]int, len(contenders))
		g.Go(func() error {
			for j, ct := range contenders {
				policy := ct.Policy
				if sp, ok := policy.(SamplePolicy); ok {
					policy = sp.ForSample(i)
				}
				n, err := runner.Run(gctx, state, policy, ct.Memory)
				if err != nil {
					return fmt.Errorf("compare: sample %d: %w", i+1, err)
				}
				turns[i][j] = n
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	out := Comparison{
		RunID:   uuid.NewString(),
		Samples: samples,
		Results: make([]PolicyResult, len(contenders)),
	}
	for j, ct := range contenders {
		total := 0
		for i := range turns {
			total += turns[i][j]
		}
		out.Results[j] = PolicyResult{
			Policy:       ct.Policy.Name(),
			TotalTurns:   total,
			AverageTurns: float64(total) / float64(samples),
		}
	}

	log.Info("comparison done",
		zap.String("run_id", out.RunID),
		zap.Int("samples", samples),
		zap.Any("results", out.Results),
	)

	if c.Recorder != nil {
		if err := c.Recorder.RecordComparison(ctx, out.Report(time.Now().UTC())); err != nil {
			return Comparison{}, fmt.Errorf("compare: record run %s: %w", out.RunID, err)
		}
	}

	return out, nil
}

// Report converts the comparison into its persisted form.
func (c Comparison) Report(ranAt time.Time) ports.ComparisonReport {
	policies := make([]ports.PolicyTurns, 0, len(c.Results))
	for _, r := range c.Results {
		policies = append(policies, ports.PolicyTurns{
			Policy:       r.Policy,
			TotalTurns:   r.TotalTurns,
			AverageTurns: r.AverageTurns,
		})
	}
	return ports.ComparisonReport{
		RunID:    c.RunID,
		Samples:  c.Samples,
		Policies: policies,
		RanAt:    ranAt,
	}
}
