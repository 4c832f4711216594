package services

import (
	"context"
	"fmt"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/platform/obs"

	"go.uber.org/zap"
)

// TurnEvent describes one completed turn of a simulation.
type TurnEvent struct {
	Turn      int
	Direction domain.Location
	Place     domain.Location
	Remaining int
}

// Runner drives a policy against a world state until every parcel is delivered.
//
// There is no turn cap: a policy without a progress guarantee may run for a
// very long time. The context is checked between turns so callers can stop
// such runs; a run that completes is never affected by it.
type Runner struct {
	Log *zap.Logger
	// Trace, when set, is called after every turn.
	Trace func(TurnEvent)
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Log: log}
}

// Run returns the number of turns policy needed to empty state's parcels,
// starting from memory. On error the turns completed so far are returned.
func (r *Runner) Run(ctx context.Context, state domain.WorldState, policy Policy, memory Memory) (int, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	turns := 0
	for !state.Done() {
		if err := ctx.Err(); err != nil {
			obs.SimulationsTotal.WithLabelValues(policy.Name(), "cancelled").Inc()
			return turns, fmt.Errorf("run %s: after %d turns: %w", policy.Name(), turns, err)
		}

		action, err := policy.Decide(ctx, state, memory)
		if err != nil {
			obs.SimulationsTotal.WithLabelValues(policy.Name(), "error").Inc()
			return turns, fmt.Errorf("run %s: turn %d: %w", policy.Name(), turns+1, err)
		}

		state = state.Move(action.Direction)
		memory = action.Memory
		turns++

		if ce := log.Check(zap.DebugLevel, "moved"); ce != nil {
			ce.Write(
				zap.String("policy", policy.Name()),
				zap.Int("turn", turns),
				zap.String("direction", string(action.Direction)),
				zap.Int("remaining", state.ParcelCount()),
			)
		}
		if r.Trace != nil {
			r.Trace(TurnEvent{
				Turn:      turns,
				Direction: action.Direction,
				Place:     state.Place(),
				Remaining: state.ParcelCount(),
			})
		}
	}

	obs.SimulationsTotal.WithLabelValues(policy.Name(), "done").Inc()
	obs.SimulationTurns.WithLabelValues(policy.Name()).Observe(float64(turns))
	log.Debug("simulation done", zap.String("policy", policy.Name()), zap.Int("turns", turns))

	return turns, nil
}
