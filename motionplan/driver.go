package motionplan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.viam.com/motionlib/logging"
)

// Planner is the common surface EST, KPIECE1, and IKPlanner all satisfy.
// Solve is synchronous: it blocks until either a solution is found or ctx is
// done, and always returns whatever the best candidate found by then was.
// The goal is passed explicitly on every call rather than read from shared
// SpaceInformation state, so a meta-planner like IKPlanner can swap in a
// synthesized candidate goal for one attempt without mutating anything the
// caller can observe.
type Planner interface {
	Setup(goal Goal) error
	Solve(ctx context.Context, goal Goal) (*Solution, error)
	Clear()
	States() []State
}

// Solve runs planner against goal with a wall-clock budget, tagging the
// invocation with a random ID so its log lines can be correlated even when
// several solves run back to back. If timeout is zero, ctx's existing
// deadline (or lack of one) is used unchanged.
func Solve(ctx context.Context, logger logging.Logger, planner Planner, goal Goal, timeout time.Duration) (*Solution, error) {
	id := uuid.New().String()
	log := logger.Sublogger(id)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Debugw("starting solve", "timeout", timeout)
	solution, err := planner.Solve(ctx, goal)
	if err != nil {
		log.Warnw("solve failed", "error", err)
		return nil, err
	}

	log.Debugw("solve finished",
		"approximate", solution.Approximate,
		"path_length", len(solution.Path),
		"difference", solution.Difference,
	)
	return solution, nil
}
