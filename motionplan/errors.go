package motionplan

import "errors"

// ErrNoValidStartStates is returned by Setup/Solve when none of the supplied
// start states satisfy both bounds and validity.
var ErrNoValidStartStates = errors.New("motionplan: no valid start states")

// ErrUnknownGoalType is returned by IKPlanner.Solve when the goal is not a
// StateGoal and no GAIK searcher was supplied to synthesize a candidate
// goal state for it.
var ErrUnknownGoalType = errors.New("motionplan: unknown or undefined goal type")

// ErrPlannerFailed is returned by Solve (EST, KPIECE1, IKPlanner) when the
// context ends before any motion was produced that could serve as even an
// approximate solution.
var ErrPlannerFailed = errors.New("motionplan: planner failed to find a path")

// ErrEmptyProjection is returned when a ProjectionEvaluator produces a
// zero-length coordinate, which would collapse the entire state space into
// one grid cell.
var ErrEmptyProjection = errors.New("motionplan: projection evaluator produced an empty coordinate")
