package motionplan

import (
	"context"
	"time"

	"go.viam.com/motionlib/motionplan/ik"
	"go.viam.com/motionlib/motionplan/rng"
)

// solutionRecorder is the subset of Goal every concrete goal type in this
// package satisfies, letting IKPlanner attach a result to whichever goal
// object the caller supplied without knowing its concrete type.
type solutionRecorder interface {
	SetSolutionPath(path []State, approximate bool)
	SetDifference(d float64)
}

// IKPlanner decorates an inner tree planner so it can be pointed at a goal
// region that has no single concrete target: it alternates between running
// a genetic search (GAIK) for a candidate goal state and re-running the
// inner planner toward that candidate, threading the synthesized candidate
// through as an explicit Goal argument rather than mutating any shared
// SpaceInformation state. If the supplied goal already exposes a concrete
// state, IKPlanner simply delegates to the inner planner directly.
type IKPlanner struct {
	si    *SpaceInformation
	inner Planner
	gaik  *ik.GAIK

	// CandidateThreshold is the acceptance radius given to the temporary
	// GoalState built around each GAIK candidate.
	CandidateThreshold float64
}

// NewIKPlanner builds an IKPlanner wrapping inner. gaik is only exercised
// when Solve is given a goal that is not a StateGoal (a SamplableGoal
// region such as GoalRegionKinematic included).
func NewIKPlanner(si *SpaceInformation, inner Planner, gaik *ik.GAIK) *IKPlanner {
	return &IKPlanner{si: si, inner: inner, gaik: gaik, CandidateThreshold: 1e-3}
}

// Setup delegates directly when goal is already concrete; for a region
// goal, setup is deferred to each iteration of Solve since it depends on
// the GAIK-synthesized candidate.
func (p *IKPlanner) Setup(goal Goal) error {
	if _, ok := goal.(StateGoal); ok {
		return p.inner.Setup(goal)
	}
	return nil
}

// Clear discards the inner planner's tree.
func (p *IKPlanner) Clear() { p.inner.Clear() }

// States returns the inner planner's current exploration tree.
func (p *IKPlanner) States() []State { return p.inner.States() }

// Solve implements the region-goal loop described on IKPlanner, or simply
// forwards to the inner planner when goal is already concrete.
func (p *IKPlanner) Solve(ctx context.Context, goal Goal) (*Solution, error) {
	if _, ok := goal.(StateGoal); ok {
		return p.inner.Solve(ctx, goal)
	}
	if p.gaik == nil {
		return nil, ErrUnknownGoalType
	}

	var bestApprox *Solution

	for {
		select {
		case <-ctx.Done():
			if bestApprox != nil {
				return bestApprox, nil
			}
			return nil, ErrPlannerFailed
		default:
		}

		gaikCtx, cancel := halfDeadlineContext(ctx)
		candidate := make(State, p.si.Dimension)
		_, err := p.gaik.Run(gaikCtx, candidate)
		cancel()
		if err != nil {
			return nil, err
		}

		candidateGoal := NewGoalState(candidate, p.CandidateThreshold, p.si.Distance)
		p.inner.Clear()
		if err := p.inner.Setup(candidateGoal); err != nil {
			if bestApprox != nil {
				return bestApprox, nil
			}
			return nil, err
		}

		sol, err := p.inner.Solve(ctx, candidateGoal)
		if err != nil {
			continue
		}

		if !sol.Approximate {
			endpoint := sol.Path[len(sol.Path)-1]
			regionSatisfied, dist := goal.IsSatisfied(endpoint)
			final := &Solution{Path: sol.Path, Approximate: !regionSatisfied, Difference: dist}
			if regionSatisfied {
				if recorder, ok := goal.(solutionRecorder); ok {
					recorder.SetSolutionPath(final.Path, false)
					recorder.SetDifference(dist)
				}
				return final, nil
			}
			if bestApprox == nil || dist < bestApprox.Difference {
				bestApprox = final
			}
		}
	}
}

// Bounds converts si's per-component metadata into the []ik.Bound form
// GAIK/HCIK sample within.
func Bounds(si *SpaceInformation) []ik.Bound {
	bounds := make([]ik.Bound, si.Dimension)
	for i, comp := range si.Components {
		bounds[i] = ik.Bound{Min: comp.MinValue, Max: comp.MaxValue}
	}
	return bounds
}

// NewRegionGAIK builds a GAIK searcher over si's bounds, minimizing goal's
// reported distance and rejecting states si considers invalid.
func NewRegionGAIK(si *SpaceInformation, goal Goal, options ik.GAIKOptions, seed int64) *ik.GAIK {
	valid := func(s []float64) bool { return si.IsValid(State(s)) && si.SatisfiesBounds(State(s)) }
	distance := func(s []float64) float64 {
		_, d := goal.IsSatisfied(State(s))
		return d
	}
	return ik.NewGAIK(Bounds(si), valid, distance, options, si.Logger, seed)
}

// NewRegionHCIK builds an HCIK hill climber over si's bounds and goal, for
// use as an IKPlanner-driven KPIECE1's SetHCIK argument.
func NewRegionHCIK(si *SpaceInformation, goal Goal, seed int64) *ik.HCIK {
	valid := func(s []float64) bool { return si.IsValid(State(s)) && si.SatisfiesBounds(State(s)) }
	distance := func(s []float64) float64 {
		_, d := goal.IsSatisfied(State(s))
		return d
	}
	return ik.NewHCIK(Bounds(si), valid, distance, rng.New(seed))
}

// halfDeadlineContext returns a context bounded by half of ctx's remaining
// time-to-deadline, so IKPlanner never lets a single GAIK attempt consume
// the whole remaining solve budget. If ctx has no deadline, it is returned
// unchanged (GAIK stops on satisfaction or population convergence instead).
func halfDeadlineContext(ctx context.Context) (context.Context, context.CancelFunc) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return ctx, func() {}
	}
	half := time.Until(deadline) / 2
	if half <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, half)
}
