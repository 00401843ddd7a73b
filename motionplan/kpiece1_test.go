package motionplan

import (
	"context"
	"testing"
	"time"

	"go.viam.com/test"
)

// Scenario 2: a narrow passage that EST tends to stall in front of; KPIECE1
// with a fixed seed should still find a path through the gap.
func TestKPIECE1SolvesNarrowPassage(t *testing.T) {
	si := NewSpaceInformation(planar2DComponents(), StateValidityCheckerFunc(wallValidity), StateDistanceEvaluatorFunc(euclidean), nil)
	si.Starts = []State{{1, 5}}
	proj := NewAxisAlignedProjectionEvaluator(2, []int{0, 1}, []float64{0.5, 0.5})

	options := DefaultPlannerOptions()
	options.RandomSeed = 42
	planner := NewKPIECE1(si, proj, 2, options)

	goal := NewGoalState(State{9, 5}, 0.5, StateDistanceEvaluatorFunc(euclidean))
	test.That(t, planner.Setup(goal), test.ShouldBeNil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sol, err := planner.Solve(ctx, goal)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sol.Approximate, test.ShouldBeFalse)

	test.That(t, si.CheckPath(sol.Path), test.ShouldBeTrue)
}

func TestKPIECE1SetupFailsWithNoValidStarts(t *testing.T) {
	si := NewSpaceInformation(planar2DComponents(), StateValidityCheckerFunc(func(State) bool { return false }), StateDistanceEvaluatorFunc(euclidean), nil)
	si.Starts = []State{{1, 1}}
	proj := NewAxisAlignedProjectionEvaluator(2, []int{0, 1}, []float64{0.5, 0.5})
	planner := NewKPIECE1(si, proj, 2, DefaultPlannerOptions())

	goal := NewGoalState(State{8, 8}, 0.5, StateDistanceEvaluatorFunc(euclidean))
	err := planner.Setup(goal)
	test.That(t, err, test.ShouldEqual, ErrNoValidStartStates)
}

func TestKPIECE1SetupRejectsEmptyProjection(t *testing.T) {
	si := newTestSpaceInformation(alwaysValid)
	planner := NewKPIECE1(si, emptyProjection{}, 0, DefaultPlannerOptions())

	goal := NewGoalState(State{5, 5}, 0.5, StateDistanceEvaluatorFunc(euclidean))
	err := planner.Setup(goal)
	test.That(t, err, test.ShouldEqual, ErrEmptyProjection)
}

func TestKPIECE1ClearResetsTreeAndIteration(t *testing.T) {
	si := NewSpaceInformation(planar2DComponents(), StateValidityCheckerFunc(alwaysValid), StateDistanceEvaluatorFunc(euclidean), nil)
	si.Starts = []State{{1, 1}}
	proj := NewAxisAlignedProjectionEvaluator(2, []int{0, 1}, []float64{0.5, 0.5})
	planner := NewKPIECE1(si, proj, 2, DefaultPlannerOptions())

	goal := NewGoalState(State{5, 5}, 0.5, StateDistanceEvaluatorFunc(euclidean))
	test.That(t, planner.Setup(goal), test.ShouldBeNil)
	test.That(t, planner.size, test.ShouldEqual, 1)

	planner.Clear()
	test.That(t, planner.size, test.ShouldEqual, 0)
	test.That(t, planner.iteration, test.ShouldEqual, 1)
}

func TestKPIECE1PartialCreditKeepsExtension(t *testing.T) {
	// An obstacle slab just past x=5 (5.05 < x < 5.5) lets an extension
	// toward a valid target beyond the slab be cut at the slab and still
	// count as kept when the validated prefix clears MinValidPathPercentage.
	si := NewSpaceInformation(planar2DComponents(), StateValidityCheckerFunc(func(s State) bool { return s[0] <= 5.05 || s[0] >= 5.5 }), StateDistanceEvaluatorFunc(euclidean), nil)
	si.Starts = []State{{5, 5}}
	proj := NewAxisAlignedProjectionEvaluator(2, []int{0, 1}, []float64{0.5, 0.5})

	options := DefaultPlannerOptions()
	options.MinValidPathPercentage = 0.01
	options.RandomSeed = 3
	planner := NewKPIECE1(si, proj, 2, options)

	goal := NewGoalState(State{9, 9}, 0.05, StateDistanceEvaluatorFunc(euclidean))
	test.That(t, planner.Setup(goal), test.ShouldBeNil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := planner.Solve(ctx, goal)
	// Either an approximate or exact solution is acceptable here; the point
	// is that the tree grows past the single root rather than stalling.
	test.That(t, err, test.ShouldBeNil)
	test.That(t, planner.size, test.ShouldBeGreaterThan, 1)
}
