package motionplan

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func planar2DComponents() []StateComponent {
	return []StateComponent{
		{MinValue: 0, MaxValue: 10, Resolution: 0.05, Type: Linear},
		{MinValue: 0, MaxValue: 10, Resolution: 0.05, Type: Linear},
	}
}

func euclidean(a, b State) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// wallValidity models the narrow-passage obstacle from scenario 2: a wall at
// x in [4.9, 5.1] except a gap at y in [4.9, 5.1].
func wallValidity(s State) bool {
	x, y := s[0], s[1]
	if x < 4.9 || x > 5.1 {
		return true
	}
	return y >= 4.9 && y <= 5.1
}

func alwaysValid(State) bool { return true }

func TestFindDifferenceStepTruncates(t *testing.T) {
	si := NewSpaceInformation(planar2DComponents(), StateValidityCheckerFunc(alwaysValid), StateDistanceEvaluatorFunc(euclidean), nil)
	nd, step := si.FindDifferenceStep(State{0, 0}, State{1, 0}, 1.0)
	test.That(t, nd, test.ShouldBeGreaterThanOrEqualTo, 1)
	test.That(t, step[0]*float64(nd), test.ShouldAlmostEqual, 1.0)
}

func TestCheckMotionSubdivisionSound(t *testing.T) {
	si := NewSpaceInformation(planar2DComponents(), StateValidityCheckerFunc(wallValidity), StateDistanceEvaluatorFunc(euclidean), nil)

	// A segment that passes through the gap must validate.
	test.That(t, si.CheckMotionSubdivision(State{4, 5}, State{6, 5}), test.ShouldBeTrue)

	// A segment that crosses the wall away from the gap must not.
	test.That(t, si.CheckMotionSubdivision(State{4, 1}, State{6, 1}), test.ShouldBeFalse)
}

func TestCheckMotionIncrementalAgreesWithSubdivision(t *testing.T) {
	si := NewSpaceInformation(planar2DComponents(), StateValidityCheckerFunc(wallValidity), StateDistanceEvaluatorFunc(euclidean), nil)

	lastValid := make(State, 2)
	ok, frac := si.CheckMotionIncremental(State{4, 1}, State{6, 1}, lastValid)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, frac, test.ShouldBeGreaterThanOrEqualTo, 0.0)
	test.That(t, frac, test.ShouldBeLessThan, 1.0)
	test.That(t, si.CheckMotionSubdivision(State{4, 1}, State{6, 1}), test.ShouldEqual, ok)

	okThrough, _ := si.CheckMotionIncremental(State{4, 5}, State{6, 5}, lastValid)
	test.That(t, okThrough, test.ShouldBeTrue)
}

func TestCheckPathRequiresValidPrefix(t *testing.T) {
	si := NewSpaceInformation(planar2DComponents(), StateValidityCheckerFunc(wallValidity), StateDistanceEvaluatorFunc(euclidean), nil)
	path := []State{{4, 5}, {6, 5}, {8, 5}}
	test.That(t, si.CheckPath(path), test.ShouldBeTrue)

	path[1] = State{6, 1}
	test.That(t, si.CheckPath(path), test.ShouldBeFalse)
}

func TestInterpolateWrapsShortWay(t *testing.T) {
	components := []StateComponent{{MinValue: -math.Pi, MaxValue: math.Pi, Resolution: 0.01, Type: WrappingAngle}}
	si := NewSpaceInformation(components, StateValidityCheckerFunc(alwaysValid), StateDistanceEvaluatorFunc(euclidean), nil)

	out := make(State, 1)
	si.Interpolate(State{-3.0}, State{3.0}, 0.5, out)
	// Halfway along the short arc from -3.0 to 3.0 should be near +/-pi, not 0.
	test.That(t, math.Abs(out[0]), test.ShouldBeGreaterThan, 2.5)
}

func TestSatisfiesBoundsWrapsAngles(t *testing.T) {
	components := []StateComponent{{MinValue: -math.Pi, MaxValue: math.Pi, Resolution: 0.01, Type: WrappingAngle}}
	si := NewSpaceInformation(components, StateValidityCheckerFunc(alwaysValid), StateDistanceEvaluatorFunc(euclidean), nil)
	test.That(t, si.SatisfiesBounds(State{3.5 * math.Pi}), test.ShouldBeTrue)
}
