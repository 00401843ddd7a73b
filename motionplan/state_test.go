package motionplan

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestComponentDifferenceLinear(t *testing.T) {
	comp := StateComponent{MinValue: 0, MaxValue: 10, Resolution: 0.1, Type: Linear}
	test.That(t, componentDifference(comp, 2, 5), test.ShouldAlmostEqual, 3.0)
	test.That(t, componentDifference(comp, 5, 2), test.ShouldAlmostEqual, -3.0)
}

func TestShortestAngularDistanceWraps(t *testing.T) {
	// Scenario 4: start -3.0, goal 3.0. Going the long way is ~6 radians;
	// the short way wraps around +/-pi and is ~0.283 radians.
	d := shortestAngularDistance(-3.0, 3.0)
	test.That(t, math.Abs(d), test.ShouldBeLessThan, 0.3)
	test.That(t, math.Abs(d) > 0.25, test.ShouldBeTrue)
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99
	test.That(t, s[0], test.ShouldAlmostEqual, 1.0)
}

func TestCopyInto(t *testing.T) {
	dst := make(State, 3)
	CopyInto(dst, State{4, 5, 6})
	test.That(t, dst[0], test.ShouldAlmostEqual, 4.0)
	test.That(t, dst[2], test.ShouldAlmostEqual, 6.0)
}

func TestEuclideanDistanceLinear(t *testing.T) {
	components := []StateComponent{
		{MinValue: 0, MaxValue: 10, Resolution: 0.1, Type: Linear},
		{MinValue: 0, MaxValue: 10, Resolution: 0.1, Type: Linear},
	}
	d := NewEuclideanDistance(components)
	test.That(t, d.Distance(State{0, 0}, State{3, 4}), test.ShouldAlmostEqual, 5.0)
	test.That(t, d.Distance(State{1, 1}, State{1, 1}), test.ShouldAlmostEqual, 0.0)
}

func TestEuclideanDistanceWrapsAngularComponent(t *testing.T) {
	components := []StateComponent{{MinValue: -math.Pi, MaxValue: math.Pi, Resolution: 0.01, Type: WrappingAngle}}
	d := NewEuclideanDistance(components)
	// Same scenario as TestShortestAngularDistanceWraps: the short way is
	// the one EuclideanDistance should report, not the ~6 radian long way.
	test.That(t, d.Distance(State{-3.0}, State{3.0}), test.ShouldBeLessThan, 0.3)
}
