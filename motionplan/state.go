package motionplan

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ComponentType distinguishes an ordinary linear configuration component
// from one that wraps around, such as a revolute joint angle.
type ComponentType int

const (
	// Linear components use plain arithmetic difference.
	Linear ComponentType = iota
	// WrappingAngle components use the shortest angular distance, and wrap
	// at +/-Pi.
	WrappingAngle
)

// StateComponent is the static, per-dimension metadata that gives a raw
// float64 in a State its meaning: its bounds, the resolution at which
// motion validity is sampled, and whether it wraps.
type StateComponent struct {
	MinValue   float64
	MaxValue   float64
	Resolution float64
	Type       ComponentType
}

// State is a configuration: a fixed-length vector of real numbers, one per
// dimension of the planning problem. Its length must always equal the
// owning SpaceInformation's Dimension.
type State []float64

// Clone returns an independent copy of s.
func (s State) Clone() State {
	out := make(State, len(s))
	copy(out, s)
	return out
}

// CopyInto copies src's values into dst, which must already be the correct
// length. This is the hot-path equivalent of SpaceInformation.copyState in
// the original: no allocation, just an assignment of every component.
func CopyInto(dst, src State) {
	copy(dst, src)
}

// componentDifference returns s2[i]-s1[i] for a linear component, or the
// shortest signed angular distance from s1[i] to s2[i] for a wrapping
// component (in (-Pi, Pi]).
func componentDifference(comp StateComponent, v1, v2 float64) float64 {
	if comp.Type != WrappingAngle {
		return v2 - v1
	}
	return shortestAngularDistance(v1, v2)
}

// shortestAngularDistance returns the signed distance from angle 'from' to
// angle 'to', wrapped into (-Pi, Pi].
func shortestAngularDistance(from, to float64) float64 {
	const twoPi = 2 * math.Pi
	d := math.Mod(to-from, twoPi)
	if d > math.Pi {
		d -= twoPi
	} else if d <= -math.Pi {
		d += twoPi
	}
	return d
}

// componentDistanceVector fills out with each component's absolute
// difference (wrap-aware for angular components), for use by an aggregate
// distance evaluator.
func componentDistanceVector(components []StateComponent, s1, s2 State, out []float64) {
	for i, comp := range components {
		out[i] = math.Abs(componentDifference(comp, s1[i], s2[i]))
	}
}

// EuclideanDistance is a StateDistanceEvaluator over components sharing a
// common configuration space: the L2 norm of the per-component (wrap-aware)
// differences. It is the natural default whenever no problem-specific metric
// (e.g. a weighted joint-space distance) is required.
type EuclideanDistance struct {
	components []StateComponent
	scratch    []float64
}

// NewEuclideanDistance builds a EuclideanDistance evaluator over components.
func NewEuclideanDistance(components []StateComponent) *EuclideanDistance {
	return &EuclideanDistance{components: components, scratch: make([]float64, len(components))}
}

// Distance implements StateDistanceEvaluator.
func (d *EuclideanDistance) Distance(a, b State) float64 {
	componentDistanceVector(d.components, a, b, d.scratch)
	return floats.Norm(d.scratch, 2)
}
