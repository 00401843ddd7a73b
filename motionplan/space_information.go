package motionplan

import (
	"math"

	"go.viam.com/motionlib/logging"
)

// StateValidityChecker decides whether a single configuration is
// collision-free. It is assumed deterministic and may be expensive; the
// planner never memoizes calls to it.
type StateValidityChecker interface {
	IsValid(s State) bool
}

// StateValidityCheckerFunc adapts a plain function to a StateValidityChecker.
type StateValidityCheckerFunc func(s State) bool

// IsValid implements StateValidityChecker.
func (f StateValidityCheckerFunc) IsValid(s State) bool { return f(s) }

// StateDistanceEvaluator measures distance between two configurations. It is
// used as the default proxy for goal distance when a Goal does not supply
// its own metric.
type StateDistanceEvaluator interface {
	Distance(a, b State) float64
}

// StateDistanceEvaluatorFunc adapts a plain function to a
// StateDistanceEvaluator.
type StateDistanceEvaluatorFunc func(a, b State) float64

// Distance implements StateDistanceEvaluator.
func (f StateDistanceEvaluatorFunc) Distance(a, b State) float64 { return f(a, b) }

// SpaceInformation holds everything a planner needs to know about the
// configuration space: its dimensionality and per-component metadata, the
// collaborators that decide validity and distance, the start states, and
// the goal. It corresponds to OMPL's SpaceInformationKinematic.
type SpaceInformation struct {
	Dimension  int
	Components []StateComponent
	Validity   StateValidityChecker
	Distance   StateDistanceEvaluator
	Starts     []State
	Goal       Goal
	Logger     logging.Logger
}

// NewSpaceInformation constructs a SpaceInformation. If logger is nil, a
// debug-level logger named "motionplan" is created so callers may omit it
// in tests.
func NewSpaceInformation(components []StateComponent, validity StateValidityChecker, distance StateDistanceEvaluator, logger logging.Logger) *SpaceInformation {
	if logger == nil {
		logger = logging.NewDebugLogger("motionplan")
	}
	return &SpaceInformation{
		Dimension:  len(components),
		Components: components,
		Validity:   validity,
		Distance:   distance,
		Logger:     logger,
	}
}

// IsValid delegates to the configured StateValidityChecker.
func (si *SpaceInformation) IsValid(s State) bool {
	return si.Validity.IsValid(s)
}

// SatisfiesBounds reports whether every component of s is within
// [MinValue, MaxValue]. Wrapping components are normalized into range
// before the comparison, so e.g. an angle stored as 3.5*Pi is treated as
// equivalent to 1.5*Pi rather than being rejected outright.
func (si *SpaceInformation) SatisfiesBounds(s State) bool {
	for i, comp := range si.Components {
		v := s[i]
		if comp.Type == WrappingAngle {
			v = wrapToRange(v, comp.MinValue, comp.MaxValue)
		}
		if v < comp.MinValue || v > comp.MaxValue {
			return false
		}
	}
	return true
}

func wrapToRange(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return v
	}
	for v < lo {
		v += span
	}
	for v > hi {
		v -= span
	}
	return v
}

// CopyState assigns every component of src into dst.
func (si *SpaceInformation) CopyState(dst, src State) {
	CopyInto(dst, src)
}

// FindDifferenceStep computes, for each component, the shortest signed
// difference from s1 to s2 (wrap-aware), the number of subdivisions nd
// needed so that no single step exceeds factor*resolution in any
// component, and the per-component step vector diff/nd.
func (si *SpaceInformation) FindDifferenceStep(s1, s2 State, factor float64) (nd int, step []float64) {
	diff := make([]float64, si.Dimension)
	for i, comp := range si.Components {
		diff[i] = componentDifference(comp, s1[i], s2[i])
	}

	nd = 1
	for i, comp := range si.Components {
		d := 1 + int(math.Abs(diff[i])/(factor*comp.Resolution))
		if d > nd {
			nd = d
		}
	}

	step = make([]float64, si.Dimension)
	for i := range step {
		step[i] = diff[i] / float64(nd)
	}
	return nd, step
}

// Interpolate writes into out the configuration a fraction t of the way from
// s1 toward s2, taking the shortest wrap-aware path for angular components.
// t is not clamped; callers wanting to cap an extension's length pass
// t = Rho/distance.
func (si *SpaceInformation) Interpolate(s1, s2 State, t float64, out State) {
	for i, comp := range si.Components {
		d := componentDifference(comp, s1[i], s2[i])
		out[i] = s1[i] + t*d
	}
}

// subdivisionRange is a half-open (well, closed-both-ends) integer interval
// awaiting bisection in CheckMotionSubdivision.
type subdivisionRange struct{ lo, hi int }

// CheckMotionSubdivision decides whether the straight-line segment from s1
// to s2 is collision-free, by recursively bisecting the interior sample
// points rather than sweeping them in order. s1 is assumed already valid.
// This is a set membership test only: it says nothing about which prefix of
// the segment is valid when the answer is false — use
// CheckMotionIncremental for that.
func (si *SpaceInformation) CheckMotionSubdivision(s1, s2 State) bool {
	if !si.IsValid(s2) {
		return false
	}

	nd, step := si.FindDifferenceStep(s1, s2, 1.0)

	queue := make([]subdivisionRange, 0, 8)
	if nd >= 2 {
		queue = append(queue, subdivisionRange{lo: 1, hi: nd - 1})
	}

	test := make(State, si.Dimension)
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]

		mid := (r.lo + r.hi) / 2
		for j := range test {
			test[j] = s1[j] + float64(mid)*step[j]
		}
		if !si.IsValid(test) {
			return false
		}

		if r.lo < mid {
			queue = append(queue, subdivisionRange{lo: r.lo, hi: mid - 1})
		}
		if r.hi > mid {
			queue = append(queue, subdivisionRange{lo: mid + 1, hi: r.hi})
		}
	}
	return true
}

// CheckMotionIncremental sweeps forward from s1 to s2 sample by sample. If
// s2 itself is invalid it returns (false, 0) at once, without sweeping and
// without touching lastValid. Otherwise, on the first invalid sample it
// writes the last valid point into lastValid (which must already be the
// right length) and returns the fraction of the segment that validated, in
// [0, 1). It returns true only if the entire segment, including s2, is
// valid.
func (si *SpaceInformation) CheckMotionIncremental(s1, s2 State, lastValid State) (ok bool, lastValidTime float64) {
	if !si.IsValid(s2) {
		return false, 0
	}

	nd, step := si.FindDifferenceStep(s1, s2, 1.0)

	test := make(State, si.Dimension)
	for j := 1; j < nd; j++ {
		for k := range test {
			test[k] = s1[k] + float64(j)*step[k]
		}
		if !si.IsValid(test) {
			if lastValid != nil {
				factor := float64(j - 1)
				for k := range lastValid {
					lastValid[k] = s1[k] + factor*step[k]
				}
			}
			return false, float64(j-1) / float64(nd)
		}
	}
	return true, 0
}

// CheckPath reports whether path's first state is valid and every
// consecutive pair passes CheckMotionSubdivision.
func (si *SpaceInformation) CheckPath(path []State) bool {
	if len(path) == 0 {
		return false
	}
	if !si.IsValid(path[0]) {
		return false
	}
	for i := 0; i < len(path)-1; i++ {
		if !si.CheckMotionSubdivision(path[i], path[i+1]) {
			return false
		}
	}
	return true
}

// InterpolatePath returns path with nd-1 intermediate states inserted
// between every consecutive pair, at a resolution refined by factor.
func (si *SpaceInformation) InterpolatePath(path []State, factor float64) []State {
	if len(path) == 0 {
		return nil
	}
	out := make([]State, 0, len(path))
	for i := 0; i < len(path)-1; i++ {
		s1, s2 := path[i], path[i+1]
		out = append(out, s1)

		nd, step := si.FindDifferenceStep(s1, s2, factor)
		for j := 1; j < nd; j++ {
			mid := make(State, si.Dimension)
			for k := range mid {
				mid[k] = s1[k] + float64(j)*step[k]
			}
			out = append(out, mid)
		}
	}
	out = append(out, path[len(path)-1])
	return out
}

// GetMotionStates materializes the full discretized sweep from s1 to s2,
// including both endpoints, at the base resolution.
func (si *SpaceInformation) GetMotionStates(s1, s2 State) []State {
	nd, step := si.FindDifferenceStep(s1, s2, 1.0)
	states := make([]State, 0, nd+1)
	states = append(states, s1.Clone())
	for j := 1; j < nd; j++ {
		mid := make(State, si.Dimension)
		for k := range mid {
			mid[k] = s1[k] + float64(j)*step[k]
		}
		states = append(states, mid)
	}
	states = append(states, s2.Clone())
	return states
}
