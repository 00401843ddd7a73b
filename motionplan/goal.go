package motionplan

// Goal is the minimal interface every goal specification implements: a
// membership predicate that also reports how far a configuration is from
// being satisfied. Planners use the distance to compare candidate motions;
// a GoalState reports its distance to the target even when within
// threshold.
type Goal interface {
	// IsSatisfied reports whether s lies in the goal set, and the goal's
	// distance measure for s (not forced to 0 when satisfied).
	IsSatisfied(s State) (satisfied bool, distance float64)
}

// StateGoal is a Goal defined by a single concrete target configuration.
// Planners that can sample directly toward a goal (rather than merely test
// membership) look for this interface first.
type StateGoal interface {
	Goal
	StateValue() State
}

// SamplableGoal is a Goal that can additionally produce configurations near
// (or in) the goal set, for planners whose goal-biased sampling step needs a
// concrete target when the goal has no single state.
type SamplableGoal interface {
	Goal
	SampleNearGoal(out State) bool
}

// Solution records what a planner found: the path it built, whether that
// path only approximately reaches the goal, and the measured distance from
// the path's endpoint to the goal set.
type Solution struct {
	Path        []State
	Approximate bool
	Difference  float64
}

// goalRecorder is the shared "receive a solution" behavior every concrete
// Goal embeds, corresponding to setSolutionPath/setDifference/isAchieved on
// OMPL's base::Goal.
type goalRecorder struct {
	solution *Solution
}

// SetSolutionPath attaches path as this goal's solution.
func (r *goalRecorder) SetSolutionPath(path []State, approximate bool) {
	if r.solution == nil {
		r.solution = &Solution{}
	}
	r.solution.Path = path
	r.solution.Approximate = approximate
}

// SetDifference records the measured distance from the solution's endpoint
// to the goal set.
func (r *goalRecorder) SetDifference(d float64) {
	if r.solution == nil {
		r.solution = &Solution{}
	}
	r.solution.Difference = d
}

// IsAchieved reports whether a solution was set and it was exact, not
// merely the closest approach found before the deadline.
func (r *goalRecorder) IsAchieved() bool {
	return r.solution != nil && !r.solution.Approximate
}

// SolutionPath returns the recorded solution, or nil if none was set.
func (r *goalRecorder) SolutionPath() *Solution {
	return r.solution
}

// GoalState is a goal satisfied by reaching within Threshold of a single
// concrete target configuration. It is both a StateGoal (for planners that
// sample it directly) and a SamplableGoal (sampling near it just returns the
// target itself).
type GoalState struct {
	goalRecorder
	Target    State
	Threshold float64
	Distance  StateDistanceEvaluator
}

// NewGoalState builds a GoalState.
func NewGoalState(target State, threshold float64, distance StateDistanceEvaluator) *GoalState {
	return &GoalState{Target: target, Threshold: threshold, Distance: distance}
}

// IsSatisfied implements Goal.
func (g *GoalState) IsSatisfied(s State) (bool, float64) {
	d := g.Distance.Distance(s, g.Target)
	return d <= g.Threshold, d
}

// StateValue implements StateGoal.
func (g *GoalState) StateValue() State { return g.Target }

// SampleNearGoal implements SamplableGoal by returning the target state
// itself, since a GoalState's goal set is a single point.
func (g *GoalState) SampleNearGoal(out State) bool {
	CopyInto(out, g.Target)
	return true
}

// GoalRegion is a goal defined by an arbitrary membership predicate plus
// distance, with no way to sample a configuration inside it directly.
type GoalRegion struct {
	goalRecorder
	SatisfiedFunc func(State) (bool, float64)
}

// NewGoalRegion builds a GoalRegion from a membership predicate.
func NewGoalRegion(satisfied func(State) (bool, float64)) *GoalRegion {
	return &GoalRegion{SatisfiedFunc: satisfied}
}

// IsSatisfied implements Goal.
func (g *GoalRegion) IsSatisfied(s State) (bool, float64) {
	return g.SatisfiedFunc(s)
}

// GoalRegionKinematic is a GoalRegion that can also sample a configuration
// near (ideally inside) itself, letting a tree planner's goal-biased
// sampling step target the region without an explicit state.
type GoalRegionKinematic struct {
	GoalRegion
	SampleFunc func(out State) bool
}

// NewGoalRegionKinematic builds a samplable region goal.
func NewGoalRegionKinematic(satisfied func(State) (bool, float64), sample func(out State) bool) *GoalRegionKinematic {
	return &GoalRegionKinematic{
		GoalRegion: GoalRegion{SatisfiedFunc: satisfied},
		SampleFunc: sample,
	}
}

// SampleNearGoal implements SamplableGoal.
func (g *GoalRegionKinematic) SampleNearGoal(out State) bool {
	return g.SampleFunc(out)
}
