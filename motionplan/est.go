package motionplan

import (
	"context"

	"go.viam.com/motionlib/motionplan/rng"
)

// estCell is the payload EST's plain grid stores per projection bucket: the
// motions that landed there, in insertion order.
type estCell struct {
	motions []*Motion
}

// EST is the Expansive Space Trees planner: it grows a single tree from the
// start states by repeatedly picking a sparsely-populated region of the
// already-explored space to extend from, so exploration self-balances toward
// the space's unfilled corners rather than piling up around the roots.
type EST struct {
	si         *SpaceInformation
	projection ProjectionEvaluator
	options    PlannerOptions
	rng        *rng.Source
	sampler    *StateSampler

	grid   *Grid[*estCell]
	size   int
	roots  []*Motion
	ranges []float64
}

// NewEST builds an EST planner over si, projecting the tree onto projection
// for cell selection.
func NewEST(si *SpaceInformation, projection ProjectionEvaluator, options PlannerOptions) *EST {
	seed := options.RandomSeed
	return &EST{
		si:         si,
		projection: projection,
		options:    options,
		rng:        rng.New(seed),
		sampler:    NewStateSampler(si.Components, rng.New(seed+1)),
		grid:       NewGrid[*estCell](),
	}
}

// Clear discards the exploration tree, letting the planner be reused for a
// new Solve with the same SpaceInformation.
func (p *EST) Clear() {
	p.grid = NewGrid[*estCell]()
	p.size = 0
	p.roots = nil
}

// States returns every configuration currently in the exploration tree,
// grouped by grid cell in cell-creation order, with each cell's motions in
// the order they were added to that cell.
func (p *EST) States() []State {
	out := make([]State, 0, p.size)
	for _, cell := range p.grid.GetContent() {
		for _, m := range cell.motions {
			out = append(out, m.State)
		}
	}
	return out
}

// addMotion inserts motion into the projection grid, creating a new cell if
// this is the first motion to land in it.
func (p *EST) addMotion(motion *Motion) {
	coord := p.projection.Project(motion.State)
	cell := p.grid.GetCell(coord)
	if cell == nil {
		cell = p.grid.CreateCell(coord, &estCell{})
		p.grid.Add(cell)
	}
	cell.Data.motions = append(cell.Data.motions, motion)
	p.size++
}

// selectMotion picks a motion to extend from, favoring cells with fewer
// motions in them (density-inverse selection): cell c's weight is
// (treeSize-|motions_c|)/treeSize, so a cell holding a larger share of the
// tree is progressively less likely to be chosen again.
func (p *EST) selectMotion() *Motion {
	cells := p.grid.Cells()
	if len(cells) == 0 {
		return nil
	}

	treeSize := float64(p.size)
	draw := p.rng.Uniform(0, float64(len(cells)-1))

	cumulative := 0.0
	chosen := cells[0]
	for _, cell := range cells {
		cumulative += (treeSize - float64(len(cell.Data.motions))) / treeSize
		if cumulative > draw {
			chosen = cell
			break
		}
	}

	motions := chosen.Data.motions
	return motions[p.rng.UniformInt(0, len(motions)-1)]
}

// Setup seeds the exploration tree from si.Starts. It returns
// ErrNoValidStartStates if none of them validate. goal is unused by EST's
// own setup (only Solve consults it) but is required by the Planner
// interface so callers never need to special-case which concrete planner
// they hold.
func (p *EST) Setup(goal Goal) error {
	p.Clear()
	p.ranges = make([]float64, p.si.Dimension)
	for i, comp := range p.si.Components {
		p.ranges[i] = p.options.Rho * (comp.MaxValue - comp.MinValue)
	}
	if len(p.si.Starts) > 0 && len(p.projection.Project(p.si.Starts[0])) == 0 {
		return ErrEmptyProjection
	}
	for _, start := range p.si.Starts {
		if !p.si.SatisfiesBounds(start) || !p.si.IsValid(start) {
			continue
		}
		root := newMotion(start)
		p.roots = append(p.roots, root)
		p.addMotion(root)
	}
	if p.size == 0 {
		return ErrNoValidStartStates
	}
	return nil
}

// Solve grows the tree until ctx is done or a solution is found, and returns
// the best path discovered: exact if the goal was reached, approximate
// (Solution.Approximate == true) if the deadline expired first.
func (p *EST) Solve(ctx context.Context, goal Goal) (*Solution, error) {
	if p.size == 0 {
		if err := p.Setup(goal); err != nil {
			return nil, err
		}
	}

	samplableGoal, goalIsSamplable := goal.(SamplableGoal)

	var solution *Motion
	var approx *Motion
	approxDiff := -1.0

	rstate := make(State, p.si.Dimension)

	for solution == nil {
		select {
		case <-ctx.Done():
			goto done
		default:
		}

		existing := p.selectMotion()
		if existing == nil {
			break
		}

		if goalIsSamplable && p.rng.Uniform01() < p.options.GoalBias {
			samplableGoal.SampleNearGoal(rstate)
		} else {
			p.sampler.SampleGaussianRange(rstate, existing.State, p.ranges)
		}

		if !p.si.CheckMotionSubdivision(existing.State, rstate) {
			continue
		}

		motion := newMotion(rstate)
		motion.Parent = existing
		p.addMotion(motion)

		satisfied, dist := goal.IsSatisfied(motion.State)
		if satisfied {
			approxDiff = dist
			solution = motion
			break
		}
		if approx == nil || dist < approxDiff {
			approxDiff = dist
			approx = motion
		}
	}

done:
	approximate := false
	if solution == nil {
		solution = approx
		approximate = true
	}
	if solution == nil {
		return nil, ErrPlannerFailed
	}

	sol := &Solution{
		Path:        path(solution),
		Approximate: approximate,
		Difference:  approxDiff,
	}
	if recorder, ok := goal.(solutionRecorder); ok {
		recorder.SetSolutionPath(sol.Path, sol.Approximate)
		recorder.SetDifference(sol.Difference)
	}
	return sol, nil
}
