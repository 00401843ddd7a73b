package motionplan

import (
	"context"
	"math"

	"go.viam.com/motionlib/motionplan/ik"
	"go.viam.com/motionlib/motionplan/rng"
)

// KPIECE1 is a projection-guided tree planner: like EST it grows a single
// tree, but cell selection is driven by a learned importance score per cell
// (grid-B) rather than raw density, and cells are additionally split into
// "external" (bordering unexplored space) and "internal" so that expansion
// concentrates on the frontier. Partial-credit extensions (an attempted step
// that goes invalid partway through but still covers enough new ground) are
// kept rather than discarded outright, which is what lets it push through
// narrow passages EST tends to stall in front of.
type KPIECE1 struct {
	si         *SpaceInformation
	projection ProjectionEvaluator
	options    PlannerOptions
	rng        *rng.Source
	sampler    *StateSampler

	gridB     *GridB
	size      int
	iteration int
	roots     []*Motion
	ranges    []float64

	// hcik, when set, hill-climbs from the best approximate solution toward
	// the goal region whenever the goal exposes neither a concrete state nor
	// a sampling interface. improveValue is its current perturbation size,
	// halved each time a climb attempt fails to improve.
	hcik         *ik.HCIK
	improveValue float64
}

// SetHCIK installs a hill-climb goal sampler used when the goal is a plain
// region (no StateGoal or SamplableGoal implementation). initialImprove
// seeds the perturbation size used for its first attempt.
func (p *KPIECE1) SetHCIK(h *ik.HCIK, initialImprove float64) {
	p.hcik = h
	p.improveValue = initialImprove
}

// NewKPIECE1 builds a KPIECE1 planner over si, projecting the tree onto
// projection for grid-B cell selection.
func NewKPIECE1(si *SpaceInformation, projection ProjectionEvaluator, projectionDim int, options PlannerOptions) *KPIECE1 {
	seed := options.RandomSeed
	return &KPIECE1{
		si:         si,
		projection: projection,
		options:    options,
		rng:        rng.New(seed),
		sampler:    NewStateSampler(si.Components, rng.New(seed+1)),
		gridB:      NewGridB(projectionDim),
		iteration:  1,
	}
}

// Clear discards the exploration tree, letting the planner be reused for a
// new Solve with the same SpaceInformation.
func (p *KPIECE1) Clear() {
	p.gridB = NewGridB(p.gridB.dim)
	p.size = 0
	p.iteration = 1
	p.roots = nil
}

// States returns every configuration currently in the exploration tree.
func (p *KPIECE1) States() []State {
	out := make([]State, 0, p.size)
	for _, data := range p.gridB.GetContent() {
		for _, m := range data.Motions {
			out = append(out, m.State)
		}
	}
	return out
}

// addMotion inserts motion into grid-B, bootstrapping a new cell's score
// from its distance to the goal (closer cells start more attractive) if this
// is the first motion to land there, and refreshing the cell's importance
// otherwise.
func (p *KPIECE1) addMotion(motion *Motion, distanceToGoal float64) {
	coord := p.projection.Project(motion.State)
	cell := p.gridB.GetCell(coord)
	if cell == nil {
		data := &kpieceCellData{
			Motions:    []*Motion{motion},
			Coverage:   1,
			Selections: 1,
			Score:      1.0 / (1e-3 + distanceToGoal),
			Iteration:  p.iteration,
		}
		cell = p.gridB.CreateCell(coord, data)
		p.gridB.Add(cell)
	} else {
		cell.Data.Motions = append(cell.Data.Motions, motion)
		cell.Data.Coverage++
	}
	p.gridB.Update(cell, p.iteration)
	p.size++
}

// selectMotion picks the cell to expand from -- an external cell with
// probability max(SelectBorderPercentage, current external fraction),
// otherwise the best internal cell -- then a motion within it, biased
// (via a half-normal draw) toward the more recently added motions in that
// cell.
func (p *KPIECE1) selectMotion() (*Motion, *gbCell) {
	var cell *gbCell
	switch {
	case p.gridB.CountExternal() == 0:
		cell = p.gridB.TopInternal()
	case p.gridB.CountInternal() == 0:
		cell = p.gridB.TopExternal()
	case p.rng.Uniform01() < math.Max(p.options.SelectBorderPercentage, p.gridB.FracExternal()):
		cell = p.gridB.TopExternal()
	default:
		cell = p.gridB.TopInternal()
	}
	if cell == nil || len(cell.Data.Motions) == 0 {
		return nil, nil
	}

	cell.Data.Selections++
	motions := cell.Data.Motions
	idx := p.rng.HalfNormalInt(0, len(motions)-1, rng.DefaultFocus)
	return motions[idx], cell
}

// updateCell rewards or penalizes cell's score depending on whether the
// extension attempted from it was kept, then refreshes its heap position.
func (p *KPIECE1) updateCell(cell *gbCell, kept bool) {
	if kept {
		cell.Data.Score *= p.options.GoodScoreFactor
	} else {
		cell.Data.Score *= p.options.BadScoreFactor
	}
	p.gridB.Update(cell, p.iteration)
}

// Setup seeds the exploration tree from si.Starts, bootstrapping each root
// cell's score from its distance to goal. It returns ErrNoValidStartStates
// if none of the start states validate.
func (p *KPIECE1) Setup(goal Goal) error {
	p.Clear()
	p.ranges = make([]float64, p.si.Dimension)
	for i, comp := range p.si.Components {
		p.ranges[i] = p.options.Rho * (comp.MaxValue - comp.MinValue)
	}
	if p.improveValue == 0 {
		p.improveValue = p.options.Rho
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
		_, dist := goal.IsSatisfied(root.State)
		p.addMotion(root, dist)
	}
	if p.size == 0 {
		return ErrNoValidStartStates
	}
	return nil
}

// Solve grows the tree until ctx is done or a solution is found, and returns
// the best path discovered: exact if the goal was reached, approximate if
// the deadline expired first.
func (p *KPIECE1) Solve(ctx context.Context, goal Goal) (*Solution, error) {
	if p.size == 0 {
		if err := p.Setup(goal); err != nil {
			return nil, err
		}
	}

	samplableGoal, goalIsSamplable := goal.(SamplableGoal)
	_, goalHasState := goal.(StateGoal)

	var solution *Motion
	var approx *Motion
	approxDiff := -1.0

	rstate := make(State, p.si.Dimension)
	lastValid := make(State, p.si.Dimension)

	for solution == nil {
		select {
		case <-ctx.Done():
			goto done
		default:
		}
		p.iteration++

		existing, cell := p.selectMotion()
		if existing == nil {
			break
		}

		switch {
		case goalIsSamplable && p.rng.Uniform01() < p.options.GoalBias:
			samplableGoal.SampleNearGoal(rstate)
		case !goalIsSamplable && !goalHasState && p.hcik != nil && approx != nil:
			improved := p.hcik.Improve(approx.State, p.improveValue, rstate)
			if !improved {
				p.sampler.SampleGaussianRange(rstate, existing.State, p.ranges)
				p.improveValue /= 2
			}
		default:
			p.sampler.SampleGaussianRange(rstate, existing.State, p.ranges)
		}

		ok, frac := p.si.CheckMotionIncremental(existing.State, rstate, lastValid)
		keep := ok
		if !ok && frac > p.options.MinValidPathPercentage {
			keep = true
			CopyInto(rstate, lastValid)
		}

		p.updateCell(cell, keep)
		if !keep {
			continue
		}

		motion := newMotion(rstate)
		motion.Parent = existing

		satisfied, dist := goal.IsSatisfied(motion.State)
		if satisfied {
			approxDiff = dist
			solution = motion
			p.addMotion(motion, dist)
			break
		}
		if approx == nil || dist < approxDiff {
			approxDiff = dist
			approx = motion
		}
		p.addMotion(motion, dist)
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
