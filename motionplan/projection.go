package motionplan

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Coord is a fixed-length integer grid coordinate. Two states that project
// to equal Coords fall in the same cell.
type Coord []int

// key turns a Coord into a comparable map key. Coords are small (planner
// projections are typically 1-3 dimensions), so a string join is cheap and
// avoids pulling in a generic-tuple hashing dependency for something this
// small.
func (c Coord) key() string {
	// Fixed-width encoding avoids delimiter collisions between e.g.
	// [1, -23] and [-1, 2, 3] without needing a separator character.
	buf := make([]byte, 0, len(c)*9)
	for _, v := range c {
		buf = appendFixedInt(buf, v)
	}
	return string(buf)
}

func appendFixedInt(buf []byte, v int) []byte {
	u := uint64(v) + (1 << 62)
	for i := 7; i >= 0; i-- {
		buf = append(buf, byte(u>>(8*uint(i))))
	}
	return buf
}

// ProjectionEvaluator deterministically maps a high-dimensional State to a
// low-dimensional integer Coord. Implementations must be side-effect-free
// and stable: equal inputs always produce equal outputs.
type ProjectionEvaluator interface {
	Project(s State) Coord
}

// LinearProjectionEvaluator projects a state through a linear map A and then
// divides each resulting component by its cell size, flooring to an
// integer. This is OMPL's OrthogonalProjectionEvaluator generalized to an
// arbitrary linear map.
type LinearProjectionEvaluator struct {
	A        *mat.Dense
	CellSize []float64
}

// NewLinearProjectionEvaluator builds a projection evaluator from a k*n
// projection matrix and a length-k vector of cell sizes.
func NewLinearProjectionEvaluator(a *mat.Dense, cellSize []float64) *LinearProjectionEvaluator {
	return &LinearProjectionEvaluator{A: a, CellSize: cellSize}
}

// Project implements ProjectionEvaluator.
func (p *LinearProjectionEvaluator) Project(s State) Coord {
	k, n := p.A.Dims()
	x := mat.NewVecDense(n, []float64(s))
	y := mat.NewVecDense(k, nil)
	y.MulVec(p.A, x)

	out := make(Coord, k)
	for i := 0; i < k; i++ {
		out[i] = int(math.Floor(y.AtVec(i) / p.CellSize[i]))
	}
	return out
}

// NewAxisAlignedProjectionEvaluator builds a LinearProjectionEvaluator whose
// matrix simply selects the given state components (a common case: project
// a high-DOF arm onto its first two joints, or a mobile base onto its (x,y)
// position).
func NewAxisAlignedProjectionEvaluator(stateDim int, dims []int, cellSize []float64) *LinearProjectionEvaluator {
	a := mat.NewDense(len(dims), stateDim, nil)
	for row, col := range dims {
		a.Set(row, col, 1)
	}
	return &LinearProjectionEvaluator{A: a, CellSize: cellSize}
}
