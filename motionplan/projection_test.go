package motionplan

import (
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestAxisAlignedProjectionSelectsDims(t *testing.T) {
	proj := NewAxisAlignedProjectionEvaluator(4, []int{0, 2}, []float64{1, 1})
	coord := proj.Project(State{3.7, -100, 5.2, 0})
	test.That(t, coord, test.ShouldResemble, Coord{3, 5})
}

func TestLinearProjectionCellSizeBucketsFloor(t *testing.T) {
	a := mat.NewDense(1, 1, []float64{1})
	proj := NewLinearProjectionEvaluator(a, []float64{2})

	test.That(t, proj.Project(State{-0.5}), test.ShouldResemble, Coord{-1})
	test.That(t, proj.Project(State{3.9}), test.ShouldResemble, Coord{1})
	test.That(t, proj.Project(State{4.0}), test.ShouldResemble, Coord{2})
}

func TestProjectionDeterministic(t *testing.T) {
	proj := NewAxisAlignedProjectionEvaluator(2, []int{0, 1}, []float64{0.5, 0.5})
	s := State{1.23, -4.56}
	first := proj.Project(s)
	second := proj.Project(s)
	test.That(t, first, test.ShouldResemble, second)
}
