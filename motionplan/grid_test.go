package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func TestGridCreateAddVisibility(t *testing.T) {
	g := NewGrid[[]int]()
	coord := Coord{1, 2}

	test.That(t, g.GetCell(coord), test.ShouldBeNil)

	cell := g.CreateCell(coord, []int{1})
	test.That(t, g.GetCell(coord), test.ShouldBeNil)

	g.Add(cell)
	test.That(t, g.GetCell(coord), test.ShouldEqual, cell)
	test.That(t, g.Size(), test.ShouldEqual, 1)
}

func TestGridStableInsertionOrder(t *testing.T) {
	g := NewGrid[int]()
	coords := []Coord{{3, 3}, {1, 1}, {2, 2}}
	for i, c := range coords {
		g.Add(g.CreateCell(c, i))
	}

	content := g.GetContent()
	test.That(t, content, test.ShouldResemble, []int{0, 1, 2})

	cells := g.Cells()
	for i, c := range cells {
		test.That(t, c.Coord, test.ShouldResemble, coords[i])
	}
}

func TestGridDistinctCoordsDistinctCells(t *testing.T) {
	g := NewGrid[int]()
	g.Add(g.CreateCell(Coord{1, -2}, 10))
	g.Add(g.CreateCell(Coord{-1, 2, 3}, 20))

	test.That(t, g.GetCell(Coord{1, -2}).Data, test.ShouldEqual, 10)
	test.That(t, g.GetCell(Coord{-1, 2, 3}).Data, test.ShouldEqual, 20)
}
