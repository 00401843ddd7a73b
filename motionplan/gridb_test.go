package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func addKPIECECell(g *GridB, coord Coord, score float64, iteration int) *gbCell {
	data := &kpieceCellData{Motions: []*Motion{newMotion(State{0})}, Coverage: 1, Selections: 1, Score: score, Iteration: iteration}
	cell := g.CreateCell(coord, data)
	g.Add(cell)
	g.Update(cell, iteration)
	return cell
}

func TestGridBNewCellStartsExternal(t *testing.T) {
	g := NewGridB(1)
	cell := addKPIECECell(g, Coord{0}, 1, 1)

	test.That(t, cell.Data.external, test.ShouldBeTrue)
	test.That(t, g.CountExternal(), test.ShouldEqual, 1)
	test.That(t, g.CountInternal(), test.ShouldEqual, 0)
}

func TestGridBFullyEncircledCellBecomesInternal(t *testing.T) {
	g := NewGridB(1)
	center := addKPIECECell(g, Coord{0}, 1, 1)
	addKPIECECell(g, Coord{-1}, 1, 1)
	addKPIECECell(g, Coord{1}, 1, 1)

	// A 1-D cell needs both neighbors occupied (fullNeighborCount = 2) to
	// flip from external to internal.
	test.That(t, center.Data.external, test.ShouldBeFalse)
	test.That(t, g.CountInternal(), test.ShouldEqual, 1)
}

func TestGridBTopReflectsImportance(t *testing.T) {
	g := NewGridB(1)
	low := addKPIECECell(g, Coord{0}, 1, 1)
	high := addKPIECECell(g, Coord{5}, 100, 1)

	top := g.TopExternal()
	test.That(t, top, test.ShouldEqual, high)
	test.That(t, top, test.ShouldNotEqual, low)
}

func TestGridBUpdateAfterScoreChangeReordersHeap(t *testing.T) {
	g := NewGridB(1)
	a := addKPIECECell(g, Coord{0}, 10, 1)
	b := addKPIECECell(g, Coord{5}, 1, 1)

	test.That(t, g.TopExternal(), test.ShouldEqual, a)

	b.Data.Score = 1000
	g.Update(b, 1)

	test.That(t, g.TopExternal(), test.ShouldEqual, b)
}

func TestGridBFracExternal(t *testing.T) {
	g := NewGridB(1)
	test.That(t, g.FracExternal(), test.ShouldEqual, 0.0)

	addKPIECECell(g, Coord{0}, 1, 1)
	addKPIECECell(g, Coord{-1}, 1, 1)
	addKPIECECell(g, Coord{1}, 1, 1)

	// Two of the three cells (the tips) remain external; the center flipped
	// internal once both its neighbors landed.
	test.That(t, g.FracExternal(), test.ShouldAlmostEqual, 2.0/3.0)
}
