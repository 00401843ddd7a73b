package motionplan

// Cell is one bucket of a Grid: a coordinate plus a planner-specific
// payload (a plain []*Motion for EST, richer bookkeeping for KPIECE1's
// grid-B).
type Cell[T any] struct {
	Coord Coord
	Data  T
}

// Grid is the sparse coordinate->cell map described in spec.md's Grid
// (plain): insertion is a two-step createCell/add (so a caller can populate
// Data before the cell becomes visible to iteration), lookup is by exact
// coordinate match, and iteration order is insertion order, which is what
// makes EST's density-inverse cell selection reproducible for a given RNG
// stream (spec.md §5, "grids must therefore provide a stable iteration
// order").
type Grid[T any] struct {
	cells map[string]*Cell[T]
	order []*Cell[T]
}

// NewGrid returns an empty Grid.
func NewGrid[T any]() *Grid[T] {
	return &Grid[T]{cells: make(map[string]*Cell[T])}
}

// GetCell returns the cell at c, or nil if none exists yet.
func (g *Grid[T]) GetCell(c Coord) *Cell[T] {
	return g.cells[c.key()]
}

// CreateCell allocates a new cell for coordinate c with the given initial
// payload. The cell is not visible to GetCell/iteration until Add is
// called with it.
func (g *Grid[T]) CreateCell(c Coord, data T) *Cell[T] {
	return &Cell[T]{Coord: c, Data: data}
}

// Add registers cell into the grid, making it visible to GetCell and
// iteration.
func (g *Grid[T]) Add(cell *Cell[T]) {
	g.cells[cell.Coord.key()] = cell
	g.order = append(g.order, cell)
}

// Size returns the number of cells currently in the grid.
func (g *Grid[T]) Size() int {
	return len(g.order)
}

// Cells returns every cell, in stable insertion order.
func (g *Grid[T]) Cells() []*Cell[T] {
	return g.order
}

// GetContent collects every cell's payload, in the same stable order as
// Cells.
func (g *Grid[T]) GetContent() []T {
	out := make([]T, len(g.order))
	for i, c := range g.order {
		out[i] = c.Data
	}
	return out
}
