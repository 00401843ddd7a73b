package motionplan

import "container/heap"

// kpieceCellData is the KPIECE1-specific payload of a grid-B cell: its
// motions, coverage (motion count), selection count, importance score, the
// tree iteration at which it was created, and the derived internal/external
// classification based on von-Neumann neighbor occupancy.
type kpieceCellData struct {
	Motions    []*Motion
	Coverage   float64
	Selections int
	Score      float64
	Iteration  int
	Neighbors  int
	external   bool
	importance float64
	heapIndex  int
}

type gbCell = Cell[*kpieceCellData]

// GridB extends Grid with the dual max-heaps (one over internal cells, one
// over external cells) that KPIECE1's cell selection reads from. "External"
// means the cell has fewer than the full von-Neumann neighbor count of
// occupied neighbors; such cells sit on the frontier of the explored region
// and are the ones worth expanding from most of the time.
type GridB struct {
	grid     *Grid[*kpieceCellData]
	dim      int
	internal *cellHeap
	external *cellHeap
}

// NewGridB returns an empty grid-B over a projection of the given
// dimensionality.
func NewGridB(dim int) *GridB {
	return &GridB{
		grid:     NewGrid[*kpieceCellData](),
		dim:      dim,
		internal: newCellHeap(),
		external: newCellHeap(),
	}
}

// Size returns the total number of cells.
func (g *GridB) Size() int { return g.grid.Size() }

// GetCell looks up the cell at coord, or returns nil.
func (g *GridB) GetCell(coord Coord) *gbCell { return g.grid.GetCell(coord) }

// CreateCell allocates (but does not yet insert) a cell at coord. Callers
// populate cell.Data before calling Add.
func (g *GridB) CreateCell(coord Coord, data *kpieceCellData) *gbCell {
	return g.grid.CreateCell(coord, data)
}

// GetContent collects every cell's payload.
func (g *GridB) GetContent() []*kpieceCellData { return g.grid.GetContent() }

// fullNeighborCount is the von-Neumann neighborhood size in d dimensions:
// two neighbors (±1) per axis.
func (g *GridB) fullNeighborCount() int { return 2 * g.dim }

func neighborCoords(c Coord) []Coord {
	out := make([]Coord, 0, 2*len(c))
	for i := range c {
		minus := append(Coord(nil), c...)
		minus[i]--
		plus := append(Coord(nil), c...)
		plus[i]++
		out = append(out, minus, plus)
	}
	return out
}

// Add inserts cell into the grid, computing its initial neighbor count and
// internal/external classification, updating any already-present neighbors'
// classification, and pushing it (and any neighbor that flipped) into the
// correct heap.
func (g *GridB) Add(cell *gbCell) {
	g.grid.Add(cell)

	occupied := 0
	for _, nc := range neighborCoords(cell.Coord) {
		if nb := g.grid.GetCell(nc); nb != nil {
			occupied++
			nb.Data.Neighbors++
			if nb.Data.external && nb.Data.Neighbors >= g.fullNeighborCount() {
				g.reclassify(nb, false)
			}
		}
	}
	cell.Data.Neighbors = occupied
	cell.Data.external = occupied < g.fullNeighborCount()

	if cell.Data.external {
		heap.Push(g.external, cell)
	} else {
		heap.Push(g.internal, cell)
	}
}

// reclassify moves cell between the internal and external heaps.
func (g *GridB) reclassify(cell *gbCell, external bool) {
	if cell.Data.external == external {
		return
	}
	var from, to *cellHeap
	if cell.Data.external {
		from, to = g.external, g.internal
	} else {
		from, to = g.internal, g.external
	}
	heap.Remove(from, cell.Data.heapIndex)
	cell.Data.external = external
	heap.Push(to, cell)
}

// Update recomputes cell's importance and restores heap order. Call this
// after mutating any of coverage/selections/score/iteration for a cell
// already in the grid.
func (g *GridB) Update(cell *gbCell, currentIteration int) {
	d := cell.Data
	age := 1 + currentIteration - d.Iteration
	if age < 1 {
		age = 1
	}
	selections := d.Selections
	if selections < 1 {
		selections = 1
	}
	d.importance = d.Score * d.Coverage / float64(selections*age)

	h := g.internal
	if d.external {
		h = g.external
	}
	heap.Fix(h, d.heapIndex)
}

// TopExternal returns the highest-importance external cell, or nil if there
// are none.
func (g *GridB) TopExternal() *gbCell {
	if g.external.Len() == 0 {
		return nil
	}
	return (*g.external)[0]
}

// TopInternal returns the highest-importance internal cell, or nil if there
// are none.
func (g *GridB) TopInternal() *gbCell {
	if g.internal.Len() == 0 {
		return nil
	}
	return (*g.internal)[0]
}

// FracExternal returns the fraction of all cells currently classified
// external.
func (g *GridB) FracExternal() float64 {
	total := g.internal.Len() + g.external.Len()
	if total == 0 {
		return 0
	}
	return float64(g.external.Len()) / float64(total)
}

// CountInternal returns the number of internal cells.
func (g *GridB) CountInternal() int { return g.internal.Len() }

// CountExternal returns the number of external cells.
func (g *GridB) CountExternal() int { return g.external.Len() }

// cellHeap is a container/heap-backed max-heap over cells' importance,
// tracking each cell's position so Update can Fix it in place after a
// mutation. The indexed-heap-with-back-pointer shape follows
// _examples/pdrpinto-astar/pq.go's PriorityQueue.
type cellHeap []*gbCell

func newCellHeap() *cellHeap {
	h := make(cellHeap, 0)
	return &h
}

func (h cellHeap) Len() int { return len(h) }

func (h cellHeap) Less(i, j int) bool {
	return h[i].Data.importance > h[j].Data.importance
}

func (h cellHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Data.heapIndex = i
	h[j].Data.heapIndex = j
}

func (h *cellHeap) Push(x interface{}) {
	cell := x.(*gbCell)
	cell.Data.heapIndex = len(*h)
	*h = append(*h, cell)
}

func (h *cellHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
