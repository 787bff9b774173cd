package physics

import "math"

// SpatialHash buckets indexed points into square cells for broad-phase
// queries in an unbounded world. Only occupied cells are stored.
//
// Cell size must be >= the largest query radius so that every candidate
// is found within the 3x3 neighborhood.
type SpatialHash struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cells       map[cellKey][]int
}

type cellKey struct {
	col, row int
}

// NewSpatialHash creates an empty hash with the given cell size.
func NewSpatialHash(cellSize float64) *SpatialHash {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &SpatialHash{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cells:       make(map[cellKey][]int),
	}
}

// CellSize returns the configured cell edge length.
func (h *SpatialHash) CellSize() float64 {
	return h.cellSize
}

// Clear removes all items while keeping bucket capacity for reuse.
func (h *SpatialHash) Clear() {
	for k, items := range h.cells {
		h.cells[k] = items[:0]
	}
}

// Insert adds an item (identified by index) at the given world position.
func (h *SpatialHash) Insert(x, y float64, index int) {
	k := h.key(x, y)
	h.cells[k] = append(h.cells[k], index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given position. Iteration order is not the insertion order.
// If fn returns true, iteration stops early.
func (h *SpatialHash) QueryAround(x, y float64, fn func(index int) bool) {
	center := h.key(x, y)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			for _, idx := range h.cells[cellKey{col: center.col + dc, row: center.row + dr}] {
				if fn(idx) {
					return
				}
			}
		}
	}
}

// FirstMatch returns the lowest inserted index whose point is accepted by match,
// or -1 when none is. Use it when collection order decides ties.
func (h *SpatialHash) FirstMatch(x, y float64, match func(index int) bool) int {
	best := -1
	h.QueryAround(x, y, func(idx int) bool {
		if (best == -1 || idx < best) && match(idx) {
			best = idx
		}
		return false
	})
	return best
}

func (h *SpatialHash) key(x, y float64) cellKey {
	return cellKey{
		col: int(math.Floor(x * h.invCellSize)),
		row: int(math.Floor(y * h.invCellSize)),
	}
}
