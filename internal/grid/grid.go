package grid

import (
	"math"

	"bingo-cli/internal/model"
)

// Slot is one addressable position in the projected grid. A nil *Slot in the
// projection means the position has no persisted cell and renders empty.
type Slot struct {
	ID          string
	Row         int
	Col         int
	Value       string
	Type        model.CellType
	Marked      bool
	IsFreeSpace bool
}

// FreeSpaceIndex returns the slot index of the free space, when one exists.
// A free space exists iff the board size is odd and the flag is on; it always
// sits at the geometric center.
func FreeSpaceIndex(size int, freeSpace bool) (int, bool) {
	if !freeSpace || size <= 0 || size%2 == 0 {
		return 0, false
	}
	mid := size / 2
	return mid*size + mid, true
}

// Project maps a flat cell list onto a dense size x size grid, index =
// row*size+col. Cells whose position falls outside the grid are dropped
// silently: the board may have been resized after those cells were written,
// and stale rows are not this layer's problem to report.
//
// The free-space slot is synthesized whether or not a persisted cell backs it.
// It is never editable and its marked state is not tracked.
func Project(cells []model.Cell, size int, freeSpace bool) []*Slot {
	if size <= 0 {
		return nil
	}
	slots := make([]*Slot, size*size)

	freeIdx, hasFree := FreeSpaceIndex(size, freeSpace)

	for _, c := range cells {
		if c.Row < 0 || c.Col < 0 || c.Row >= size || c.Col >= size {
			continue
		}
		idx := c.Row*size + c.Col
		slot := &Slot{
			ID:     c.ID,
			Row:    c.Row,
			Col:    c.Col,
			Value:  c.Value,
			Type:   c.Type,
			Marked: c.Marked,
		}
		if hasFree && idx == freeIdx {
			slot.IsFreeSpace = true
			slot.Marked = false
		}
		slots[idx] = slot
	}

	if hasFree && slots[freeIdx] == nil {
		mid := size / 2
		slots[freeIdx] = &Slot{Row: mid, Col: mid, IsFreeSpace: true}
	}

	return slots
}

// CompletionPercent uses the board's aggregate counters rather than a recount
// of projected slots: the projection may be a partial view of the board.
func CompletionPercent(b *model.Board) int {
	if b == nil || b.CellCount <= 0 {
		return 0
	}
	return int(math.Round(float64(b.MarkedCount) / float64(b.CellCount) * 100))
}

// Preview lays out an illustrative mini-grid for listing rows: the smallest
// square that fits totalCells, with the first markedCells slots filled in
// row-major order. It is not tied to real cell positions.
func Preview(totalCells, markedCells int) []bool {
	if totalCells <= 0 {
		return nil
	}
	side := int(math.Ceil(math.Sqrt(float64(totalCells))))
	out := make([]bool, side*side)
	if markedCells > len(out) {
		markedCells = len(out)
	}
	for i := 0; i < markedCells; i++ {
		out[i] = true
	}
	return out
}

// PreviewSide reports the mini-grid's side length for layout purposes.
func PreviewSide(totalCells int) int {
	if totalCells <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(totalCells))))
}
