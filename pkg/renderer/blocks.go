package renderer

import (
	"image"
	"sync/atomic"
)

// BlockGrid splits an image into square blocks, numbered row by row. Blocks
// on the right and bottom edges are clipped to the image.
type BlockGrid struct {
	Width, Height int
	Size          int
	Wide, High    int // blocks per row and per column
}

// NewBlockGrid creates the block grid for a width x height image
func NewBlockGrid(width, height, size int) BlockGrid {
	return BlockGrid{
		Width:  width,
		Height: height,
		Size:   size,
		Wide:   (width-1)/size + 1,
		High:   (height-1)/size + 1,
	}
}

// Total returns the number of blocks
func (g BlockGrid) Total() int {
	return g.Wide * g.High
}

// Bounds returns the pixel rectangle of block index
func (g BlockGrid) Bounds(index int) image.Rectangle {
	bx, by := index%g.Wide, index/g.Wide
	x0, y0 := bx*g.Size, by*g.Size
	return image.Rect(x0, y0, min(x0+g.Size, g.Width), min(y0+g.Size, g.Height))
}

// scheduler hands out block indexes to workers. The counter starts at -1 so
// the first claim returns block 0; it is only ever incremented, so each
// index is claimed by exactly one caller.
type scheduler struct {
	next  atomic.Int64
	total int64
}

func newScheduler(total int) *scheduler {
	s := &scheduler{total: int64(total)}
	s.next.Store(-1)
	return s
}

// claim returns the next unclaimed block, or false once all are taken
func (s *scheduler) claim() (int, bool) {
	i := s.next.Add(1)
	if i >= s.total {
		return 0, false
	}
	return int(i), true
}
