// Package layout computes the speaker grid of a composite video frame and
// where each speaker's cell sits in it.
//
// Cells are numbered column-major: indices run top to bottom within a column
// before moving one column right.
package layout

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrNoSpeakers = errors.New("layout needs at least one speaker")
	ErrEmptyCell  = errors.New("frame too small for grid")
	ErrBadCell    = errors.New("cell index outside grid")
)

// Grid is a rows x cols partition of the frame.
type Grid struct {
	Rows int
	Cols int
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Rows * g.Cols
}

// ComputeGrid returns the grid used for n speakers: cols = ceil(sqrt(n)),
// rows = ceil(n/cols).
func ComputeGrid(n int) (Grid, error) {
	if n <= 0 {
		return Grid{}, fmt.Errorf("%w: got %d", ErrNoSpeakers, n)
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	// guard against sqrt rounding for large perfect squares
	for (cols-1)*(cols-1) >= n {
		cols--
	}
	for cols*cols < n {
		cols++
	}
	rows := (n + cols - 1) / cols
	return Grid{Rows: rows, Cols: cols}, nil
}

// Rect is a pixel rectangle within the frame.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Layout is a Grid laid over a concrete frame. Remainder pixels from the
// integer division are left as unused margin on the right and bottom.
type Layout struct {
	Grid
	FrameWidth  int
	FrameHeight int
	CellWidth   int
	CellHeight  int
}

// New builds the layout for speakers speakers over a width x height frame.
func New(speakers, width, height int) (Layout, error) {
	g, err := ComputeGrid(speakers)
	if err != nil {
		return Layout{}, err
	}

	l := Layout{
		Grid:        g,
		FrameWidth:  width,
		FrameHeight: height,
		CellWidth:   width / g.Cols,
		CellHeight:  height / g.Rows,
	}
	if l.CellWidth <= 0 || l.CellHeight <= 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d frame split %dx%d", ErrEmptyCell, width, height, g.Rows, g.Cols)
	}
	return l, nil
}

// Cell returns the pixel rectangle of cell c.
func (l Layout) Cell(c int) (Rect, error) {
	if c < 0 || c >= l.Cells() {
		return Rect{}, fmt.Errorf("%w: %d not in [0, %d)", ErrBadCell, c, l.Cells())
	}
	col := c / l.Rows
	row := c % l.Rows
	return Rect{
		X: col * l.CellWidth,
		Y: row * l.CellHeight,
		W: l.CellWidth,
		H: l.CellHeight,
	}, nil
}

// Assignment maps speaker ID to cell index.
type Assignment map[int]int

// Assign gives the k-th smallest distinct speaker ID cell k. For the dense
// IDs 0..N-1 produced by the normalizer this is the identity, so speaker 0
// always sits in cell 0.
func Assign(speakerIDs []int) Assignment {
	ids := make([]int, 0, len(speakerIDs))
	seen := make(map[int]struct{}, len(speakerIDs))
	for _, id := range speakerIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	a := make(Assignment, len(ids))
	for cell, id := range ids {
		a[id] = cell
	}
	return a
}
