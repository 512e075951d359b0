package layout

import (
	"errors"
	"reflect"
	"testing"
)

func TestComputeGrid(t *testing.T) {
	tests := []struct {
		n          int
		rows, cols int
	}{
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
		{6, 2, 3},
		{7, 3, 3},
		{9, 3, 3},
		{10, 3, 4},
		{13, 4, 4},
		{17, 4, 5},
	}

	for _, tt := range tests {
		g, err := ComputeGrid(tt.n)
		if err != nil {
			t.Fatalf("ComputeGrid(%d) error = %v", tt.n, err)
		}
		if g.Rows != tt.rows || g.Cols != tt.cols {
			t.Errorf("ComputeGrid(%d) = %dx%d, want %dx%d", tt.n, g.Rows, g.Cols, tt.rows, tt.cols)
		}
	}
}

func TestComputeGridProperties(t *testing.T) {
	for n := 1; n <= 500; n++ {
		g, err := ComputeGrid(n)
		if err != nil {
			t.Fatalf("ComputeGrid(%d) error = %v", n, err)
		}
		if g.Cells() < n {
			t.Fatalf("ComputeGrid(%d) has %d cells", n, g.Cells())
		}
		if g.Cols*g.Cols < n || (g.Cols-1)*(g.Cols-1) >= n {
			t.Fatalf("ComputeGrid(%d) cols = %d is not ceil(sqrt(n))", n, g.Cols)
		}
		if g.Rows != (n+g.Cols-1)/g.Cols {
			t.Fatalf("ComputeGrid(%d) rows = %d is not ceil(n/cols)", n, g.Rows)
		}
		if g.Rows > g.Cols {
			t.Fatalf("ComputeGrid(%d) = %dx%d is taller than wide", n, g.Rows, g.Cols)
		}
	}
}

func TestComputeGridNoSpeakers(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, err := ComputeGrid(n); !errors.Is(err, ErrNoSpeakers) {
			t.Errorf("ComputeGrid(%d) error = %v, want ErrNoSpeakers", n, err)
		}
	}
}

func TestCellColumnMajor(t *testing.T) {
	l, err := New(4, 1920, 1080)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.CellWidth != 960 || l.CellHeight != 540 {
		t.Fatalf("cell = %dx%d, want 960x540", l.CellWidth, l.CellHeight)
	}

	want := []Rect{
		{0, 0, 960, 540},
		{0, 540, 960, 540},
		{960, 0, 960, 540},
		{960, 540, 960, 540},
	}
	for c, w := range want {
		got, err := l.Cell(c)
		if err != nil {
			t.Fatalf("Cell(%d) error = %v", c, err)
		}
		if got != w {
			t.Errorf("Cell(%d) = %v, want %v", c, got, w)
		}
	}
}

func TestCellRemainderIsMargin(t *testing.T) {
	// 5 speakers -> 2 rows x 3 cols
	l, err := New(5, 1000, 601)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.CellWidth != 333 || l.CellHeight != 300 {
		t.Fatalf("cell = %dx%d, want 333x300", l.CellWidth, l.CellHeight)
	}

	last, err := l.Cell(5)
	if err != nil {
		t.Fatalf("Cell(5) error = %v", err)
	}
	if last != (Rect{X: 666, Y: 300, W: 333, H: 300}) {
		t.Errorf("Cell(5) = %v", last)
	}
}

func TestCellOutOfRange(t *testing.T) {
	l, err := New(3, 640, 480)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, c := range []int{-1, 4} {
		if _, err := l.Cell(c); !errors.Is(err, ErrBadCell) {
			t.Errorf("Cell(%d) error = %v, want ErrBadCell", c, err)
		}
	}
}

func TestNewFrameTooSmall(t *testing.T) {
	if _, err := New(9, 2, 2); !errors.Is(err, ErrEmptyCell) {
		t.Errorf("New() error = %v, want ErrEmptyCell", err)
	}
}

func TestAssign(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want Assignment
	}{
		{"dense ids are identity", []int{0, 1, 2}, Assignment{0: 0, 1: 1, 2: 2}},
		{"unordered with duplicates", []int{2, 0, 2, 1, 0}, Assignment{0: 0, 1: 1, 2: 2}},
		{"sparse ids are ranked", []int{7, 3}, Assignment{3: 0, 7: 1}},
		{"empty", nil, Assignment{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assign(tt.ids); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Assign(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}
