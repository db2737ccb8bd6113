package main

import "testing"

func TestNewBoardIsEmpty(t *testing.T) {
	board := NewBoard()
	if board.Stones() != 0 {
		t.Fatalf("expected no stones, got %d", board.Stones())
	}
	if board.CountEmpty() != BoardSize*BoardSize {
		t.Fatalf("expected %d empty cells, got %d", BoardSize*BoardSize, board.CountEmpty())
	}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if board.At(x, y) != CellEmpty {
				t.Fatalf("expected (%d,%d) empty, got %s", x, y, board.At(x, y))
			}
		}
	}
}

func TestBoardStoneCountTracksWrites(t *testing.T) {
	board := NewBoard()
	board.Set(3, 4, CellBlack)
	board.Set(3, 4, CellBlack)
	board.Set(5, 5, CellWhite)
	if board.Stones() != 2 {
		t.Fatalf("expected 2 stones, got %d", board.Stones())
	}
	board.Set(3, 4, CellWhite)
	if board.Stones() != 2 {
		t.Fatalf("expected recolouring to keep 2 stones, got %d", board.Stones())
	}
	board.Remove(3, 4)
	board.Remove(3, 4)
	if board.Stones() != 1 {
		t.Fatalf("expected 1 stone after remove, got %d", board.Stones())
	}
	if board.At(3, 4) != CellEmpty {
		t.Fatalf("expected removed cell to be empty")
	}
}

func TestBoardClearResetsCount(t *testing.T) {
	board := NewBoard()
	for x := 0; x < BoardSize; x++ {
		board.Set(x, 0, CellBlack)
	}
	board.Clear()
	if board.Stones() != 0 || board.At(0, 0) != CellEmpty {
		t.Fatalf("expected cleared board, got %d stones", board.Stones())
	}
}

func TestBoardInBounds(t *testing.T) {
	board := NewBoard()
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{14, 14, true},
		{7, 0, true},
		{-1, 0, false},
		{0, -1, false},
		{15, 0, false},
		{0, 15, false},
		{-3, 20, false},
	}
	for _, tc := range cases {
		if got := board.InBounds(tc.x, tc.y); got != tc.want {
			t.Fatalf("expected InBounds(%d,%d)=%v, got %v", tc.x, tc.y, tc.want, got)
		}
	}
}

func TestBoardCloneIsIndependent(t *testing.T) {
	board := NewBoard()
	board.Set(1, 1, CellBlack)
	clone := board.Clone()
	clone.Set(2, 2, CellWhite)
	if board.At(2, 2) != CellEmpty || board.Stones() != 1 {
		t.Fatalf("expected original board untouched by clone writes")
	}
	if clone.At(1, 1) != CellBlack || clone.Stones() != 2 {
		t.Fatalf("expected clone to carry original stones")
	}
}

func TestMoveFromIndexIsRowMajor(t *testing.T) {
	if got := moveFromIndex(0); got != (Move{X: 0, Y: 0}) {
		t.Fatalf("expected (0,0), got %s", got)
	}
	if got := moveFromIndex(BoardSize + 2); got != (Move{X: 2, Y: 1}) {
		t.Fatalf("expected (2,1), got %s", got)
	}
	if index(2, 1) != BoardSize+2 {
		t.Fatalf("expected index(2,1)=%d, got %d", BoardSize+2, index(2, 1))
	}
}

// fillWithoutFive fills the board so no axis has a run longer than two.
func fillWithoutFive(board *Board) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			board.Set(x, y, drawPatternCell(x, y))
		}
	}
}

func drawPatternCell(x, y int) Cell {
	if (x/2+y)%2 == 0 {
		return CellBlack
	}
	return CellWhite
}
