package main

// BoardSize is fixed for the lifetime of every board.
const BoardSize = 15

const boardCells = BoardSize * BoardSize

type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

// Board is a flat row-major buffer; cell (x, y) lives at y*BoardSize+x.
// stones always equals the number of non-empty cells.
type Board struct {
	cells  [boardCells]Cell
	stones int
}

func NewBoard() Board {
	return Board{}
}

func (b *Board) Clear() {
	b.cells = [boardCells]Cell{}
	b.stones = 0
}

func (b *Board) At(x, y int) Cell {
	return b.cells[index(x, y)]
}

// Set writes without bounds checking; callers validate with InBounds.
func (b *Board) Set(x, y int, value Cell) {
	b.setIndex(index(x, y), value)
}

func (b *Board) Remove(x, y int) {
	b.setIndex(index(x, y), CellEmpty)
}

func (b *Board) setIndex(idx int, value Cell) {
	prev := b.cells[idx]
	if prev == CellEmpty && value != CellEmpty {
		b.stones++
	} else if prev != CellEmpty && value == CellEmpty {
		b.stones--
	}
	b.cells[idx] = value
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < BoardSize && y < BoardSize
}

func (b *Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

func (b *Board) Stones() int {
	return b.stones
}

func (b *Board) Full() bool {
	return b.stones == boardCells
}

func (b *Board) CountEmpty() int {
	return boardCells - b.stones
}

func (b *Board) Size() int {
	return BoardSize
}

func (b *Board) Clone() Board {
	return *b
}

func index(x, y int) int {
	return y*BoardSize + x
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

// opponent returns the other stone color; Empty has no opponent.
func opponent(c Cell) Cell {
	switch c {
	case CellBlack:
		return CellWhite
	case CellWhite:
		return CellBlack
	default:
		return CellEmpty
	}
}
