package main

const winLength = 5

// Axis is one of the four undirected line directions.
type Axis struct {
	DX, DY int
}

var (
	AxisHorizontal   = Axis{DX: 1, DY: 0}
	AxisVertical     = Axis{DX: 0, DY: 1}
	AxisDiagonal     = Axis{DX: 1, DY: 1}
	AxisAntiDiagonal = Axis{DX: 1, DY: -1}
)

var axes = [4]Axis{AxisHorizontal, AxisVertical, AxisDiagonal, AxisAntiDiagonal}

type Rules struct{}

func NewRules() Rules {
	return Rules{}
}

// PlacePosition writes cell at move and reports the outcome. Placing
// CellEmpty clears the cell and always reports StatePlaying.
func (r Rules) PlacePosition(board *Board, move Move, cell Cell) GameState {
	if !board.InBounds(move.X, move.Y) {
		return StatePlaying
	}
	if cell == CellEmpty {
		board.Remove(move.X, move.Y)
		return StatePlaying
	}
	if board.At(move.X, move.Y) != CellEmpty {
		return StateIllegalMove
	}
	board.Set(move.X, move.Y, cell)
	if r.IsWin(board, move) {
		if cell == CellWhite {
			return StateWhiteWin
		}
		return StateBlackWin
	}
	if r.IsDraw(board) {
		return StateDraw
	}
	return StatePlaying
}

func (r Rules) IsLegal(board *Board, move Move) (bool, string) {
	if !move.IsValid() {
		return false, "out of bounds"
	}
	if !board.IsEmpty(move.X, move.Y) {
		return false, "occupied"
	}
	return true, ""
}

func (r Rules) IsWin(board *Board, lastMove Move) bool {
	if !lastMove.IsValid() {
		return false
	}
	target := board.At(lastMove.X, lastMove.Y)
	if target == CellEmpty {
		return false
	}
	for _, axis := range axes {
		count := 1
		count += r.countDirection(board, lastMove, axis.DX, axis.DY, target)
		count += r.countDirection(board, lastMove, -axis.DX, -axis.DY, target)
		if count >= winLength {
			return true
		}
	}
	return false
}

func (r Rules) IsDraw(board *Board) bool {
	return board.Full()
}

// FindAlignmentLine returns the full run of at least five stones through
// lastMove, if there is one.
func (r Rules) FindAlignmentLine(board *Board, lastMove Move) ([]Move, bool) {
	if !lastMove.IsValid() || board.At(lastMove.X, lastMove.Y) == CellEmpty {
		return nil, false
	}
	for _, axis := range axes {
		line := r.collectLine(board, lastMove, axis.DX, axis.DY)
		if len(line) >= winLength {
			return line, true
		}
	}
	return nil, false
}

// countDirection counts matching stones beyond start, at most winLength-1.
func (r Rules) countDirection(board *Board, start Move, dx, dy int, target Cell) int {
	count := 0
	for i := 1; i < winLength; i++ {
		x := start.X + i*dx
		y := start.Y + i*dy
		if !board.InBounds(x, y) || board.At(x, y) != target {
			break
		}
		count++
	}
	return count
}

func (r Rules) collectLine(board *Board, start Move, dx, dy int) []Move {
	line := []Move{}
	target := board.At(start.X, start.Y)
	x := start.X
	y := start.Y
	for board.InBounds(x-dx, y-dy) && board.At(x-dx, y-dy) == target {
		x -= dx
		y -= dy
	}
	for board.InBounds(x, y) && board.At(x, y) == target {
		line = append(line, Move{X: x, Y: y})
		x += dx
		y += dy
	}
	return line
}
