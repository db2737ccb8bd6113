package main

type Pattern int

const (
	PatternFive Pattern = iota
	PatternLiveFour
	PatternClosedFour
	PatternLiveThree
	PatternClosedThree
	PatternLiveTwo
	PatternClosedTwo
	PatternNone
)

var patternWeights = [...]int{
	PatternFive:        1_000_000,
	PatternLiveFour:    10_000,
	PatternClosedFour:  5_000,
	PatternLiveThree:   2_000,
	PatternClosedThree: 500,
	PatternLiveTwo:     100,
	PatternClosedTwo:   30,
	PatternNone:        0,
}

func (p Pattern) Weight() int {
	if p < PatternFive || p > PatternNone {
		return 0
	}
	return patternWeights[p]
}

func (p Pattern) String() string {
	switch p {
	case PatternFive:
		return "five"
	case PatternLiveFour:
		return "live_four"
	case PatternClosedFour:
		return "closed_four"
	case PatternLiveThree:
		return "live_three"
	case PatternClosedThree:
		return "closed_three"
	case PatternLiveTwo:
		return "live_two"
	case PatternClosedTwo:
		return "closed_two"
	default:
		return "none"
	}
}

// Classify names the run of cell through move along axis.
//
// Each side is scanned at most four steps. A side is blocked when the scan
// hits the edge or an opposing stone, or runs out of steps; it is open when
// it stops on an empty cell. A four blocked on both sides scores nothing.
func Classify(board *Board, move Move, axis Axis, cell Cell) Pattern {
	if cell == CellEmpty {
		return PatternNone
	}
	forward, rightBlocked := scanSide(board, move, axis.DX, axis.DY, cell)
	backward, leftBlocked := scanSide(board, move, -axis.DX, -axis.DY, cell)
	consecutive := 1 + forward + backward

	oneBlocked := leftBlocked != rightBlocked
	open := !leftBlocked && !rightBlocked
	switch {
	case consecutive >= 5:
		return PatternFive
	case consecutive == 4 && open:
		return PatternLiveFour
	case consecutive == 4 && oneBlocked:
		return PatternClosedFour
	case consecutive == 3 && open:
		return PatternLiveThree
	case consecutive == 3 && oneBlocked:
		return PatternClosedThree
	case consecutive == 2 && open:
		return PatternLiveTwo
	case consecutive == 2 && oneBlocked:
		return PatternClosedTwo
	}
	return PatternNone
}

func scanSide(board *Board, start Move, dx, dy int, cell Cell) (count int, blocked bool) {
	for i := 1; i < winLength; i++ {
		x := start.X + i*dx
		y := start.Y + i*dy
		if !board.InBounds(x, y) {
			return count, true
		}
		next := board.At(x, y)
		if next != cell {
			return count, next != CellEmpty
		}
		count++
	}
	return count, true
}
