package main

// Evaluate sums pattern weights over every stone of cell on every axis.
// Each stone of a run scores the run again, so a line of n stones counts
// roughly n times; only the ordering between positions matters to the search.
func Evaluate(board *Board, cell Cell) int {
	if cell == CellEmpty {
		return 0
	}
	total := 0
	for idx, value := range board.cells {
		if value != cell {
			continue
		}
		move := moveFromIndex(idx)
		for _, axis := range axes {
			total += Classify(board, move, axis, cell).Weight()
		}
	}
	return total
}

func BoardScore(board *Board, aiColor, humanColor Cell) int {
	return Evaluate(board, aiColor) - Evaluate(board, humanColor)
}
