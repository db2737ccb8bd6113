package main

import "math"

const (
	DefaultSearchDepth = 2

	scoreInf = math.MaxInt
)

type SearchOptions struct {
	// Depth is the horizon in plies; values <= 0 mean DefaultSearchDepth.
	Depth int
	// OnRootScored is called after each root candidate with its score and
	// the best move found so far.
	OnRootScored func(candidate Move, score int, best Move, bestScore int)
}

// SearchEngine runs minimax with alpha-beta pruning directly on board.
// Every trial stone is removed before its subtree call returns, so the
// board is unchanged once BestMove or Minimax returns.
type SearchEngine struct {
	board        *Board
	aiColor      Cell
	humanColor   Cell
	depth        int
	nodes        int
	bestScore    int
	onRootScored func(Move, int, Move, int)
}

func NewSearchEngine(board *Board, aiColor Cell, opts SearchOptions) *SearchEngine {
	depth := opts.Depth
	if depth <= 0 {
		depth = DefaultSearchDepth
	}
	return &SearchEngine{
		board:        board,
		aiColor:      aiColor,
		humanColor:   opponent(aiColor),
		depth:        depth,
		onRootScored: opts.OnRootScored,
	}
}

func (s *SearchEngine) Depth() int {
	return s.depth
}

// Nodes reports how many positions the last BestMove visited.
func (s *SearchEngine) Nodes() int {
	return s.nodes
}

// Score is the root score of the move returned by the last BestMove.
func (s *SearchEngine) Score() int {
	return s.bestScore
}

// BestMove scores every empty cell in row-major order and returns the first
// one with the highest score, or NoMove on a full board.
func (s *SearchEngine) BestMove() Move {
	s.nodes = 0
	s.bestScore = 0
	if s.board.Full() {
		return NoMove
	}
	best := NoMove
	bestScore := math.MinInt
	for idx := range s.board.cells {
		if s.board.cells[idx] != CellEmpty {
			continue
		}
		score := s.withStone(idx, s.aiColor, func() int {
			return s.Minimax(s.depth-1, false, -scoreInf, scoreInf)
		})
		candidate := moveFromIndex(idx)
		if score > bestScore || best == NoMove {
			bestScore = score
			best = candidate
		}
		if s.onRootScored != nil {
			s.onRootScored(candidate, score, best, bestScore)
		}
	}
	s.bestScore = bestScore
	return best
}

func (s *SearchEngine) Minimax(depth int, maximizing bool, alpha, beta int) int {
	s.nodes++
	if depth == 0 {
		return BoardScore(s.board, s.aiColor, s.humanColor)
	}
	if s.board.Full() {
		return 0
	}

	if maximizing {
		maxEval := math.MinInt
		for idx := range s.board.cells {
			if s.board.cells[idx] != CellEmpty {
				continue
			}
			eval := s.withStone(idx, s.aiColor, func() int {
				return s.Minimax(depth-1, false, alpha, beta)
			})
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.MaxInt
	for idx := range s.board.cells {
		if s.board.cells[idx] != CellEmpty {
			continue
		}
		eval := s.withStone(idx, s.humanColor, func() int {
			return s.Minimax(depth-1, true, alpha, beta)
		})
		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return minEval
}

// withStone places cell at idx for the duration of next.
func (s *SearchEngine) withStone(idx int, cell Cell, next func() int) int {
	s.board.setIndex(idx, cell)
	defer s.board.setIndex(idx, CellEmpty)
	return next()
}
