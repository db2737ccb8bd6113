package main

// GameState is the outcome of a single placement.
type GameState int

const (
	StatePlaying GameState = iota
	StateBlackWin
	StateWhiteWin
	StateDraw
	// StateIllegalMove means the target cell was occupied; nothing was written.
	StateIllegalMove
)

func (s GameState) String() string {
	switch s {
	case StateBlackWin:
		return "black_win"
	case StateWhiteWin:
		return "white_win"
	case StateDraw:
		return "draw"
	case StateIllegalMove:
		return "illegal_move"
	default:
		return "playing"
	}
}

func (s GameState) Terminal() bool {
	return s == StateBlackWin || s == StateWhiteWin || s == StateDraw
}

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

// MatchState is the session-level view of a game in progress.
type MatchState struct {
	Board       Board
	ToMove      Cell
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	LastMessage string
	WinningLine []Move
}

func DefaultMatchState() MatchState {
	state := MatchState{}
	state.Reset()
	return state
}

func (s *MatchState) Reset() {
	s.Board.Clear()
	s.ToMove = CellBlack
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = NoMove
	s.LastMessage = ""
	s.WinningLine = nil
}

func (s MatchState) Clone() MatchState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.WinningLine = append([]Move(nil), s.WinningLine...)
	return clone
}

func statusFromOutcome(outcome GameState) GameStatus {
	switch outcome {
	case StateBlackWin:
		return StatusBlackWon
	case StateWhiteWin:
		return StatusWhiteWon
	case StateDraw:
		return StatusDraw
	default:
		return StatusRunning
	}
}
