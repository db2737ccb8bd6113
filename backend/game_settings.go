package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

func (p PlayerType) String() string {
	if p == PlayerAI {
		return "AI"
	}
	return "Human"
}

type GameSettings struct {
	BlackType PlayerType `json:"-"`
	WhiteType PlayerType `json:"-"`
}

// DefaultGameSettings seats a human as Black, who moves first, against the AI.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		BlackType: PlayerHuman,
		WhiteType: PlayerAI,
	}
}

func (s GameSettings) TypeFor(color Cell) PlayerType {
	if color == CellWhite {
		return s.WhiteType
	}
	return s.BlackType
}
