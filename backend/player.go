package main

// IPlayer is one seat at the board. Human players report NoMove from
// ChooseMove; their moves arrive through the session instead.
type IPlayer interface {
	IsHuman() bool
	ChooseMove(state MatchState, rules Rules) Move
}
