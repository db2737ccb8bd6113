package main

import "fmt"

type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NoMove is returned by the search when the board has no empty cell.
var NoMove = Move{X: -1, Y: -1}

func (m Move) IsValid() bool {
	return m.X >= 0 && m.Y >= 0 && m.X < BoardSize && m.Y < BoardSize
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.X, m.Y)
}

func moveFromIndex(idx int) Move {
	return Move{X: idx % BoardSize, Y: idx / BoardSize}
}
