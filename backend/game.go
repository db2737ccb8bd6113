package main

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Game struct {
	sessionID   string
	settings    GameSettings
	rules       Rules
	state       MatchState
	history     MoveHistory
	blackPlayer IPlayer
	whitePlayer IPlayer
	turnStart   time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

// Reset clears the board and history and seats fresh players under a new
// session id. A search still running for the old session is discarded.
func (g *Game) Reset(settings GameSettings) {
	g.stopAIPlayers()
	g.sessionID = uuid.NewString()
	g.settings = settings
	g.rules = NewRules()
	g.state.Reset()
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) SessionID() string {
	return g.sessionID
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

// UpdateSettings reseats the players without touching the board.
func (g *Game) UpdateSettings(settings GameSettings) {
	g.stopAIPlayers()
	g.settings = settings
	g.createPlayers()
	g.logMatchup()
}

func (g *Game) State() MatchState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return MoveHistory{entries: g.history.All()}
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove plays move for the side to move and advances the session.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Status != StatusRunning {
		return g.reject("game not running")
	}
	if ok, reason := g.rules.IsLegal(&g.state.Board, move); !ok {
		return g.reject(reason)
	}

	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()
	color := g.state.ToMove
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())

	outcome := g.rules.PlacePosition(&g.state.Board, move, color)
	if outcome == StateIllegalMove {
		return g.reject("occupied")
	}
	g.state.LastMessage = ""
	g.state.LastMove = move
	g.state.HasLastMove = true
	g.state.WinningLine = nil
	g.history.Push(HistoryEntry{
		Move:      move,
		Player:    color,
		Outcome:   outcome,
		ElapsedMs: elapsedMs,
		IsAi:      isAiMove,
	})
	movesPlayed.WithLabelValues(strings.ToLower(color.String()), outcome.String()).Inc()
	log.Printf("[game] %s plays %s -> %s (%.0fms)", color, move, outcome, elapsedMs)

	if outcome.Terminal() {
		g.state.Status = statusFromOutcome(outcome)
		if outcome == StateDraw {
			log.Printf("[game] session %s: draw", g.sessionID)
			return true, ""
		}
		if line, ok := g.rules.FindAlignmentLine(&g.state.Board, move); ok {
			g.state.WinningLine = line
		}
		log.Printf("[game] session %s: %s wins", g.sessionID, color)
		return true, ""
	}

	g.state.ToMove = opponent(color)
	g.turnStart = time.Now()
	return true, ""
}

func (g *Game) reject(reason string) (bool, string) {
	if reason != "game not running" {
		g.state.LastMessage = "Illegal move: " + reason
	}
	movesRejected.WithLabelValues(reason).Inc()
	return false, reason
}

// Tick advances the side to move by at most one move and reports whether a
// move was applied. progress, when set, receives search progress of AI turns.
func (g *Game) Tick(progress func(ghostPayload)) bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if human, ok := player.(*HumanPlayer); ok {
		if human.HasPendingMove() {
			applied, _ := g.TryApplyMove(human.TakePendingMove())
			return applied
		}
		return false
	}
	if ai, ok := player.(*AIPlayer); ok {
		if ai.HasMoveReady() {
			move := ai.TakeMove()
			if move == NoMove {
				return false
			}
			applied, _ := g.TryApplyMove(move)
			return applied
		}
		if !ai.IsThinking() {
			ai.StartThinking(g.state.Clone(), progress)
		}
		return false
	}
	applied, _ := g.TryApplyMove(player.ChooseMove(g.state.Clone(), g.rules))
	return applied
}

func (g *Game) SubmitHumanMove(move Move) bool {
	human, ok := g.currentPlayer().(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	if ai, ok := g.currentPlayer().(*AIPlayer); ok {
		return ai.IsThinking()
	}
	return false
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color Cell) IPlayer {
	if color == CellWhite {
		return g.whitePlayer
	}
	return g.blackPlayer
}

func (g *Game) createPlayers() {
	g.blackPlayer = newPlayer(g.settings.TypeFor(CellBlack))
	g.whitePlayer = newPlayer(g.settings.TypeFor(CellWhite))
}

func newPlayer(kind PlayerType) IPlayer {
	if kind == PlayerAI {
		return NewAIPlayer()
	}
	return NewHumanPlayer()
}

func (g *Game) stopAIPlayers() {
	for _, player := range []IPlayer{g.blackPlayer, g.whitePlayer} {
		if ai, ok := player.(*AIPlayer); ok {
			ai.StopThinking()
		}
	}
}

func (g *Game) logMatchup() {
	log.Printf("[game] session %s: Black (%s) vs White (%s)", g.sessionID, g.settings.BlackType, g.settings.WhiteType)
}
