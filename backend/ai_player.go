package main

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

type AIPlayer struct {
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	// generation is bumped by every start and stop; a worker only publishes
	// its move if the generation it started under is still current.
	generation uint64
	readyMove  Move
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{readyMove: NoMove}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove searches synchronously for the side to move in state.
func (a *AIPlayer) ChooseMove(state MatchState, rules Rules) Move {
	board := state.Board.Clone()
	return runSearch(&board, state.ToMove, GetConfig(), nil)
}

// StartThinking searches a copy of state in the background. The result is
// picked up with HasMoveReady and TakeMove. A search already running is left
// alone.
func (a *AIPlayer) StartThinking(state MatchState, progress func(ghostPayload)) {
	if a.thinking.Load() {
		return
	}
	a.thinking.Store(true)
	a.moveMutex.Lock()
	a.generation++
	gen := a.generation
	a.moveReady.Store(false)
	a.moveMutex.Unlock()

	board := state.Board.Clone()
	color := state.ToMove
	config := GetConfig()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		move := runSearch(&board, color, config, progress)
		a.moveMutex.Lock()
		if gen == a.generation {
			a.readyMove = move
			a.moveReady.Store(true)
		}
		a.moveMutex.Unlock()
		a.thinking.Store(false)
	}()
}

// StopThinking marks the running search stale; its move is dropped when it
// finishes.
func (a *AIPlayer) StopThinking() {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.generation++
	a.moveReady.Store(false)
	a.readyMove = NoMove
}

// Wait blocks until the last background search has returned.
func (a *AIPlayer) Wait() {
	if a.workerDone != nil {
		<-a.workerDone
	}
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() Move {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	move := a.readyMove
	a.readyMove = NoMove
	return move
}

func runSearch(board *Board, color Cell, config Config, progress func(ghostPayload)) Move {
	opts := SearchOptions{Depth: config.AiDepth}
	player := cellToInt(color)
	if progress != nil {
		opts.OnRootScored = func(candidate Move, score int, best Move, bestScore int) {
			progress(ghostPayload{
				Mode:       "candidate",
				Candidate:  &ghostCell{X: candidate.X, Y: candidate.Y, Player: player},
				Score:      score,
				Best:       &ghostCell{X: best.X, Y: best.Y, Player: player},
				BestScore:  bestScore,
				NextPlayer: player,
				Active:     true,
			})
		}
	}

	candidates := board.CountEmpty()
	start := time.Now()
	engine := NewSearchEngine(board, color, opts)
	move := engine.BestMove()
	elapsed := time.Since(start)

	searchDuration.WithLabelValues(strconv.Itoa(engine.Depth())).Observe(elapsed.Seconds())
	searchNodes.Add(float64(engine.Nodes()))
	if config.LogSearchStats {
		log.Printf("[ai] %s best move %s score=%d depth=%d candidates=%d nodes=%d in %s",
			color, move, engine.Score(), engine.Depth(), candidates, engine.Nodes(), elapsed.Round(time.Millisecond))
	}
	if progress != nil {
		payload := ghostPayload{
			Mode:       "best_move",
			BestScore:  engine.Score(),
			Depth:      engine.Depth(),
			Nodes:      engine.Nodes(),
			NextPlayer: player,
			Final:      true,
		}
		if move != NoMove {
			payload.Best = &ghostCell{X: move.X, Y: move.Y, Player: player}
		}
		progress(payload)
	}
	return move
}
