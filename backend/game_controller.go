package main

import "sync"

// GameController serialises access to the one session the server hosts.
type GameController struct {
	mu             sync.Mutex
	game           Game
	ghostEnabled   func() bool
	ghostPublisher func(ghostPayload)
}

// sessionSnapshot is a consistent view of the session taken under one lock.
type sessionSnapshot struct {
	SessionID       string
	Settings        GameSettings
	State           MatchState
	History         MoveHistory
	AiThinking      bool
	TurnStartedAtMs int64
}

func NewGameController(settings GameSettings) *GameController {
	return &GameController{game: NewGame(settings)}
}

func (gc *GameController) SetGhostPublisher(enabled func() bool, publisher func(ghostPayload)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.ghostEnabled = enabled
	gc.ghostPublisher = publisher
}

func (gc *GameController) OnCellClicked(x, y int) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SubmitHumanMove(Move{X: x, Y: y})
}

func (gc *GameController) ApplyHumanMove(move Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game.state.Status == StatusRunning && !gc.game.CurrentPlayerIsHuman() {
		return gc.game.reject("not human turn")
	}
	return gc.game.TryApplyMove(move)
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	var progress func(ghostPayload)
	if gc.ghostPublisher != nil && (gc.ghostEnabled == nil || gc.ghostEnabled()) {
		publish := gc.ghostPublisher
		sessionID := gc.game.SessionID()
		progress = func(payload ghostPayload) {
			payload.SessionID = sessionID
			publish(payload)
		}
	}
	return gc.game.Tick(progress)
}

func (gc *GameController) Snapshot() sessionSnapshot {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return sessionSnapshot{
		SessionID:       gc.game.SessionID(),
		Settings:        gc.game.Settings(),
		State:           gc.game.State(),
		History:         gc.game.History(),
		AiThinking:      gc.game.AiThinking(),
		TurnStartedAtMs: gc.game.TurnStartedAtMs(),
	}
}

func (gc *GameController) State() MatchState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) SessionID() string {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SessionID()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.history.Last()
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
}

func (gc *GameController) UpdateSettings(update GameSettings, reset bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset {
		gc.game.Reset(update)
		return
	}
	gc.game.UpdateSettings(update)
}
