package main

import (
	"testing"
	"time"
)

func humanVsHuman() GameSettings {
	return GameSettings{BlackType: PlayerHuman, WhiteType: PlayerHuman}
}

func tickUntilMove(t *testing.T, controller *GameController) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if controller.Tick() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected a move before the deadline")
}

func TestApplyHumanMoveRequiresRunningGame(t *testing.T) {
	controller := NewGameController(humanVsHuman())
	if applied, reason := controller.ApplyHumanMove(Move{X: 7, Y: 7}); applied || reason != "game not running" {
		t.Fatalf("expected game not running, got applied=%v reason=%q", applied, reason)
	}
}

func TestHumanVsHumanAlternatesAndRejectsBadMoves(t *testing.T) {
	controller := NewGameController(humanVsHuman())
	controller.StartGame(humanVsHuman())

	if applied, reason := controller.ApplyHumanMove(Move{X: 7, Y: 7}); !applied {
		t.Fatalf("expected first move to apply: %s", reason)
	}
	if applied, reason := controller.ApplyHumanMove(Move{X: 7, Y: 7}); applied || reason != "occupied" {
		t.Fatalf("expected occupied, got applied=%v reason=%q", applied, reason)
	}
	if got := controller.State().LastMessage; got != "Illegal move: occupied" {
		t.Fatalf("expected illegal move message, got %q", got)
	}
	if applied, reason := controller.ApplyHumanMove(Move{X: 15, Y: 0}); applied || reason != "out of bounds" {
		t.Fatalf("expected out of bounds, got applied=%v reason=%q", applied, reason)
	}
	if applied, reason := controller.ApplyHumanMove(Move{X: 8, Y: 7}); !applied {
		t.Fatalf("expected second move to apply: %s", reason)
	}

	state := controller.State()
	if state.Board.At(7, 7) != CellBlack || state.Board.At(8, 7) != CellWhite {
		t.Fatalf("expected black then white stones")
	}
	if state.ToMove != CellBlack {
		t.Fatalf("expected black to move, got %s", state.ToMove)
	}
	entries := controller.History().All()
	if len(entries) != 2 || entries[1].Player != CellWhite || entries[1].IsAi {
		t.Fatalf("expected two human entries, got %+v", entries)
	}
}

func TestWinEndsGameWithLine(t *testing.T) {
	controller := NewGameController(humanVsHuman())
	controller.StartGame(humanVsHuman())
	for i := 0; i < 4; i++ {
		controller.ApplyHumanMove(Move{X: 3 + i, Y: 7})
		controller.ApplyHumanMove(Move{X: 3 + i, Y: 9})
	}
	if applied, reason := controller.ApplyHumanMove(Move{X: 7, Y: 7}); !applied {
		t.Fatalf("expected winning move to apply: %s", reason)
	}
	state := controller.State()
	if state.Status != StatusBlackWon {
		t.Fatalf("expected black to win, got %d", state.Status)
	}
	if len(state.WinningLine) != 5 || state.WinningLine[0] != (Move{X: 3, Y: 7}) {
		t.Fatalf("expected winning line from (3,7), got %v", state.WinningLine)
	}
	last, ok := controller.LatestHistoryEntry()
	if !ok || last.Outcome != StateBlackWin {
		t.Fatalf("expected last entry to record the win, got %+v", last)
	}
	if applied, reason := controller.ApplyHumanMove(Move{X: 0, Y: 0}); applied || reason != "game not running" {
		t.Fatalf("expected finished game to reject moves, got applied=%v reason=%q", applied, reason)
	}
}

func TestPlayerVsAIProgressesThroughTick(t *testing.T) {
	withConfig(t, func(cfg *Config) { cfg.AiDepth = 1 })
	settings := DefaultGameSettings()
	controller := NewGameController(settings)
	controller.StartGame(settings)

	if applied, reason := controller.ApplyHumanMove(Move{X: 7, Y: 7}); !applied {
		t.Fatalf("expected human move to apply: %s", reason)
	}
	if applied, reason := controller.ApplyHumanMove(Move{X: 8, Y: 8}); applied || reason != "not human turn" {
		t.Fatalf("expected not human turn, got applied=%v reason=%q", applied, reason)
	}

	tickUntilMove(t, controller)

	entries := controller.History().All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	if !entries[1].IsAi || entries[1].Player != CellWhite {
		t.Fatalf("expected white AI reply, got %+v", entries[1])
	}
	if controller.State().ToMove != CellBlack {
		t.Fatalf("expected the human to move next")
	}
}

func TestPendingClickAppliedOnTick(t *testing.T) {
	controller := NewGameController(humanVsHuman())
	controller.StartGame(humanVsHuman())
	if !controller.OnCellClicked(2, 3) {
		t.Fatalf("expected click to be queued")
	}
	if !controller.Tick() {
		t.Fatalf("expected tick to apply the queued click")
	}
	state := controller.State()
	if state.Board.At(2, 3) != CellBlack {
		t.Fatalf("expected black stone at (2,3)")
	}
}

func TestGhostPublisherReceivesSearchProgress(t *testing.T) {
	withConfig(t, func(cfg *Config) { cfg.AiDepth = 1 })
	settings := GameSettings{BlackType: PlayerAI, WhiteType: PlayerHuman}
	controller := NewGameController(settings)
	controller.StartGame(settings)

	updates := make(chan ghostPayload, 512)
	controller.SetGhostPublisher(func() bool { return true }, func(payload ghostPayload) {
		updates <- payload
	})
	tickUntilMove(t, controller)

	sessionID := controller.SessionID()
	sawFinal := false
	for len(updates) > 0 {
		payload := <-updates
		if payload.SessionID != sessionID {
			t.Fatalf("expected session %s, got %s", sessionID, payload.SessionID)
		}
		if payload.Final {
			sawFinal = true
		}
	}
	if !sawFinal {
		t.Fatalf("expected a final search update")
	}
}

func TestResetStartsNewSession(t *testing.T) {
	controller := NewGameController(humanVsHuman())
	controller.StartGame(humanVsHuman())
	controller.ApplyHumanMove(Move{X: 1, Y: 1})
	first := controller.SessionID()

	controller.Reset(controller.Settings())
	snap := controller.Snapshot()
	if snap.SessionID == first || snap.SessionID == "" {
		t.Fatalf("expected a fresh session id, got %q", snap.SessionID)
	}
	if snap.State.Status != StatusNotStarted || snap.State.Board.Stones() != 0 || snap.History.Size() != 0 {
		t.Fatalf("expected cleared session, got status=%d stones=%d", snap.State.Status, snap.State.Board.Stones())
	}
}

func TestUpdateSettingsKeepsBoardAndContinuesGame(t *testing.T) {
	withConfig(t, func(cfg *Config) { cfg.AiDepth = 1 })
	controller := NewGameController(humanVsHuman())
	controller.StartGame(humanVsHuman())
	controller.ApplyHumanMove(Move{X: 9, Y: 9})
	controller.ApplyHumanMove(Move{X: 10, Y: 9})
	sessionID := controller.SessionID()

	controller.UpdateSettings(GameSettings{BlackType: PlayerAI, WhiteType: PlayerAI}, false)

	state := controller.State()
	if state.Board.At(9, 9) != CellBlack || state.Board.At(10, 9) != CellWhite {
		t.Fatalf("expected stones to survive the settings switch")
	}
	if controller.SessionID() != sessionID {
		t.Fatalf("expected session id to be kept")
	}
	tickUntilMove(t, controller)
	if controller.History().Size() != 3 {
		t.Fatalf("expected the AI to add a move, got %d entries", controller.History().Size())
	}
}

func TestSettingsTypeForSeatsPlayers(t *testing.T) {
	settings := GameSettings{BlackType: PlayerAI, WhiteType: PlayerHuman}
	if settings.TypeFor(CellBlack) != PlayerAI || settings.TypeFor(CellWhite) != PlayerHuman {
		t.Fatalf("expected AI black and human white, got %s/%s", settings.TypeFor(CellBlack), settings.TypeFor(CellWhite))
	}
	game := NewGame(settings)
	if _, ok := game.playerForColor(CellBlack).(*AIPlayer); !ok {
		t.Fatalf("expected an AI seated on black")
	}
	if !game.playerForColor(CellWhite).IsHuman() {
		t.Fatalf("expected a human seated on white")
	}
}
