package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

type StatusResponse struct {
	SessionID       string            `json:"session_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Board           [][]int           `json:"board"`
	BoardSize       int               `json:"board_size"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	History         []historyEntryDTO `json:"history"`
	WinningLine     []Move            `json:"winning_line"`
	LastMessage     string            `json:"last_message"`
	AiThinking      bool              `json:"ai_thinking"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntryDTO struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Player    int     `json:"player"`
	Outcome   string  `json:"outcome"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	SessionID       string            `json:"session_id"`
	History         []historyEntryDTO `json:"history"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	BoardSize       int               `json:"board_size"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("[backend] %v", err)
	}
}

func run() error {
	cfg, err := LoadConfig(os.Getenv("GOBANG_CONFIG"))
	if err != nil {
		return err
	}
	configStore.Update(cfg)

	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()
	ghostHub := NewGhostHub()
	controller.SetGhostPublisher(
		func() bool { return ghostHub.HasClients() && GetConfig().GhostMode },
		ghostHub.Publish,
	)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	g, ctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		hub.Run(ctx.Done())
		return nil
	})
	g.Go(func() error {
		ghostHub.Run(ctx.Done())
		return nil
	})
	g.Go(func() error {
		runTicker(ctx, controller, hub, cfg.TickInterval())
		return nil
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newRouter(controller, hub, ghostHub),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		log.Printf("[backend] listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("[backend] shutting down: %v", context.Cause(ctx))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[backend] graceful shutdown failed: %v", err)
			if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
				log.Printf("[backend] forced close failed: %v", closeErr)
			}
		}
		return nil
	})

	return g.Wait()
}

// runTicker drives AI turns and pending human moves until ctx is done.
func runTicker(ctx context.Context, controller *GameController, hub *Hub, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if controller.Tick() {
				broadcastMove(controller, hub)
			}
		}
	}
}

func broadcastMove(controller *GameController, hub *Hub) {
	if !hub.HasClients() {
		return
	}
	if entry, ok := controller.LatestHistoryEntry(); ok {
		hub.PublishHistory(historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
	}
	hub.PublishStatus(controllerStatus(controller))
}

func newRouter(controller *GameController, hub *Hub, ghostHub *GhostHub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		gamesStarted.WithLabelValues(controllerSettingsDTO(settings).Mode).Inc()
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.PublishReset(resetFromController(controller))
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.Reset(controller.Settings())
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.PublishReset(resetFromController(controller))
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   json.RawMessage  `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if len(payload.Config) > 0 {
			// Fields absent from the request keep their current values.
			cfg := GetConfig()
			if err := json.Unmarshal(payload.Config, &cfg); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid config"})
				return
			}
			configStore.Update(cfg)
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			controller.UpdateSettings(settings, false)
		}
		hub.PublishSettings(settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   GetConfig(),
		})
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(Move{X: payload.X, Y: payload.Y})
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		broadcastMove(controller, hub)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})
	r.Get("/ws/search", func(w http.ResponseWriter, r *http.Request) {
		serveGhostWS(ghostHub, w, r)
	})
	return r
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	conn, err := newUpgrader().Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		case "move":
			// Queued for the next tick rather than applied inline.
			var move apiMove
			if err := json.Unmarshal(msg.Payload, &move); err != nil {
				continue
			}
			controller.OnCellClicked(move.X, move.Y)
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	snap := controller.Snapshot()
	state := snap.State
	return StatusResponse{
		SessionID:       snap.SessionID,
		Settings:        controllerSettingsDTO(snap.Settings),
		Config:          GetConfig(),
		Board:           boardToSlice(state.Board),
		BoardSize:       state.Board.Size(),
		NextPlayer:      cellToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		History:         historyToDTO(snap.History),
		WinningLine:     append([]Move{}, state.WinningLine...),
		LastMessage:     state.LastMessage,
		AiThinking:      snap.AiThinking,
		TurnStartedAtMs: snap.TurnStartedAtMs,
	}
}

func resetFromController(controller *GameController) resetPayload {
	snap := controller.Snapshot()
	return resetPayload{
		SessionID:       snap.SessionID,
		History:         historyToDTO(snap.History),
		NextPlayer:      cellToInt(snap.State.ToMove),
		Winner:          winnerFromStatus(snap.State.Status),
		Status:          statusToString(snap.State.Status),
		BoardSize:       snap.State.Board.Size(),
		TurnStartedAtMs: snap.TurnStartedAtMs,
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.BlackType = PlayerAI
		settings.WhiteType = PlayerAI
	case "human_vs_human":
		settings.BlackType = PlayerHuman
		settings.WhiteType = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.BlackType = PlayerAI
			settings.WhiteType = PlayerHuman
		} else {
			settings.BlackType = PlayerHuman
			settings.WhiteType = PlayerAI
		}
	}
	return settings
}

func controllerSettingsDTO(settings GameSettings) GameSettingsDTO {
	switch {
	case settings.BlackType == PlayerAI && settings.WhiteType == PlayerAI:
		return GameSettingsDTO{Mode: "ai_vs_ai"}
	case settings.BlackType == PlayerHuman && settings.WhiteType == PlayerHuman:
		return GameSettingsDTO{Mode: "human_vs_human", HumanPlayer: 1}
	case settings.WhiteType == PlayerHuman:
		return GameSettingsDTO{Mode: "ai_vs_human", HumanPlayer: 2}
	default:
		return GameSettingsDTO{Mode: "ai_vs_human", HumanPlayer: 1}
	}
}

func boardToSlice(board Board) [][]int {
	size := board.Size()
	rows := make([][]int, size)
	for y := 0; y < size; y++ {
		rows[y] = make([]int, size)
		for x := 0; x < size; x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellBlack:
		return 1
	case CellWhite:
		return 2
	default:
		return 0
	}
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusBlackWon:
		return 1
	case StatusWhiteWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		X:         entry.Move.X,
		Y:         entry.Move.Y,
		Player:    cellToInt(entry.Player),
		Outcome:   entry.Outcome.String(),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
