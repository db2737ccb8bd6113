package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// gameAPI is the slice of the backend HTTP API the terminal client uses.
type gameAPI interface {
	Ping() error
	Status() (statusResponse, error)
	Start(mode string, humanPlayer int) (statusResponse, error)
	Stop() error
	Move(x, y int) (statusResponse, error)
}

type moveDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntry struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Player int  `json:"player"`
	IsAi   bool `json:"is_ai"`
}

type statusResponse struct {
	SessionID   string         `json:"session_id"`
	Board       [][]int        `json:"board"`
	BoardSize   int            `json:"board_size"`
	NextPlayer  int            `json:"next_player"`
	Winner      int            `json:"winner"`
	Status      string         `json:"status"`
	History     []historyEntry `json:"history"`
	WinningLine []moveDTO      `json:"winning_line"`
	LastMessage string         `json:"last_message"`
	AiThinking  bool           `json:"ai_thinking"`
}

// Finished reports whether the game in this status is over.
func (s statusResponse) Finished() bool {
	switch s.Status {
	case "black_won", "white_won", "draw":
		return true
	}
	return false
}

func (s statusResponse) CellAt(x, y int) int {
	if y < 0 || y >= len(s.Board) || x < 0 || x >= len(s.Board[y]) {
		return 0
	}
	return s.Board[y][x]
}

type apiClient struct {
	client  *http.Client
	baseURL string
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *apiClient) Ping() error {
	var out map[string]bool
	return c.getJSON("/api/ping", &out)
}

func (c *apiClient) Status() (statusResponse, error) {
	var status statusResponse
	err := c.getJSON("/api/status", &status)
	return status, err
}

func (c *apiClient) Start(mode string, humanPlayer int) (statusResponse, error) {
	payload := map[string]any{
		"settings": map[string]any{
			"mode":         mode,
			"human_player": humanPlayer,
		},
	}
	var status statusResponse
	err := c.postJSON("/api/start", payload, &status)
	return status, err
}

func (c *apiClient) Stop() error {
	return c.postJSON("/api/stop", map[string]any{}, nil)
}

func (c *apiClient) Move(x, y int) (statusResponse, error) {
	var status statusResponse
	err := c.postJSON("/api/move", moveDTO{X: x, Y: y}, &status)
	return status, err
}

func (c *apiClient) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s -> %d: %s", path, resp.StatusCode, errorBody(resp.Body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s -> %d: %s", path, resp.StatusCode, errorBody(resp.Body))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// errorBody prefers the backend's {"error": ...} message over the raw body.
func errorBody(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 1024))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(raw))
}
