package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fallbackBoardSize = 15
	humanSide         = 1
)

type scene int

const (
	sceneMenu scene = iota
	scenePlayerVsPlayer
	scenePlayerVsAI
	sceneExit
)

func (s scene) String() string {
	switch s {
	case scenePlayerVsPlayer:
		return "Player vs Player"
	case scenePlayerVsAI:
		return "Player vs AI"
	case sceneExit:
		return "Exit"
	default:
		return "Menu"
	}
}

func (s scene) inMatch() bool {
	return s == scenePlayerVsPlayer || s == scenePlayerVsAI
}

type statusMsg struct {
	status statusResponse
	err    error
}

// startedMsg carries the reply to starting a session; it pins the session id
// later status replies must match.
type startedMsg struct {
	status statusResponse
	err    error
}

type pingMsg struct {
	err error
}

type stoppedMsg struct {
	err error
}

type tickMsg struct {
	gen int
}

// model owns the whole client: the active scene, the cursor and the last
// status seen from the backend.
type model struct {
	api    gameAPI
	logger *log.Logger
	poll   time.Duration

	scene     scene
	cursorX   int
	cursorY   int
	sessionID string
	status    statusResponse
	hasStatus bool
	message   string
	tickGen   int
}

func newModel(api gameAPI, logger *log.Logger, poll time.Duration) model {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if poll <= 0 {
		poll = 250 * time.Millisecond
	}
	return model{api: api, logger: logger, poll: poll, scene: sceneMenu}
}

func (m model) Init() tea.Cmd {
	return m.pingCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, matchKeys.Quit) {
			m.scene = sceneExit
			return m, tea.Quit
		}
		if m.scene.inMatch() {
			return m.updateMatch(msg)
		}
		return m.updateMenu(msg)
	case pingMsg:
		if msg.err != nil {
			m.logger.Printf("[terminal] backend unreachable: %v", msg.err)
			m.message = "backend unreachable: " + msg.err.Error()
		}
		return m, nil
	case startedMsg:
		if !m.scene.inMatch() {
			return m, nil
		}
		if msg.err == nil {
			m.sessionID = msg.status.SessionID
		}
		return m.applyStatus(statusMsg(msg)), nil
	case statusMsg:
		return m.applyStatus(msg), nil
	case stoppedMsg:
		if msg.err != nil {
			m.logger.Printf("[terminal] stop failed: %v", msg.err)
		}
		return m, nil
	case tickMsg:
		if !m.scene.inMatch() || msg.gen != m.tickGen {
			return m, nil
		}
		return m, tea.Batch(m.statusCmd(), m.tickCmd())
	}
	return m, nil
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, menuKeys.PlayerVsPlayer):
		return m.enterMatch(scenePlayerVsPlayer, "human_vs_human")
	case key.Matches(msg, menuKeys.PlayerVsAI):
		return m.enterMatch(scenePlayerVsAI, "ai_vs_human")
	case key.Matches(msg, menuKeys.Exit):
		m.scene = sceneExit
		return m, tea.Quit
	}
	return m, nil
}

func (m model) enterMatch(next scene, mode string) (tea.Model, tea.Cmd) {
	m.scene = next
	m.cursorX = fallbackBoardSize / 2
	m.cursorY = fallbackBoardSize / 2
	m.sessionID = ""
	m.status = statusResponse{}
	m.hasStatus = false
	m.message = ""
	m.tickGen++
	m.logger.Printf("[terminal] entering %s", next)
	api := m.api
	start := func() tea.Msg {
		status, err := api.Start(mode, humanSide)
		return startedMsg{status: status, err: err}
	}
	return m, tea.Batch(start, m.tickCmd())
}

func (m model) leaveMatch() (tea.Model, tea.Cmd) {
	m.logger.Printf("[terminal] leaving %s", m.scene)
	m.scene = sceneMenu
	m.sessionID = ""
	m.status = statusResponse{}
	m.hasStatus = false
	m.message = ""
	m.tickGen++
	api := m.api
	return m, func() tea.Msg {
		return stoppedMsg{err: api.Stop()}
	}
}

func (m model) updateMatch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.hasStatus && m.status.Finished() {
		return m.leaveMatch()
	}
	size := m.boardSize()
	switch {
	case key.Matches(msg, matchKeys.Menu):
		return m.leaveMatch()
	case key.Matches(msg, matchKeys.Up):
		m.cursorY = max(m.cursorY-1, 0)
	case key.Matches(msg, matchKeys.Down):
		m.cursorY = min(m.cursorY+1, size-1)
	case key.Matches(msg, matchKeys.Left):
		m.cursorX = max(m.cursorX-1, 0)
	case key.Matches(msg, matchKeys.Right):
		m.cursorX = min(m.cursorX+1, size-1)
	case key.Matches(msg, matchKeys.Place):
		return m.place()
	}
	return m, nil
}

func (m model) place() (tea.Model, tea.Cmd) {
	if !m.hasStatus || m.status.Status != "running" {
		return m, nil
	}
	if m.status.CellAt(m.cursorX, m.cursorY) != 0 {
		return m, nil
	}
	if m.scene == scenePlayerVsAI && m.status.NextPlayer != humanSide {
		m.message = "AI is thinking"
		return m, nil
	}
	x, y := m.cursorX, m.cursorY
	api := m.api
	return m, func() tea.Msg {
		status, err := api.Move(x, y)
		return statusMsg{status: status, err: err}
	}
}

func (m model) applyStatus(msg statusMsg) model {
	if !m.scene.inMatch() {
		return m
	}
	if msg.err != nil {
		m.logger.Printf("[terminal] %v", msg.err)
		m.message = msg.err.Error()
		return m
	}
	if m.sessionID == "" || msg.status.SessionID != m.sessionID {
		return m
	}
	m.status = msg.status
	m.hasStatus = true
	m.message = msg.status.LastMessage
	if msg.status.Finished() {
		m.message = resultText(msg.status) + " - press any key"
	}
	return m
}

func (m model) boardSize() int {
	if m.hasStatus && m.status.BoardSize > 0 {
		return m.status.BoardSize
	}
	return fallbackBoardSize
}

func (m model) pingCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		return pingMsg{err: api.Ping()}
	}
}

func (m model) statusCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		status, err := api.Status()
		return statusMsg{status: status, err: err}
	}
}

func (m model) tickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.poll, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func resultText(status statusResponse) string {
	switch status.Winner {
	case 1:
		return "Black (*) wins"
	case 2:
		return "White (o) wins"
	}
	if status.Status == "draw" {
		return "Draw"
	}
	return fmt.Sprintf("Game over (%s)", status.Status)
}
