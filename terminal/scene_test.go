package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	status  statusResponse
	starts  []string
	moves   []moveDTO
	stops   int
	moveErr error
}

func (f *fakeAPI) Ping() error { return nil }

func (f *fakeAPI) Status() (statusResponse, error) {
	return f.status, nil
}

func (f *fakeAPI) Start(mode string, humanPlayer int) (statusResponse, error) {
	f.starts = append(f.starts, mode)
	f.status = newRunningStatus("session-1")
	return f.status, nil
}

func (f *fakeAPI) Stop() error {
	f.stops++
	return nil
}

func (f *fakeAPI) Move(x, y int) (statusResponse, error) {
	f.moves = append(f.moves, moveDTO{X: x, Y: y})
	if f.moveErr != nil {
		return statusResponse{}, f.moveErr
	}
	f.status.Board[y][x] = f.status.NextPlayer
	f.status.NextPlayer = 3 - f.status.NextPlayer
	return f.status, nil
}

func newRunningStatus(sessionID string) statusResponse {
	board := make([][]int, 15)
	for y := range board {
		board[y] = make([]int, 15)
	}
	return statusResponse{
		SessionID:  sessionID,
		Board:      board,
		BoardSize:  15,
		NextPlayer: 1,
		Status:     "running",
	}
}

func keyPress(r rune) tea.KeyMsg {
	if r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press feeds msg to the model and returns the updated model and command.
func press(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(model)
	require.True(t, ok, "unexpected model type %T", next)
	return updated, cmd
}

// startMatch enters a scene from the menu and feeds the start reply back.
func startMatch(t *testing.T, api *fakeAPI, choice rune) model {
	t.Helper()
	m := newModel(api, nil, 0)
	m, _ = press(t, m, keyPress(choice))
	status, err := api.Start(map[rune]string{'1': "human_vs_human", '2': "ai_vs_human"}[choice], humanSide)
	require.NoError(t, err)
	m, _ = press(t, m, startedMsg{status: status})
	require.True(t, m.hasStatus)
	return m
}

func TestMenuKeysSwitchScenes(t *testing.T) {
	api := &fakeAPI{}
	m := newModel(api, nil, 0)
	assert.Equal(t, sceneMenu, m.scene)

	next, cmd := press(t, m, keyPress('1'))
	assert.Equal(t, scenePlayerVsPlayer, next.scene)
	assert.NotNil(t, cmd)

	next, _ = press(t, m, keyPress('2'))
	assert.Equal(t, scenePlayerVsAI, next.scene)

	next, cmd = press(t, m, keyPress('0'))
	assert.Equal(t, sceneExit, next.scene)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestMenuIgnoresOtherKeys(t *testing.T) {
	m := newModel(&fakeAPI{}, nil, 0)
	next, cmd := press(t, m, keyPress('x'))
	assert.Equal(t, sceneMenu, next.scene)
	assert.Nil(t, cmd)
}

func TestCursorStaysOnBoard(t *testing.T) {
	api := &fakeAPI{}
	m := startMatch(t, api, '1')
	assert.Equal(t, 7, m.cursorX)
	assert.Equal(t, 7, m.cursorY)

	for i := 0; i < 20; i++ {
		m, _ = press(t, m, keyPress('w'))
		m, _ = press(t, m, keyPress('a'))
	}
	assert.Equal(t, 0, m.cursorX)
	assert.Equal(t, 0, m.cursorY)

	for i := 0; i < 20; i++ {
		m, _ = press(t, m, keyPress('s'))
		m, _ = press(t, m, keyPress('d'))
	}
	assert.Equal(t, 14, m.cursorX)
	assert.Equal(t, 14, m.cursorY)
}

func TestSpacePlacesAtCursor(t *testing.T) {
	api := &fakeAPI{}
	m := startMatch(t, api, '1')
	m, _ = press(t, m, keyPress('d'))
	m, _ = press(t, m, keyPress('w'))

	m, cmd := press(t, m, keyPress(' '))
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, []moveDTO{{X: 8, Y: 6}}, api.moves)

	m, _ = press(t, m, msg)
	assert.Equal(t, 1, m.status.CellAt(8, 6))
	assert.Equal(t, 2, m.status.NextPlayer)
}

func TestSpaceOnOccupiedCellSendsNothing(t *testing.T) {
	api := &fakeAPI{}
	m := startMatch(t, api, '1')
	m.status.Board[7][7] = 2

	_, cmd := press(t, m, keyPress(' '))
	assert.Nil(t, cmd)
	assert.Empty(t, api.moves)
}

func TestPlayerVsAIWaitsForAITurn(t *testing.T) {
	api := &fakeAPI{}
	m := startMatch(t, api, '2')
	assert.Equal(t, []string{"ai_vs_human"}, api.starts[:1])
	m.status.NextPlayer = 2

	m, cmd := press(t, m, keyPress(' '))
	assert.Nil(t, cmd)
	assert.Empty(t, api.moves)
	assert.Equal(t, "AI is thinking", m.message)
}

func TestMoveErrorShownInStatusLine(t *testing.T) {
	api := &fakeAPI{moveErr: errors.New("POST /api/move -> 400: occupied")}
	m := startMatch(t, api, '1')

	m, cmd := press(t, m, keyPress(' '))
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	assert.Equal(t, scenePlayerVsPlayer, m.scene)
	assert.Contains(t, m.message, "occupied")
	assert.Contains(t, m.View(), "occupied")
}

func TestFinishedGameReturnsToMenuOnAnyKey(t *testing.T) {
	api := &fakeAPI{}
	m := startMatch(t, api, '1')

	finished := newRunningStatus("session-1")
	finished.Status = "black_won"
	finished.Winner = 1
	m, _ = press(t, m, statusMsg{status: finished})
	assert.Contains(t, m.message, "Black (*) wins")

	m, cmd := press(t, m, keyPress('x'))
	assert.Equal(t, sceneMenu, m.scene)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, 1, api.stops)
}

func TestStatusFromOtherSessionIgnored(t *testing.T) {
	api := &fakeAPI{}
	m := startMatch(t, api, '1')

	other := newRunningStatus("session-2")
	other.Board[0][0] = 1
	m, _ = press(t, m, statusMsg{status: other})
	assert.Equal(t, "session-1", m.status.SessionID)
	assert.Equal(t, 0, m.status.CellAt(0, 0))
}

func TestStaleTickIgnored(t *testing.T) {
	api := &fakeAPI{}
	m := startMatch(t, api, '1')

	_, cmd := press(t, m, tickMsg{gen: m.tickGen - 1})
	assert.Nil(t, cmd)
	_, cmd = press(t, m, tickMsg{gen: m.tickGen})
	assert.NotNil(t, cmd)
}

func TestViewRendersStones(t *testing.T) {
	api := &fakeAPI{}
	m := startMatch(t, api, '1')
	m.status.Board[0][0] = 1
	m.status.Board[0][1] = 2

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[2], "* o ."), "first board row was %q", lines[2])
	assert.Contains(t, view, "Black (*) to move")
}

func TestHelpLineListsMatchKeys(t *testing.T) {
	assert.Equal(t, "w/a/s/d move  space place  esc menu  ctrl+c quit", matchKeys.helpLine())
	assert.Contains(t, newModel(&fakeAPI{}, nil, 0).View(), "2) Player vs AI")
}
