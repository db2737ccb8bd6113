package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type menuKeyMap struct {
	PlayerVsPlayer key.Binding
	PlayerVsAI     key.Binding
	Exit           key.Binding
}

type matchKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Place key.Binding
	Menu  key.Binding
	Quit  key.Binding
}

var menuKeys = menuKeyMap{
	PlayerVsPlayer: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Player vs Player")),
	PlayerVsAI:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Player vs AI")),
	Exit:           key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "Exit")),
}

var matchKeys = matchKeyMap{
	Up:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "up")),
	Down:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "down")),
	Left:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "left")),
	Right: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "right")),
	Place: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "place")),
	Menu:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
	Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// helpLine renders the cursor keys as one group followed by the other bindings.
func (k matchKeyMap) helpLine() string {
	moves := []string{}
	for _, b := range []key.Binding{k.Up, k.Left, k.Down, k.Right} {
		moves = append(moves, b.Help().Key)
	}
	parts := []string{strings.Join(moves, "/") + " move"}
	for _, b := range []key.Binding{k.Place, k.Menu, k.Quit} {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return strings.Join(parts, "  ")
}
