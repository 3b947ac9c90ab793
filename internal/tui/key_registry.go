package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding of the app. Which ones apply depends on the
// active tab; see ForTab.
type KeyMap struct {
	Draw          key.Binding
	Reroll        key.Binding
	Done          key.Binding
	ResetLock     key.Binding
	Refresh       key.Binding
	Export        key.Binding
	ResetProgress key.Binding
	Confirm       key.Binding
	Cancel        key.Binding
	NextTab       key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Draw:          key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "draw")),
		Reroll:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "draw again")),
		Done:          key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
		ResetLock:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset local lock")),
		Refresh:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "refresh")),
		Export:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export pdf")),
		ResetProgress: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset progress")),
		Confirm:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:        key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		NextTab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// tabKeys adapts a list of bindings to help.KeyMap.
type tabKeys []key.Binding

func (k tabKeys) ShortHelp() []key.Binding { return k }

func (k tabKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k} }

// ForTab returns the bindings shown in the help line of a tab.
func (k KeyMap) ForTab(t Tab) help.KeyMap {
	switch t {
	case TabBadges:
		return tabKeys{k.Refresh, k.Export, k.ResetProgress, k.NextTab, k.Quit}
	default:
		return tabKeys{k.Draw, k.Done, k.Reroll, k.ResetLock, k.NextTab, k.Quit}
	}
}

// ForConfirm returns the bindings of a yes/no prompt.
func (k KeyMap) ForConfirm() help.KeyMap {
	return tabKeys{k.Confirm, k.Cancel}
}
