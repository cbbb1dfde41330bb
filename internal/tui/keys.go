package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	View     key.Binding
	Escape   key.Binding
	Filter   key.Binding
	Refresh  key.Binding
	Restore  key.Binding
	Create   key.Binding
	Delete   key.Binding
	Sort     key.Binding
	Copy     key.Binding
	Theme    key.Binding
	Tab1     key.Binding
	Tab2     key.Binding
	TabNext  key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	PageUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("C-u", "page up")),
	PageDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("C-d", "page dn")),
	View:     key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "view yaml")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Restore:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore")),
	Create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new policy")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Tab1:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "items")),
	Tab2:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "policies")),
	TabNext:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
