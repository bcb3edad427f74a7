package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit     key.Binding
	Sort     key.Binding
	Search   key.Binding
	Clear    key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	PageSize key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	All      key.Binding
	Action   key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Sort:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"), key.WithHelp("1-9,0", "sort")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	NextPage: key.NewBinding(key.WithKeys("n", "right", "pgdown"), key.WithHelp("n/p", "page")),
	PrevPage: key.NewBinding(key.WithKeys("p", "left", "pgup")),
	PageSize: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "page size")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "move")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Select:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
	All:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
	Action:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "action")),
}

// helpLine lists the bindings that have help text.
func (k keyMap) helpLine() string {
	bindings := []key.Binding{
		k.Sort, k.Search, k.Clear, k.NextPage, k.PageSize,
		k.Up, k.Select, k.All, k.Action, k.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if h := b.Help(); h.Key != "" {
			parts = append(parts, h.Key+" "+h.Desc)
		}
	}
	return strings.Join(parts, "  ")
}
