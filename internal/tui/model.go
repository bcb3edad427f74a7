// Package tui implements an interactive terminal view of a datagrid.Grid.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	datagrid "github.com/domonda/go-datagrid"
)

var _ tea.Model = Model{}

// Model is the bubbletea model of the grid browser.
// All state except the cursor and the filter input
// lives in the wrapped Grid.
type Model struct {
	grid    *datagrid.Grid
	styles  Styles
	cursor  int
	editing bool
	status  string
	err     error
	width   int
}

// New returns a Model for grid with DefaultStyles.
func New(grid *datagrid.Grid) Model {
	return Model{grid: grid, styles: DefaultStyles()}
}

// WithStyles returns a copy of the model using styles.
func (m Model) WithStyles(styles Styles) Model {
	m.styles = styles
	return m
}

func (m Model) Grid() *datagrid.Grid { return m.grid }
func (m Model) Cursor() int          { return m.cursor }
func (m Model) Editing() bool        { return m.editing }
func (m Model) Status() string       { return m.status }
func (m Model) Err() error           { return m.err }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		m.status, m.err = "", nil
		if m.editing {
			return m.updateFilter(msg), nil
		}
		return m.updateNav(msg)
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) Model {
	filter := m.grid.Filter()
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
	case tea.KeyEsc:
		m.editing = false
		m.grid.ClearFilter()
	case tea.KeyBackspace:
		if r := []rune(filter); len(r) > 0 {
			m.grid.SetFilter(string(r[:len(r)-1]))
		}
	case tea.KeySpace:
		m.grid.SetFilter(filter + " ")
	case tea.KeyRunes:
		m.grid.SetFilter(filter + string(msg.Runes))
	}
	m.clampCursor()
	return m
}

func (m Model) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		m.editing = true
	case key.Matches(msg, keys.Clear):
		m.grid.ClearFilter()
	case key.Matches(msg, keys.NextPage):
		m.grid.NextPage()
	case key.Matches(msg, keys.PrevPage):
		m.grid.PrevPage()
	case key.Matches(msg, keys.PageSize):
		m.cyclePageSize()
	case key.Matches(msg, keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, keys.Down):
		m.cursor++
	case key.Matches(msg, keys.Select):
		m.toggleCursorRow()
	case key.Matches(msg, keys.All):
		m.err = m.grid.SetAllSelected(!m.grid.AllSelected())
	case key.Matches(msg, keys.Action):
		m.invokeFirstAction()
	case key.Matches(msg, keys.Sort):
		if col, ok := columnKey(msg.String()); ok {
			m.err = m.grid.ClickHeader(col)
		}
	}
	m.clampCursor()
	return m, nil
}

// columnKey maps "1" to "9" to the columns 0 to 8 and "0" to column 9.
func columnKey(key string) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	if key[0] == '0' {
		return 9, true
	}
	return int(key[0] - '1'), true
}

func (m *Model) cyclePageSize() {
	options := m.grid.PageSizeOptions()
	if len(options) == 0 {
		return
	}
	m.err = m.grid.SetPageSizeIndex((m.grid.PageSizeIndex() + 1) % len(options))
}

func (m *Model) toggleCursorRow() {
	rows := m.grid.DisplayedRows()
	if m.cursor >= len(rows) {
		return
	}
	id, ok := rows[m.cursor].ID(m.grid.IDField())
	if !ok {
		m.err = fmt.Errorf("row has no usable %q field", m.grid.IDField())
		return
	}
	if m.grid.Options().SelectionMode == datagrid.SelectByRowClick {
		_, m.err = m.grid.ClickRow(id)
	} else {
		_, m.err = m.grid.ToggleRow(id)
	}
}

func (m *Model) invokeFirstAction() {
	actions := m.grid.Actions()
	if len(actions) == 0 {
		m.err = errors.New("no selection actions")
		return
	}
	count := m.grid.SelectionCount()
	if m.err = m.grid.InvokeAction(actions[0].Name); m.err == nil {
		m.status = fmt.Sprintf("%s: %s", actions[0].Name, datagrid.SelectionLabel(count))
	}
}

func (m *Model) clampCursor() {
	m.cursor = max(min(m.cursor, m.grid.View().NumRows()-1), 0)
}

func (m Model) View() string {
	var b strings.Builder
	grid := m.grid
	view := grid.View()
	selectable := grid.Options().RowSelectable

	b.WriteString(m.styles.Title.Render(view.Title()))
	b.WriteString("\n")
	if m.editing {
		b.WriteString("Search: " + grid.Filter() + "_\n")
	} else if grid.Filter() != "" {
		b.WriteString("Search: " + grid.Filter() + "\n")
	}

	cells, err := datagrid.ViewStrings(context.Background(), view, true)
	if err != nil {
		return err.Error()
	}
	header := cells[0]
	sort := grid.Sort()
	for col := range header {
		switch sort.OrderOf(col) {
		case datagrid.SortAscending:
			header[col] += " ▲"
		case datagrid.SortDescending:
			header[col] += " ▼"
		}
	}
	widths := datagrid.StringColumnWidths(cells, len(header))

	line := func(row []string) string {
		padded := make([]string, len(row))
		for col, str := range row {
			padded[col] = fmt.Sprintf("%-*s", widths[col], str)
		}
		return strings.Join(padded, " │ ")
	}

	prefix := ""
	if selectable {
		prefix = checkbox(grid.AllSelected())
	}
	headerLine := m.truncate(prefix + line(header))
	if sort.IsSorted() {
		b.WriteString(m.styles.Sorted.Render(headerLine))
	} else {
		b.WriteString(m.styles.Header.Render(headerLine))
	}
	b.WriteString("\n")

	rows := view.Rows
	for i, cellRow := range cells[1:] {
		selected := false
		if id, ok := rows[i].ID(grid.IDField()); ok {
			selected = grid.IsSelected(id)
		}
		text := line(cellRow)
		if selectable {
			text = checkbox(selected) + text
		}
		text = m.truncate(text)
		switch {
		case i == m.cursor:
			text = m.styles.Cursor.Render(text)
		case selected:
			text = m.styles.Selected.Render(text)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString("No matching rows\n")
	}

	first, last, total := grid.PageRange()
	footer := fmt.Sprintf("%d - %d of %d", first, last, total)
	if grid.PageSizeOptions() != nil {
		footer += fmt.Sprintf("  page %d/%d  page size %s", grid.Page(), max(grid.NumPages(), 1), grid.PageSize())
	}
	if selectable {
		footer += "  " + datagrid.SelectionLabel(grid.SelectionCount())
	}
	b.WriteString(m.styles.Footer.Render(footer))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(keys.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func checkbox(checked bool) string {
	if checked {
		return "[x] "
	}
	return "[ ] "
}

// truncate cuts line to the window width, if known.
func (m Model) truncate(line string) string {
	if m.width <= 0 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= m.width {
		return line
	}
	return string(runes[:m.width-1]) + "…"
}
