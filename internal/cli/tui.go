package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/config"
	"github.com/inkplot/inkplot/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickChoice is the result of the interactive picker: either a bare
// algorithm or a preset.
type pickChoice struct {
	Algorithm string
	Preset    string
}

// pickItem is one selectable row.
type pickItem struct {
	name        string
	description string
	isPreset    bool
}

// pickerModel is the bubbletea model for algorithm/preset selection.
type pickerModel struct {
	items    []pickItem
	cursor   int
	selected *pickChoice
}

func newPickerModel() (pickerModel, error) {
	var items []pickItem
	for _, name := range art.Names() {
		items = append(items, pickItem{name: name, description: "algorithm"})
	}
	presets, err := config.Load()
	if err != nil {
		return pickerModel{}, err
	}
	for _, p := range presets.List() {
		items = append(items, pickItem{name: p.Name, description: p.Description, isPreset: true})
	}
	return pickerModel{items: items}, nil
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			item := m.items[m.cursor]
			if item.isPreset {
				m.selected = &pickChoice{Preset: item.name}
			} else {
				m.selected = &pickChoice{Algorithm: item.name}
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Algorithm or Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		kind := "algorithm"
		if item.isPreset {
			kind = "preset"
		}
		line := fmt.Sprintf("%s%-18s %s", cursor, item.name,
			listDimStyle.Render(kind+" · "+item.description))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.items))))
	return b.String()
}

// pickAlgorithm runs the interactive picker. It returns nil when the
// user backs out without selecting.
func pickAlgorithm() (*pickChoice, error) {
	if fi, err := os.Stdin.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return nil, errors.New(errors.ErrCodeInvalidParam,
			"no algorithm given; pass one (e.g. 'inkplot generate snowflake') or run in a terminal for the interactive picker")
	}

	model, err := newPickerModel()
	if err != nil {
		return nil, err
	}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "run picker")
	}
	if m, ok := final.(pickerModel); ok {
		return m.selected, nil
	}
	return nil, nil
}
