package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/csvtable/internal/config"
	"github.com/matzehuels/csvtable/pkg/render/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PresetListModel - Interactive preset selection
// =============================================================================

// presetChoice is one entry of the preset picker.
type presetChoice struct {
	Name        string
	Description string
	Config      table.Config
}

// PresetListModel is the bubbletea model for interactive preset selection.
type PresetListModel struct {
	Choices  []presetChoice
	Cursor   int
	Selected string
}

// NewPresetListModel lists the built-in presets followed by the themes of
// cfg. Themes that fail to resolve are skipped.
func NewPresetListModel(cfg *config.Config) PresetListModel {
	var m PresetListModel
	for _, name := range table.Presets {
		c, _ := table.Preset(name)
		m.Choices = append(m.Choices, presetChoice{Name: name, Description: table.Describe(name), Config: c})
	}
	if cfg != nil {
		for _, name := range cfg.ThemeNames() {
			c, err := table.Lookup(name, cfg.Themes)
			if err != nil {
				continue
			}
			m.Choices = append(m.Choices, presetChoice{Name: name, Description: "custom theme", Config: c})
		}
	}
	return m
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Choices[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, p := range m.Choices {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s %-14s %s", cursor, swatch(p.Config), p.Name, listDimStyle.Render(p.Description))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.Choices) > 0 {
		c := m.Choices[m.Cursor].Config
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  rows %dpx · header %dpx · padding %dpx",
			c.CellHeight, c.HeaderHeight, c.Padding)))
		b.WriteString("\n")
	}

	return b.String()
}

// swatch shows the header, alternate row and border colors of c.
func swatch(c table.Config) string {
	block := func(hex string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("█")
	}
	return block(c.HeaderBG.Hex()) + block(c.AltRowBG.Hex()) + block(c.BorderColor.Hex())
}

// pickPreset runs the picker. ok is false when the user quit without
// choosing.
func pickPreset(cfg *config.Config) (name string, ok bool, err error) {
	final, err := tea.NewProgram(NewPresetListModel(cfg)).Run()
	if err != nil {
		return "", false, fmt.Errorf("preset picker: %w", err)
	}
	m := final.(PresetListModel)
	return m.Selected, m.Selected != "", nil
}
