package tui

import (
	"errors"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ErrPromptCancelled is returned when the user aborts the query prompt.
var ErrPromptCancelled = errors.New("prompt cancelled")

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))

type promptModel struct {
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newPromptModel() promptModel {
	ti := textinput.New()
	ti.Prompt = "Enter your search query: "
	tis := ti.Styles()
	tis.Focused.Prompt = promptStyle
	tis.Blurred.Prompt = promptStyle
	ti.SetStyles(tis)

	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return m.input.Focus()
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			if strings.TrimSpace(m.input.Value()) != "" {
				m.submitted = true
				return m, tea.Quit
			}
			return m, nil
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() tea.View {
	if m.submitted || m.cancelled {
		return tea.NewView("")
	}
	return tea.NewView("\n  " + m.input.View() + "\n")
}

// PromptQuery asks the user for a search query interactively.
func PromptQuery() (string, error) {
	p := tea.NewProgram(newPromptModel())
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	fm := finalModel.(promptModel)
	if fm.cancelled || !fm.submitted {
		return "", ErrPromptCancelled
	}
	return strings.TrimSpace(fm.input.Value()), nil
}
