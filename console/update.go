package console

import (
	tea "github.com/charmbracelet/bubbletea"

	"newsdesk/types"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		return m, tea.Batch(pollStatus(m.Client), tickCmd())

	case statusMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Status = msg.status
		m.Err = nil
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.LastAction = msg.label
		m.Err = nil
		return m, pollStatus(m.Client)
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "s":
		return m, startCmd(m.Client)

	case "x":
		return m, stopCmd(m.Client)

	case "w":
		return m, setWindowCmd(m.Client, m.nextWindow())
	}

	return m, nil
}

// nextWindow cycles through the recency windows in order
func (m Model) nextWindow() types.Window {
	current := types.WindowWeek
	if m.Status != nil {
		current = m.Status.Window
	}

	switch current {
	case types.WindowDay:
		return types.WindowWeek
	case types.WindowWeek:
		return types.WindowMonth
	case types.WindowMonth:
		return types.WindowAll
	default:
		return types.WindowDay
	}
}
