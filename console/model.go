package console

import (
	tea "github.com/charmbracelet/bubbletea"

	"newsdesk/types"
)

// Model holds the console state
type Model struct {
	Client *Client

	Status *types.StatusResponse
	Err    error

	// LastAction echoes the most recent operator command so the
	// header reflects input before the next poll lands.
	LastAction string
}

// NewModel creates the initial console model
func NewModel(client *Client) Model {
	return Model{Client: client}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(pollStatus(m.Client), tickCmd())
}
