package console

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"newsdesk/types"
)

// statusMsg carries the result of a status poll
type statusMsg struct {
	status *types.StatusResponse
	err    error
}

// actionMsg carries the result of an operator command
type actionMsg struct {
	label string
	err   error
}

// tickMsg drives the poll loop
type tickMsg time.Time

// pollStatus fetches the current scheduler status
func pollStatus(client *Client) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetStatus()
		return statusMsg{status: status, err: err}
	}
}

// tickCmd schedules the next poll
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func startCmd(client *Client) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{label: "start requested", err: client.Start()}
	}
}

func stopCmd(client *Client) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{label: "stop requested", err: client.Stop()}
	}
}

func setWindowCmd(client *Client, window types.Window) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{label: "window set to " + string(window), err: client.SetWindow(window)}
	}
}
