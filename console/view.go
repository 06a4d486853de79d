package console

import (
	"fmt"
	"strings"

	"newsdesk/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("📰 Newsdesk Console"))
	b.WriteString("\n\n")

	// Connection errors
	if m.Err != nil {
		b.WriteString(ErrorStyle.Render("⚠️  " + m.Err.Error()))
		b.WriteString("\n\n")
	}

	if m.Status == nil {
		b.WriteString(InfoStyle.Render("Connecting..."))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
		return b.String()
	}

	// Current state
	b.WriteString(m.stateText())
	b.WriteString("\n\n")

	// Statistics
	stats := fmt.Sprintf("📊 Pool: %d | Attempted: %d | Window: %s",
		m.Status.PoolSize, m.Status.AttemptedCount, m.Status.Window)
	b.WriteString(InfoStyle.Render(stats))
	b.WriteString("\n")

	counters := fmt.Sprintf("   Cycles: %d | Generated: %d | Degraded: %d | Skipped: %d | Failed: %d",
		m.Status.Cycles, m.Status.Generated, m.Status.Degraded, m.Status.Skipped, m.Status.Failed)
	b.WriteString(InfoStyle.Render(counters))
	b.WriteString("\n\n")

	// Last outcome
	if out := m.Status.LastOutcome; out != nil {
		line := fmt.Sprintf("Last cycle: %s", out.Kind)
		if out.Message != "" {
			line += " — " + out.Message
		}
		b.WriteString(BoxStyle.Render(line))
		b.WriteString("\n\n")
	}

	// Activity log, newest first
	if len(m.Status.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		shown := m.Status.Logs
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, entry := range shown {
			line := fmt.Sprintf("   %s  %s", entry.Timestamp.Format("15:04:05"), entry.Message)
			if entry.Severity == types.SeverityWarning {
				b.WriteString(WarningStyle.Render(line))
			} else {
				b.WriteString(InfoStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.LastAction != "" {
		b.WriteString(StatusStyle.Render("✓ " + m.LastAction))
		b.WriteString("\n\n")
	}

	// Help text
	b.WriteString(InfoStyle.Render("Press 's' to start | 'x' to stop | 'w' to cycle window | 'q' to quit"))

	return b.String()
}

func (m Model) stateText() string {
	switch m.Status.State {
	case types.StateIdle:
		return InfoStyle.Render("⏸  Idle")
	case types.StateScanning:
		return StatusStyle.Render("🔍 Scanning source pool...")
	case types.StateProcessing:
		return StatusStyle.Render("⚙️  Processing article...")
	case types.StateCooldown:
		return InfoStyle.Render("💤 Cooling down...")
	default:
		return InfoStyle.Render(string(m.Status.State))
	}
}
