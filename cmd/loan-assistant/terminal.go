// cmd/loan-assistant/terminal.go
package main

import (
	"fmt"
	"io"
	"strings"

	"loan-assistant/internal/common/status"
	"loan-assistant/internal/conversation"
	"loan-assistant/internal/models"
)

// terminal prints whatever changed between two snapshots. It is only used
// from the scheduler thread.
type terminal struct {
	out      io.Writer
	seen     int
	lastEvt  string
	lastStep conversation.Step
}

func newTerminal(out io.Writer) *terminal {
	return &terminal{out: out}
}

func (t *terminal) render(s conversation.Snapshot) {
	for _, m := range s.Messages[min(t.seen, len(s.Messages)):] {
		if m.Role == models.RoleUser {
			continue
		}
		fmt.Fprintf(t.out, "🤖 %s\n", m.Text)
	}
	t.seen = len(s.Messages)

	if key := eventKey(s.Pending); key != t.lastEvt {
		t.lastEvt = key
		if s.Pending != nil {
			fmt.Fprintln(t.out, formatEvent(s.Pending))
		}
	}

	if s.Step != t.lastStep {
		t.lastStep = s.Step
		if len(s.QuickReplies) > 0 {
			fmt.Fprintf(t.out, "   [%s]\n", strings.Join(s.QuickReplies, "] ["))
		}
	}
}

func (t *terminal) notice(msg string) {
	fmt.Fprintf(t.out, "   (%s)\n", msg)
}

func eventKey(ev *status.Event) string {
	if ev == nil {
		return ""
	}
	return fmt.Sprintf("%s/%s/%d", ev.ID, ev.Phase, ev.Percent)
}

func formatEvent(ev *status.Event) string {
	icon := "⏳"
	switch ev.Phase {
	case status.PhaseComplete:
		icon = "✔"
	case status.PhaseError:
		icon = "✖"
	}
	line := fmt.Sprintf("   %s %s · %s %3d%%", icon, ev.Agent, ev.Task, ev.Percent)
	if ev.Reroute != "" {
		line += " via " + ev.Reroute
	}
	if ev.Message != "" {
		line += " · " + ev.Message
	}
	if ev.Phase == status.PhaseError {
		line += "  (/dismiss to clear)"
	}
	return line
}
