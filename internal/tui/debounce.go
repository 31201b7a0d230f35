package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debounceMsg is the tick of one debouncer timer.
type debounceMsg struct {
	owner string
	seq   int
}

// debouncer coalesces bursts of input into one trigger. Each Trigger issues
// a new tagged timer; only the most recent tag fires, so every earlier timer
// of the same owner is effectively cancelled. One debouncer per input.
type debouncer struct {
	owner string
	delay time.Duration
	seq   int
}

func newDebouncer(owner string, delay time.Duration) debouncer {
	return debouncer{owner: owner, delay: delay}
}

// Trigger starts a new timer, superseding any pending one.
func (d *debouncer) Trigger() tea.Cmd {
	d.seq++
	msg := debounceMsg{owner: d.owner, seq: d.seq}
	return tea.Tick(d.delay, func(time.Time) tea.Msg { return msg })
}

// Cancel drops the pending timer, if any.
func (d *debouncer) Cancel() { d.seq++ }

// Fire reports whether msg is the live timer of this debouncer, consuming it.
func (d *debouncer) Fire(msg debounceMsg) bool {
	if msg.owner != d.owner || msg.seq != d.seq {
		return false
	}
	d.seq++
	return true
}
