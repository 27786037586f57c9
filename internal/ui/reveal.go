package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type revealTickMsg struct{}

// reveal drives the per-slide entry animation: the rendered lines of the
// newly active slide appear one at a time. Restart resets the counter, so
// the animation replays from the top on every visit, revisits included.
type reveal struct {
	lines    []string
	shown    int
	enabled  bool
	interval time.Duration
}

func newReveal(enabled bool, interval time.Duration) reveal {
	return reveal{enabled: enabled, interval: interval}
}

func (r *reveal) restart(rendered string) {
	r.lines = strings.Split(rendered, "\n")
	if r.enabled {
		r.shown = 0
	} else {
		r.shown = len(r.lines)
	}
}

// refresh swaps in re-rendered content without replaying: a finished
// animation stays finished, an in-flight one keeps its position.
func (r *reveal) refresh(rendered string) {
	wasDone := r.done()
	r.lines = strings.Split(rendered, "\n")
	if wasDone || !r.enabled {
		r.shown = len(r.lines)
	} else if r.shown > len(r.lines) {
		r.shown = len(r.lines)
	}
}

func (r *reveal) done() bool {
	return r.shown >= len(r.lines)
}

// advance exposes one more line and reports whether more remain.
func (r *reveal) advance() bool {
	if r.done() {
		return false
	}
	r.shown++
	return !r.done()
}

func (r *reveal) visible() string {
	if r.done() {
		return strings.Join(r.lines, "\n")
	}
	return strings.Join(r.lines[:r.shown], "\n")
}

func (r *reveal) tick() tea.Cmd {
	return tea.Tick(r.interval, func(time.Time) tea.Msg {
		return revealTickMsg{}
	})
}
