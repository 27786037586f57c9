package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/kiyori/preso/internal/deck"
	"github.com/kiyori/preso/internal/nav"
)

// startWatching watches the deck's directory, which covers both the deck
// file (live reload) and the bookmark sidecar (external navigation).
func (m *Model) startWatching() tea.Cmd {
	if m.deckPath == "" {
		return nil
	}
	if err := m.ensureWatcher(); err != nil {
		m.err = err
		return nil
	}
	if err := m.watcher.Add(filepath.Dir(m.deckPath)); err != nil {
		m.err = err
		return nil
	}
	return m.waitForFileEvent()
}

func (m *Model) ensureWatcher() error {
	if m.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher
	m.watchChan = make(chan tea.Msg, 10)

	go m.watchLoop()
	return nil
}

func (m *Model) watchLoop() {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			m.watchChan <- fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.watchChan <- fileWatchErrMsg{err: err}
		}
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watchChan == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-m.watchChan
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	var cmd tea.Cmd
	switch filepath.Clean(msg.path) {
	case m.deckPath:
		m.reloadDeck()
		if !m.reveal.done() {
			cmd = m.reveal.tick()
		}
	case m.bookmarkPath:
		// The controller's equal-index short circuit keeps the echo of our
		// own writes from looping.
		if index, ok := m.bookmarks.Read(); ok {
			cmd = m.navigate(m.nav.GoTo(index))
		}
	}
	return tea.Batch(cmd, m.waitForFileEvent())
}

// reloadDeck re-parses the deck and rebuilds the registry-bound pieces,
// clamping the position to the new length. A parse failure keeps the deck
// that is already on screen.
func (m *Model) reloadDeck() {
	reg, err := deck.Load(m.deckPath)
	if err != nil {
		m.err = err
		return
	}
	index := clamp(m.nav.Info().Index, 0, reg.Len()-1)

	m.reg = reg
	m.menu = newMenu(reg)
	m.hasSnap = false

	var opts []nav.Option
	if !m.cfg.Menu {
		opts = append(opts, nav.WithMenuDisabled())
	}
	m.nav = nav.New(reg, m, index, opts...)
	m.nav.Sync()
}
