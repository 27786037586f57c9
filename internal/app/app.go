// Package app wires a deck file, its bookmark, and the configuration into a
// running presentation.
package app

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/kiyori/preso/internal/bookmark"
	"github.com/kiyori/preso/internal/config"
	"github.com/kiyori/preso/internal/deck"
	"github.com/kiyori/preso/internal/history"
	"github.com/kiyori/preso/internal/ui"
)

// Run presents the deck at target and blocks until the user quits. The final
// position is recorded in the recent-decks history.
func Run(target string, cfg config.Config, logger *log.Logger) error {
	state, err := LoadInitialState(target, cfg)
	if err != nil {
		return err
	}
	logger.Debug("deck loaded",
		"path", state.DeckPath,
		"slides", state.Registry.Len(),
		"initial", state.InitialIndex)

	model := ui.NewModel(state)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run presentation: %w", err)
	}

	info := model.Info()
	recent, err := history.Default()
	if err == nil {
		err = recent.Record(state.DeckPath, info.Index, info.Total)
	}
	if err != nil {
		// History is a convenience; losing it should not fail the run.
		logger.Warn("could not record history", "err", err)
	}
	return nil
}

// LoadInitialState parses the deck and resolves the starting position from
// the bookmark sidecar: a valid in-range token selects that slide, anything
// else starts at the first slide.
func LoadInitialState(target string, cfg config.Config) (ui.State, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return ui.State{}, fmt.Errorf("resolve %s: %w", target, err)
	}

	reg, err := deck.Load(absTarget)
	if err != nil {
		return ui.State{}, err
	}

	store := bookmark.NewStore(absTarget)
	initial := 0
	if index, ok := store.Read(); ok && index < reg.Len() {
		initial = index
	}

	return ui.State{
		Registry:     reg,
		Config:       cfg,
		DeckPath:     absTarget,
		Bookmarks:    store,
		InitialIndex: initial,
	}, nil
}
