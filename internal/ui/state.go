package ui

import (
	"github.com/kiyori/preso/internal/bookmark"
	"github.com/kiyori/preso/internal/config"
	"github.com/kiyori/preso/internal/deck"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Registry     *deck.Registry
	Config       config.Config
	DeckPath     string
	Bookmarks    *bookmark.Store
	InitialIndex int
}
