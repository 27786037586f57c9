// Package nav holds the navigation state machine for a presentation: the
// current slide position, the menu visibility flag, and the transition
// markers that drive slide styling. All mutation goes through the Controller;
// everything else observes the state through snapshots.
//
// The Controller is not safe for concurrent use. All intents must be
// dispatched from a single goroutine; under Bubble Tea that is the program's
// update loop, which serializes events by construction.
package nav

import (
	"github.com/kiyori/preso/internal/bookmark"
	"github.com/kiyori/preso/internal/deck"
)

// Marker tags a slide's transient visual transition state. After every
// committed transition exactly one slide is MarkerActive and at most one,
// the slide just vacated, is MarkerPrev. The prev marker is cleared on the
// following transition.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerActive
	MarkerPrev
)

// Snapshot is the render-facing view of the navigation state. Markers is a
// copy; surfaces may keep it without aliasing controller state.
type Snapshot struct {
	Index    int
	Total    int
	MenuOpen bool
	Markers  []Marker
}

// Info is the programmatic accessor snapshot exposed to host callers.
type Info struct {
	// Index is the zero-based position.
	Index int
	// Number is the 1-based position, as shown in the counter.
	Number int
	Total  int
	Slide  deck.Slide
}

// Surface is the capability interface the controller projects state through.
// Render is invoked after every committed state change and must be
// idempotent; WriteBookmark is invoked after every committed transition with
// the new fragment token.
type Surface interface {
	Render(Snapshot)
	WriteBookmark(token string)
}

// Option configures a Controller.
type Option func(*Controller)

// WithMenuDisabled turns every menu operation into a no-op, for decks
// presented without a menu surface.
func WithMenuDisabled() Option {
	return func(c *Controller) { c.menuEnabled = false }
}

// Controller owns the navigation state for one presentation instance.
type Controller struct {
	reg         *deck.Registry
	surface     Surface
	current     int
	menuOpen    bool
	menuEnabled bool
	markers     []Marker
}

// New creates a controller positioned at initial, or 0 when initial is out
// of range. The registry must contain at least one slide. No surface calls
// are made; invoke Sync to project the starting state.
func New(reg *deck.Registry, surface Surface, initial int, opts ...Option) *Controller {
	c := &Controller{
		reg:         reg,
		surface:     surface,
		menuEnabled: true,
		markers:     make([]Marker, reg.Len()),
	}
	for _, opt := range opts {
		opt(c)
	}
	if initial < 0 || initial >= reg.Len() {
		initial = 0
	}
	c.current = initial
	c.markers[initial] = MarkerActive
	return c
}

// Sync re-renders the current state without committing a transition. It
// never writes the bookmark; only transitions do.
func (c *Controller) Sync() {
	c.surface.Render(c.snapshot())
}

// GoTo commits a transition to index. Out-of-range requests and requests for
// the already-current index are silent no-ops with no side effects at all;
// the latter is what makes the bookmark feedback loop terminate in one step.
// On success the markers are updated, the surface re-rendered, and the new
// bookmark token written, in that order.
func (c *Controller) GoTo(index int) bool {
	if index < 0 || index >= c.reg.Len() || index == c.current {
		return false
	}
	for i, m := range c.markers {
		if m == MarkerPrev {
			c.markers[i] = MarkerNone
		}
	}
	c.markers[c.current] = MarkerPrev
	c.markers[index] = MarkerActive
	c.current = index
	c.surface.Render(c.snapshot())
	c.surface.WriteBookmark(bookmark.Format(index))
	return true
}

// Next advances one slide; a no-op on the last slide.
func (c *Controller) Next() bool { return c.GoTo(c.current + 1) }

// Prev steps back one slide; a no-op on the first slide.
func (c *Controller) Prev() bool { return c.GoTo(c.current - 1) }

// First jumps to the first slide.
func (c *Controller) First() bool { return c.GoTo(0) }

// Last jumps to the last slide.
func (c *Controller) Last() bool { return c.GoTo(c.reg.Len() - 1) }

// GoToID navigates to the slide carrying the given identifier; unknown
// identifiers are silent no-ops.
func (c *Controller) GoToID(id string) bool {
	index, ok := c.reg.IndexOf(id)
	if !ok {
		return false
	}
	return c.GoTo(index)
}

// MenuOpen reports the menu visibility state.
func (c *Controller) MenuOpen() bool { return c.menuOpen }

// OpenMenu reveals the menu. Opening an already-open menu, or any menu
// operation while the menu is disabled, has no effect.
func (c *Controller) OpenMenu() {
	if !c.menuEnabled || c.menuOpen {
		return
	}
	c.menuOpen = true
	c.surface.Render(c.snapshot())
}

// CloseMenu hides the menu; idempotent.
func (c *Controller) CloseMenu() {
	if !c.menuOpen {
		return
	}
	c.menuOpen = false
	c.surface.Render(c.snapshot())
}

// ToggleMenu flips the menu visibility.
func (c *Controller) ToggleMenu() {
	if c.menuOpen {
		c.CloseMenu()
	} else {
		c.OpenMenu()
	}
}

// Info returns the accessor snapshot for the current position.
func (c *Controller) Info() Info {
	return Info{
		Index:  c.current,
		Number: c.current + 1,
		Total:  c.reg.Len(),
		Slide:  c.reg.At(c.current),
	}
}

func (c *Controller) snapshot() Snapshot {
	markers := make([]Marker, len(c.markers))
	copy(markers, c.markers)
	return Snapshot{
		Index:    c.current,
		Total:    c.reg.Len(),
		MenuOpen: c.menuOpen,
		Markers:  markers,
	}
}
