// Package ui implements the Bubble Tea presentation surface: it renders the
// current slide, projects the navigation state into the status bar, menu and
// progress indicator, and translates keyboard, mouse and file events into
// navigation intents.
package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fsnotify/fsnotify"

	"github.com/kiyori/preso/internal/config"
	"github.com/kiyori/preso/internal/deck"
	"github.com/kiyori/preso/internal/nav"
)

const (
	statusBarHeight = 1
	minContentWidth = 20
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#a9b1d6")).
			Background(lipgloss.Color("#1f2335"))
	affordanceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7aa2f7")).
			Bold(true)
	affordanceDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3b4261"))
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	errLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Background(lipgloss.Color("#1f2335"))
)

// Model implements the Bubble Tea program for the slide presenter. It is
// also the nav.Surface the controller projects state through.
type Model struct {
	contentVP viewport.Model
	renderer  *glamour.TermRenderer
	progress  progress.Model
	help      help.Model
	keys      keyMap

	reg  *deck.Registry
	nav  *nav.Controller
	cfg  config.Config
	menu menu

	deckPath     string
	bookmarks    bookmarkStore
	bookmarkPath string

	snap     nav.Snapshot
	hasSnap  bool
	rendered string
	reveal   reveal

	width     int
	height    int
	ready     bool
	altScreen bool
	showHelp  bool
	err       error

	dragging   bool
	dragStartX int

	watcher   *fsnotify.Watcher
	watchChan chan tea.Msg
}

// bookmarkStore is the slice of the bookmark package the model needs.
type bookmarkStore interface {
	Write(token string) error
	Read() (int, bool)
	Path() string
}

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

// NewModel constructs the presenter model with the provided initial state.
func NewModel(state State) *Model {
	contentVP := viewport.New(0, 0)
	contentVP.Style = lipgloss.NewStyle().Padding(1, 2)
	contentVP.MouseWheelEnabled = false

	m := &Model{
		contentVP:    contentVP,
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:         help.New(),
		keys:         defaultKeyMap(),
		reg:          state.Registry,
		cfg:          state.Config,
		menu:         newMenu(state.Registry),
		deckPath:     filepath.Clean(state.DeckPath),
		bookmarks:    state.Bookmarks,
		bookmarkPath: filepath.Clean(state.Bookmarks.Path()),
		reveal:       newReveal(state.Config.Reveal, time.Duration(state.Config.RevealIntervalMS)*time.Millisecond),
		altScreen:    true,
	}

	var opts []nav.Option
	if !state.Config.Menu {
		opts = append(opts, nav.WithMenuDisabled())
	}
	m.nav = nav.New(state.Registry, m, state.InitialIndex, opts...)
	m.nav.Sync()
	return m
}

// Info exposes the controller's accessor snapshot, for the host process.
func (m *Model) Info() nav.Info { return m.nav.Info() }

// Render implements nav.Surface. Every projection here is idempotent; the
// entry animation is restarted only when the active slide actually changed.
func (m *Model) Render(snap nav.Snapshot) {
	indexChanged := !m.hasSnap || snap.Index != m.snap.Index
	m.snap = snap
	m.hasSnap = true
	if indexChanged {
		m.renderSlide()
		m.reveal.restart(m.rendered)
		m.syncContent()
		m.contentVP.GotoTop()
		m.menu.setCursor(snap.Index)
	}
}

// WriteBookmark implements nav.Surface.
func (m *Model) WriteBookmark(token string) {
	if err := m.bookmarks.Write(token); err != nil {
		m.err = err
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startWatching()}
	if !m.reveal.done() {
		cmds = append(cmds, m.reveal.tick())
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left, m.contentVP.View(), m.statusBarView())

	if m.err != nil {
		errLine := errLineStyle.Render(m.err.Error())
		body = lipgloss.JoinVertical(lipgloss.Left, errLine, body)
	}

	if m.showHelp {
		return m.place(helpBoxStyle.Render(m.help.FullHelpView(m.keys.FullHelp())))
	}
	if m.snap.MenuOpen {
		return m.place(m.menu.view(m.snap.Index))
	}
	return body
}

func (m *Model) place(overlay string) string {
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}
	return overlay
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileEventMsg:
		return m, m.handleFileEvent(msg)
	case fileWatchErrMsg:
		m.err = msg.err
		return m, m.waitForFileEvent()
	case revealTickMsg:
		if m.reveal.advance() {
			m.syncContent()
			return m, m.reveal.tick()
		}
		m.syncContent()
		return m, nil
	case tea.WindowSizeMsg:
		return m, m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
			m.showHelp = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil
	}

	if m.snap.MenuOpen {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m.navigate(m.nav.Next())
	case key.Matches(msg, m.keys.Prev):
		return m.navigate(m.nav.Prev())
	case key.Matches(msg, m.keys.First):
		return m.navigate(m.nav.First())
	case key.Matches(msg, m.keys.Last):
		return m.navigate(m.nav.Last())
	case key.Matches(msg, m.keys.Menu):
		m.nav.OpenMenu()
		return nil
	case key.Matches(msg, m.keys.Fullscreen):
		return m.toggleFullscreen()
	case key.Matches(msg, m.keys.Escape):
		// Single escape path: esc only ever closes the menu, and the menu
		// branch above already handled the open case. Nothing to do here.
		return nil
	}

	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return cmd
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Menu):
		m.nav.CloseMenu()
	case key.Matches(msg, m.keys.MenuUp):
		m.menu.moveCursor(-1)
	case key.Matches(msg, m.keys.MenuDown):
		m.menu.moveCursor(1)
	case key.Matches(msg, m.keys.MenuSelect):
		id, index := m.menu.target()
		var moved bool
		if id != "" {
			moved = m.nav.GoToID(id)
		} else {
			moved = m.nav.GoTo(index)
		}
		m.nav.CloseMenu()
		return m.navigate(moved)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.dragStartX = msg.X
		}
	case tea.MouseActionRelease:
		if !m.dragging {
			return nil
		}
		m.dragging = false
		return m.handleSwipe(msg.X - m.dragStartX)
	}
	return nil
}

// handleSwipe interprets a completed horizontal drag. Sub-threshold motion
// is a tap or scroll, not a swipe, and is ignored.
func (m *Model) handleSwipe(delta int) tea.Cmd {
	threshold := m.cfg.SwipeThreshold
	switch {
	case delta <= -threshold:
		return m.navigate(m.nav.Next())
	case delta >= threshold:
		return m.navigate(m.nav.Prev())
	}
	return nil
}

// navigate schedules the entry animation after a committed transition.
func (m *Model) navigate(moved bool) tea.Cmd {
	if !moved {
		return nil
	}
	m.syncContent()
	if !m.reveal.done() {
		return m.reveal.tick()
	}
	return nil
}

func (m *Model) toggleFullscreen() tea.Cmd {
	m.altScreen = !m.altScreen
	if m.altScreen {
		return tea.EnterAltScreen
	}
	return tea.ExitAltScreen
}

func (m *Model) resize(width, height int) tea.Cmd {
	if width <= 0 || height <= statusBarHeight {
		return nil
	}

	m.width = width
	m.height = height
	m.ready = true

	contentWidth := max(width, minContentWidth)
	m.contentVP.Width = contentWidth
	m.contentVP.Height = max(height-statusBarHeight, 1)
	m.help.Width = width
	m.progress.Width = clamp(width/4, 10, 40)

	wrapWidth := max(contentWidth-m.contentVP.Style.GetHorizontalFrameSize(), 0)
	renderer, err := newRenderer(m.theme(), wrapWidth)
	if err != nil {
		m.err = err
		return nil
	}
	m.renderer = renderer
	m.err = nil

	first := m.rendered == ""
	m.renderSlide()
	if first {
		// The renderer only exists once the first window size arrives, so
		// this is the slide's first appearance and gets the full animation.
		m.reveal.restart(m.rendered)
		m.syncContent()
		if !m.reveal.done() {
			return m.reveal.tick()
		}
		return nil
	}
	m.reveal.refresh(m.rendered)
	m.syncContent()
	return nil
}

// theme resolves the glamour style: deck frontmatter wins over config.
func (m *Model) theme() string {
	if t := m.reg.Meta().Theme; t != "" {
		return t
	}
	return m.cfg.Theme
}

// renderSlide renders the active slide's markdown into m.rendered. Callers
// decide whether the entry animation restarts or keeps its position.
func (m *Model) renderSlide() {
	if m.renderer == nil || !m.hasSnap {
		return
	}
	rendered, err := m.renderer.Render(m.reg.At(m.snap.Index).Content)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.rendered = rendered
}

func (m *Model) syncContent() {
	m.contentVP.SetContent(m.reveal.visible())
}

func (m *Model) statusBarView() string {
	if !m.hasSnap {
		return ""
	}
	index, total := m.snap.Index, m.snap.Total

	prev := affordanceStyle.Render("‹")
	if index == 0 {
		prev = affordanceDimStyle.Render("‹")
	}
	next := affordanceStyle.Render("›")
	if index == total-1 {
		next = affordanceDimStyle.Render("›")
	}

	counter := counterStyle.Render(fmt.Sprintf("%d / %d", index+1, total))
	bar := m.progress.ViewAs(float64(index+1) / float64(total))

	title := m.reg.Meta().Title
	if title == "" {
		title = filepath.Base(m.deckPath)
	}

	line := fmt.Sprintf("%s %s %s  %s  %s  %s",
		prev, counter, next, bar, titleStyle.Render(title), m.help.ShortHelpView(m.keys.ShortHelp()))
	if m.width > 0 {
		line = ansi.Truncate(line, m.width-statusBarStyle.GetHorizontalFrameSize(), "…")
	}
	return statusBarStyle.Render(line)
}

func newRenderer(theme string, width int) (*glamour.TermRenderer, error) {
	if theme == "" {
		theme = "auto"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(theme)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	} else {
		opts = append(opts, glamour.WithWordWrap(0))
	}
	return glamour.NewTermRenderer(opts...)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
