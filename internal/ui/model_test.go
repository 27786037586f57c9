package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/kiyori/preso/internal/bookmark"
	"github.com/kiyori/preso/internal/config"
	"github.com/kiyori/preso/internal/deck"
)

// newTestModel builds a presenter over a generated deck with the entry
// animation disabled, so views are deterministic.
func newTestModel(t *testing.T, slides int) *Model {
	return newTestModelWith(t, slides, func(*config.Config) {})
}

func newTestModelWith(t *testing.T, slides int, mutate func(*config.Config)) *Model {
	t.Helper()

	var b strings.Builder
	for i := 0; i < slides; i++ {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		fmt.Fprintf(&b, "# Topic %c\n\nline one\nline two\n", 'A'+i)
	}
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "talk.md")
	if err := os.WriteFile(deckPath, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := deck.Parse(b.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := config.Default()
	cfg.Reveal = false
	cfg.Theme = "notty"
	mutate(&cfg)

	m := NewModel(State{
		Registry:  reg,
		Config:    cfg,
		DeckPath:  deckPath,
		Bookmarks: bookmark.NewStore(deckPath),
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func plainView(m *Model) string {
	return ansi.Strip(m.View())
}

func TestKeyboard_NextPrevAcrossBindings(t *testing.T) {
	m := newTestModel(t, 5)

	for _, k := range []string{"right", "down", " ", "pgdown"} {
		press(m, k)
	}
	if got := m.Info().Index; got != 4 {
		t.Fatalf("after four next keys index = %d, want 4", got)
	}
	for _, k := range []string{"left", "up", "pgup"} {
		press(m, k)
	}
	if got := m.Info().Index; got != 1 {
		t.Fatalf("after three prev keys index = %d, want 1", got)
	}

	press(m, "end")
	if m.Info().Index != 4 {
		t.Errorf("end should jump to the last slide, index = %d", m.Info().Index)
	}
	press(m, "home")
	if m.Info().Index != 0 {
		t.Errorf("home should jump to the first slide, index = %d", m.Info().Index)
	}
}

func TestScenario_ThreeNexts(t *testing.T) {
	m := newTestModel(t, 5)
	press(m, "right", "right", "right")

	if m.Info().Index != 3 {
		t.Fatalf("index = %d, want 3", m.Info().Index)
	}
	view := plainView(m)
	if !strings.Contains(view, "4 / 5") {
		t.Errorf("counter missing from view:\n%s", view)
	}
}

func TestScenario_NextAtLastIsNoOp(t *testing.T) {
	m := newTestModel(t, 5)
	press(m, "end", "right", "right")
	if m.Info().Index != 4 {
		t.Errorf("index = %d, want 4", m.Info().Index)
	}
}

func TestBookmark_WrittenOnTransition(t *testing.T) {
	m := newTestModel(t, 5)
	press(m, "right", "right")

	index, ok := m.bookmarks.Read()
	if !ok || index != 2 {
		t.Fatalf("bookmark = %d, %v, want 2", index, ok)
	}
}

func TestBookmark_ExternalEditNavigates(t *testing.T) {
	m := newTestModel(t, 5)

	if err := m.bookmarks.Write(bookmark.Format(3)); err != nil {
		t.Fatal(err)
	}
	m.Update(fileEventMsg{path: m.bookmarkPath})
	if m.Info().Index != 3 {
		t.Errorf("index = %d, want 3 after bookmark edit", m.Info().Index)
	}

	// The event echoed by our own confirming write must not move anything.
	m.Update(fileEventMsg{path: m.bookmarkPath})
	if m.Info().Index != 3 {
		t.Errorf("echo event moved the index to %d", m.Info().Index)
	}
}

func TestBookmark_ForeignContentIgnored(t *testing.T) {
	m := newTestModel(t, 5)
	press(m, "right")

	if err := os.WriteFile(m.bookmarkPath, []byte("#section-9"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.Update(fileEventMsg{path: m.bookmarkPath})
	if m.Info().Index != 1 {
		t.Errorf("foreign token moved the index to %d", m.Info().Index)
	}
}

func TestSwipe(t *testing.T) {
	m := newTestModel(t, 5)

	swipe := func(startX, endX int) {
		m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: startX})
		m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, X: endX})
	}

	// Below the 50-cell threshold: a tap, not a swipe.
	swipe(80, 50)
	if m.Info().Index != 0 {
		t.Fatalf("30-cell drag navigated to %d", m.Info().Index)
	}

	// Leftward drag (start > end) advances.
	swipe(90, 20)
	if m.Info().Index != 1 {
		t.Fatalf("leftward swipe: index = %d, want 1", m.Info().Index)
	}

	// Rightward drag goes back.
	swipe(10, 70)
	if m.Info().Index != 0 {
		t.Fatalf("rightward swipe: index = %d, want 0", m.Info().Index)
	}
}

func TestMenu_OpenNavigateClose(t *testing.T) {
	m := newTestModel(t, 5)

	press(m, "m")
	if !m.nav.MenuOpen() {
		t.Fatal("menu should be open after m")
	}

	press(m, "down", "down", "enter")
	if m.nav.MenuOpen() {
		t.Error("selecting a menu row should close the menu")
	}
	if m.Info().Index != 2 {
		t.Errorf("menu selection navigated to %d, want 2", m.Info().Index)
	}
}

func TestMenu_EscapeClosesOnlyWhenOpen(t *testing.T) {
	m := newTestModel(t, 5)

	press(m, "esc")
	if m.nav.MenuOpen() {
		t.Fatal("esc with the menu closed should do nothing")
	}

	press(m, "m", "esc")
	if m.nav.MenuOpen() {
		t.Error("esc should close the open menu")
	}
	if m.Info().Index != 0 {
		t.Errorf("esc changed the index to %d", m.Info().Index)
	}
}

func TestMenu_DisabledByConfig(t *testing.T) {
	m := newTestModelWith(t, 3, func(cfg *config.Config) { cfg.Menu = false })

	press(m, "m")
	if m.nav.MenuOpen() {
		t.Error("menu should stay closed when disabled")
	}
	press(m, "right")
	if m.Info().Index != 1 {
		t.Errorf("core navigation should be unaffected, index = %d", m.Info().Index)
	}
}

func TestAffordances_DimAtBounds(t *testing.T) {
	m := newTestModel(t, 5)

	// Only rendering is asserted here; styling differences are stripped, so
	// check the glyphs survive at both bounds without a panic.
	for _, k := range []string{"end", "home"} {
		press(m, k)
		view := plainView(m)
		if !strings.Contains(view, "‹") || !strings.Contains(view, "›") {
			t.Errorf("affordance glyphs missing at %s:\n%s", k, view)
		}
	}
}

func TestDeckReload_ClampsIndex(t *testing.T) {
	m := newTestModel(t, 5)
	press(m, "end")
	if m.Info().Index != 4 {
		t.Fatal("setup failed")
	}

	if err := os.WriteFile(m.deckPath, []byte("# Solo\n\nonly slide\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.Update(fileEventMsg{path: m.deckPath})

	info := m.Info()
	if info.Total != 1 || info.Index != 0 {
		t.Errorf("after reload Info = %+v, want total 1 index 0", info)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, 3)
	press(m, "?")
	if !strings.Contains(plainView(m), "next slide") {
		t.Error("help overlay should list bindings")
	}
	press(m, "?")
	if strings.Contains(plainView(m), "first slide") {
		t.Error("help overlay should close on second ?")
	}

	// Navigation keys are swallowed while help is shown.
	press(m, "?", "right")
	if m.Info().Index != 0 {
		t.Errorf("help overlay leaked a navigation key, index = %d", m.Info().Index)
	}
}

func TestFullscreenToggle(t *testing.T) {
	m := newTestModel(t, 3)
	if !m.altScreen {
		t.Fatal("presenter should start in the alt screen")
	}
	press(m, "f")
	if m.altScreen {
		t.Error("f should leave the alt screen")
	}
	press(m, "f")
	if !m.altScreen {
		t.Error("second f should re-enter the alt screen")
	}
}
