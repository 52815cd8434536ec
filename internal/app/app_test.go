package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/screens/home"
	"github.com/alphabetz/alphabetz/internal/screens/placeholder"
)

func TestCtrlCQuits(t *testing.T) {
	m := NewAppModel(Options{SkipSplash: true})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestEscLeftToScreens(t *testing.T) {
	m := NewAppModel(Options{SkipSplash: true})
	m.Update(router.PushScreenMsg{Screen: placeholder.New("History", "nope")})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("placeholder should pop on esc")
	}
	m.Update(cmd())
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}

	// Esc on the root screen is a no-op.
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("root screen should not pop")
		}
	}
}

func TestFooterUsesScreenHints(t *testing.T) {
	m := NewAppModel(Options{Status: "gemini-2.5-flash", SkipSplash: true})
	var keys []string
	for _, h := range m.footerHints(m.router.Active()) {
		keys = append(keys, h.Key+" "+h.Description)
	}
	got := strings.Join(keys, ", ")
	for _, want := range []string{"Enter Select", "Ctrl+C Quit"} {
		if !strings.Contains(got, want) {
			t.Errorf("hints %q missing %q", got, want)
		}
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 45})
	v := updated.(AppModel).View()
	if !v.AltScreen || v.Content == nil {
		t.Error("expected alt-screen view with content")
	}
}

func TestSplashReplacedByHome(t *testing.T) {
	m := NewAppModel(Options{})
	if m.router.Active().Title() != "" {
		t.Fatalf("expected splash first, got %q", m.router.Active().Title())
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'a'})
	if cmd == nil {
		t.Fatal("keypress should leave the splash")
	}
	m.Update(cmd())
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("active = %T, want home", m.router.Active())
	}
}
