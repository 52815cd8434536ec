package learn

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/tenses"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestListScreen_View(t *testing.T) {
	s := New()
	view := s.View(80, 40)
	for _, want := range []string{"PRESENT", "PAST", "FUTURE", "Present Simple Tense"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestListScreen_OpenDetail(t *testing.T) {
	s := New()
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	if s.selected != 2 {
		t.Fatalf("selected = %d, want 2", s.selected)
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if got := push.Screen.Title(); got != "Present Perfect Tense" {
		t.Errorf("detail title = %q", got)
	}
}

func TestListScreen_SelectionClamped(t *testing.T) {
	s := New()
	s.Update(specialKey(tea.KeyUp))
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
	for i := 0; i < 30; i++ {
		s.Update(specialKey(tea.KeyDown))
	}
	if s.selected != len(tenses.All())-1 {
		t.Errorf("selected = %d, want last", s.selected)
	}
	// Scrolled view still renders the selection.
	if !strings.Contains(s.View(80, 10), "Future Perfect Continuous Tense") {
		t.Error("selected tense scrolled out of view")
	}
}

func TestDetailScreen_ToggleVoice(t *testing.T) {
	tmpl, _ := tenses.Get("past-simple")
	d := NewDetail(tmpl)

	if !strings.Contains(d.View(100, 40), "Subject + Past Verb") {
		t.Errorf("active view missing structure:\n%s", d.View(100, 40))
	}

	d.Update(specialKey(tea.KeyTab))
	if d.Voice() != tenses.VoicePassive {
		t.Fatalf("voice = %s, want passive", d.Voice())
	}
	if !strings.Contains(d.View(100, 40), "was/were") {
		t.Errorf("passive view missing structure:\n%s", d.View(100, 40))
	}
}
