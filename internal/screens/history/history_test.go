package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestEmptyHistory(t *testing.T) {
	s := New(openRepo(t))
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "No sessions yet") {
		t.Error("expected empty-state message")
	}
}

func TestListsAndExpandsSessions(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	for _, d := range []store.PracticeSessionData{
		{SessionID: "a", Forms: []string{"Affirmative"}, Planned: 5, Score: 4, Attempted: 5, FullSession: true, DurationSecs: 95},
		{SessionID: "b", Forms: []string{"Negative"}, Planned: 10, Score: 1, Attempted: 2, TimerSecs: 30, FallbackUsed: true},
	} {
		if err := repo.AppendPracticeSession(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	s := New(repo)
	s.Update(s.Init()())
	if len(s.sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(s.sessions))
	}

	view := s.View(120, 30)
	for _, want := range []string{"1/2 (50%)", "ended early", "4/5 (80%)", "1:35"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(120, 30)
	if !strings.Contains(view, "30s per question") || !strings.Contains(view, "offline fallback") {
		t.Errorf("expanded view missing details:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}

func TestEscPops(t *testing.T) {
	s := New(openRepo(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop")
	}
}
