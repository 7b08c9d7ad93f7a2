package tui

import (
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/ladder/internal/generator"
	"github.com/verte-zerg/ladder/internal/model"
	"github.com/verte-zerg/ladder/internal/progress"
	"github.com/verte-zerg/ladder/internal/session"
)

func newTestModel(t *testing.T, words *progress.Words) *Model {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	ctrl := session.New(session.Options{
		Repository: progress.NewMemoryRepository(words),
		Picker:     generator.NewWithSource(rand.NewSource(1)),
		Logger:     logger,
		Level:      model.LevelHigh,
	})
	return NewModel(ctrl, logger)
}

func foodWords() *progress.Words {
	w := progress.NewWords()
	w.Learn["food"] = progress.Category{"apple": "苹果"}
	return w
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func pressEnter(m *Model) {
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSelectAndSubmitCorrect(t *testing.T) {
	m := newTestModel(t, foodWords())
	pressEnter(m)
	if m.focus != focusInput {
		t.Fatalf("selecting a category should focus the input")
	}
	if got := m.ctrl.State().Question; got != "apple" {
		t.Fatalf("question = %q, want apple", got)
	}

	typeText(m, "苹果")
	pressEnter(m)

	st := m.ctrl.State()
	if st.Correct != 1 || st.Errors != 0 {
		t.Fatalf("unexpected counters: %+v", st)
	}
	if m.input.Value() != "" {
		t.Fatalf("input should be cleared, got %q", m.input.Value())
	}
	if m.ctrl.Words().CompletedWords("food") != 1 {
		t.Fatalf("apple should be completed")
	}
	row := m.categories.SelectedRow()
	if len(row) != 3 || row[1] != "0" || row[2] != "1" {
		t.Fatalf("category table not refreshed: %v", row)
	}
}

func TestSubmitWrongShowsErrorToast(t *testing.T) {
	m := newTestModel(t, foodWords())
	pressEnter(m)
	typeText(m, "xyz")
	pressEnter(m)

	if m.ctrl.State().Errors != 1 {
		t.Fatalf("expected one error")
	}
	out := m.renderFooter()
	if !containsAll(out, []string{"Correct rate: 0", "Error rate: 1", "Error Word"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestEmptyCategoryCannotBeSelected(t *testing.T) {
	w := progress.NewWords()
	w.Learn["food"] = progress.Category{}
	m := newTestModel(t, w)
	pressEnter(m)
	if m.focus != focusCategories || m.ctrl.State().Category != "" {
		t.Fatalf("empty category should not be selected")
	}
	if !strings.Contains(m.renderToasts(), "No words left in food") {
		t.Fatalf("expected error toast, got %q", m.renderToasts())
	}
}

func TestToastsExpire(t *testing.T) {
	m := newTestModel(t, foodWords())
	now := time.Unix(100, 0)
	m.now = func() time.Time { return now }
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if len(m.toasts) != 1 {
		t.Fatalf("expected review toast, got %d", len(m.toasts))
	}

	now = now.Add(session.DefaultNoticeDuration - time.Millisecond)
	m.Update(expireMsg{})
	if len(m.toasts) != 1 {
		t.Fatalf("toast expired too early")
	}
	now = now.Add(time.Millisecond)
	m.Update(expireMsg{})
	if len(m.toasts) != 0 {
		t.Fatalf("toast should have expired")
	}
}

func TestToolbarReflectsLevelAndHint(t *testing.T) {
	m := newTestModel(t, foodWords())
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	out := m.renderToolbar()
	if !containsAll(out, []string{"level Low", "hint [x]"}) {
		t.Fatalf("toolbar missing state: %s", out)
	}
}

func TestViewRendersQuestion(t *testing.T) {
	m := newTestModel(t, foodWords())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	pressEnter(m)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	out := m.View()
	if !containsAll(out, []string{"word category: 1", "apple", "苹果", "remaining word 1"}) {
		t.Fatalf("view missing expected content:\n%s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
