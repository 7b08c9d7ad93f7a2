package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/ladder/internal/model"
	"github.com/verte-zerg/ladder/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "ladder.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	base := time.Unix(0, 0)
	inputs := []struct {
		category string
		question string
		correct  bool
	}{
		{"food", "apple", false},
		{"food", "apple", true},
		{"food", "bread", true},
		{"verbs", "run", false},
		{"verbs", "run", false},
	}
	for i, in := range inputs {
		attempt := model.Attempt{
			AnsweredAt: base.Add(time.Duration(i) * time.Minute),
			Category:   in.category,
			Question:   in.question,
			Answer:     "x",
			Input:      "x",
			Correct:    in.correct,
		}
		if _, err := st.InsertAttempt(ctx, attempt); err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Top: 1})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Attempts) != 5 {
		t.Fatalf("expected 5 attempts, got %d", len(report.Attempts))
	}
	if len(report.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(report.Categories))
	}
	if len(report.WeakWords) != 1 || report.WeakWords[0].Question != "run" {
		t.Fatalf("unexpected weak words: %+v", report.WeakWords)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, 2, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Attempts: 5", "Accuracy: 40.00%", "Most practiced: food", "Per-Category", "Hardest Words", "Accuracy trend"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := (Report{}).Render(&buf, 5, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No attempts found." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
