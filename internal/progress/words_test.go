package progress

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func foodStore() *Words {
	w := NewWords()
	w.Learn["food"] = Category{"apple": "苹果", "bread": "面包"}
	return w
}

func TestCompleteWordMovesToCompletePool(t *testing.T) {
	w := foodStore()
	if !w.CompleteWord("food", "apple", "苹果") {
		t.Fatalf("expected apple to be completed")
	}
	if _, ok := w.Learn["food"]["apple"]; ok {
		t.Fatalf("apple should be removed from learn")
	}
	if got := w.Complete["food"]["apple"]; got != "苹果" {
		t.Fatalf("complete answer = %q, want 苹果", got)
	}
	if w.RemainingWords("food") != 1 || w.CompletedWords("food") != 1 {
		t.Fatalf("unexpected counts: remaining=%d completed=%d", w.RemainingWords("food"), w.CompletedWords("food"))
	}
}

func TestCompleteWordMissingLeavesStoreUnchanged(t *testing.T) {
	w := foodStore()
	before := foodStore()
	if w.CompleteWord("food", "cherry", "樱桃") {
		t.Fatalf("expected missing word to report false")
	}
	if w.CompleteWord("drinks", "tea", "茶") {
		t.Fatalf("expected missing category to report false")
	}
	if !reflect.DeepEqual(w, before) {
		t.Fatalf("store changed: %+v", w)
	}

	if !w.CompleteWord("food", "apple", "苹果") {
		t.Fatalf("first completion should succeed")
	}
	if w.CompleteWord("food", "apple", "苹果") {
		t.Fatalf("second completion should be a no-op")
	}
	if w.CompletedWords("food") != 1 {
		t.Fatalf("expected one completed word")
	}
}

func TestCountsForAbsentCategory(t *testing.T) {
	w := NewWords()
	if w.RemainingWords("none") != 0 || w.CompletedWords("none") != 0 {
		t.Fatalf("absent category should report zero")
	}
}

func TestReviewMovesEveryCategory(t *testing.T) {
	w := NewWords()
	w.Complete["food"] = Category{"apple": "苹果"}
	w.Complete["verbs"] = Category{"run": "跑"}
	w.Learn["verbs"] = Category{"eat": "吃"}

	w.Review()

	want := &Words{
		Learn: map[string]Category{
			"food":  {"apple": "苹果"},
			"verbs": {"eat": "吃", "run": "跑"},
		},
		Complete: map[string]Category{
			"food":  {},
			"verbs": {},
		},
	}
	if !reflect.DeepEqual(w, want) {
		t.Fatalf("review result = %+v, want %+v", w, want)
	}
}

func TestAddWordKeepsPoolsDisjoint(t *testing.T) {
	w := foodStore()
	w.CompleteWord("food", "apple", "苹果")
	if w.AddWord("food", "apple", "苹果") {
		t.Fatalf("completed word should not be re-added")
	}
	if !w.AddWord("food", "milk", "牛奶") {
		t.Fatalf("expected new word to be added")
	}
	if !w.AddWord("drinks", "tea", "茶") {
		t.Fatalf("expected word in new category to be added")
	}
	if got := w.Categories(); !reflect.DeepEqual(got, []string{"drinks", "food"}) {
		t.Fatalf("categories = %v", got)
	}
}

func TestSummaryReportsCounts(t *testing.T) {
	w := foodStore()
	w.CompleteWord("food", "apple", "苹果")
	summary := w.Summary()
	if len(summary) != 1 {
		t.Fatalf("expected one category, got %d", len(summary))
	}
	if summary[0].Name != "food" || summary[0].Remaining != 1 || summary[0].Completed != 1 {
		t.Fatalf("unexpected summary: %+v", summary[0])
	}
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	repo := NewFileRepository(path)
	w := foodStore()
	w.CompleteWord("food", "apple", "苹果")
	w.Complete["empty"] = Category{}

	if err := repo.Save(w); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded, w) {
		t.Fatalf("round trip mismatch: got %+v want %+v", loaded, w)
	}

	w.CompleteWord("food", "bread", "面包")
	if err := repo.Save(w); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	loaded, err = repo.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.RemainingWords("food") != 0 || loaded.CompletedWords("food") != 2 {
		t.Fatalf("overwrite not persisted: %+v", loaded)
	}
}

func TestFileRepositoryNullPools(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	if err := os.WriteFile(path, []byte(`{"learn":{"food":null},"complete":null}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewFileRepository(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if w.Complete == nil || w.Learn["food"] == nil {
		t.Fatalf("expected null pools to decode as empty maps: %+v", w)
	}
}

func TestLoadOrEmptyOnMissingAndCorruptFile(t *testing.T) {
	dir := t.TempDir()
	w := LoadOrEmpty(NewFileRepository(filepath.Join(dir, "missing.json")), testLogger())
	if len(w.Learn) != 0 || len(w.Complete) != 0 {
		t.Fatalf("expected empty store for missing file")
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w = LoadOrEmpty(NewFileRepository(corrupt), testLogger())
	if w.Learn == nil || len(w.Learn) != 0 {
		t.Fatalf("expected empty store for corrupt file")
	}
}

func TestFileRepositorySaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	repo := NewFileRepository(filepath.Join(blocker, "words.json"))
	if err := repo.Save(foodStore()); err == nil {
		t.Fatalf("expected save under a regular file to fail")
	}
}

func TestMemoryRepositoryCopiesState(t *testing.T) {
	w := foodStore()
	repo := NewMemoryRepository(w)
	w.CompleteWord("food", "apple", "苹果")

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.RemainingWords("food") != 2 {
		t.Fatalf("memory repository should hold a snapshot")
	}

	repo.SaveErr = errors.New("disk full")
	if err := repo.Save(w); err == nil {
		t.Fatalf("expected injected save error")
	}
	if _, err := NewMemoryRepository(nil).Load(); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
