// Package progress holds the learn/complete word pools and their persistence.
package progress

import (
	"sort"

	"github.com/samber/lo"

	"github.com/verte-zerg/ladder/internal/model"
)

// Category maps a word (the question) to its answer.
type Category map[string]string

// Words is the progress store: words still to learn and words already answered
// correctly, both grouped by category name.
type Words struct {
	Learn    map[string]Category `json:"learn"`
	Complete map[string]Category `json:"complete"`
}

// NewWords returns an empty store.
func NewWords() *Words {
	return &Words{
		Learn:    map[string]Category{},
		Complete: map[string]Category{},
	}
}

// normalize replaces nil pools left behind by decoding `null`.
func (w *Words) normalize() {
	if w.Learn == nil {
		w.Learn = map[string]Category{}
	}
	if w.Complete == nil {
		w.Complete = map[string]Category{}
	}
	for name, cat := range w.Learn {
		if cat == nil {
			w.Learn[name] = Category{}
		}
	}
	for name, cat := range w.Complete {
		if cat == nil {
			w.Complete[name] = Category{}
		}
	}
}

// CompleteWord moves word from the learn pool of category into its complete pool.
// It reports false and changes nothing when the word is not in the learn pool.
func (w *Words) CompleteWord(category, word, answer string) bool {
	learn, ok := w.Learn[category]
	if !ok {
		return false
	}
	if _, ok := learn[word]; !ok {
		return false
	}
	delete(learn, word)
	complete, ok := w.Complete[category]
	if !ok || complete == nil {
		complete = Category{}
		w.Complete[category] = complete
	}
	complete[word] = answer
	return true
}

// RemainingWords returns the size of the learn pool for category.
func (w *Words) RemainingWords(category string) int {
	return len(w.Learn[category])
}

// CompletedWords returns the size of the complete pool for category.
func (w *Words) CompletedWords(category string) int {
	return len(w.Complete[category])
}

// Review moves every completed word of every category back to its learn pool.
// Complete categories are kept, empty.
func (w *Words) Review() {
	for name, complete := range w.Complete {
		if len(complete) == 0 {
			continue
		}
		learn, ok := w.Learn[name]
		if !ok || learn == nil {
			learn = Category{}
			w.Learn[name] = learn
		}
		for word, answer := range complete {
			learn[word] = answer
		}
		w.Complete[name] = Category{}
	}
}

// AddWord inserts a word into the learn pool of category. Words already in the
// complete pool are left alone so the pools stay disjoint.
func (w *Words) AddWord(category, word, answer string) bool {
	if _, done := w.Complete[category][word]; done {
		return false
	}
	learn, ok := w.Learn[category]
	if !ok || learn == nil {
		learn = Category{}
		w.Learn[category] = learn
	}
	learn[word] = answer
	return true
}

// Pool returns the learn pool of category, or nil.
func (w *Words) Pool(category string) Category {
	return w.Learn[category]
}

// Categories returns the learn category names in sorted order.
func (w *Words) Categories() []string {
	names := lo.Keys(w.Learn)
	sort.Strings(names)
	return names
}

// Summary reports remaining and completed counts for every learn category.
func (w *Words) Summary() []model.CategoryProgress {
	return lo.Map(w.Categories(), func(name string, _ int) model.CategoryProgress {
		return model.CategoryProgress{
			Name:      name,
			Remaining: w.RemainingWords(name),
			Completed: w.CompletedWords(name),
		}
	})
}
