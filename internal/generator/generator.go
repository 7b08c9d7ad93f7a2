// Package generator draws practice questions from a word pool.
package generator

import (
	"math/rand"
	"sort"
	"time"

	"github.com/samber/lo"
)

// Sampler picks questions uniformly at random.
type Sampler struct {
	rnd *rand.Rand
}

// New returns a Sampler seeded with the current time.
func New() *Sampler {
	return &Sampler{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithSource returns a Sampler drawing from src.
func NewWithSource(src rand.Source) *Sampler {
	return &Sampler{rnd: rand.New(src)}
}

// Pick selects one (question, answer) pair from pool. Keys are sorted first so
// a seeded source always yields the same sequence. An empty pool yields two
// empty strings.
func (s *Sampler) Pick(pool map[string]string) (string, string) {
	if len(pool) == 0 {
		return "", ""
	}
	keys := lo.Keys(pool)
	sort.Strings(keys)
	question := keys[s.rnd.Intn(len(keys))]
	return question, pool[question]
}
