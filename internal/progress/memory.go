package progress

import (
	"encoding/json"
	"errors"
	"os"
)

// MemoryRepository keeps the last saved store as JSON in memory.
type MemoryRepository struct {
	data    []byte
	SaveErr error
	Saves   int
}

// NewMemoryRepository returns a repository preloaded with words. A nil store
// leaves the repository empty, so Load reports os.ErrNotExist.
func NewMemoryRepository(words *Words) *MemoryRepository {
	r := &MemoryRepository{}
	if words != nil {
		// Encoding a map of strings cannot fail.
		r.data, _ = json.Marshal(words)
	}
	return r
}

// Load decodes a fresh copy of the last saved store.
func (r *MemoryRepository) Load() (*Words, error) {
	if r.data == nil {
		return nil, os.ErrNotExist
	}
	return decode(r.data)
}

// Save stores a copy of words unless SaveErr is set.
func (r *MemoryRepository) Save(words *Words) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	if words == nil {
		return errors.New("nil progress store")
	}
	data, err := json.Marshal(words)
	if err != nil {
		return err
	}
	r.data = data
	r.Saves++
	return nil
}
