package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Repository loads and saves the whole progress store.
type Repository interface {
	Load() (*Words, error)
	Save(words *Words) error
}

// FileRepository persists progress as a JSON file.
type FileRepository struct {
	Path string
}

// NewFileRepository returns a repository bound to path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{Path: path}
}

// Load reads and decodes the progress file.
func (r *FileRepository) Load() (*Words, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Save overwrites the progress file with both pools.
func (r *FileRepository) Save(words *Words) error {
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create progress dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "words-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp progress file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close progress file: %w", err)
	}
	if err := os.Rename(tmpPath, r.Path); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	return nil
}

// LoadOrEmpty loads progress from repo. Any failure is logged and an empty
// store is returned instead.
func LoadOrEmpty(repo Repository, log logrus.FieldLogger) *Words {
	words, err := repo.Load()
	if err != nil {
		if os.IsNotExist(err) {
			log.WithError(err).Info("no progress file yet, starting empty")
		} else {
			log.WithError(err).Warn("failed to load progress, starting empty")
		}
		return NewWords()
	}
	return words
}

func decode(data []byte) (*Words, error) {
	var words Words
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	words.normalize()
	return &words, nil
}
