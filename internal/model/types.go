// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Level controls how much help the practice screen gives.
type Level int

const (
	// LevelLow speaks the answer aloud whenever a question is drawn.
	LevelLow Level = iota
	// LevelMedium is reserved; it behaves like LevelHigh.
	LevelMedium
	// LevelHigh gives no audio cue.
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelMedium:
		return "Medium"
	case LevelHigh:
		return "High"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Next cycles between the selectable levels.
func (l Level) Next() Level {
	if l == LevelLow {
		return LevelHigh
	}
	return LevelLow
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "":
		return LevelLow, nil
	case "medium", "media", "median":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	default:
		return LevelLow, fmt.Errorf("unknown level %q (want low, medium or high)", s)
	}
}

// Config defines practice settings.
type Config struct {
	ProgressPath  string
	Level         Level
	Hint          bool
	NoticeSeconds int
	History       bool
	SpeechCommand string
	SpeechVoice   string
	SpeechSpeed   int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Category string
	Since    *time.Time
	Last     int
	Top      int
}

// Attempt is a single submitted answer.
type Attempt struct {
	ID         int64
	AnsweredAt time.Time
	Category   string
	Question   string
	Answer     string
	Input      string
	Correct    bool
}

// CategoryProgress summarizes the learn/complete pools of one category.
type CategoryProgress struct {
	Name      string
	Remaining int
	Completed int
}

// CategoryAggregate aggregates attempts for a category.
type CategoryAggregate struct {
	Category  string
	Correct   int
	Incorrect int
	LastAt    time.Time
}

// WordAggregate aggregates attempts for a single question.
type WordAggregate struct {
	Category  string
	Question  string
	Correct   int
	Incorrect int
}
