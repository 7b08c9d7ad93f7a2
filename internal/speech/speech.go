// Package speech speaks answers aloud through espeak-ng.
package speech

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Speaker accepts fire-and-forget speech requests.
type Speaker interface {
	Speak(text string)
}

// Nop discards every request.
type Nop struct{}

// Speak implements Speaker.
func (Nop) Speak(string) {}

// Config holds espeak-ng settings.
type Config struct {
	Command string // Binary name or path (default: espeak-ng)
	Voice   string // Voice variant (default: en)
	Speed   int    // Words per minute, 80 to 450 (default: 150)
}

// DefaultConfig returns the default English voice settings.
func DefaultConfig() Config {
	return Config{
		Command: "espeak-ng",
		Voice:   "en",
		Speed:   150,
	}
}

// ESpeak runs the espeak-ng binary once per request.
type ESpeak struct {
	path string
	cfg  Config
	log  logrus.FieldLogger
}

// NewESpeak resolves the engine binary. It fails when the binary is not installed.
func NewESpeak(cfg Config, log logrus.FieldLogger) (*ESpeak, error) {
	def := DefaultConfig()
	if strings.TrimSpace(cfg.Command) == "" {
		cfg.Command = def.Command
	}
	if strings.TrimSpace(cfg.Voice) == "" {
		cfg.Voice = def.Voice
	}
	if cfg.Speed <= 0 {
		cfg.Speed = def.Speed
	}
	cfg.Speed = clampSpeed(cfg.Speed)
	path, err := exec.LookPath(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("%s is not installed or not in PATH: %w", cfg.Command, err)
	}
	return &ESpeak{path: path, cfg: cfg, log: log}, nil
}

// New returns an espeak-backed speaker, or Nop when the engine is unavailable.
func New(cfg Config, log logrus.FieldLogger) Speaker {
	s, err := NewESpeak(cfg, log)
	if err != nil {
		log.WithError(err).Info("speech disabled")
		return Nop{}
	}
	return s
}

// Speak starts the engine and returns immediately. Failures are logged only.
func (e *ESpeak) Speak(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	cmd := exec.Command(e.path, e.args(text)...)
	if err := cmd.Start(); err != nil {
		e.log.WithError(err).Debug("failed to start speech engine")
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			e.log.WithError(err).Debug("speech engine exited with error")
		}
	}()
}

func (e *ESpeak) args(text string) []string {
	return []string{
		"-v", e.cfg.Voice,
		"-s", fmt.Sprintf("%d", e.cfg.Speed),
		"--", text,
	}
}

func clampSpeed(speed int) int {
	if speed < 80 {
		return 80
	}
	if speed > 450 {
		return 450
	}
	return speed
}
