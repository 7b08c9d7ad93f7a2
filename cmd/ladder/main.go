// Package main provides the CLI entrypoint for ladder.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/ladder/internal/config"
	"github.com/verte-zerg/ladder/internal/generator"
	"github.com/verte-zerg/ladder/internal/model"
	"github.com/verte-zerg/ladder/internal/progress"
	"github.com/verte-zerg/ladder/internal/session"
	"github.com/verte-zerg/ladder/internal/speech"
	"github.com/verte-zerg/ladder/internal/stats"
	"github.com/verte-zerg/ladder/internal/store"
	"github.com/verte-zerg/ladder/internal/tui"
	"github.com/verte-zerg/ladder/internal/wordlist"
)

const (
	defaultLevel         = "low"
	defaultNoticeSeconds = 3
	defaultSpeechVoice   = "en"
	defaultSpeechSpeed   = 150
	defaultStatsTop      = 10
	defaultTrendWindow   = 10
)

var (
	progressFile string

	practiceLevel         string
	practiceHint          bool
	practiceNoticeSeconds int
	practiceHistory       bool
	practiceVoice         string
	practiceSpeed         int

	importCategory string

	statsCategory string
	statsSince    string
	statsLast     int
	statsTop      int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ladder",
		Short:         "TUI vocabulary flashcards",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&progressFile, "file", config.DefaultProgressFile, "progress file with learn/complete word pools")
	rootCmd.Flags().StringVar(&practiceLevel, "level", defaultLevel, "difficulty level: low speaks answers, high does not")
	rootCmd.Flags().BoolVar(&practiceHint, "hint", false, "show the answer under the question")
	rootCmd.Flags().IntVar(&practiceNoticeSeconds, "notice-seconds", defaultNoticeSeconds, "how long notifications stay visible")
	rootCmd.Flags().BoolVar(&practiceHistory, "history", true, "record answers for the stats command")
	rootCmd.Flags().StringVar(&practiceVoice, "voice", defaultSpeechVoice, "espeak-ng voice")
	rootCmd.Flags().IntVar(&practiceSpeed, "speed", defaultSpeechSpeed, "espeak-ng words per minute")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newReviewCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "file", &progressFile, fileCfg.Practice.File)
	applyStringConfig(cmd, "level", &practiceLevel, fileCfg.Practice.Level)
	applyBoolConfig(cmd, "hint", &practiceHint, fileCfg.Practice.Hint)
	applyIntConfig(cmd, "notice-seconds", &practiceNoticeSeconds, fileCfg.Practice.NoticeSeconds)
	applyBoolConfig(cmd, "history", &practiceHistory, fileCfg.Practice.History)
	applyStringConfig(cmd, "voice", &practiceVoice, fileCfg.Speech.Voice)
	applyIntConfig(cmd, "speed", &practiceSpeed, fileCfg.Speech.Speed)

	level, err := model.ParseLevel(practiceLevel)
	if err != nil {
		return err
	}
	speechCommand := ""
	if fileCfg.Speech.Command != nil {
		speechCommand = *fileCfg.Speech.Command
	}
	cfg := model.Config{
		ProgressPath:  progressFile,
		Level:         level,
		Hint:          practiceHint,
		NoticeSeconds: practiceNoticeSeconds,
		History:       practiceHistory,
		SpeechCommand: speechCommand,
		SpeechVoice:   practiceVoice,
		SpeechSpeed:   practiceSpeed,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := config.OpenLogFile(config.LogFilePath(fileCfg.Log))
	if err != nil {
		return err
	}
	defer func() {
		_ = logFile.Close()
	}()
	logger, err := config.NewLogger(fileCfg.Log, logFile)
	if err != nil {
		return err
	}

	var recorder session.Recorder
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logger.WithError(err).Warn("failed to open attempt history, answers will not be recorded")
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logger.WithError(cerr).Warn("failed to close db")
				}
			}()
			recorder = st
		}
	}

	speaker := speech.New(speech.Config{
		Command: cfg.SpeechCommand,
		Voice:   cfg.SpeechVoice,
		Speed:   cfg.SpeechSpeed,
	}, logger)

	ctrl := session.New(session.Options{
		Repository:     progress.NewFileRepository(cfg.ProgressPath),
		Picker:         generator.New(),
		Speaker:        speaker,
		Recorder:       recorder,
		Logger:         logger.WithField("file", cfg.ProgressPath),
		Level:          cfg.Level,
		Hint:           cfg.Hint,
		NoticeDuration: time.Duration(cfg.NoticeSeconds) * time.Second,
	})
	program := tea.NewProgram(tui.NewModel(ctrl, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with remaining and completed words",
		Args:  cobra.NoArgs,
		RunE:  runCategoriesCmd,
	}
}

func runCategoriesCmd(cmd *cobra.Command, _ []string) error {
	logger, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	words := progress.LoadOrEmpty(progress.NewFileRepository(progressFile), logger)
	if err := stats.RenderProgress(cmd.OutOrStdout(), words.Summary()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add word<TAB>answer lines to a category",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importCategory, "category", "", "category to add the words to")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	if _, err := loadCLIConfig(cmd); err != nil {
		return err
	}
	category := strings.TrimSpace(importCategory)
	if category == "" {
		return fmt.Errorf("--category must not be empty")
	}
	pairs, err := wordlist.LoadPairs(args[0])
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	repo := progress.NewFileRepository(progressFile)
	words, err := loadStrict(repo)
	if err != nil {
		return err
	}
	added, skipped := 0, 0
	for _, p := range pairs {
		if words.AddWord(category, p.Word, p.Answer) {
			added++
		} else {
			skipped++
		}
	}
	if err := repo.Save(words); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %d words to %s (%d already completed)\n", added, category, skipped)
	return err
}

func newReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Move every completed word back to the learn pool and save",
		Args:  cobra.NoArgs,
		RunE:  runReviewCmd,
	}
}

func runReviewCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadCLIConfig(cmd); err != nil {
		return err
	}
	repo := progress.NewFileRepository(progressFile)
	words, err := loadStrict(repo)
	if err != nil {
		return err
	}
	moved := 0
	for _, cat := range words.Complete {
		moved += len(cat)
	}
	words.Review()
	if err := repo.Save(words); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Moved %d words back to learn\n", moved)
	return err
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show answer stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsCategory, "category", "", "category filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsTop, "top", defaultStatsTop, "number of hardest words to list (0 hides the list)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}

	cfg := model.StatsConfig{
		Category: statsCategory,
		Since:    sinceTime,
		Last:     statsLast,
		Top:      statsTop,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := report.Render(cmd.OutOrStdout(), defaultTrendWindow, stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// loadCLIConfig reads the config file for non-TUI commands and logs to stderr.
func loadCLIConfig(cmd *cobra.Command) (*logrus.Logger, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "file", &progressFile, fileCfg.Practice.File)
	return config.NewLogger(fileCfg.Log, cmd.ErrOrStderr())
}

// loadStrict loads progress for commands that write it back. A missing file
// starts empty; a corrupt one is an error so it is never overwritten.
func loadStrict(repo *progress.FileRepository) (*progress.Words, error) {
	words, err := repo.Load()
	if err != nil {
		if os.IsNotExist(err) {
			return progress.NewWords(), nil
		}
		return nil, fmt.Errorf("failed to load progress from %s: %w", repo.Path, err)
	}
	return words, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# ladder configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# file = %q          # Progress file (learn/complete word pools)
# level = %q                 # low speaks answers aloud, high does not
# hint = false                  # Show the answer under the question
# notice-seconds = %d            # How long notifications stay visible
# history = true                # Record answers for "ladder stats"

[speech]
# command = "espeak-ng"         # Text-to-speech binary
# voice = %q                  # espeak-ng voice
# speed = %d                   # Words per minute (80-450)

[log]
# level = "info"                # panic, fatal, error, warn, info, debug, trace
# format = "text"               # text or json
# file = ""                     # Log file used while the TUI runs
`,
		config.DefaultProgressFile,
		defaultLevel,
		defaultNoticeSeconds,
		defaultSpeechVoice,
		defaultSpeechSpeed,
	)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.ProgressPath) == "" {
		return fmt.Errorf("--file must not be empty")
	}
	if cfg.NoticeSeconds <= 0 {
		return fmt.Errorf("--notice-seconds must be > 0")
	}
	if cfg.SpeechSpeed <= 0 {
		return fmt.Errorf("--speed must be > 0")
	}
	return nil
}
