package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/ladder/internal/config"
	"github.com/verte-zerg/ladder/internal/model"
	"github.com/verte-zerg/ladder/internal/progress"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("ladder %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestImportReviewAndCategories(t *testing.T) {
	dir := t.TempDir()
	progressPath := filepath.Join(dir, "words.json")
	listPath := filepath.Join(dir, "food.txt")
	if err := os.WriteFile(listPath, []byte("# food\napple\t苹果\nbread = 面包\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	out := runCLI(t, "import", "--file", progressPath, "--category", "food", listPath)
	if !strings.Contains(out, "Added 2 words to food") {
		t.Fatalf("unexpected import output: %q", out)
	}

	repo := progress.NewFileRepository(progressPath)
	words, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if words.RemainingWords("food") != 2 {
		t.Fatalf("expected 2 remaining words, got %d", words.RemainingWords("food"))
	}
	words.CompleteWord("food", "apple", "苹果")
	if err := repo.Save(words); err != nil {
		t.Fatalf("save: %v", err)
	}

	out = runCLI(t, "review", "--file", progressPath)
	if !strings.Contains(out, "Moved 1 words back to learn") {
		t.Fatalf("unexpected review output: %q", out)
	}

	out = runCLI(t, "categories", "--file", progressPath)
	if !strings.Contains(out, "food") || !strings.Contains(out, "Remaining") {
		t.Fatalf("unexpected categories output: %q", out)
	}
	words, err = repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if words.RemainingWords("food") != 2 || words.CompletedWords("food") != 0 {
		t.Fatalf("review did not restore words: %+v", words)
	}
}

func TestReviewRefusesCorruptProgress(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	progressPath := filepath.Join(t.TempDir(), "words.json")
	if err := os.WriteFile(progressPath, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"review", "--file", progressPath})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for corrupt progress file")
	}
	data, err := os.ReadFile(progressPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "{" {
		t.Fatalf("corrupt file was overwritten: %q", data)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if cfg.Practice.File != nil || cfg.Log.Level != nil {
		t.Fatalf("template values should be commented out")
	}
}

func TestValidateConfig(t *testing.T) {
	base := model.Config{ProgressPath: "words.json", NoticeSeconds: 3, SpeechSpeed: 150}
	if err := validateConfig(base); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	bad := base
	bad.ProgressPath = " "
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected error for empty path")
	}
	bad = base
	bad.NoticeSeconds = 0
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected error for zero notice duration")
	}
}

func TestStatsRejectsNegativeTop(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"stats", "--top", "-1"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "--top must be >= 0") {
		t.Fatalf("expected --top validation error, got %v", err)
	}
}
