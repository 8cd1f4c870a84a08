package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const kjvJohn316 = "For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life."

// writeTestConfig lays out a config file and a one-book KJV corpus,
// and points the global --config flag at it.
func writeTestConfig(t *testing.T) {
	t.Helper()

	dataDir := t.TempDir()
	kjvDir := filepath.Join(dataDir, "kjv")
	if err := os.MkdirAll(kjvDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	payload := `{"book":"John","chapters":{"3":{"16":"` + kjvJohn316 + `"}}}`
	if err := os.WriteFile(filepath.Join(kjvDir, "John.json"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write John.json: %v", err)
	}

	cfgPath := filepath.Join(t.TempDir(), "sharp.yml")
	content := "data_dir: " + dataDir + "\nlog:\n  level: error\n  format: text\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	prev := CLI.Config
	CLI.Config = cfgPath
	t.Cleanup(func() { CLI.Config = prev })
}

// captureStdout runs fn with os.Stdout redirected to a pipe and
// returns what was written.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	prev := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = prev }()

	runErr := fn()
	w.Close()
	out, readErr := io.ReadAll(r)
	if readErr != nil {
		t.Fatalf("read pipe: %v", readErr)
	}
	if runErr != nil {
		t.Fatalf("command failed: %v\noutput: %s", runErr, out)
	}
	return string(out)
}

func TestVersionCmd_Run(t *testing.T) {
	out := captureStdout(t, (&VersionCmd{}).Run)
	if !strings.Contains(out, version) {
		t.Errorf("version output = %q", out)
	}
}

func TestAskCmd_Run(t *testing.T) {
	writeTestConfig(t)

	cmd := &AskCmd{Question: []string{"John", "3:16"}}
	out := captureStdout(t, cmd.Run)

	if !strings.Contains(out, kjvJohn316) {
		t.Errorf("answer missing verse text:\n%s", out)
	}
	if !strings.Contains(out, "John 3:16 (KJV)") {
		t.Errorf("citations missing:\n%s", out)
	}
}

func TestAskCmd_Run_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sharp.yml")
	if err := os.WriteFile(cfgPath, []byte("log:\n  level: loud\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	prev := CLI.Config
	CLI.Config = cfgPath
	t.Cleanup(func() { CLI.Config = prev })

	cmd := &AskCmd{Question: []string{"John", "3:16"}}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Errorf("Run() error = %v, want invalid log level", err)
	}
}

func TestBuildAssistant_MissingDataTolerated(t *testing.T) {
	writeTestConfig(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	// Index data files are optional; curated fallbacks serve instead.
	a, fetcher, cleanup, err := buildAssistant(cfg)
	if err != nil {
		t.Fatalf("buildAssistant: %v", err)
	}
	defer cleanup()
	if a == nil || fetcher == nil {
		t.Fatal("nil assistant or fetcher")
	}
}
