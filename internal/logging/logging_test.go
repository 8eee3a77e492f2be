package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warn":    LevelWarn,
		"Warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFileAndConsoleFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	var console bytes.Buffer

	closeFn, err := Init(Options{Level: LevelInfo, File: path, Console: &console})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	Debugf("[test] hidden %d", 1)
	Infof("[test] copied %s", "x")
	Warnf("[test] could not remove %s", "a.dtb")

	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	logText := string(data)
	if strings.Contains(logText, "hidden") {
		t.Error("debug line should be filtered at info level")
	}
	if !strings.Contains(logText, "INFO - [test] copied x") {
		t.Errorf("missing info line in log file:\n%s", logText)
	}
	if !strings.Contains(logText, "WARNING - [test] could not remove a.dtb") {
		t.Errorf("missing warning line in log file:\n%s", logText)
	}

	if strings.Contains(console.String(), "copied") {
		t.Error("info should not reach the console without verbose")
	}
	if !strings.Contains(console.String(), "could not remove a.dtb") {
		t.Errorf("warning should reach the console, got %q", console.String())
	}
}

func TestVerboseConsole(t *testing.T) {
	var console bytes.Buffer
	closeFn, err := Init(Options{Level: LevelDebug, Console: &console, Verbose: true})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer closeFn()

	Debugf("[test] step %d", 3)
	if !strings.Contains(console.String(), "DEBUG: [test] step 3") {
		t.Errorf("expected debug line on console, got %q", console.String())
	}
}

func TestInitBadFile(t *testing.T) {
	closeFn, err := Init(Options{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	if err == nil {
		t.Fatal("expected error for log file in missing directory")
	}
	if closeFn == nil {
		t.Fatal("close func must never be nil")
	}
	_ = closeFn()
}

func TestFilefSkipsConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	var console bytes.Buffer

	closeFn, err := Init(Options{Level: LevelInfo, File: path, Console: &console, Verbose: true})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	Filef(LevelError, "[main] catalog file not found: %s", "consoles.json")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if console.Len() != 0 {
		t.Errorf("console should stay empty, got %q", console.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "ERROR - [main] catalog file not found: consoles.json") {
		t.Errorf("missing error line in log file:\n%s", data)
	}
}
