package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsTerminalRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
	if IsTerminal(nil) {
		t.Error("nil is not a terminal")
	}
}

func TestIsTerminalStream(t *testing.T) {
	if IsTerminalStream(strings.NewReader("")) {
		t.Error("strings.Reader is not a terminal")
	}
	if IsTerminalStream(&bytes.Buffer{}) {
		t.Error("bytes.Buffer is not a terminal")
	}
	var nilFile *os.File
	if IsTerminalStream(nilFile) {
		t.Error("nil *os.File is not a terminal")
	}
}
