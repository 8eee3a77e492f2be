// Package logging writes leveled "[tag] message" lines to the console and,
// optionally, to a log file in the working directory.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// DefaultFile is the log file written next to the copied files.
const DefaultFile = "dtb_selector.log"

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warning or error)", s)
}

// Options configures Init.
type Options struct {
	// Level is the minimum level written to the log file.
	Level Level
	// File is the log file path. Empty disables file logging.
	File string
	// Console receives warnings and errors, and everything at or above
	// Level when Verbose is set. Nil means os.Stderr.
	Console io.Writer
	Verbose bool
}

var (
	mu       sync.Mutex
	fileLog  *log.Logger
	fileOut  *os.File
	consLog  = log.New(os.Stderr, "", 0)
	minLevel = LevelInfo
	verbose  bool
)

// Init configures the package loggers. The returned function closes the
// log file and must be called before exit.
func Init(opts Options) (func() error, error) {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consLog = log.New(console, "", 0)
	minLevel = opts.Level
	verbose = opts.Verbose

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return func() error { return nil }, fmt.Errorf("opening log file: %w", err)
		}
		fileOut = f
		fileLog = log.New(f, "", log.LstdFlags)
	}

	return func() error {
		mu.Lock()
		defer mu.Unlock()
		return closeFileLocked()
	}, nil
}

func closeFileLocked() error {
	var err error
	if fileOut != nil {
		err = fileOut.Close()
	}
	fileOut = nil
	fileLog = nil
	return err
}

func output(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	mu.Lock()
	defer mu.Unlock()

	if level < minLevel {
		return
	}
	if fileLog != nil {
		fileLog.Printf("%s - %s", level, msg)
	}
	if level >= LevelWarn || verbose {
		consLog.Printf("%s: %s", level, msg)
	}
}

// Filef writes to the log file only. It is used for messages the caller
// already shows the user in another form.
func Filef(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	mu.Lock()
	defer mu.Unlock()

	if level >= minLevel && fileLog != nil {
		fileLog.Printf("%s - %s", level, msg)
	}
}

func Debugf(format string, args ...any) { output(LevelDebug, format, args...) }
func Infof(format string, args ...any)  { output(LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { output(LevelWarn, format, args...) }
func Errorf(format string, args ...any) { output(LevelError, format, args...) }
