// Package language manages the marker files that tell the firmware which
// language to boot with. No marker means English; at most one marker is
// present after Apply.
package language

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeandeaual/go-locale"

	"github.com/battlewithbytes/dtb-selector/internal/logging"
)

// Language is one of the supported language codes.
type Language string

const (
	English    Language = "en"
	Chinese    Language = "cn"
	Portuguese Language = "br"
)

// All lists the supported languages in menu order.
var All = []Language{English, Chinese, Portuguese}

// Parse converts a language code to a Language.
func Parse(code string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case English:
		return English, nil
	case Chinese:
		return Chinese, nil
	case Portuguese:
		return Portuguese, nil
	}
	return "", fmt.Errorf("unknown language %q (want en, cn or br)", code)
}

// Name returns the human-readable language name.
func (l Language) Name() string {
	switch l {
	case English:
		return "English"
	case Chinese:
		return "Chinese"
	case Portuguese:
		return "Portuguese (Brazil)"
	}
	return string(l)
}

// Marker returns the marker file name, or "" for English.
func (l Language) Marker() string {
	switch l {
	case Chinese:
		return ".cn"
	case Portuguese:
		return ".br"
	}
	return ""
}

// Markers returns every known marker file name.
func Markers() []string {
	var out []string
	for _, l := range All {
		if m := l.Marker(); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// Apply removes all known markers from dir and then creates the marker of
// lang, if it has one. Failures go to warn and never stop the caller.
// It reports whether the requested state was reached.
func Apply(dir string, lang Language, warn func(error)) bool {
	ok := true
	for _, m := range Markers() {
		p := filepath.Join(dir, m)
		if _, err := os.Lstat(p); err != nil {
			continue
		}
		if err := os.Remove(p); err != nil {
			ok = false
			warn(fmt.Errorf("could not remove %s: %w", m, err))
			continue
		}
		logging.Infof("[language] removed %s", m)
	}

	marker := lang.Marker()
	if marker == "" {
		logging.Infof("[language] set %s (default, no marker)", lang.Name())
		return ok
	}
	if err := os.WriteFile(filepath.Join(dir, marker), nil, 0644); err != nil {
		warn(fmt.Errorf("could not create %s: %w", marker, err))
		return false
	}
	logging.Infof("[language] set %s (%s)", lang.Name(), marker)
	return ok
}

// Current returns the language implied by the markers in dir.
func Current(dir string) Language {
	for _, l := range All {
		m := l.Marker()
		if m == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return l
		} else if !errors.Is(err, fs.ErrNotExist) {
			logging.Debugf("[language] stat %s: %v", m, err)
		}
	}
	return English
}

// FromLocale maps a locale such as "pt-BR" or "zh_CN.UTF-8" to a
// supported language. Anything unrecognised is English.
func FromLocale(loc string) Language {
	loc = strings.ToLower(loc)
	switch {
	case strings.HasPrefix(loc, "zh"):
		return Chinese
	case strings.HasPrefix(loc, "pt"):
		return Portuguese
	}
	return English
}

// Detect returns the language of the system locale. ok is false when the
// locale cannot be determined.
func Detect() (Language, bool) {
	loc, err := locale.GetLocale()
	if err != nil || loc == "" {
		return English, false
	}
	return FromLocale(loc), true
}
