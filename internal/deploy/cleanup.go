// Package deploy removes the files left by a previous selection and copies
// a console's files into the target directory.
package deploy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/battlewithbytes/dtb-selector/internal/logging"
)

// CleanupPatterns match the artifacts a console copy leaves in the target.
var CleanupPatterns = []string{"*.dtb", "*.ini", "*.orig", "*.tony"}

// BitmapDir is the boot-logo directory shipped with some consoles.
const BitmapDir = "BMPs"

// WarnFunc receives failures that must not stop the run.
type WarnFunc func(err error)

// CleanupReport lists what Cleanup removed.
type CleanupReport struct {
	Removed []string
}

// Cleanup deletes every entry of dir matching CleanupPatterns, then the
// BMPs directory. It is best effort: failures go to warn.
func Cleanup(dir string, warn WarnFunc) *CleanupReport {
	report := &CleanupReport{}
	logging.Infof("[cleanup] cleaning %s", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		warn(fmt.Errorf("could not list %s: %w", dir, err))
		return report
	}

	// Match on names so that glob characters in dir itself are harmless.
	// Hidden entries never match, as with a shell glob.
	var matches []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		for _, pattern := range CleanupPatterns {
			if ok, _ := filepath.Match(pattern, e.Name()); ok {
				matches = append(matches, e.Name())
				break
			}
		}
	}
	sort.Strings(matches)

	for _, name := range matches {
		p := filepath.Join(dir, name)
		if err := os.Remove(p); err != nil {
			warn(fmt.Errorf("could not remove %s: %w", name, err))
			continue
		}
		logging.Infof("[cleanup] removed %s", name)
		report.Removed = append(report.Removed, name)
	}

	bmp := filepath.Join(dir, BitmapDir)
	if _, err := os.Lstat(bmp); err == nil {
		if err := os.RemoveAll(bmp); err != nil {
			warn(fmt.Errorf("could not remove %s/: %w", BitmapDir, err))
		} else {
			logging.Infof("[cleanup] removed %s/", BitmapDir)
			report.Removed = append(report.Removed, BitmapDir+"/")
		}
	}

	return report
}
