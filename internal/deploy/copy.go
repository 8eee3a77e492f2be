package deploy

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/battlewithbytes/dtb-selector/internal/catalog"
	"github.com/battlewithbytes/dtb-selector/internal/logging"
)

// DefaultConsolesDir is the source tree looked up next to the executable.
const DefaultConsolesDir = "consoles"

// ErrSourceNotFound is returned when a console's primary directory is missing.
var ErrSourceNotFound = errors.New("source directory not found")

// CopyReport describes a finished console copy.
type CopyReport struct {
	Primary string
	Extras  []string
	Skipped []string
	Files   int
}

// CopyConsole merges baseDir/<real_name> into dest, then every extra source
// directory that exists. Only a failure of the primary copy is an error;
// extra sources that are missing or fail to copy are reported to warn.
// Nothing already written is rolled back.
func CopyConsole(baseDir, dest string, con catalog.Console, warn WarnFunc) (*CopyReport, error) {
	report := &CopyReport{Primary: con.RealName}
	logging.Infof("[copy] starting copy: %s", con.Label())

	if con.RealName == "" {
		return report, fmt.Errorf("console %q has no real_name: %w", con.Label(), ErrSourceNotFound)
	}
	src := filepath.Join(baseDir, con.RealName)
	if !isDir(src) {
		logging.Errorf("[copy] directory not found: %s", src)
		return report, fmt.Errorf("%s: %w", src, ErrSourceNotFound)
	}

	n, err := CopyTree(src, dest)
	report.Files += n
	if err != nil {
		return report, fmt.Errorf("copying %s: %w", con.RealName, err)
	}
	logging.Infof("[copy] copied console %s (%d files)", con.RealName, n)

	for _, extra := range con.ExtraSources {
		esrc := filepath.Join(baseDir, extra)
		if extra == "" || !isDir(esrc) {
			warn(fmt.Errorf("extra resource not found: %s", extra))
			report.Skipped = append(report.Skipped, extra)
			continue
		}
		n, err := CopyTree(esrc, dest)
		report.Files += n
		if err != nil {
			warn(fmt.Errorf("failed to copy %s: %w", extra, err))
			report.Skipped = append(report.Skipped, extra)
			continue
		}
		logging.Infof("[copy] copied extra resource %s (%d files)", extra, n)
		report.Extras = append(report.Extras, extra)
	}

	return report, nil
}

// CopyTree copies the contents of src into dst, creating directories as
// needed and overwriting files that already exist. Symlinks are followed.
// It returns the number of files written.
func CopyTree(src, dst string) (int, error) {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dst, err)
	}

	files := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if d.Type()&fs.ModeSymlink != 0 {
				n, err := CopyTree(path, target)
				files += n
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm()|0700)
		}
		if !info.Mode().IsRegular() {
			logging.Debugf("[copy] skipping special file %s", path)
			return nil
		}
		if err := copyFile(path, target, info.Mode().Perm()); err != nil {
			return err
		}
		files++
		return nil
	})
	return files, err
}

// copyFile copies src to dst with the given permissions, replacing dst.
func copyFile(src, dst string, perm fs.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s failed: %w", filepath.Base(src), err)
	}
	return os.Chmod(dst, perm)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
