package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/dtb-selector/internal/catalog"
	"github.com/battlewithbytes/dtb-selector/internal/config"
	"github.com/battlewithbytes/dtb-selector/internal/history"
	"github.com/battlewithbytes/dtb-selector/internal/language"
	"github.com/battlewithbytes/dtb-selector/internal/logging"
	"github.com/battlewithbytes/dtb-selector/internal/selector"
	"github.com/battlewithbytes/dtb-selector/internal/ui"
	"github.com/battlewithbytes/dtb-selector/internal/version"
)

var (
	flagConfig      string
	flagCatalog     string
	flagConsolesDir string
	flagTarget      string
	flagLang        string
	flagLogLevel    string
	flagVerbose     bool
	flagNoHistory   bool
)

// Settings in effect for the current command, set by setup.
var (
	cfg      *config.Config
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:               "dtb-selector",
	Short:             "DTB Selector — device configuration for R36 handhelds",
	Version:           version.Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.Long = ui.Green.Render("DTB Selector") + " " + ui.Cyan.Render(version.Version) + "\n" +
		ui.Dim.Render("Pick your console from the catalog and copy its device tree, INI and bitmap files into the current directory.")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "settings file (default: "+config.DefaultConfigFile+" next to the executable)")
	pf.StringVar(&flagCatalog, "catalog", "", "console catalog file")
	pf.StringVar(&flagConsolesDir, "consoles-dir", "", "directory holding the console source folders")
	pf.StringVar(&flagTarget, "target", "", "directory to write files to (default: working directory)")
	pf.StringVar(&flagLang, "lang", "", "language to apply without asking: en, cn or br")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warning or error")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "print log lines at the selected level to stderr")
	pf.BoolVar(&flagNoHistory, "no-history", false, "do not record runs in the history database")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("[main] unexpected error: %v", r)
			fmt.Fprintln(os.Stderr, ui.Red.Render(fmt.Sprintf("Unexpected error: %v", r)))
			closeLog()
			code = 1
		}
	}()
	defer func() { closeLog() }()
	return exitCode(rootCmd.ExecuteContext(ctx), os.Stdout, os.Stderr)
}

// exitCode reports err to the user and maps it to the process exit code.
// Errors shown here go to the log file only, so stderr carries them once.
func exitCode(err error, stdout, stderr io.Writer) int {
	var cfgErr *catalog.ConfigError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ui.ErrCancelled):
		logging.Infof("[main] cancelled")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, ui.Dim.Render("Operation cancelled. Goodbye!"))
		return 0
	case errors.As(err, &cfgErr):
		logging.Filef(logging.LevelError, "[main] %v", cfgErr)
		fmt.Fprintln(stderr, ui.Red.Render("Error: "+cfgErr.Error()))
		fmt.Fprintln(stderr, ui.Yellow.Render(cfgErr.Hint()))
		return 1
	default:
		logging.Filef(logging.LevelError, "[main] %v", err)
		fmt.Fprintln(stderr, ui.Red.Render("Error: "+err.Error()))
		return 1
	}
}

// setup loads the settings file, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	base := exeDir()
	path := flagConfig
	if path == "" {
		path = filepath.Join(base, config.DefaultConfigFile)
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Resolve(base)

	if flagCatalog != "" {
		c.CatalogFile = flagCatalog
	}
	if flagConsolesDir != "" {
		c.ConsolesDir = flagConsolesDir
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	if flagLang != "" {
		if _, err := language.Parse(flagLang); err != nil {
			return fmt.Errorf("--lang: %w", err)
		}
		c.Language = flagLang
	}
	if flagNoHistory {
		c.History = false
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	level, _ := logging.ParseLevel(cfg.LogLevel)
	closeLog, err = logging.Init(logging.Options{
		Level:   level,
		File:    cfg.LogFile,
		Console: os.Stderr,
		Verbose: flagVerbose,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Warn(err.Error()))
	}
	logging.Debugf("[main] settings %s, catalog %s, consoles %s", path, cfg.CatalogFile, cfg.ConsolesDir)
	return nil
}

// exeDir returns the directory of the running executable, or "." when it
// cannot be determined.
func exeDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func targetDir() (string, error) {
	if flagTarget != "" {
		return filepath.Abs(flagTarget)
	}
	return os.Getwd()
}

// openHistory returns the history recorder, or nil when history is
// disabled. The database is only created once a run is recorded.
func openHistory() *history.Lazy {
	if !cfg.History {
		return nil
	}
	return &history.Lazy{Path: cfg.HistoryDB}
}

// newWorkflow builds the selection workflow from the settings.
func newWorkflow(cat *catalog.Catalog, store *history.Lazy) (*selector.Workflow, error) {
	target, err := targetDir()
	if err != nil {
		return nil, fmt.Errorf("resolving target directory: %w", err)
	}
	wf := &selector.Workflow{
		Catalog:     cat,
		ConsolesDir: cfg.ConsolesDir,
		TargetDir:   target,
	}
	if store != nil {
		wf.History = store
	}
	if l, ok := cfg.FixedLanguage(); ok {
		wf.Language = &l
	} else if d, ok := language.Detect(); ok {
		wf.Suggested = d
	}
	return wf, nil
}

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	logging.Infof("[catalog] loaded %d consoles, %d brands from %s", cat.ConsoleCount(), len(cat.Brands()), cfg.CatalogFile)
	return cat, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	store := openHistory()
	if store != nil {
		defer store.Close()
	}
	wf, err := newWorkflow(cat, store)
	if err != nil {
		return err
	}

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	tty := ui.IsTerminalStream(in) && ui.IsTerminalStream(out)
	if tty {
		// The form owns the terminal, so it runs before the prompter
		// starts reading stdin.
		if err := ui.Welcome(in, out); err != nil {
			return err
		}
		wf.SkipIntro = true
	}

	p := ui.NewPrompter(cmd.Context(), in, out)
	p.Clear = tty
	_, err = wf.Run(p)
	return err
}
