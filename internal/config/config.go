package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/battlewithbytes/dtb-selector/internal/language"
	"github.com/battlewithbytes/dtb-selector/internal/logging"
)

// Config is the optional settings file, dtb-selector.yml.
type Config struct {
	CatalogFile string `yaml:"catalog_file"`
	ConsolesDir string `yaml:"consoles_dir"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`
	History     bool   `yaml:"history"`
	HistoryDB   string `yaml:"history_db"`
	// Language is "ask", "auto" or a language code (en, cn, br).
	Language string `yaml:"language"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		CatalogFile: DefaultCatalogFile,
		ConsolesDir: DefaultConsolesDir,
		LogFile:     DefaultLogFile,
		LogLevel:    DefaultLogLevel,
		History:     true,
		HistoryDB:   DefaultHistoryDB,
		Language:    LanguageAsk,
	}
}

// Load reads the settings file at path on top of the defaults. A missing
// file is not an error and yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	if c.CatalogFile == "" {
		return fmt.Errorf("catalog_file is required")
	}
	if c.ConsolesDir == "" {
		return fmt.Errorf("consoles_dir is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.History && c.HistoryDB == "" {
		return fmt.Errorf("history_db is required when history is enabled")
	}

	switch c.Language {
	case "", LanguageAsk, LanguageAuto:
		// ok
	default:
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("language must be %q, %q or a language code: %w", LanguageAsk, LanguageAuto, err)
		}
	}

	return nil
}

// Resolve makes the catalog, consoles and history paths absolute against
// baseDir, normally the directory of the executable. Only the log file
// stays relative to the working directory.
func (c *Config) Resolve(baseDir string) {
	c.CatalogFile = resolve(baseDir, c.CatalogFile)
	c.ConsolesDir = resolve(baseDir, c.ConsolesDir)
	c.HistoryDB = resolve(baseDir, c.HistoryDB)
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// FixedLanguage returns the language set by the Language field, if it
// names one. "auto" resolves to the detected system language.
func (c *Config) FixedLanguage() (language.Language, bool) {
	switch c.Language {
	case LanguageAsk, "":
		return "", false
	case LanguageAuto:
		return language.Detect()
	}
	l, err := language.Parse(c.Language)
	if err != nil {
		return "", false
	}
	return l, true
}

// Save writes the config to the given path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
