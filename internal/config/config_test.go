package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/battlewithbytes/dtb-selector/internal/language"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	data := "consoles_dir: /srv/consoles\nlanguage: br\nhistory: false\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConsolesDir != "/srv/consoles" {
		t.Errorf("consoles_dir = %q", cfg.ConsolesDir)
	}
	if cfg.CatalogFile != DefaultCatalogFile {
		t.Errorf("catalog_file = %q, want default", cfg.CatalogFile)
	}
	if cfg.History {
		t.Error("history should be disabled")
	}
	if cfg.Language != "br" {
		t.Errorf("language = %q", cfg.Language)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte("log_level: [oops\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateBadLogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad log_level")
	}
}

func TestValidateBadLanguage(t *testing.T) {
	cfg := Default()
	cfg.Language = "fr"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown language")
	}
}

func TestValidateLanguageModes(t *testing.T) {
	for _, mode := range []string{"", LanguageAsk, LanguageAuto, "en", "cn", "BR"} {
		cfg := Default()
		cfg.Language = mode
		if err := cfg.Validate(); err != nil {
			t.Errorf("language %q: unexpected error %v", mode, err)
		}
	}
}

func TestValidateHistoryNeedsPath(t *testing.T) {
	cfg := Default()
	cfg.HistoryDB = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty history_db")
	}
	cfg.History = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("history disabled: unexpected error %v", err)
	}
}

func TestValidateMissingCatalogFile(t *testing.T) {
	cfg := Default()
	cfg.CatalogFile = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing catalog_file")
	}
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.ConsolesDir = "/abs/consoles"
	cfg.Resolve("/opt/dtb")

	if want := filepath.Join("/opt/dtb", DefaultCatalogFile); cfg.CatalogFile != want {
		t.Errorf("catalog_file = %q, want %q", cfg.CatalogFile, want)
	}
	if cfg.ConsolesDir != "/abs/consoles" {
		t.Errorf("absolute consoles_dir changed to %q", cfg.ConsolesDir)
	}
	if want := filepath.Join("/opt/dtb", DefaultHistoryDB); cfg.HistoryDB != want {
		t.Errorf("history_db = %q, want %q", cfg.HistoryDB, want)
	}
	if cfg.LogFile != DefaultLogFile {
		t.Errorf("log_file should stay relative, got %q", cfg.LogFile)
	}
}

func TestFixedLanguage(t *testing.T) {
	cfg := Default()
	if _, ok := cfg.FixedLanguage(); ok {
		t.Error("ask mode should not fix a language")
	}
	cfg.Language = "cn"
	l, ok := cfg.FixedLanguage()
	if !ok || l != language.Chinese {
		t.Errorf("FixedLanguage = %q, %v; want cn, true", l, ok)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", DefaultConfigFile)

	cfg := Default()
	cfg.LogLevel = "debug"
	cfg.Language = LanguageAuto
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}
