package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/dtb-selector/internal/config"
	"github.com/battlewithbytes/dtb-selector/internal/ui"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing settings file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create the settings file",
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return filepath.Join(exeDir(), config.DefaultConfigFile)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the settings in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		history := "disabled"
		if cfg.History {
			history = cfg.HistoryDB
		}
		logFile := cfg.LogFile
		if logFile == "" {
			logFile = "disabled"
		}

		fmt.Fprintln(out, ui.Cyan.Render("Catalog:   ")+ui.White.Render(cfg.CatalogFile))
		fmt.Fprintln(out, ui.Cyan.Render("Consoles:  ")+ui.White.Render(cfg.ConsolesDir))
		fmt.Fprintln(out, ui.Cyan.Render("Language:  ")+ui.White.Render(cfg.Language))
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.Cyan.Render("Logging:"))
		fmt.Fprintln(out, ui.Dim.Render("  File:    ")+ui.White.Render(logFile))
		fmt.Fprintln(out, ui.Dim.Render("  Level:   ")+ui.White.Render(cfg.LogLevel))
		fmt.Fprintln(out, ui.Cyan.Render("History:   ")+ui.White.Render(history))
		fmt.Fprintln(out)

		path := configPath()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(out, ui.Dim.Render("Config file: "+path+" (not present, using defaults)"))
		} else {
			fmt.Fprintln(out, ui.Dim.Render("Config file: "+path))
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Check("Wrote "+ui.White.Render(path)))
		return nil
	},
}
