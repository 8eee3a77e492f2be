package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/dtb-selector/internal/language"
	"github.com/battlewithbytes/dtb-selector/internal/logging"
	"github.com/battlewithbytes/dtb-selector/internal/ui"
)

func init() {
	rootCmd.AddCommand(languageCmd)
}

var languageCmd = &cobra.Command{
	Use:       "language [en|cn|br]",
	Short:     "Show or set the language marker",
	Long:      "Without an argument, prints the language implied by the marker files in the target directory. With one, replaces the marker without copying anything.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"en", "cn", "br"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		target, err := targetDir()
		if err != nil {
			return fmt.Errorf("resolving target directory: %w", err)
		}

		if len(args) == 0 {
			cur := language.Current(target)
			fmt.Fprintln(out, ui.Cyan.Render("Language: ")+ui.White.Render(cur.Name()))
			if d, ok := language.Detect(); ok {
				fmt.Fprintln(out, ui.Dim.Render("System locale suggests: "+d.Name()))
			}
			return nil
		}

		l, err := language.Parse(args[0])
		if err != nil {
			return err
		}
		var warnings []error
		ok := language.Apply(target, l, func(err error) {
			logging.Warnf("[language] %v", err)
			warnings = append(warnings, err)
		})
		for _, w := range warnings {
			fmt.Fprintln(out, ui.Warn(w.Error()))
		}
		if !ok {
			return fmt.Errorf("could not set language %s", l.Name())
		}
		fmt.Fprintln(out, ui.Check("Language set: "+l.Name()))
		return nil
	},
}
