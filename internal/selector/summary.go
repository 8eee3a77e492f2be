package selector

import (
	"fmt"
	"io"

	"github.com/battlewithbytes/dtb-selector/internal/ui"
)

// ProjectURL is where users report problems.
const ProjectURL = "https://github.com/souza-lb/dtb-selector"

// RenderSummary writes the completion screen for res.
func RenderSummary(w io.Writer, res *Result) {
	ui.RenderHeader(w)
	ui.Section(w, "Operation Completed!")
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Check("Configuration applied successfully!"))
	fmt.Fprintf(w, "Console: %s\n", res.Selection.Console.Label())
	fmt.Fprintf(w, "Language: %s\n", languageLine(res))
	if res.Copy != nil {
		fmt.Fprintf(w, "Files copied: %d\n", res.Copy.Files)
		for _, extra := range res.Copy.Extras {
			fmt.Fprintf(w, "  + %s\n", extra)
		}
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Yellow.Render("WARNINGS"))
		for _, msg := range res.Warnings {
			fmt.Fprintf(w, "  %s\n", ui.Warn(msg))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.White.Render("NEXT STEPS"))
	fmt.Fprintln(w, "  * Boot your device with the new configuration")
	fmt.Fprintln(w, "  * Report any issues encountered")
	fmt.Fprintf(w, "    Github: %s\n", ProjectURL)
}

func languageLine(res *Result) string {
	switch {
	case !res.LanguageKept:
		return res.Language.Name()
	case res.Language.Marker() == "":
		return res.Language.Name() + " (default)"
	default:
		return res.Language.Name() + " (kept)"
	}
}
