package selector

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/battlewithbytes/dtb-selector/internal/catalog"
	"github.com/battlewithbytes/dtb-selector/internal/deploy"
	"github.com/battlewithbytes/dtb-selector/internal/history"
	"github.com/battlewithbytes/dtb-selector/internal/language"
	"github.com/battlewithbytes/dtb-selector/internal/logging"
	"github.com/battlewithbytes/dtb-selector/internal/ui"
)

// Recorder stores the outcome of a run.
type Recorder interface {
	Record(r *history.Run) error
}

// Selection is what the menus produced.
type Selection struct {
	Brand   string
	Console catalog.Console
	// Language is nil when the current marker should be kept.
	Language *language.Language
}

// Result describes a finished run.
type Result struct {
	Selection Selection
	Cleanup   *deploy.CleanupReport
	Copy      *deploy.CopyReport
	// Language is the language in effect after the run. LanguageKept is
	// set when no language was applied and the existing marker stayed.
	Language     language.Language
	LanguageKept bool
	Warnings     []string
}

// Workflow drives the selection menus and the apply stages.
type Workflow struct {
	Catalog     *catalog.Catalog
	ConsolesDir string
	TargetDir   string

	// Language skips the language menu when set.
	Language *language.Language
	// Suggested is tagged "(detected)" in the language menu. Empty for none.
	Suggested language.Language

	// SkipIntro is set when the caller already showed a welcome screen.
	SkipIntro bool

	// History is optional.
	History Recorder
}

// Run executes the interactive flow: intro, brand menu, console menu,
// confirmation, cleanup, copy, language menu, language tagging and the
// summary. Choosing exit, declining the confirmation or ending input
// returns ui.ErrCancelled with the target directory untouched.
func (w *Workflow) Run(p *ui.Prompter) (*Result, error) {
	if !w.SkipIntro {
		if err := w.intro(p); err != nil {
			return nil, err
		}
	}

	sel, err := w.choose(p)
	if err != nil {
		return nil, err
	}

	p.Printf("\nConsole selected: %s\n", ui.Title.Render(sel.Console.Label()))
	ok, err := p.Confirm("Continue with copy?")
	if err != nil {
		return nil, err
	}
	if !ok {
		logging.Infof("[selector] copy declined for %s", sel.Console.Label())
		return nil, ui.ErrCancelled
	}

	res, err := w.deploy(sel, p.Out())
	if err != nil {
		return res, err
	}

	if sel.Language == nil {
		if w.Language != nil {
			l := *w.Language
			sel.Language = &l
		} else {
			l, err := w.chooseLanguage(p)
			switch {
			case errors.Is(err, ui.ErrCancelled):
				// Files are in place already; finish with the current marker.
				logging.Warnf("[selector] language menu cancelled, keeping current setting")
			case err != nil:
				return res, err
			}
			sel.Language = l
		}
		res.Selection.Language = sel.Language
	}

	w.finish(res)

	p.ClearScreen()
	RenderSummary(p.Out(), res)
	if err := p.WaitForEnter(); err != nil && !errors.Is(err, ui.ErrCancelled) {
		return res, err
	}
	return res, nil
}

// Apply runs cleanup, copy and language tagging for sel without any
// prompt. Progress goes to out.
func (w *Workflow) Apply(sel Selection, out io.Writer) (*Result, error) {
	if sel.Language == nil && w.Language != nil {
		l := *w.Language
		sel.Language = &l
	}
	res, err := w.deploy(sel, out)
	if err != nil {
		return res, err
	}
	w.finish(res)
	return res, nil
}

func (w *Workflow) intro(p *ui.Prompter) error {
	p.ClearScreen()
	ui.RenderWelcome(p.Out())
	answer, err := p.ReadLine("\nPress Enter to continue: ")
	if err != nil {
		return err
	}
	if strings.EqualFold(answer, "q") {
		return ui.ErrCancelled
	}
	return nil
}

// choose loops over the brand and console menus until a console is
// picked. 0 at the brand menu cancels; 0 at the console menu, or a brand
// without consoles, returns to the brand menu.
func (w *Workflow) choose(p *ui.Prompter) (Selection, error) {
	brands := w.Catalog.Brands()
	for {
		n, err := p.Choose(ui.Menu{
			Title:     "SELECT A BRAND",
			Items:     brands,
			ZeroLabel: "Exit",
		})
		if err != nil {
			return Selection{}, err
		}
		if n == 0 {
			logging.Infof("[selector] exit at brand menu")
			return Selection{}, ui.ErrCancelled
		}
		brand := brands[n-1]
		logging.Debugf("[selector] brand %s", brand)

		choices := w.Catalog.ConsolesForBrand(brand)
		if len(choices) == 0 {
			p.Println(ui.Yellow.Render("No consoles found for: " + brand))
			if err := p.WaitForEnter(); err != nil {
				return Selection{}, err
			}
			continue
		}

		items := make([]string, len(choices))
		for i, ch := range choices {
			items[i] = ch.DisplayName
		}
		n, err = p.Choose(ui.Menu{
			Title:     brand + " Consoles",
			Items:     items,
			ZeroLabel: "Back",
		})
		if err != nil {
			return Selection{}, err
		}
		if n == 0 {
			continue
		}

		con := choices[n-1].Selected()
		logging.Infof("[selector] selected %s (%s) from %s", con.Label(), con.RealName, brand)
		return Selection{Brand: brand, Console: con}, nil
	}
}

// chooseLanguage shows the language menu. A nil language means keep the
// current marker.
func (w *Workflow) chooseLanguage(p *ui.Prompter) (*language.Language, error) {
	items := make([]string, 0, len(language.All)+1)
	for _, l := range language.All {
		label := l.Name()
		if l == w.Suggested {
			label += ui.Dim.Render(" (detected)")
		}
		items = append(items, label)
	}
	current := language.Current(w.TargetDir)
	items = append(items, fmt.Sprintf("Keep current setting (%s)", current.Name()))

	n, err := p.Choose(ui.Menu{
		Title:     "Language Selection",
		Items:     items,
		ZeroLabel: "Keep current setting",
	})
	if err != nil {
		return nil, err
	}
	if n == 0 || n > len(language.All) {
		return nil, nil
	}
	l := language.All[n-1]
	return &l, nil
}

// deploy runs the cleanup and copy stages. A copy failure is recorded
// before it is returned.
func (w *Workflow) deploy(sel Selection, out io.Writer) (*Result, error) {
	res := &Result{Selection: sel}
	warn := func(err error) {
		logging.Warnf("[selector] %v", err)
		res.Warnings = append(res.Warnings, err.Error())
	}

	fmt.Fprintln(out, ui.Dim.Render("Cleaning destination directory..."))
	res.Cleanup = deploy.Cleanup(w.TargetDir, warn)

	fmt.Fprintf(out, "%s %s\n", ui.Dim.Render("Copying console:"), sel.Console.RealName)
	report, err := deploy.CopyConsole(w.ConsolesDir, w.TargetDir, sel.Console, warn)
	res.Copy = report
	if err != nil {
		fmt.Fprintln(out, ui.Cross("Error during file copy."))
		w.record(res, err)
		return res, err
	}
	for _, extra := range report.Extras {
		fmt.Fprintf(out, "   %s\n", extra)
	}
	return res, nil
}

// finish applies the selected language, or reports the kept one, and
// records the run.
func (w *Workflow) finish(res *Result) {
	warn := func(err error) {
		logging.Warnf("[selector] %v", err)
		res.Warnings = append(res.Warnings, err.Error())
	}

	if l := res.Selection.Language; l != nil {
		language.Apply(w.TargetDir, *l, warn)
		res.Language = *l
	} else {
		res.Language = language.Current(w.TargetDir)
		res.LanguageKept = true
		logging.Infof("[language] kept %s", res.Language.Name())
	}
	w.record(res, nil)
}

func (w *Workflow) record(res *Result, runErr error) {
	if w.History == nil {
		return
	}
	con := res.Selection.Console
	run := &history.Run{
		Console:     con.RealName,
		DisplayName: con.Label(),
		Brand:       res.Selection.Brand,
		Language:    string(res.Language),
		Target:      w.TargetDir,
		Status:      history.StatusApplied,
		Warnings:    res.Warnings,
	}
	if res.Copy != nil {
		run.Files = res.Copy.Files
		run.Extras = res.Copy.Extras
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		run.Error = runErr.Error()
	}
	if err := w.History.Record(run); err != nil {
		logging.Warnf("[history] could not record run: %v", err)
	}
}
