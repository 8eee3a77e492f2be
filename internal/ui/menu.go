package ui

import (
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 60

// Menu is a numbered list of options with a reserved 0 entry.
type Menu struct {
	Title string
	Items []string
	// ZeroLabel is the text of option 0, e.g. "Exit" or "Back".
	ZeroLabel string
}

// RenderMenu writes the menu title, its numbered items and the 0 entry.
func RenderMenu(w io.Writer, m Menu) {
	zero := m.ZeroLabel
	if zero == "" {
		zero = "Exit"
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, Title.Render(m.Title))
	fmt.Fprintln(w, Dim.Render(strings.Repeat("=", ruleWidth)))
	for i, item := range m.Items {
		fmt.Fprintf(w, "  %s %s\n", Cyan.Render(fmt.Sprintf("%d.", i+1)), item)
	}
	fmt.Fprintf(w, "  %s %s\n", Dim.Render("0."), Dim.Render(zero))
	fmt.Fprintln(w)
}

// Choose shows the header and the menu, then returns the picked option:
// 0 for exit/back, otherwise 1..len(m.Items).
func (p *Prompter) Choose(m Menu) (int, error) {
	p.ClearScreen()
	RenderHeader(p.out)
	RenderMenu(p.out, m)
	return p.ReadInt("Enter choice: ", 0, len(m.Items))
}
