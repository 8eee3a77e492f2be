package ui

import (
	"fmt"
	"io"
	"strings"
)

// ToolURL is the console identification tool users are pointed to.
const ToolURL = "https://lcdyk0517.github.io/dtbTools.html"

var headerLines = []string{
	"DTB SELECTOR TOOL - R36 Device Configuration",
	"Original creator: LCDYK - Modified by: Leonardo Bruno",
}

// Instructions are shown on the welcome screen.
var Instructions = []string{
	"Support only for listed consoles",
	"DO NOT USE original DTB files!",
	"Use the identification tool: " + ToolURL,
}

// RenderHeader writes the program banner.
func RenderHeader(w io.Writer) {
	fmt.Fprintln(w, Banner.Render(Title.Render(headerLines[0])+"\n"+Dim.Render(headerLines[1])))
}

// RenderWelcome writes the banner followed by the usage instructions.
func RenderWelcome(w io.Writer) {
	RenderHeader(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, Title.Render("WELCOME TO DTB SELECTOR"))
	fmt.Fprintln(w, Dim.Render(strings.Repeat("=", ruleWidth)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, White.Render("IMPORTANT INSTRUCTIONS"))
	for _, line := range Instructions {
		fmt.Fprintf(w, "  %s %s\n", Yellow.Render("*"), line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, Dim.Render("Tip: type 'q' to exit"))
}

// Section writes a titled rule, used for result screens.
func Section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, Title.Render(title))
	fmt.Fprintln(w, Dim.Render(strings.Repeat("=", ruleWidth)))
}

// Check, Cross and Warn prefix result lines.
func Check(msg string) string { return Green.Render("✓") + " " + msg }
func Cross(msg string) string { return Red.Render("✗") + " " + msg }
func Warn(msg string) string  { return Yellow.Render("!") + " " + msg }
