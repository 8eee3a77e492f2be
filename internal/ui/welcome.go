package ui

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// Welcome shows the instructions as a huh form and asks whether to go on.
// It is used instead of the plain text intro when stdin is a terminal.
func Welcome(in io.Reader, out io.Writer) error {
	start := true

	var desc strings.Builder
	for _, line := range Instructions {
		desc.WriteString("* " + line + "\n")
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("DTB Selector").
				Description("Welcome! Pick your console and its files are copied into the current directory.\n\n"+desc.String()),
			huh.NewConfirm().
				Title("Start?").
				Affirmative("Continue").
				Negative("Quit").
				Value(&start),
		),
	).WithTheme(huh.ThemeCatppuccin()).WithInput(in).WithOutput(out)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}
	if !start {
		return ErrCancelled
	}
	return nil
}
