package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrCancelled is returned when the user ends input with an interrupt or EOF.
var ErrCancelled = errors.New("operation cancelled by user")

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

type lineResult struct {
	text string
	err  error
}

// Prompter reads answers line by line. Lines are read on a separate
// goroutine so that a cancelled context (SIGINT) ends a pending prompt.
type Prompter struct {
	ctx   context.Context
	out   io.Writer
	lines chan lineResult

	// Clear enables clearing the screen before each menu.
	Clear bool
}

// NewPrompter starts reading lines from in. Output goes to out.
func NewPrompter(ctx context.Context, in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		ctx:   ctx,
		out:   out,
		lines: make(chan lineResult),
	}
	go p.scan(in)
	return p
}

func (p *Prompter) scan(in io.Reader) {
	defer close(p.lines)
	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			select {
			case p.lines <- lineResult{text: line}:
			case <-p.ctx.Done():
				return
			}
		}
		if err != nil {
			select {
			case p.lines <- lineResult{err: err}:
			case <-p.ctx.Done():
			}
			return
		}
	}
}

// Out returns the writer prompts are printed to.
func (p *Prompter) Out() io.Writer { return p.out }

// Printf writes formatted text to the prompter's output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the prompter's output.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// ClearScreen clears the terminal when Clear is set.
func (p *Prompter) ClearScreen() {
	if p.Clear {
		fmt.Fprint(p.out, clearScreen)
	}
}

// ReadLine prints prompt and returns the next input line with surrounding
// whitespace removed. EOF and context cancellation return ErrCancelled.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	select {
	case <-p.ctx.Done():
		fmt.Fprintln(p.out)
		return "", ErrCancelled
	case r, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			return "", ErrCancelled
		}
		if r.err != nil {
			fmt.Fprintln(p.out)
			if errors.Is(r.err, io.EOF) {
				return "", ErrCancelled
			}
			return "", fmt.Errorf("reading input: %w", r.err)
		}
		return strings.TrimSpace(r.text), nil
	}
}

// ReadInt keeps asking until the answer is an integer in [min, max].
// Empty input re-prompts silently; anything else invalid prints an error.
func (p *Prompter) ReadInt(prompt string, min, max int) (int, error) {
	for {
		answer, err := p.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		if answer == "" {
			continue
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			p.Println(Red.Render("Please enter a valid number."))
			continue
		}
		if n < min || n > max {
			p.Println(Red.Render(fmt.Sprintf("Invalid number. Choose between %d and %d.", min, max)))
			continue
		}
		return n, nil
	}
}

// Confirm asks a yes/no question. Only an affirmative answer returns true.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	answer, err := p.ReadLine(prompt + " (y/N): ")
	if err != nil {
		return false, err
	}
	return IsAffirmative(answer), nil
}

// WaitForEnter blocks until the user presses Enter.
func (p *Prompter) WaitForEnter() error {
	_, err := p.ReadLine("\nPress Enter to continue... ")
	return err
}

// IsAffirmative accepts y, yes, s and sim in any case.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}
