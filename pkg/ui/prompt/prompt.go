// Package prompt asks the user which destination to open when a link has
// several. On a terminal it uses a pterm interactive select; otherwise it
// falls back to a numbered list read line by line.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/resolve"
	"github.com/arthur-debert/termlinks/pkg/ui/styles"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Select is a resolve.Prompter for the terminal
type Select struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// New creates a Select reading from stdin and writing to stderr. The
// interactive select is used when both are terminals.
func New() *Select {
	return &Select{
		in:          os.Stdin,
		out:         os.Stderr,
		interactive: isTerminal(os.Stdin) && isTerminal(os.Stderr),
	}
}

// NewConsole creates a Select that always uses the numbered list
func NewConsole(in io.Reader, out io.Writer) *Select {
	return &Select{in: in, out: out}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Choose implements resolve.Prompter
func (s *Select) Choose(ctx context.Context, prompt string, choices []resolve.Choice) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if len(choices) == 0 {
		return 0, false, errors.New(errors.ErrInvalidInput, "no choices to offer")
	}
	if s.interactive {
		return s.chooseInteractive(prompt, choices)
	}
	return s.chooseConsole(prompt, choices)
}

// Options returns the entries shown for choices. Entries are numbered so
// that duplicate labels stay distinct.
func Options(choices []resolve.Choice) []string {
	options := make([]string, len(choices))
	for i, c := range choices {
		options[i] = fmt.Sprintf("%d. %s  %s", i+1, c.Label, styles.Render("URL", c.Template))
	}
	return options
}

func (s *Select) chooseInteractive(prompt string, choices []resolve.Choice) (int, bool, error) {
	options := Options(choices)

	selected, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(prompt).
		Show()
	if err != nil {
		return 0, false, errors.Wrap(err, errors.ErrPrompt, "interactive select failed")
	}

	for i, o := range options {
		if o == selected {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// chooseConsole prints a numbered list and reads one line. An empty line,
// "q" or end of input dismisses the prompt.
func (s *Select) chooseConsole(prompt string, choices []resolve.Choice) (int, bool, error) {
	_, _ = fmt.Fprintln(s.out, styles.Render("Header", prompt))
	for i, c := range choices {
		_, _ = fmt.Fprintf(s.out, "  %d. %s  %s\n", i+1, styles.Render("Label", c.Label), styles.Render("URL", c.Template))
	}
	_, _ = fmt.Fprintf(s.out, "Choice [1-%d, q to cancel]: ", len(choices))

	line, err := bufio.NewReader(s.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, false, errors.Wrap(err, errors.ErrPrompt, "failed to read user input")
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" || answer == "q" {
		return 0, false, nil
	}

	n, convErr := strconv.Atoi(answer)
	if convErr != nil || n < 1 || n > len(choices) {
		return 0, false, errors.Newf(errors.ErrPrompt, "invalid choice %q", answer).
			WithDetail("choices", len(choices))
	}
	return n - 1, true, nil
}
