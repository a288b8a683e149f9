// Package browser hands URLs to the operating system's default handler, or
// to a user-configured command.
package browser

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/logging"
	"github.com/rs/zerolog"
)

// Opener runs a command with the URL as its last argument
type Opener struct {
	command []string
	logger  zerolog.Logger
}

// New creates an Opener. An empty command selects the platform default.
// The command is split on whitespace, so "firefox --new-tab" works.
func New(command string) *Opener {
	args := strings.Fields(command)
	if len(args) == 0 {
		args = DefaultCommand(runtime.GOOS)
	}
	return &Opener{
		command: args,
		logger:  logging.GetLogger("browser"),
	}
}

// DefaultCommand returns the URL handler command for goos
func DefaultCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// Command returns the command line used to open uri
func (o *Opener) Command(uri string) []string {
	args := make([]string, 0, len(o.command)+1)
	args = append(args, o.command...)
	return append(args, uri)
}

// Open runs the handler and waits for it to exit
func (o *Opener) Open(ctx context.Context, uri string) error {
	if uri == "" {
		return errors.New(errors.ErrInvalidInput, "nothing to open")
	}

	args := o.Command(uri)
	o.logger.Debug().Strs("command", args).Msg("Running URL handler")

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, errors.ErrOpen, "%s failed", args[0]).
			WithDetail("command", strings.Join(args, " ")).
			WithDetail("output", strings.TrimSpace(string(out)))
	}
	return nil
}
