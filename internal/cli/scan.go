package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/logging"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/arthur-debert/termlinks/pkg/ui/render"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// maxLineSize bounds a single input line
const maxLineSize = 1024 * 1024

func newScanCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "scan [files...]",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		Example: MsgScanExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
			}

			a, err := opts.newApp()
			if err != nil {
				return err
			}

			// Rules are reloaded for every line; this first read surfaces a
			// broken config and the onboarding hint before any input
			ruleSet, err := a.store.LoadRules(cmd.Context())
			if err != nil {
				return err
			}
			if len(ruleSet) == 0 {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgNoRules, a.paths.ConfigFile())
			}

			color := false
			if out, ok := cmd.OutOrStdout().(*os.File); ok {
				color = render.UseColor(out)
			}
			s := &scanner{
				app:      a,
				renderer: render.New(f, color),
				out:      cmd.OutOrStdout(),
			}

			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, name := range args {
				if err := s.scanSource(cmd.Context(), cmd.InOrStdin(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"text", "json", "hyperlink"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

type scanner struct {
	app      *app
	renderer render.Renderer
	out      io.Writer
}

// scanSource scans the named file, "-" being stdin
func (s *scanner) scanSource(ctx context.Context, stdin io.Reader, name string) error {
	logger := logging.GetLogger("cli.scan")

	in := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrapf(err, errors.ErrNotFound, "cannot read %s", name).WithDetail("path", name)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	number, links := 0, 0
	for sc.Scan() {
		number++
		text := sc.Text()
		annotations := s.app.engine.FindLinks(text, s.loadRules(ctx, logger))
		links += len(annotations)

		if err := s.renderer.RenderLine(s.out, render.Line{
			Source:      name,
			Number:      number,
			Text:        text,
			Annotations: annotations,
		}); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "failed reading %s", name)
	}

	logger.Debug().Str("source", name).Int("lines", number).Int("links", links).Msg("Scan complete")
	return nil
}

// loadRules reads the current rule set for one line. A config that fails to
// load mid-stream leaves that line without links instead of ending the scan.
func (s *scanner) loadRules(ctx context.Context, logger zerolog.Logger) []types.Rule {
	ruleSet, err := s.app.store.LoadRules(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot reload link rules")
		return nil
	}
	return ruleSet
}
