package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/termlinks/pkg/browser"
	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/resolve"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/arthur-debert/termlinks/pkg/ui/prompt"
	"github.com/spf13/cobra"
)

type openOptions struct {
	index      int
	column     int
	annotation string
	print      bool
	choose     int
}

func newOpenCmd(opts *globalOptions) *cobra.Command {
	o := &openOptions{}

	cmd := &cobra.Command{
		Use:     "open [line]",
		Short:   MsgOpenShort,
		Long:    MsgOpenLong,
		Example: MsgOpenExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}

			ann, err := o.annotationFor(cmd.Context(), a, args)
			if err != nil {
				return err
			}

			var opener resolve.Opener = browser.New(a.config.Browser.Command)
			if o.print {
				opener = printOpener{w: cmd.OutOrStdout()}
			}
			var prompter resolve.Prompter = prompt.New()
			if o.choose > 0 {
				prompter = fixedChoice(o.choose - 1)
			}

			result, err := resolve.NewActivator(prompter, opener).Activate(cmd.Context(), ann)
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			switch result.Outcome {
			case resolve.OutcomeNone:
				_, _ = fmt.Fprintln(errOut, MsgNoDestinations)
			case resolve.OutcomeCancelled:
				_, _ = fmt.Fprintln(errOut, MsgChoiceCancelled)
			case resolve.OutcomeOpened:
				if !o.print {
					_, _ = fmt.Fprintf(errOut, MsgOpened, result.URL, result.Link.Label)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&o.index, "index", "n", 1, MsgFlagIndex)
	cmd.Flags().IntVarP(&o.column, "column", "c", 0, MsgFlagColumn)
	cmd.Flags().StringVar(&o.annotation, "annotation", "", MsgFlagAnnotation)
	cmd.Flags().BoolVarP(&o.print, "print", "p", false, MsgFlagPrint)
	cmd.Flags().IntVar(&o.choose, "choose", 0, MsgFlagChoose)
	cmd.MarkFlagsMutuallyExclusive("index", "column")
	cmd.MarkFlagsMutuallyExclusive("annotation", "index")
	cmd.MarkFlagsMutuallyExclusive("annotation", "column")

	return cmd
}

// annotationFor decodes --annotation or finds the selected link of the line
func (o *openOptions) annotationFor(ctx context.Context, a *app, args []string) (types.Annotation, error) {
	if o.annotation != "" {
		var ann types.Annotation
		if err := json.Unmarshal([]byte(o.annotation), &ann); err != nil {
			return types.Annotation{}, errors.Wrap(err, errors.ErrInvalidInput, "invalid annotation")
		}
		return ann, nil
	}
	if len(args) == 0 {
		return types.Annotation{}, errors.New(errors.ErrInvalidInput, MsgErrNoInput)
	}

	ruleSet, err := a.store.LoadRules(ctx)
	if err != nil {
		return types.Annotation{}, err
	}
	annotations := a.engine.FindLinks(args[0], ruleSet)
	if len(annotations) == 0 {
		return types.Annotation{}, errors.New(errors.ErrNotFound, MsgNoLinks)
	}

	if o.column > 0 {
		col := o.column - 1
		for _, ann := range annotations {
			if ann.Contains(col) {
				return ann, nil
			}
		}
		return types.Annotation{}, errors.Newf(errors.ErrNotFound, MsgErrNoLinkAt, o.column)
	}

	if o.index < 1 || o.index > len(annotations) {
		return types.Annotation{}, errors.Newf(errors.ErrNotFound, MsgErrNoLinkIndex, o.index, len(annotations))
	}
	return annotations[o.index-1], nil
}

// printOpener writes URLs instead of opening them
type printOpener struct {
	w io.Writer
}

func (p printOpener) Open(_ context.Context, uri string) error {
	_, err := fmt.Fprintln(p.w, uri)
	return err
}

// fixedChoice answers every prompt with the same index
type fixedChoice int

func (f fixedChoice) Choose(_ context.Context, _ string, choices []resolve.Choice) (int, bool, error) {
	if int(f) >= len(choices) {
		return 0, false, errors.Newf(errors.ErrInvalidInput, "--choose %d but only %d destinations", int(f)+1, len(choices))
	}
	return int(f), true, nil
}
