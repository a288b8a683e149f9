package resolve

import (
	"context"
	"fmt"

	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/logging"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/rs/zerolog"
)

// MsgPromptFormat builds the choice prompt from the annotation's data
const MsgPromptFormat = "Where should %s open?"

// Choice is one entry offered to the user. Template is shown unresolved;
// only the chosen entry gets resolved.
type Choice struct {
	Label    string
	Template string
}

// Prompter asks the user to pick one of several choices. ok is false when
// the prompt was dismissed.
type Prompter interface {
	Choose(ctx context.Context, prompt string, choices []Choice) (index int, ok bool, err error)
}

// Opener hands a URI to the operating system
type Opener interface {
	Open(ctx context.Context, uri string) error
}

// Outcome tells what an activation did
type Outcome int

const (
	// OutcomeNone means the annotation had no destinations
	OutcomeNone Outcome = iota
	// OutcomeOpened means a URL was handed to the opener
	OutcomeOpened
	// OutcomeCancelled means the user dismissed the choice prompt
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeOpened:
		return "opened"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result reports the outcome of an activation
type Result struct {
	Outcome Outcome
	Link    types.LinkTemplate
	URL     string
}

// Activator runs the activation flow for one annotation at a time
type Activator struct {
	prompter Prompter
	opener   Opener
	logger   zerolog.Logger
}

// NewActivator creates an Activator
func NewActivator(prompter Prompter, opener Opener) *Activator {
	return &Activator{
		prompter: prompter,
		opener:   opener,
		logger:   logging.GetLogger("resolve.activator"),
	}
}

// Activate opens the destination of ann. With no links it does nothing,
// with one it opens it directly, with more it asks the user first. Opener
// failures are returned as ErrOpen without retry.
func (a *Activator) Activate(ctx context.Context, ann types.Annotation) (Result, error) {
	done := logging.LogOperationStart(a.logger, "activate")
	defer done()

	var link types.LinkTemplate
	switch len(ann.Links) {
	case 0:
		a.logger.Debug().Str("data", ann.Data).Msg("Annotation has no links")
		return Result{Outcome: OutcomeNone}, nil
	case 1:
		link = ann.Links[0]
	default:
		chosen, ok, err := a.choose(ctx, ann)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			a.logger.Debug().Str("data", ann.Data).Msg("Choice dismissed")
			return Result{Outcome: OutcomeCancelled}, nil
		}
		link = chosen
	}

	url := Resolve(link.URL, ann.Groups)
	a.logger.Info().Str("label", link.Label).Str("url", url).Msg("Opening link")

	if err := a.opener.Open(ctx, url); err != nil {
		return Result{}, errors.Wrapf(err, errors.ErrOpen, "failed to open %s", url).
			WithDetail("url", url).
			WithDetail("label", link.Label)
	}

	return Result{Outcome: OutcomeOpened, Link: link, URL: url}, nil
}

func (a *Activator) choose(ctx context.Context, ann types.Annotation) (types.LinkTemplate, bool, error) {
	choices := make([]Choice, len(ann.Links))
	for i, l := range ann.Links {
		choices[i] = Choice{Label: l.Label, Template: l.URL}
	}

	idx, ok, err := a.prompter.Choose(ctx, fmt.Sprintf(MsgPromptFormat, ann.Data), choices)
	if err != nil {
		return types.LinkTemplate{}, false, errors.Wrap(err, errors.ErrPrompt, "failed to read choice")
	}
	if !ok {
		return types.LinkTemplate{}, false, nil
	}
	if idx < 0 || idx >= len(ann.Links) {
		return types.LinkTemplate{}, false, errors.Newf(errors.ErrPrompt, "choice %d out of range", idx)
	}
	return ann.Links[idx], true, nil
}
