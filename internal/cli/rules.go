package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/matcher"
	"github.com/arthur-debert/termlinks/pkg/rules"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/arthur-debert/termlinks/pkg/ui/styles"
	"github.com/spf13/cobra"
)

func newRulesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		GroupID: "core",
	}

	cmd.AddCommand(newRulesListCmd(opts))
	cmd.AddCommand(newRulesAddCmd(opts))
	cmd.AddCommand(newRulesCheckCmd(opts))
	cmd.AddCommand(newRulesWatchCmd(opts))

	return cmd
}

func newRulesListCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgRulesListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			ruleSet, err := a.store.LoadRules(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(ruleSet)
			}

			if len(ruleSet) == 0 {
				_, _ = fmt.Fprintf(out, MsgNoRules, a.paths.ConfigFile())
				return nil
			}
			for i, r := range ruleSet {
				_, _ = fmt.Fprintf(out, MsgRuleItem, i+1, r.Pattern)
				if r.HasTooltip() {
					_, _ = fmt.Fprintf(out, MsgRuleTooltip, r.Tooltip)
				}
				for _, l := range r.Links {
					_, _ = fmt.Fprintf(out, MsgRuleLink, l.Label, l.URL)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	return cmd
}

func newRulesAddCmd(opts *globalOptions) *cobra.Command {
	var (
		pattern string
		tooltip string
		links   []string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   MsgRulesAddShort,
		Long:    MsgRulesAddLong,
		Example: MsgRulesAddExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}

			rule := types.Rule{Pattern: pattern, Tooltip: tooltip}
			for _, spec := range links {
				link, err := parseLink(spec)
				if err != nil {
					return err
				}
				rule.Links = append(rule.Links, link)
			}
			if _, err := matcher.Compile(rule.Pattern, a.config.Engine.MatchTimeout); err != nil {
				return err
			}

			ruleSet, err := a.store.LoadRules(cmd.Context())
			if err != nil {
				return err
			}
			ruleSet = append(ruleSet, rule)
			if err := a.store.SaveRules(cmd.Context(), ruleSet); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgRuleAdded, len(ruleSet), a.store.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", DefaultPattern, MsgFlagPattern)
	cmd.Flags().StringVar(&tooltip, "tooltip", "", MsgFlagTooltip)
	cmd.Flags().StringArrayVarP(&links, "link", "l", nil, MsgFlagLink)
	return cmd
}

// parseLink parses LABEL=URL. The label may be empty but the URL may not.
func parseLink(spec string) (types.LinkTemplate, error) {
	label, url, ok := strings.Cut(spec, "=")
	if !ok || strings.TrimSpace(url) == "" {
		return types.LinkTemplate{}, errors.Newf(errors.ErrInvalidInput, MsgErrLinkFormat, spec)
	}
	return types.LinkTemplate{Label: strings.TrimSpace(label), URL: strings.TrimSpace(url)}, nil
}

func newRulesCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: MsgRulesCheckShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			ruleSet, err := a.store.LoadRules(cmd.Context())
			if err != nil {
				return err
			}

			issues := rules.Validate(ruleSet, a.config.Engine.MatchTimeout)
			if len(issues) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgRulesValid, len(ruleSet))
				return nil
			}

			for _, issue := range issues {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(),
					styles.Render("Warning", fmt.Sprintf(MsgRuleIssue, issue.Index+1, issue.Err)))
			}
			return errors.Newf(errors.ErrPatternInvalid, MsgErrRulesInvalid, len(issues))
		},
	}
}

func newRulesWatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: MsgRulesWatchShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			unsubscribe := a.store.OnRulesChanged(func() {
				ruleSet, err := a.store.LoadRules(ctx)
				if err != nil {
					return
				}
				_, _ = fmt.Fprintf(out, MsgRulesChanged, len(ruleSet))
			})
			defer unsubscribe()

			return watchUntilDone(ctx, a.store, func() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgWatching, a.store.Path())
			})
		},
	}
}

// watchUntilDone runs store's watcher until ctx ends
func watchUntilDone(ctx context.Context, store *rules.FileStore, started func()) error {
	if err := store.Watch(ctx); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	started()
	<-ctx.Done()
	return nil
}
