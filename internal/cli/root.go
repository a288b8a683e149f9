// Package cli implements the termlinks command tree.
package cli

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/termlinks/internal/version"
	"github.com/arthur-debert/termlinks/pkg/cobrax/topics"
	"github.com/arthur-debert/termlinks/pkg/config"
	"github.com/arthur-debert/termlinks/pkg/logging"
	"github.com/arthur-debert/termlinks/pkg/matcher"
	"github.com/arthur-debert/termlinks/pkg/paths"
	"github.com/arthur-debert/termlinks/pkg/rules"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// globalOptions holds the persistent flags
type globalOptions struct {
	verbosity  int
	configFile string
}

// app bundles what commands need from the configuration
type app struct {
	paths  *paths.Paths
	store  *rules.FileStore
	config *config.Config
	engine *matcher.Engine
}

// newApp resolves the config file and loads it once for the command
func (o *globalOptions) newApp() (*app, error) {
	p := paths.New(o.configFile)
	store := rules.NewFileStore(p.ConfigFile())

	cfg, err := config.Load(p.ConfigFile())
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("config", p.ConfigFile()).
		Dur("matchTimeout", cfg.Engine.MatchTimeout).
		Msg("Configuration loaded")

	return &app{
		paths:  p,
		store:  store,
		config: cfg,
		engine: matcher.New(matcher.WithMatchTimeout(cfg.Engine.MatchTimeout)),
	}, nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "termlinks",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newOpenCmd(opts))
	rootCmd.AddCommand(newRulesCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	sub, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		if _, err := topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}
