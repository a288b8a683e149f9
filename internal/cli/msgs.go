package cli

import (
	_ "embed"
	"strings"
)

// Short messages
const (
	MsgRootShort       = "Turn references in terminal output into links"
	MsgScanShort       = "Find links in lines of text"
	MsgOpenShort       = "Open a link found in a line"
	MsgRulesShort      = "Manage link rules"
	MsgRulesListShort  = "List the configured rules"
	MsgRulesAddShort   = "Add a link rule"
	MsgRulesCheckShort = "Check that every rule pattern compiles"
	MsgRulesWatchShort = "Print the rule count whenever the rules change"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNoLinks         = "No link found."
	MsgNoDestinations  = "The link has no destinations."
	MsgChoiceCancelled = "Cancelled."
	MsgOpened          = "Opened %s (%s)\n"
	MsgRuleAdded       = "Added rule %d to %s\n"
	MsgRulesValid      = "All %d rules compile.\n"
	MsgRuleIssue       = "rule %d: %v\n"
	MsgRulesChanged    = "Rules changed: %d rule(s)\n"
	MsgWatching        = "Watching %s, press Ctrl+C to stop.\n"
	MsgRuleItem        = "%d. %s\n"
	MsgRuleTooltip     = "   tooltip: %s\n"
	MsgRuleLink        = "   %s  %s\n"

	// Error messages
	MsgErrRulesInvalid = "%d rule(s) failed to compile"
	MsgErrLinkFormat   = "invalid link %q, expected LABEL=URL"
	MsgErrNoLinkAt     = "no link at column %d"
	MsgErrNoLinkIndex  = "link %d not found, the line has %d"
	MsgErrNoInput      = "give a line or --annotation"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Configuration file (default $XDG_CONFIG_HOME/termlinks/config.toml)"
	MsgFlagFormat     = "Output format: text, json or hyperlink"
	MsgFlagIndex      = "Open the n-th link of the line, counting from 1"
	MsgFlagColumn     = "Open the link under this 1-based column"
	MsgFlagAnnotation = "Open an annotation printed by scan --format json"
	MsgFlagPrint      = "Print the URL instead of opening it"
	MsgFlagChoose     = "Pick the n-th destination without asking, counting from 1"
	MsgFlagPattern    = "Regular expression of the rule"
	MsgFlagTooltip    = "Tooltip shown instead of the link labels"
	MsgFlagLink       = "Destination as LABEL=URL, repeatable"
	MsgFlagJSON       = "Print rules as JSON"

	// DefaultPattern matches ticket ids such as ABC-123
	DefaultPattern = `([A-Z][A-Z0-9]+-\d+)`
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/scan-example.txt
	msgScanExampleRaw string
	MsgScanExample    = strings.TrimRight(msgScanExampleRaw, "\n")

	//go:embed msgs/open-long.txt
	msgOpenLongRaw string
	MsgOpenLong    = strings.TrimSpace(msgOpenLongRaw)

	//go:embed msgs/open-example.txt
	msgOpenExampleRaw string
	MsgOpenExample    = strings.TrimRight(msgOpenExampleRaw, "\n")

	//go:embed msgs/rules-add-long.txt
	msgRulesAddLongRaw string
	MsgRulesAddLong    = strings.TrimSpace(msgRulesAddLongRaw)

	//go:embed msgs/rules-add-example.txt
	msgRulesAddExampleRaw string
	MsgRulesAddExample    = strings.TrimRight(msgRulesAddExampleRaw, "\n")

	//go:embed msgs/no-rules.txt
	msgNoRulesRaw string
	// MsgNoRules takes the configuration file path
	MsgNoRules = strings.TrimSpace(msgNoRulesRaw) + "\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
