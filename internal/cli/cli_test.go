package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/arthur-debert/termlinks/pkg/config"
	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/testutil"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/arthur-debert/termlinks/pkg/ui/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ticketConfig = `
[[linker.rules]]
pattern = "([A-Z][A-Z0-9]+-\\d+)"
links = [
  { label = "Jira", url = "https://x.atlassian.net/browse/$1" },
  { label = "GitHub", url = "https://github.com/org/repo/issues?q=$1" },
]

[[linker.rules]]
pattern = "#(\\d+)"
tooltip = "Open PR"
links = [{ label = "PR", url = "https://github.com/org/repo/pull/$1" }]
`

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	return runWithInput(t, strings.NewReader(stdin), args...)
}

func runWithInput(t *testing.T, stdin io.Reader, args ...string) result {
	t.Helper()

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(stdin)
	root.SetArgs(args)

	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestScan_Text(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "fix ABC-123 in #42\nnothing\n", "scan")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "-:1:5  ABC-123  Jira / GitHub")
	assert.Contains(t, res.stdout, "https://x.atlassian.net/browse/ABC-123")
	assert.Contains(t, res.stdout, "-:1:16  #42  Open PR")
	assert.NotContains(t, res.stdout, ":2:")
}

func TestScan_JSON(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "ABC-1\nplain\n", "scan", "--format", "json")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 2)

	var first render.JSONLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Len(t, first.Annotations, 1)
	assert.Equal(t, "ABC-1", first.Annotations[0].Data)
}

func TestScan_File(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)
	input := env.WriteConfig("build.log", "merged #7\n")

	res := run(t, "", "scan", input)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, input+":1:8  #7  Open PR")
}

func TestScan_MissingFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "", "scan", env.ConfigPath("missing.log"))
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrNotFound))
}

func TestScan_NoRulesShowsOnboarding(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "ABC-1\n", "scan")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "No link rules are configured yet.")
	assert.Empty(t, res.stdout)
}

func TestScan_InvalidFormat(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "", "scan", "--format", "xml")
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrInvalidInput))
}

// lineReader returns one line per Read and calls between before handing out
// the second line
type lineReader struct {
	lines   []string
	between func()
	reads   int
}

func (r *lineReader) Read(p []byte) (int, error) {
	if r.reads >= len(r.lines) {
		return 0, io.EOF
	}
	if r.reads == 1 && r.between != nil {
		r.between()
	}
	n := copy(p, r.lines[r.reads])
	r.reads++
	return n, nil
}

func singleRuleConfig(label, host string) string {
	return `
[[linker.rules]]
pattern = "([A-Z]+-\\d+)"
links = [{ label = "` + label + `", url = "https://` + host + `/$1" }]
`
}

func TestScan_ReloadsRulesForEachLine(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", singleRuleConfig("Old", "old"))

	in := &lineReader{
		lines: []string{"ABC-1\n", "ABC-2\n"},
		between: func() {
			env.WriteConfig("config.toml", singleRuleConfig("New", "new"))
		},
	}

	res := runWithInput(t, in, "scan")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "-:1:1  ABC-1  Old")
	assert.Contains(t, res.stdout, "https://old/ABC-1")
	assert.Contains(t, res.stdout, "-:2:1  ABC-2  New")
	assert.Contains(t, res.stdout, "https://new/ABC-2")
	assert.NotContains(t, res.stdout, "https://old/ABC-2")
}

func TestScan_BrokenConfigMidStreamKeepsScanning(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", singleRuleConfig("Old", "old"))

	in := &lineReader{
		lines: []string{"ABC-1\n", "ABC-2\n"},
		between: func() {
			env.WriteConfig("config.toml", "[[linker.rules]\npattern = ")
		},
	}

	res := runWithInput(t, in, "scan")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "-:1:1  ABC-1  Old")
	assert.NotContains(t, res.stdout, ":2:")
}

func TestScan_InvalidRuleIsSkipped(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", `
[[linker.rules]]
pattern = "(unclosed"
links = [{ label = "Broken", url = "x" }]
`+ticketConfig)

	res := run(t, "ABC-9\n", "scan")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "ABC-9  Jira / GitHub")
	assert.NotContains(t, res.stdout, "Broken")
}

func TestOpen_PrintSingleDestination(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "", "open", "--print", "merged #42")
	require.NoError(t, res.err)
	assert.Equal(t, "https://github.com/org/repo/pull/42\n", res.stdout)
}

func TestOpen_ChooseAmongDestinations(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "", "open", "--print", "--choose", "2", "fix ABC-123")
	require.NoError(t, res.err)
	assert.Equal(t, "https://github.com/org/repo/issues?q=ABC-123\n", res.stdout)
}

func TestOpen_ChooseOutOfRange(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "", "open", "--print", "--choose", "5", "fix ABC-123")
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrPrompt))
}

func TestOpen_Column(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "", "open", "--print", "--column", "17", "fix ABC-123 in #42")
	require.NoError(t, res.err)
	assert.Equal(t, "https://github.com/org/repo/pull/42\n", res.stdout)

	res = run(t, "", "open", "--print", "--column", "2", "fix ABC-123 in #42")
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrNotFound))
}

func TestOpen_Index(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "", "open", "--print", "--index", "2", "fix ABC-123 in #42")
	require.NoError(t, res.err)
	assert.Equal(t, "https://github.com/org/repo/pull/42\n", res.stdout)

	res = run(t, "", "open", "--print", "--index", "3", "fix ABC-123 in #42")
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrNotFound))
}

func TestOpen_NoLink(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "", "open", "--print", "nothing here")
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrNotFound))
}

func TestOpen_AnnotationRoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	scanned := run(t, "see ABC-77\n", "scan", "--format", "json")
	require.NoError(t, scanned.err)

	var line struct {
		Annotations []json.RawMessage `json:"annotations"`
	}
	require.NoError(t, json.Unmarshal([]byte(scanned.stdout), &line))
	require.Len(t, line.Annotations, 1)

	res := run(t, "", "open", "--print", "--choose", "1", "--annotation", string(line.Annotations[0]))
	require.NoError(t, res.err)
	assert.Equal(t, "https://x.atlassian.net/browse/ABC-77\n", res.stdout)
}

func TestOpen_AnnotationWithoutLinks(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "", "open", "--print", "--annotation", `{"start":0,"length":3,"links":[],"groups":[{"value":"abc","matched":true}],"data":"abc"}`)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, MsgNoDestinations)
}

func TestOpen_InvalidAnnotation(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "", "open", "--annotation", "{not json")
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrInvalidInput))
}

func TestOpen_NoInput(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "", "open")
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrInvalidInput))
}

func TestOpen_BrowserCommand(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig+"\n[browser]\ncommand = \"true\"\n")

	res := run(t, "", "open", "merged #42")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Opened https://github.com/org/repo/pull/42 (PR)")
}

func TestRulesAdd(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	res := run(t, "", "rules", "add", "--link", "Jira=https://x.atlassian.net/browse/$1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Added rule 1")

	res = run(t, "", "rules", "add", "--pattern", `#(\d+)`, "--tooltip", "Open PR",
		"--link", "PR=https://github.com/org/repo/pull/$1")
	require.NoError(t, res.err)

	cfg, err := config.Load(env.ConfigPath("config.toml"))
	require.NoError(t, err)
	require.Len(t, cfg.Linker.Rules, 2)
	assert.Equal(t, DefaultPattern, cfg.Linker.Rules[0].Pattern)
	assert.Equal(t, []types.LinkTemplate{{Label: "Jira", URL: "https://x.atlassian.net/browse/$1"}}, cfg.Linker.Rules[0].Links)
	assert.Equal(t, "Open PR", cfg.Linker.Rules[1].Tooltip)

	opened := run(t, "", "open", "--print", "#5")
	require.NoError(t, opened.err)
	assert.Equal(t, "https://github.com/org/repo/pull/5\n", opened.stdout)
}

func TestRulesAdd_InvalidInput(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "", "rules", "add", "--pattern", "(unclosed")
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrPatternInvalid))

	res = run(t, "", "rules", "add", "--link", "no-url-here")
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrInvalidInput))
}

func TestParseLink(t *testing.T) {
	link, err := parseLink("Docs = https://a/b?c=$1")
	require.NoError(t, err)
	assert.Equal(t, types.LinkTemplate{Label: "Docs", URL: "https://a/b?c=$1"}, link)

	link, err = parseLink("=https://a")
	require.NoError(t, err)
	assert.Equal(t, "", link.Label)

	_, err = parseLink("Docs=")
	assert.Error(t, err)
}

func TestRulesList(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "", "rules", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1. ([A-Z][A-Z0-9]+-\\d+)")
	assert.Contains(t, res.stdout, "   tooltip: Open PR")
	assert.Contains(t, res.stdout, "   PR  https://github.com/org/repo/pull/$1")

	res = run(t, "", "rules", "list", "--json")
	require.NoError(t, res.err)
	var listed []types.Rule
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &listed))
	assert.Len(t, listed, 2)
}

func TestRulesList_Empty(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "", "rules", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No link rules are configured yet.")
}

func TestRulesCheck(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", ticketConfig)

	res := run(t, "", "rules", "check")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "All 2 rules compile.")

	env.WriteConfig("config.toml", ticketConfig+`
[[linker.rules]]
pattern = "[z-a]"
`)
	res = run(t, "", "rules", "check")
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrPatternInvalid))
	assert.Contains(t, res.stderr, "rule 3:")
}

func TestConfigFlag(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := env.WriteConfig("other.yaml", `
linker:
  rules:
    - pattern: "#(\\d+)"
      links:
        - label: PR
          url: "https://example.com/pull/$1"
`)

	res := run(t, "", "--config", path, "open", "--print", "#3")
	require.NoError(t, res.err)
	assert.Equal(t, "https://example.com/pull/3\n", res.stdout)
}

func TestVersion(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "termlinks version dev")
}

func TestCompletion(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "", "completion", "bash")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "termlinks")

	res = run(t, "", "completion", "tcsh")
	assert.Error(t, res.err)
}

func TestHelpTopics(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "", "help", "topics")
	require.NoError(t, res.err)
	for _, name := range []string{"config", "patterns", "templates"} {
		assert.Contains(t, res.stdout, "  "+name)
	}

	res = run(t, "", "help", "templates")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "templates")
}

func TestRootWithoutCommand(t *testing.T) {
	testutil.NewTestEnvironment(t)

	res := run(t, "")
	assert.Error(t, res.err)
	assert.Contains(t, res.stdout, "termlinks")
}
