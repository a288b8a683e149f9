// Package config loads termlinks configuration.
//
// Values are layered with koanf in this order, later sources winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user configuration file, TOML or YAML by extension
//  3. TERMLINKS_* environment variables (TERMLINKS_ENGINE_MATCH_TIMEOUT
//     maps to engine.match_timeout)
//
// Link rules live under the linker key:
//
//	[[linker.rules]]
//	pattern = "([A-Z][A-Z0-9]+-\\d+)"
//	links = [
//	  { label = "Jira", url = "https://example.atlassian.net/browse/$1" },
//	]
//
// The single-rule shape of early releases (linker.pattern, linker.links and
// linker.tooltip) is still read and appended after linker.rules.
package config
