// Package rules supplies the ordered list of link rules and tells callers
// when it changes.
//
// Stores never cache: LoadRules reads the current state on every call, since
// the configuration can be edited while a terminal is active. An empty rule
// list is not an error; callers use it to point the user at setup guidance.
//
// FileStore reads the termlinks configuration file through pkg/config and
// watches its directory with fsnotify. Subscribers registered with
// OnRulesChanged fire only when the loaded rule list actually differs from
// the previous one, so edits to unrelated keys stay silent.
//
// MemoryStore keeps rules in memory for hosts that manage configuration
// themselves, and for tests.
package rules
