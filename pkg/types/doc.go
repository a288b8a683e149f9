// Package types defines the data model shared by the rule store, the match
// engine and the link resolver: rules and their link templates, matched
// spans, capture groups and the annotations handed to a host.
package types
