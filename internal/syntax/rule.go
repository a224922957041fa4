// Package syntax implements the table-driven tokenizer engine. A table is a
// set of named states, each an ordered list of pattern rules; tokenizing a
// line walks the active state's rules first-match-wins, emits tagged spans,
// and follows state transitions. All configuration is validated and compiled
// up front; tokenization itself cannot fail.
package syntax

import (
	"limn/token"
)

// Rule is one ordered entry within a state. Pattern is a regular expression
// (regexp2 dialect, so lookahead assertions are available) matched only at
// the current scan position; the engine anchors it there, so a leading ^ is
// unnecessary. Tag is attached to the matched span. Next optionally names
// the state to switch to after the rule fires; empty means the state is
// unchanged.
type Rule struct {
	Pattern string
	Tag     token.Tag
	Next    string
}

// Rules is the declarative form of a table: state name to ordered rule list.
// Within a state, rules are tried strictly in declared order and the first
// non-empty match wins. Rule order is the grammar; two tables with the same
// rules in different order are different languages.
type Rules map[string][]Rule

// StateID names a tokenizer state. Callers thread the end state returned for
// one line into the call for the next; the zero value resolves to the
// table's initial state, so a fresh document starts with `var st StateID`.
type StateID string

// DefaultInitialState is the state a table starts in unless
// WithInitialState says otherwise.
const DefaultInitialState StateID = "start"

// Option adjusts table construction.
type Option func(*tableConfig)

type tableConfig struct {
	initial  StateID
	fallback token.Tag
}

// WithInitialState designates the state tokenization begins in for callers
// that resume with the zero StateID.
func WithInitialState(id StateID) Option {
	return func(c *tableConfig) { c.initial = id }
}

// WithFallbackTag sets the tag attached to single characters consumed when
// no rule matches. Tables conventionally use token.Plain when unmatched
// input is expected (catch-all semantics) and token.Error when it signals a
// defect in the table.
func WithFallbackTag(tag token.Tag) Option {
	return func(c *tableConfig) { c.fallback = tag }
}
