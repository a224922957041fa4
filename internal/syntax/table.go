package syntax

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/dlclark/regexp2"

	"limn/token"
)

// Table is the compiled, immutable form of a rule set. It is safe for
// concurrent use: tokenizing only reads the compiled states, and the
// diagnostics counters are atomic.
type Table struct {
	name     string
	initial  StateID
	fallback token.Tag
	states   map[StateID]*state

	fallbacks      atomic.Uint64
	emptyMatches   atomic.Uint64
	unknownResumes atomic.Uint64
}

type state struct {
	id    StateID
	rules []compiledRule
}

type compiledRule struct {
	re   *regexp2.Regexp
	tag  token.Tag
	next StateID // "" means stay
}

// DefinitionError describes one defect found while compiling a rule table.
// NewTable joins every defect it finds into the returned error, so a caller
// fixing a table sees the whole list at once.
type DefinitionError struct {
	Table string
	State StateID
	Rule  int // index within the state, -1 for state-level defects
	Err   error
}

func (e *DefinitionError) Error() string {
	if e.Rule < 0 {
		return fmt.Sprintf("table %q, state %q: %v", e.Table, e.State, e.Err)
	}
	return fmt.Sprintf("table %q, state %q, rule %d: %v", e.Table, e.State, e.Rule, e.Err)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// NewTable validates and compiles a declarative rule set. Validation is
// eager and exhaustive: every invalid pattern, empty tag, and dangling next
// reference in the whole table is reported in one joined error. A table
// that constructs successfully can tokenize any input without further
// failure modes.
func NewTable(name string, rules Rules, opts ...Option) (*Table, error) {
	cfg := tableConfig{initial: DefaultInitialState, fallback: token.Error}
	for _, opt := range opts {
		opt(&cfg)
	}

	var defects []error
	defect := func(st StateID, rule int, format string, args ...any) {
		defects = append(defects, &DefinitionError{
			Table: name,
			State: st,
			Rule:  rule,
			Err:   fmt.Errorf(format, args...),
		})
	}

	if len(rules) == 0 {
		return nil, &DefinitionError{Table: name, State: cfg.initial, Rule: -1, Err: errors.New("table has no states")}
	}
	if cfg.fallback == "" {
		defect(cfg.initial, -1, "fallback tag is empty")
	}

	t := &Table{
		name:     name,
		initial:  cfg.initial,
		fallback: cfg.fallback,
		states:   make(map[StateID]*state, len(rules)),
	}

	for id, list := range rules {
		if id == "" {
			defect(StateID(id), -1, "state name is empty")
			continue
		}
		st := &state{id: StateID(id), rules: make([]compiledRule, 0, len(list))}
		for i, r := range list {
			cr := compiledRule{tag: r.Tag, next: StateID(r.Next)}
			if r.Tag == "" {
				defect(st.id, i, "rule has no tag")
			}
			re, err := regexp2.Compile(`\A(?:`+r.Pattern+`)`, regexp2.None)
			if err != nil {
				defect(st.id, i, "invalid pattern %q: %v", r.Pattern, err)
			} else {
				cr.re = re
			}
			st.rules = append(st.rules, cr)
		}
		t.states[st.id] = st
	}

	// Resolve transitions only after every state is known, so rule order and
	// map iteration order cannot affect which dangling references we catch.
	if _, ok := t.states[t.initial]; !ok {
		defect(t.initial, -1, "initial state is not defined")
	}
	for _, st := range t.states {
		for i, r := range st.rules {
			if r.next != "" {
				if _, ok := t.states[r.next]; !ok {
					defect(st.id, i, "next state %q is not defined", r.next)
				}
			}
		}
	}

	if len(defects) > 0 {
		sort.Slice(defects, func(i, j int) bool {
			a, b := defects[i].(*DefinitionError), defects[j].(*DefinitionError)
			if a.State != b.State {
				return a.State < b.State
			}
			return a.Rule < b.Rule
		})
		return nil, errors.Join(defects...)
	}
	return t, nil
}

// MustTable is NewTable for compiled-in tables; it panics on a defective
// definition.
func MustTable(name string, rules Rules, opts ...Option) *Table {
	t, err := NewTable(name, rules, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the language name the table was constructed with.
func (t *Table) Name() string { return t.name }

// InitialState returns the state a fresh document begins in.
func (t *Table) InitialState() StateID { return t.initial }

// FallbackTag returns the tag attached to characters no rule matched.
func (t *Table) FallbackTag() token.Tag { return t.fallback }

// States returns the defined state names in sorted order, for tooling.
func (t *Table) States() []StateID {
	ids := make([]StateID, 0, len(t.states))
	for id := range t.states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Diagnostics is a snapshot of the table's internal-event counters. The
// counters never influence tokenization results; they exist so callers can
// notice tables that lean on the fallback path.
type Diagnostics struct {
	Fallbacks      uint64 // characters consumed because no rule matched
	EmptyMatches   uint64 // zero-length matches skipped by the guard
	UnknownResumes uint64 // resume states that fell back to the initial state
}

// Diagnostics returns the current counter snapshot.
func (t *Table) Diagnostics() Diagnostics {
	return Diagnostics{
		Fallbacks:      t.fallbacks.Load(),
		EmptyMatches:   t.emptyMatches.Load(),
		UnknownResumes: t.unknownResumes.Load(),
	}
}
