package syntax

import (
	"unicode/utf8"

	"limn/token"
)

// TokenizeLine scans one line (no line terminators) starting in state `from`
// and returns the emitted tokens plus the state the next line should resume
// in. The zero StateID resumes in the table's initial state; so does a state
// the table does not define, which is counted but never an error.
//
// The emitted spans always tile the line exactly. Rules are tried in
// declared order and the first non-empty match wins; zero-length matches are
// skipped so no rule can stall the scan. When nothing matches, exactly one
// character is consumed and emitted with the table's fallback tag, which
// bounds the whole call at len(line) steps and makes tokenization total for
// any table that passed construction.
//
// The call touches no shared mutable state besides atomic diagnostic
// counters, so independent lines and documents may be tokenized from
// concurrent goroutines against one Table.
func (t *Table) TokenizeLine(line string, from StateID) ([]token.Token, StateID) {
	cur := t.resolve(from)

	var toks []token.Token
	pos := 0
	for pos < len(line) {
		rule, n := t.match(cur, line[pos:])
		if rule == nil {
			// Every state is expected to end in a catch-all; reaching this
			// path means the table lacks one, but the scan must still cover
			// the line and terminate. One character, fallback tag, move on.
			_, size := utf8.DecodeRuneInString(line[pos:])
			toks = append(toks, token.Token{Start: pos, End: pos + size, Tag: t.fallback})
			pos += size
			t.fallbacks.Add(1)
			continue
		}
		toks = append(toks, token.Token{Start: pos, End: pos + n, Tag: rule.tag})
		pos += n
		if rule.next != "" {
			cur = t.states[rule.next]
		}
	}
	return toks, cur.id
}

// resolve maps a caller-supplied resume state to a compiled state.
func (t *Table) resolve(from StateID) *state {
	if from == "" {
		return t.states[t.initial]
	}
	if st, ok := t.states[from]; ok {
		return st
	}
	t.unknownResumes.Add(1)
	return t.states[t.initial]
}

// match returns the first rule of st matching a non-empty prefix of rest,
// with the match length in bytes, or (nil, 0).
func (t *Table) match(st *state, rest string) (*compiledRule, int) {
	for i := range st.rules {
		r := &st.rules[i]
		m, err := r.re.FindStringMatch(rest)
		if err != nil || m == nil {
			continue
		}
		n := len(m.String())
		if n == 0 {
			// A pattern like a* matches everywhere; selecting it would never
			// advance the cursor. Skip it and let a later rule (or the
			// fallback) consume real input.
			t.emptyMatches.Add(1)
			continue
		}
		return r, n
	}
	return nil, 0
}
