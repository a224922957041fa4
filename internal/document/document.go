// Package document maintains tokenization results for a multi-line text
// across edits. A Document owns the line split, threads end states from
// line to line, and re-tokenizes only the lines an edit can actually have
// affected: everything before the first changed line is kept, and
// everything after it is adopted back as soon as a line enters the same
// state it entered before the edit.
package document

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"limn/internal/syntax"
	"limn/token"
)

// memoEntries bounds the per-document line memo.
const memoEntries = 4096

type lineKey struct {
	state syntax.StateID
	line  string
}

type lineResult struct {
	toks []token.Token
	end  syntax.StateID
}

// Document is a tokenized text session. It is not safe for concurrent
// mutation; the token slices it returns are shared and must not be
// modified by callers.
type Document struct {
	table *syntax.Table
	lines []string
	toks  [][]token.Token
	ends  []syntax.StateID
	memo  *lru.Cache[lineKey, lineResult]
}

// New tokenizes text against table. Line endings are normalized to \n;
// like an editor buffer, a trailing newline produces a final empty line
// and empty text is a single empty line.
func New(table *syntax.Table, text string) *Document {
	memo, err := lru.New[lineKey, lineResult](memoEntries)
	if err != nil {
		// lru.New fails only for sizes < 1.
		panic(err)
	}
	d := &Document{table: table, memo: memo, lines: splitLines(text)}
	d.toks = make([][]token.Token, len(d.lines))
	d.ends = make([]syntax.StateID, len(d.lines))

	state := table.InitialState()
	for i, line := range d.lines {
		d.toks[i], d.ends[i] = d.lineResult(state, line)
		state = d.ends[i]
	}
	return d
}

// Table returns the table the document tokenizes with.
func (d *Document) Table() *syntax.Table { return d.table }

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns line i without its terminator.
func (d *Document) Line(i int) string { return d.lines[i] }

// Text reassembles the document's normalized text.
func (d *Document) Text() string { return strings.Join(d.lines, "\n") }

// Tokens returns the spans of line i. The slice is shared; treat it as
// read-only.
func (d *Document) Tokens(i int) []token.Token { return d.toks[i] }

// StartState returns the state line i was tokenized from.
func (d *Document) StartState(i int) syntax.StateID {
	if i == 0 {
		return d.table.InitialState()
	}
	return d.ends[i-1]
}

// EndState returns the state line i left the tokenizer in, which is the
// start state of line i+1.
func (d *Document) EndState(i int) syntax.StateID { return d.ends[i] }

// SetText replaces the whole text. The changed line window is located
// with a line-granular diff so the unchanged prefix keeps its results
// without retokenizing.
func (d *Document) SetText(text string) {
	next := splitLines(text)
	cur, norm := d.Text(), strings.Join(next, "\n")
	if norm == cur {
		return
	}
	lead, trail := sharedLineRuns(cur, norm)
	d.splice(lead, len(d.lines)-trail, next[lead:len(next)-trail])
}

// ReplaceLines substitutes repl for the line range [from, to). An empty
// repl deletes the range; from == to inserts before line from.
func (d *Document) ReplaceLines(from, to int, repl []string) error {
	if from < 0 || to < from || to > len(d.lines) {
		return fmt.Errorf("line range %d..%d is out of bounds for %d lines", from, to, len(d.lines))
	}
	if to-from == len(repl) {
		same := true
		for i, line := range repl {
			if d.lines[from+i] != line {
				same = false
				break
			}
		}
		if same {
			return nil
		}
	}
	d.splice(from, to, repl)
	return nil
}

// splice swaps repl into [from, to) and recomputes line results from the
// edit onward. Lines past the replacement align with their pre-edit
// selves at an index shifted by the growth of the document; as soon as
// one of them starts in the state it started in before, every later
// result is re-adopted unchanged.
func (d *Document) splice(from, to int, repl []string) {
	prevToks, prevEnds := d.toks, d.ends
	shift := len(repl) - (to - from)
	alignFrom := from + len(repl)

	lines := make([]string, 0, len(d.lines)+shift)
	lines = append(lines, d.lines[:from]...)
	lines = append(lines, repl...)
	lines = append(lines, d.lines[to:]...)
	d.lines = lines

	toks := make([][]token.Token, len(lines))
	ends := make([]syntax.StateID, len(lines))
	copy(toks, prevToks[:from])
	copy(ends, prevEnds[:from])

	state := d.table.InitialState()
	if from > 0 {
		state = ends[from-1]
	}
	for i := from; i < len(lines); i++ {
		if i >= alignFrom && state == startStateIn(d.table, prevEnds, i-shift) {
			copy(toks[i:], prevToks[i-shift:])
			copy(ends[i:], prevEnds[i-shift:])
			break
		}
		toks[i], ends[i] = d.lineResult(state, lines[i])
		state = ends[i]
	}
	d.toks, d.ends = toks, ends
}

// lineResult memoizes (start state, line) → (tokens, end state), which is
// sound because tokenization is deterministic and touches no state beyond
// the table's counters.
func (d *Document) lineResult(state syntax.StateID, line string) ([]token.Token, syntax.StateID) {
	key := lineKey{state: state, line: line}
	if hit, ok := d.memo.Get(key); ok {
		return hit.toks, hit.end
	}
	toks, end := d.table.TokenizeLine(line, state)
	d.memo.Add(key, lineResult{toks: toks, end: end})
	return toks, end
}

func startStateIn(table *syntax.Table, ends []syntax.StateID, i int) syntax.StateID {
	if i == 0 {
		return table.InitialState()
	}
	return ends[i-1]
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
