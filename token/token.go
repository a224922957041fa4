// Package token SPDX-License-Identifier: Apache-2.0
package token

// Tag classifies a span of source text for display purposes. Tags are an
// open set: the engine attaches whatever tag a rule declares and never
// interprets it. The constants below are the conventional vocabulary the
// built-in tables and renderers agree on; custom tables may introduce their
// own tags and consumers simply fall back to an unstyled rendering.
type Tag string

const (
	Plain       Tag = "plain"
	Comment     Tag = "comment"
	String      Tag = "string"
	Keyword     Tag = "keyword"
	Directive   Tag = "directive"
	Number      Tag = "number"
	Operator    Tag = "operator"
	Punctuation Tag = "punctuation"
	Identifier  Tag = "identifier"
	Error       Tag = "error"
)

// Conventional returns the tag vocabulary shared by the built-in tables,
// themes and the definition checker, in display order.
func Conventional() []Tag {
	return []Tag{
		Plain, Comment, String, Keyword, Directive,
		Number, Operator, Punctuation, Identifier, Error,
	}
}

// Token is a tagged, contiguous span of one input line. Start and End are
// byte offsets into the line it was produced from; the token carries no copy
// of the text, so reconstructing styled output always goes back to the
// original line.
type Token struct {
	Start int
	End   int
	Tag   Tag
}

// Len returns the span length in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// Text returns the matched substring of the line the token was produced
// from.
func (t Token) Text(line string) string {
	return line[t.Start:t.End]
}

// Covered reports whether toks tile line exactly: starts at 0, ends at
// len(line), and each token begins where the previous one ended. An empty
// line is covered by zero tokens.
func Covered(line string, toks []Token) bool {
	pos := 0
	for _, t := range toks {
		if t.Start != pos || t.End < t.Start {
			return false
		}
		pos = t.End
	}
	return pos == len(line)
}
