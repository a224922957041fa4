package syntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limn/token"
)

func commentTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `/\*`, Tag: token.Comment, Next: "comment"},
			{Pattern: `[a-z]+`, Tag: token.Identifier},
			{Pattern: `.`, Tag: token.Plain},
		},
		"comment": {
			{Pattern: `\*/`, Tag: token.Comment, Next: "start"},
			{Pattern: `[^*]+`, Tag: token.Comment},
			{Pattern: `\*`, Tag: token.Comment},
		},
	})
	require.NoError(t, err)
	return tbl
}

func tags(toks []token.Token) []token.Tag {
	out := make([]token.Tag, len(toks))
	for i, tk := range toks {
		out[i] = tk.Tag
	}
	return out
}

func texts(line string, toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, tk := range toks {
		out[i] = tk.Text(line)
	}
	return out
}

func TestTokenizeLineCommentSpanningLines(t *testing.T) {
	tbl := commentTable(t)

	line1 := "a /* start"
	toks, end := tbl.TokenizeLine(line1, "")
	assert.Equal(t, StateID("comment"), end)
	assert.True(t, token.Covered(line1, toks))
	assert.Equal(t, []string{"a", " ", "/*", " start"}, texts(line1, toks))
	assert.Equal(t, []token.Tag{token.Identifier, token.Plain, token.Comment, token.Comment}, tags(toks))

	line2 := "more */ b"
	toks, end = tbl.TokenizeLine(line2, end)
	assert.Equal(t, StateID("start"), end)
	assert.True(t, token.Covered(line2, toks))
	assert.Equal(t, []string{"more ", "*/", " ", "b"}, texts(line2, toks))
	assert.Equal(t, []token.Tag{token.Comment, token.Comment, token.Plain, token.Identifier}, tags(toks))
}

func TestTokenizeLineUnterminatedCommentStaysInState(t *testing.T) {
	tbl := commentTable(t)

	_, end := tbl.TokenizeLine("/* never closed", "")
	assert.Equal(t, StateID("comment"), end)

	// The caller decides what to do with the dangling state; feeding the
	// next line resumes inside the comment.
	toks, end := tbl.TokenizeLine("still inside", end)
	assert.Equal(t, StateID("comment"), end)
	for _, tk := range toks {
		assert.Equal(t, token.Comment, tk.Tag)
	}
}

func TestTokenizeLineCatchAllOnly(t *testing.T) {
	tbl, err := NewTable("plain", Rules{
		"start": {
			{Pattern: `.`, Tag: token.Plain},
		},
	})
	require.NoError(t, err)

	toks, end := tbl.TokenizeLine("xyz", "")
	assert.Equal(t, StateID("start"), end)
	require.Len(t, toks, 3)
	for i, tk := range toks {
		assert.Equal(t, 1, tk.Len())
		assert.Equal(t, i, tk.Start)
		assert.Equal(t, token.Plain, tk.Tag)
	}
}

func TestTokenizeLineFirstMatchWins(t *testing.T) {
	// Both rules match at position 0; declaration order decides.
	tbl, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `[a-z]+`, Tag: token.Keyword},
			{Pattern: `[a-z]+`, Tag: token.Identifier},
			{Pattern: `.`, Tag: token.Plain},
		},
	})
	require.NoError(t, err)

	toks, _ := tbl.TokenizeLine("abc", "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.Keyword, toks[0].Tag)

	// First match also beats a longer later match.
	tbl, err = NewTable("demo", Rules{
		"start": {
			{Pattern: `ab`, Tag: token.Keyword},
			{Pattern: `abc`, Tag: token.Identifier},
			{Pattern: `.`, Tag: token.Plain},
		},
	})
	require.NoError(t, err)

	toks, _ = tbl.TokenizeLine("abc", "")
	assert.Equal(t, []token.Tag{token.Keyword, token.Plain}, tags(toks))
	assert.Equal(t, []string{"ab", "c"}, texts("abc", toks))
}

func TestTokenizeLineFallbackConsumesOneRune(t *testing.T) {
	tbl, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `[a-z]+`, Tag: token.Identifier},
		},
	})
	require.NoError(t, err)

	line := "ab;é漢x"
	toks, end := tbl.TokenizeLine(line, "")
	assert.Equal(t, StateID("start"), end)
	assert.True(t, token.Covered(line, toks))
	assert.Equal(t, []string{"ab", ";", "é", "漢", "x"}, texts(line, toks))
	assert.Equal(t, []token.Tag{
		token.Identifier, token.Error, token.Error, token.Error, token.Identifier,
	}, tags(toks))

	assert.Equal(t, uint64(3), tbl.Diagnostics().Fallbacks)
}

func TestTokenizeLineEmptyMatchGuard(t *testing.T) {
	// a* matches a zero-length prefix everywhere; it must never be selected
	// for an empty match and must never hang the scan.
	tbl, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `a*`, Tag: token.Identifier},
		},
	})
	require.NoError(t, err)

	line := "baa"
	toks, _ := tbl.TokenizeLine(line, "")
	assert.True(t, token.Covered(line, toks))
	assert.Equal(t, []string{"b", "aa"}, texts(line, toks))
	assert.Equal(t, []token.Tag{token.Error, token.Identifier}, tags(toks))
	assert.NotZero(t, tbl.Diagnostics().EmptyMatches)
}

func TestTokenizeLineEmptyLine(t *testing.T) {
	tbl := commentTable(t)

	toks, end := tbl.TokenizeLine("", "")
	assert.Empty(t, toks)
	assert.Equal(t, StateID("start"), end)

	// Resuming an empty line inside a comment keeps the state.
	toks, end = tbl.TokenizeLine("", "comment")
	assert.Empty(t, toks)
	assert.Equal(t, StateID("comment"), end)
}

func TestTokenizeLineUnknownResumeFallsBackToInitial(t *testing.T) {
	tbl := commentTable(t)

	toks, end := tbl.TokenizeLine("abc", "no-such-state")
	assert.Equal(t, StateID("start"), end)
	assert.Equal(t, []token.Tag{token.Identifier}, tags(toks))
	assert.Equal(t, uint64(1), tbl.Diagnostics().UnknownResumes)
}

func TestTokenizeLineLookahead(t *testing.T) {
	// Stylesheet-style property names: an identifier only counts as a
	// directive when a colon follows, without consuming the colon.
	tbl, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `[-a-z]+(?=\s*:)`, Tag: token.Directive},
			{Pattern: `[-a-z]+`, Tag: token.Identifier},
			{Pattern: `.`, Tag: token.Plain},
		},
	})
	require.NoError(t, err)

	line := "color: red"
	toks, _ := tbl.TokenizeLine(line, "")
	assert.True(t, token.Covered(line, toks))
	assert.Equal(t, []string{"color", ":", " ", "red"}, texts(line, toks))
	assert.Equal(t, []token.Tag{
		token.Directive, token.Plain, token.Plain, token.Identifier,
	}, tags(toks))
}

func TestTokenizeLineAnchorsAtCurrentPosition(t *testing.T) {
	// The comment-open rule must not fire mid-line by searching ahead: the
	// identifier rule consumes "ab", then /* matches exactly at the cursor.
	tbl := commentTable(t)

	line := "ab/*c"
	toks, end := tbl.TokenizeLine(line, "")
	assert.Equal(t, []string{"ab", "/*", "c"}, texts(line, toks))
	assert.Equal(t, StateID("comment"), end)

	// A pattern that cannot match at the cursor is skipped even though it
	// would match later in the line.
	tbl2, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `z+`, Tag: token.Keyword},
			{Pattern: `[a-y]+`, Tag: token.Identifier},
		},
	})
	require.NoError(t, err)
	toks, _ = tbl2.TokenizeLine("abcz", "")
	assert.Equal(t, []string{"abc", "z"}, texts("abcz", toks))
	assert.Equal(t, []token.Tag{token.Identifier, token.Keyword}, tags(toks))
}

func TestTokenizeLineDeterministic(t *testing.T) {
	tbl := commentTable(t)
	line := "ab /* x */ cd /*"

	first, end1 := tbl.TokenizeLine(line, "")
	second, end2 := tbl.TokenizeLine(line, "")
	assert.Equal(t, first, second)
	assert.Equal(t, end1, end2)
}

func TestTokenizeLineLongInput(t *testing.T) {
	tbl := commentTable(t)
	line := strings.Repeat("a*b ", 2000)

	toks, _ := tbl.TokenizeLine(line, "")
	assert.True(t, token.Covered(line, toks))
	assert.LessOrEqual(t, len(toks), len(line))
}
