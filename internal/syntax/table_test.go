package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limn/token"
)

func TestNewTableCompilesValidRules(t *testing.T) {
	tbl, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `/\*`, Tag: token.Comment, Next: "comment"},
			{Pattern: `.`, Tag: token.Plain},
		},
		"comment": {
			{Pattern: `\*/`, Tag: token.Comment, Next: "start"},
			{Pattern: `.`, Tag: token.Comment},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "demo", tbl.Name())
	assert.Equal(t, StateID("start"), tbl.InitialState())
	assert.Equal(t, token.Error, tbl.FallbackTag())
	assert.Equal(t, []StateID{"comment", "start"}, tbl.States())
}

func TestNewTableRejectsDanglingNextState(t *testing.T) {
	_, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `/\*`, Tag: token.Comment, Next: "comment"},
		},
	})
	require.Error(t, err)

	var def *DefinitionError
	require.True(t, errors.As(err, &def))
	assert.Equal(t, "demo", def.Table)
	assert.Equal(t, StateID("start"), def.State)
	assert.Equal(t, 0, def.Rule)
	assert.Contains(t, def.Error(), `next state "comment" is not defined`)
}

func TestNewTableRejectsInvalidPattern(t *testing.T) {
	_, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `(unclosed`, Tag: token.Plain},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestNewTableRejectsMissingInitialState(t *testing.T) {
	_, err := NewTable("demo", Rules{
		"body": {
			{Pattern: `.`, Tag: token.Plain},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial state is not defined")

	// An explicit initial state fixes the same table.
	tbl, err := NewTable("demo", Rules{
		"body": {
			{Pattern: `.`, Tag: token.Plain},
		},
	}, WithInitialState("body"))
	require.NoError(t, err)
	assert.Equal(t, StateID("body"), tbl.InitialState())
}

func TestNewTableRejectsEmptyTable(t *testing.T) {
	_, err := NewTable("demo", Rules{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no states")
}

func TestNewTableRejectsEmptyTagAndStateName(t *testing.T) {
	_, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `.`},
		},
		"": {
			{Pattern: `.`, Tag: token.Plain},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule has no tag")
	assert.Contains(t, err.Error(), "state name is empty")
}

func TestNewTableReportsEveryDefectAtOnce(t *testing.T) {
	_, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `[`, Tag: token.Plain},
			{Pattern: `.`, Tag: "", Next: "nowhere"},
		},
	})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "invalid pattern")
	assert.Contains(t, msg, "rule has no tag")
	assert.Contains(t, msg, `next state "nowhere" is not defined`)
}

func TestMustTablePanicsOnDefectiveRules(t *testing.T) {
	assert.Panics(t, func() {
		MustTable("demo", Rules{
			"start": {
				{Pattern: `.`, Tag: token.Plain, Next: "missing"},
			},
		})
	})
}

func TestWithFallbackTag(t *testing.T) {
	tbl, err := NewTable("demo", Rules{
		"start": {
			{Pattern: `a+`, Tag: token.Identifier},
		},
	}, WithFallbackTag(token.Plain))
	require.NoError(t, err)

	toks, end := tbl.TokenizeLine("a?", "")
	assert.Equal(t, StateID("start"), end)
	require.Len(t, toks, 2)
	assert.Equal(t, token.Identifier, toks[0].Tag)
	assert.Equal(t, token.Plain, toks[1].Tag)
}
