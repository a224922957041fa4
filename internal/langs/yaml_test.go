package langs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limn/internal/errors"
	"limn/token"
)

func TestFromYAMLCompilesDefinition(t *testing.T) {
	lang, diags := FromYAML([]byte(`language: ini
extensions:
  - .ini
  - .cfg
fallback: plain
states:
  start:
    - pattern: '[;#].*'
      tag: comment
    - pattern: '\[[^\]]*\]'
      tag: keyword
    - pattern: '[A-Za-z0-9_.-]+(?=\s*=)'
      tag: directive
    - pattern: '='
      tag: operator
      next: value
    - pattern: '\s+'
      tag: plain
  value:
    - pattern: '.+'
      tag: string
      next: start
`))
	require.Empty(t, diags)
	require.NotNil(t, lang)

	assert.Equal(t, "ini", lang.Table.Name())
	assert.Equal(t, []string{".ini", ".cfg"}, lang.Extensions)

	line := "name = hello world"
	toks, st := lang.Table.TokenizeLine(line, lang.Table.InitialState())
	require.True(t, token.Covered(line, toks))
	assert.Equal(t, token.Directive, tagAt(t, line, toks, "name"))
	assert.Equal(t, token.Operator, tagAt(t, line, toks, "="))
	assert.Equal(t, token.String, tagAt(t, line, toks, "hello"))
	assert.Equal(t, lang.Table.InitialState(), st)
}

func TestFromYAMLRejectsUnknownField(t *testing.T) {
	lang, diags := FromYAML([]byte(`language: demo
colour: red
states:
  start:
    - pattern: a
      tag: plain
`))
	assert.Nil(t, lang)
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrorMalformedFile, diags[0].Code)
	assert.Contains(t, diags[0].Message, "unknown field 'colour'")
	assert.Equal(t, errors.Position{Line: 2, Column: 1}, diags[0].Position)
}

func TestFromYAMLRejectsDuplicateField(t *testing.T) {
	lang, diags := FromYAML([]byte(`language: demo
language: other
states:
  start:
    - pattern: a
      tag: plain
`))
	assert.Nil(t, lang)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "duplicate 'language' field")
	assert.Equal(t, 2, diags[0].Position.Line)
}

func TestFromYAMLReportsMissingPattern(t *testing.T) {
	lang, diags := FromYAML([]byte(`language: demo
states:
  start:
    - tag: plain
`))
	assert.Nil(t, lang)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "rule in state 'start' is missing its pattern")
	assert.Equal(t, 4, diags[0].Position.Line)
}

func TestFromYAMLKeepsDuplicateStateKeys(t *testing.T) {
	lang, diags := FromYAML([]byte(`language: demo
states:
  start:
    - pattern: a
      tag: plain
  start:
    - pattern: b
      tag: plain
`))
	assert.Nil(t, lang)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, errors.ErrorDuplicateState, d.Code)
	assert.Equal(t, errors.Position{Line: 6, Column: 3}, d.Position)
	assert.Contains(t, d.Notes, "first declared at line 3")
}

func TestFromYAMLChecksFieldTypes(t *testing.T) {
	lang, diags := FromYAML([]byte(`language: demo
extensions: .demo
states:
  - start
`))
	assert.Nil(t, lang)

	messages := make([]string, len(diags))
	for i, d := range diags {
		messages[i] = d.Message
	}
	assert.Contains(t, messages, "'extensions' must be a list")
	assert.Contains(t, messages, "'states' must be a mapping of state names to rule lists")
}

func TestFromYAMLSharesValidationWithDSL(t *testing.T) {
	lang, diags := FromYAML([]byte(`language: demo
states:
  start:
    - pattern: x
      tag: comment
      next: commen
  comment:
    - pattern: y
      tag: comment
      next: start
`))
	assert.Nil(t, lang)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, errors.ErrorUnknownNextState, d.Code)
	assert.Equal(t, errors.Position{Line: 6, Column: 13}, d.Position)
	require.NotEmpty(t, d.Suggestions)
	assert.Equal(t, "did you mean 'comment'?", d.Suggestions[0].Message)
}

func TestFromYAMLEmptyDocument(t *testing.T) {
	for _, data := range []string{"", "# nothing here\n"} {
		lang, diags := FromYAML([]byte(data))
		assert.Nil(t, lang)
		require.Len(t, diags, 1, "input %q", data)
		assert.Equal(t, errors.ErrorEmptyDefinition, diags[0].Code)
	}
}

func TestFromYAMLRejectsMalformedDocument(t *testing.T) {
	lang, diags := FromYAML([]byte("language: demo\nstates:\n\tstart: []\n"))
	assert.Nil(t, lang)
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrorMalformedFile, diags[0].Code)
}

func TestYAMLDiagnosticExtractsLine(t *testing.T) {
	d := yamlDiagnostic(fmt.Errorf("yaml: line 7: mapping values are not allowed in this context"))
	assert.Equal(t, 7, d.Position.Line)
	assert.Equal(t, "mapping values are not allowed in this context", d.Message)

	d = yamlDiagnostic(fmt.Errorf("yaml: unknown anchor 'x' referenced"))
	assert.Equal(t, 1, d.Position.Line)
	assert.Equal(t, "yaml: unknown anchor 'x' referenced", d.Message)
}
