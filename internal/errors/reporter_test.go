package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorReporter(t *testing.T) {
	source := `language css
extensions .css

state start {
    /[a-z+/ identifier
}`

	reporter := NewErrorReporter("broken.limn", source)

	err := BadPattern("start", 0, fmt.Errorf("missing closing ]"), Position{Line: 5, Column: 5}, 8)
	formatted := reporter.FormatError(err)

	// Should contain error level and code
	assert.Contains(t, formatted, "error["+ErrorBadPattern+"]")
	assert.Contains(t, formatted, "pattern does not compile")

	// Should contain location
	assert.Contains(t, formatted, "broken.limn:5:5")

	// Should contain the note naming the rule
	assert.Contains(t, formatted, "rule 0 of state 'start'")
}

func TestUnknownNextStateError(t *testing.T) {
	pos := Position{Line: 3, Column: 20}

	// Test with a near-miss state name
	err := UnknownNextState("start", "commnt", pos, []string{"start", "comment"})
	assert.Equal(t, ErrorUnknownNextState, err.Code)
	assert.Contains(t, err.Message, "commnt")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'comment'")
	assert.Contains(t, err.Notes[0], "declared states: start, comment")

	// Test without similar names
	err = UnknownNextState("start", "xyz", pos, []string{"start", "comment"})
	assert.Empty(t, err.Suggestions)
}

func TestMissingInitialStateError(t *testing.T) {
	pos := Position{Line: 1, Column: 9}

	err := MissingInitialState("strt", pos, []string{"start", "comment"})
	assert.Equal(t, ErrorMissingInitialState, err.Code)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'start'")

	err = MissingInitialState("main", pos, []string{"zzz"})
	assert.Contains(t, err.Suggestions[0].Message, "add a 'state main { ... }' block")
}

func TestDuplicateStateError(t *testing.T) {
	err := DuplicateState("comment", Position{Line: 12, Column: 7}, 5)
	assert.Equal(t, ErrorDuplicateState, err.Code)
	assert.Contains(t, err.Message, "declared more than once")
	assert.Contains(t, err.Notes[0], "first declared at line 5")
}

func TestUnknownTagWarning(t *testing.T) {
	conventional := []string{"plain", "comment", "string", "keyword", "number"}

	err := UnknownTag("strng", Position{Line: 4, Column: 10}, conventional)
	assert.Equal(t, Warning, err.Level)
	assert.Equal(t, WarningUnknownTag, err.Code)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'string'")
	assert.Contains(t, err.Notes[0], "conventional tags:")
}

func TestWarningFormatting(t *testing.T) {
	source := "state orphan {\n    /./ plain\n}"
	reporter := NewErrorReporter("test.limn", source)

	err := UnreachableState("orphan", Position{Line: 1, Column: 7})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning[W0001]")
	assert.Contains(t, formatted, "never be reached")
}

func TestErrorMarkerCreation(t *testing.T) {
	reporter := NewErrorReporter("test.limn", "language css")

	marker := reporter.createMarker(10, 3, Error) // "css" is 3 chars at column 10

	spaces := strings.Count(marker, " ")
	assert.Equal(t, 9, spaces)
	carets := strings.Count(marker, "^")
	assert.Equal(t, 3, carets)
}

func TestHasErrors(t *testing.T) {
	warnings := []ConfigError{
		UnreachableState("x", Position{Line: 1, Column: 1}),
		UnknownTag("foo", Position{Line: 2, Column: 1}, []string{"plain"}),
	}
	assert.False(t, HasErrors(warnings))

	withError := append(warnings, MissingLanguage(Position{Line: 1, Column: 1}))
	assert.True(t, HasErrors(withError))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNameFinding(t *testing.T) {
	candidates := []string{"comment", "string", "keyword", "xyz"}

	similar := findSimilarNames("commnt", candidates)
	assert.Contains(t, similar, "comment")
	assert.NotContains(t, similar, "xyz")

	similar = findSimilarNames("verydifferent", candidates)
	assert.Empty(t, similar)
}

func TestErrorLevels(t *testing.T) {
	reporter := NewErrorReporter("test.limn", "language x")
	pos := Position{Line: 1, Column: 1}

	errorErr := ConfigError{Level: Error, Message: "test error", Position: pos}
	warningErr := ConfigError{Level: Warning, Message: "test warning", Position: pos}

	errorFormatted := reporter.FormatError(errorErr)
	warningFormatted := reporter.FormatError(warningErr)

	assert.Contains(t, errorFormatted, "error:")
	assert.Contains(t, warningFormatted, "warning:")
}

func TestIsWarning(t *testing.T) {
	assert.True(t, IsWarning(WarningUnreachableState))
	assert.True(t, IsWarning(WarningUnknownTag))
	assert.False(t, IsWarning(ErrorBadPattern))
	assert.False(t, IsWarning(ErrorDuplicateLanguage))
}
