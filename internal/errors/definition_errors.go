package errors

import (
	"fmt"
	"strings"
)

// ConfigErrorBuilder provides a fluent interface for creating definition
// diagnostics with suggestions
type ConfigErrorBuilder struct {
	err ConfigError
}

// NewConfigError creates a new definition error builder
func NewConfigError(code, message string, pos Position) *ConfigErrorBuilder {
	return &ConfigErrorBuilder{
		err: ConfigError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewConfigWarning creates a new definition warning builder
func NewConfigWarning(code, message string, pos Position) *ConfigErrorBuilder {
	return &ConfigErrorBuilder{
		err: ConfigError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *ConfigErrorBuilder) WithLength(length int) *ConfigErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *ConfigErrorBuilder) WithSuggestion(message string) *ConfigErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *ConfigErrorBuilder) WithReplacement(message, replacement string, pos Position, length int) *ConfigErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *ConfigErrorBuilder) WithNote(note string) *ConfigErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *ConfigErrorBuilder) WithHelp(help string) *ConfigErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *ConfigErrorBuilder) Build() ConfigError {
	return b.err
}

// Common definition error constructors with suggestions

// BadPattern creates an error for a rule pattern that does not compile
func BadPattern(state string, index int, cause error, pos Position, length int) ConfigError {
	return NewConfigError(ErrorBadPattern, fmt.Sprintf("pattern does not compile: %v", cause), pos).
		WithLength(length).
		WithNote(fmt.Sprintf("rule %d of state '%s'", index, state)).
		WithHelp("patterns use the regexp2 dialect; lookaheads like (?=...) are allowed").
		Build()
}

// UnknownNextState creates an error for a transition to an undeclared state
func UnknownNextState(state, next string, pos Position, declared []string) ConfigError {
	builder := NewConfigError(ErrorUnknownNextState,
		fmt.Sprintf("state '%s' transitions to undeclared state '%s'", state, next), pos).
		WithLength(len(next))

	similar := findSimilarNames(next, declared)
	if len(similar) == 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	} else if len(similar) > 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}

	if len(declared) > 0 {
		builder = builder.WithNote(fmt.Sprintf("declared states: %s", strings.Join(declared, ", ")))
	}
	return builder.Build()
}

// MissingInitialState creates an error for a definition whose initial state
// is not declared
func MissingInitialState(initial string, pos Position, declared []string) ConfigError {
	builder := NewConfigError(ErrorMissingInitialState,
		fmt.Sprintf("initial state '%s' is not declared", initial), pos).
		WithLength(len(initial))

	similar := findSimilarNames(initial, declared)
	if len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	} else {
		builder = builder.WithSuggestion(fmt.Sprintf("add a 'state %s { ... }' block", initial))
	}
	return builder.WithNote("tokenization always begins in the initial state").Build()
}

// EmptyTag creates an error for a rule without a tag
func EmptyTag(state string, index int, pos Position) ConfigError {
	return NewConfigError(ErrorEmptyTag,
		fmt.Sprintf("rule %d of state '%s' has no tag", index, state), pos).
		WithSuggestion("every rule needs a tag naming the kind of token it emits").
		Build()
}

// DuplicateState creates an error for a state declared twice
func DuplicateState(name string, pos Position, firstLine int) ConfigError {
	return NewConfigError(ErrorDuplicateState,
		fmt.Sprintf("state '%s' is declared more than once", name), pos).
		WithLength(len(name)).
		WithNote(fmt.Sprintf("first declared at line %d", firstLine)).
		WithSuggestion("merge the rules into a single state block").
		Build()
}

// MissingLanguage creates an error for a definition without a language header
func MissingLanguage(pos Position) ConfigError {
	return NewConfigError(ErrorMissingLanguage, "definition is missing the language header", pos).
		WithSuggestion("add 'language <name>' at the top of the file").
		Build()
}

// BadExtension creates an error for a malformed file extension
func BadExtension(ext string, pos Position) ConfigError {
	return NewConfigError(ErrorBadExtension,
		fmt.Sprintf("extension '%s' must start with a dot", ext), pos).
		WithLength(len(ext)).
		WithReplacement("prefix it with a dot", "."+ext, pos, len(ext)).
		Build()
}

// EmptyDefinition creates an error for a definition with no states
func EmptyDefinition(pos Position) ConfigError {
	return NewConfigError(ErrorEmptyDefinition, "definition declares no states", pos).
		WithSuggestion("add at least a 'state start { ... }' block").
		Build()
}

// DuplicateLanguage creates an error for registering an already-known name
func DuplicateLanguage(name string, pos Position) ConfigError {
	return NewConfigError(ErrorDuplicateLanguage,
		fmt.Sprintf("language '%s' is already registered", name), pos).
		WithLength(len(name)).
		WithSuggestion("rename the language or remove the earlier registration").
		Build()
}

// DuplicateExtension creates an error for an extension claimed twice
func DuplicateExtension(ext, owner string, pos Position) ConfigError {
	return NewConfigError(ErrorDuplicateExtension,
		fmt.Sprintf("extension '%s' is already registered for '%s'", ext, owner), pos).
		WithLength(len(ext)).
		Build()
}

// UnreadableFile creates an error for a definition file that cannot be read
func UnreadableFile(path string, cause error) ConfigError {
	return NewConfigError(ErrorUnreadableFile,
		fmt.Sprintf("cannot read %s: %v", path, cause), Position{Line: 1, Column: 1}).
		Build()
}

// MalformedFile creates an error for a definition file that fails to parse
func MalformedFile(message string, pos Position) ConfigError {
	return NewConfigError(ErrorMalformedFile, message, pos).Build()
}

// UnreachableState creates a warning for a state no transition leads to
func UnreachableState(name string, pos Position) ConfigError {
	return NewConfigWarning(WarningUnreachableState,
		fmt.Sprintf("state '%s' can never be reached from the initial state", name), pos).
		WithLength(len(name)).
		WithSuggestion("add a transition to it, or remove the state").
		WithNote("unreachable states still validate but never tokenize anything").
		Build()
}

// UnknownTag creates a warning for a tag outside the conventional set
func UnknownTag(tag string, pos Position, conventional []string) ConfigError {
	builder := NewConfigWarning(WarningUnknownTag,
		fmt.Sprintf("tag '%s' is not a conventional tag", tag), pos).
		WithLength(len(tag))

	similar := findSimilarNames(tag, conventional)
	if len(similar) == 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	} else if len(similar) > 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}

	return builder.
		WithNote(fmt.Sprintf("conventional tags: %s", strings.Join(conventional, ", "))).
		WithHelp("custom tags work, but themes only style the conventional set").
		Build()
}

// Helper functions

func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
