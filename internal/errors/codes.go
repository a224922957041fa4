package errors

// Error codes for language definition diagnostics
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// D0001-D0049: Definition validation errors
// D0050-D0099: Registry and loading errors
// W0001-W0099: Warning codes

const (
	// D0001: Rule pattern fails to compile
	ErrorBadPattern = "D0001"

	// D0002: Rule switches to a state the definition never declares
	ErrorUnknownNextState = "D0002"

	// D0003: No state matches the declared initial state
	ErrorMissingInitialState = "D0003"

	// D0004: Rule has no tag
	ErrorEmptyTag = "D0004"

	// D0005: State declared with an empty name
	ErrorEmptyStateName = "D0005"

	// D0006: Same state declared twice
	ErrorDuplicateState = "D0006"

	// D0007: Definition has no language name
	ErrorMissingLanguage = "D0007"

	// D0008: Extension does not start with a dot
	ErrorBadExtension = "D0008"

	// D0009: Definition declares no states
	ErrorEmptyDefinition = "D0009"

	// D0050: Language name already registered
	ErrorDuplicateLanguage = "D0050"

	// D0051: Extension already claimed by another language
	ErrorDuplicateExtension = "D0051"

	// D0052: Definition file cannot be read
	ErrorUnreadableFile = "D0052"

	// D0053: Definition file does not parse or decode
	ErrorMalformedFile = "D0053"

	// Warning codes

	// W0001: State is never reached from the initial state
	WarningUnreachableState = "W0001"

	// W0002: Tag is not one of the conventional tag names
	WarningUnknownTag = "W0002"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorBadPattern:
		return "Rule pattern is not a valid regular expression"
	case ErrorUnknownNextState:
		return "Rule transitions to a state that is not declared"
	case ErrorMissingInitialState:
		return "Initial state is not declared by the definition"
	case ErrorEmptyTag:
		return "Rule is missing its token tag"
	case ErrorEmptyStateName:
		return "State name is empty"
	case ErrorDuplicateState:
		return "State is declared more than once"
	case ErrorMissingLanguage:
		return "Definition is missing the language header"
	case ErrorBadExtension:
		return "File extension must start with a dot"
	case ErrorEmptyDefinition:
		return "Definition declares no states"
	case ErrorDuplicateLanguage:
		return "Language name is already registered"
	case ErrorDuplicateExtension:
		return "File extension is already registered for another language"
	case ErrorUnreadableFile:
		return "Definition file cannot be read"
	case ErrorMalformedFile:
		return "Definition file cannot be parsed"
	case WarningUnreachableState:
		return "State can never be reached from the initial state"
	case WarningUnknownTag:
		return "Tag is not one of the conventional tag names"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the code represents a warning rather than an error
func IsWarning(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "D0001" && code < "D0050":
		return "Definition"
	case code >= "D0050" && code < "D0100":
		return "Registry"
	case len(code) > 0 && code[0] == 'W':
		return "Warning"
	default:
		return "Unknown"
	}
}
