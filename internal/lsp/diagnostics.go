package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"limn/internal/errors"
)

// convertConfigErrors transforms definition diagnostics into LSP
// diagnostics for IDE display. Positions are converted from the 1-based
// reporter convention to the protocol's 0-based one, and a diagnostic
// with no recorded length still gets a one-column range so editors have
// something to underline.
func convertConfigErrors(configErrors []errors.ConfigError) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for _, ce := range configErrors {
		length := ce.Length
		if length < 1 {
			length = 1
		}

		message := ce.Message
		for _, s := range ce.Suggestions {
			message += "; " + s.Message
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(ce.Position.Line - 1),
					Character: uint32(ce.Position.Column - 1),
				},
				End: protocol.Position{
					Line:      uint32(ce.Position.Line - 1),
					Character: uint32(ce.Position.Column - 1 + length),
				},
			},
			Severity: ptrSeverity(levelSeverity(ce.Level)),
			Code:     &protocol.IntegerOrString{Value: ce.Code},
			Source:   ptrString("limn"),
			Message:  message,
		})
	}

	return diagnostics
}

func levelSeverity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Error:
		return protocol.DiagnosticSeverityError
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
