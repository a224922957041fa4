package langs

import (
	"limn/internal/syntax"
	"limn/token"
)

// CSS returns a fresh stylesheet table. Property names are recognized by
// the colon that follows them, so the same word tokenizes as an identifier
// in selector position and as a directive inside a declaration block.
func CSS() *syntax.Table {
	return syntax.MustTable("css", syntax.Rules{
		"start": {
			{Pattern: `/\*`, Tag: token.Comment, Next: "comment"},
			{Pattern: `"(?:[^"\\]|\\.)*"`, Tag: token.String},
			{Pattern: `'(?:[^'\\]|\\.)*'`, Tag: token.String},
			{Pattern: `@[a-zA-Z-]+`, Tag: token.Keyword},
			{Pattern: `!important\b`, Tag: token.Keyword},
			{Pattern: `[-a-zA-Z_][-a-zA-Z0-9_]*(?=\s*:)`, Tag: token.Directive},
			{Pattern: `#[0-9a-fA-F]{3,8}\b`, Tag: token.Number},
			{Pattern: `#[-a-zA-Z_][-a-zA-Z0-9_]*`, Tag: token.Identifier},
			{Pattern: `\.[-a-zA-Z_][-a-zA-Z0-9_]*`, Tag: token.Identifier},
			{Pattern: `[0-9]+(?:\.[0-9]+)?(?:px|em|rem|pt|vh|vw|s|ms|%)?`, Tag: token.Number},
			{Pattern: `[{}();:,>+~*]`, Tag: token.Punctuation},
			{Pattern: `[-a-zA-Z_][-a-zA-Z0-9_]*`, Tag: token.Identifier},
			{Pattern: `\s+`, Tag: token.Plain},
		},
		"comment": {
			{Pattern: `[^*]+`, Tag: token.Comment},
			{Pattern: `\*/`, Tag: token.Comment, Next: "start"},
			{Pattern: `\*`, Tag: token.Comment},
		},
	}, syntax.WithFallbackTag(token.Plain))
}
