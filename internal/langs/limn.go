package langs

import (
	"limn/internal/syntax"
	"limn/token"
)

// Limn returns a fresh table for .limn definition files themselves. The
// format is line-oriented, so one state is enough.
func Limn() *syntax.Table {
	return syntax.MustTable("limn", syntax.Rules{
		"start": {
			{Pattern: `#.*`, Tag: token.Comment},
			{Pattern: `/(?:\\.|[^/\\])*/`, Tag: token.String},
			{Pattern: `(?:language|extensions|initial|fallback|state)\b`, Tag: token.Keyword},
			{Pattern: `->`, Tag: token.Operator},
			{Pattern: `\.[a-zA-Z0-9_+]+`, Tag: token.Directive},
			{Pattern: `[{}]`, Tag: token.Punctuation},
			{Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Tag: token.Identifier},
			{Pattern: `\s+`, Tag: token.Plain},
		},
	}, syntax.WithFallbackTag(token.Plain))
}
