package langs

import (
	"limn/internal/syntax"
	"limn/token"
)

// JSON returns a fresh JSON table. Object keys are told apart from string
// values by looking ahead for the colon. The fallback tag stays at error:
// anything outside the JSON grammar is worth flagging.
func JSON() *syntax.Table {
	return syntax.MustTable("json", syntax.Rules{
		"start": {
			{Pattern: `"(?:[^"\\]|\\.)*"(?=\s*:)`, Tag: token.Directive},
			{Pattern: `"(?:[^"\\]|\\.)*"`, Tag: token.String},
			{Pattern: `-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`, Tag: token.Number},
			{Pattern: `(?:true|false|null)\b`, Tag: token.Keyword},
			{Pattern: `[{}\[\],:]`, Tag: token.Punctuation},
			{Pattern: `\s+`, Tag: token.Plain},
		},
	})
}
