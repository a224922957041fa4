package langs

import (
	"limn/internal/syntax"
	"limn/token"
)

// HTML returns a fresh markup table. Tag bodies, comments and quoted
// attribute values are separate states, so all three keep their coloring
// when they run across line breaks.
func HTML() *syntax.Table {
	return syntax.MustTable("html", syntax.Rules{
		"start": {
			{Pattern: `<!--`, Tag: token.Comment, Next: "comment"},
			{Pattern: `(?i)<!DOCTYPE\b`, Tag: token.Directive, Next: "tag"},
			{Pattern: `</?[a-zA-Z][-a-zA-Z0-9]*`, Tag: token.Keyword, Next: "tag"},
			{Pattern: `&[a-zA-Z]+;|&#[0-9]+;`, Tag: token.Directive},
			{Pattern: `[^<&]+`, Tag: token.Plain},
		},
		"tag": {
			{Pattern: `/>`, Tag: token.Keyword, Next: "start"},
			{Pattern: `>`, Tag: token.Keyword, Next: "start"},
			{Pattern: `"`, Tag: token.String, Next: "dstring"},
			{Pattern: `'`, Tag: token.String, Next: "sstring"},
			{Pattern: `[a-zA-Z_:][-a-zA-Z0-9_:.]*(?=\s*=)`, Tag: token.Directive},
			{Pattern: `[a-zA-Z_:][-a-zA-Z0-9_:.]*`, Tag: token.Identifier},
			{Pattern: `=`, Tag: token.Operator},
			{Pattern: `\s+`, Tag: token.Plain},
		},
		"dstring": {
			{Pattern: `[^"]+`, Tag: token.String},
			{Pattern: `"`, Tag: token.String, Next: "tag"},
		},
		"sstring": {
			{Pattern: `[^']+`, Tag: token.String},
			{Pattern: `'`, Tag: token.String, Next: "tag"},
		},
		"comment": {
			{Pattern: `-->`, Tag: token.Comment, Next: "start"},
			{Pattern: `[^-]+`, Tag: token.Comment},
			{Pattern: `-`, Tag: token.Comment},
		},
	}, syntax.WithFallbackTag(token.Plain))
}
