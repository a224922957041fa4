package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var LimnLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `#[^\n]*`, Action: nil},

		// Slash-delimited patterns; \/ escapes the delimiter
		{Name: "Regex", Pattern: `/(?:\\.|[^/\\\n])*/`, Action: nil},

		// File extensions (.css, .scss, ...)
		{Name: "Ext", Pattern: `\.[a-zA-Z0-9_+]+`, Action: nil},

		// Keywords and identifiers (state names, tags)
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},

		// State transition marker
		{Name: "Arrow", Pattern: `->`, Action: nil},

		// Block braces
		{Name: "Punct", Pattern: `[{}]`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
