package lsp

import (
	"limn/internal/document"
	"limn/token"
)

// SemanticTokenTypes is the legend advertised at initialize time. Only
// standard LSP type names appear in it; tags without a standard analogue
// stay unstyled instead of borrowing a wrong color.
var SemanticTokenTypes = []string{
	"comment",
	"string",
	"keyword",
	"property",
	"number",
	"operator",
	"variable",
}

// SemanticTokenModifiers is empty: rule tables classify spans, they do not
// track declaration or readonly facts about them.
var SemanticTokenModifiers = []string{}

// tagTypeIndex maps conventional tags to legend indices. Plain, punctuation
// and error spans carry no index and are skipped, as is any custom tag.
var tagTypeIndex = map[token.Tag]uint32{
	token.Comment:    0,
	token.String:     1,
	token.Keyword:    2,
	token.Directive:  3,
	token.Number:     4,
	token.Operator:   5,
	token.Identifier: 6,
}

// encodeSemanticTokens flattens a document's tokens into the LSP wire
// format: five uints per token, line and start as deltas against the
// previous token, offsets counted in UTF-16 code units.
func encodeSemanticTokens(doc *document.Document) []uint32 {
	data := []uint32{}
	var prevLine, prevStart uint32

	for i := 0; i < doc.LineCount(); i++ {
		line := doc.Line(i)
		for _, tok := range doc.Tokens(i) {
			typeIndex, ok := tagTypeIndex[tok.Tag]
			if !ok {
				continue
			}
			length := utf16Len(line[tok.Start:tok.End])
			if length == 0 {
				continue
			}

			start := utf16Len(line[:tok.Start])
			deltaLine := uint32(i) - prevLine
			var deltaStart uint32
			if deltaLine == 0 {
				deltaStart = start - prevStart
			} else {
				deltaStart = start
			}

			data = append(data, deltaLine, deltaStart, length, typeIndex, 0)

			prevLine = uint32(i)
			prevStart = start
		}
	}

	return data
}

// utf16Len counts the UTF-16 code units of s, which is how the protocol
// measures column offsets.
func utf16Len(s string) uint32 {
	n := 0
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return uint32(n)
}

// byteOffset converts a protocol column, counted in UTF-16 code units, into
// a byte offset into line. Columns past the end clamp to the line length.
func byteOffset(line string, col uint32) int {
	units := int(col)
	for i, r := range line {
		if units <= 0 {
			return i
		}
		units--
		if r > 0xFFFF {
			units--
		}
	}
	return len(line)
}
