// Package render turns tagged spans back into styled text for terminals.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"limn/token"
)

// Theme maps tags to terminal styles. Tags without an entry render
// unstyled, so a table using custom tags still produces readable output.
type Theme map[token.Tag]*color.Color

// DefaultTheme returns the stock terminal palette. Plain text and
// identifiers stay unstyled.
func DefaultTheme() Theme {
	return Theme{
		token.Comment:     color.New(color.FgGreen, color.Faint),
		token.String:      color.New(color.FgYellow),
		token.Keyword:     color.New(color.FgMagenta, color.Bold),
		token.Directive:   color.New(color.FgCyan),
		token.Number:      color.New(color.FgBlue),
		token.Operator:    color.New(color.FgRed),
		token.Punctuation: color.New(color.Faint),
		token.Error:       color.New(color.FgRed, color.Underline),
	}
}

// Line renders one line's tokens as a single styled string. Spans the
// tokens do not cover pass through unstyled, so partial token lists
// still reproduce the whole line.
func (th Theme) Line(line string, toks []token.Token) string {
	var b strings.Builder
	pos := 0
	for _, tok := range toks {
		if tok.Start > pos {
			b.WriteString(line[pos:tok.Start])
		}
		text := tok.Text(line)
		if c := th[tok.Tag]; c != nil {
			b.WriteString(c.Sprint(text))
		} else {
			b.WriteString(text)
		}
		pos = tok.End
	}
	if pos < len(line) {
		b.WriteString(line[pos:])
	}
	return b.String()
}

// Write renders the line to w, terminated with a newline.
func (th Theme) Write(w io.Writer, line string, toks []token.Token) error {
	_, err := io.WriteString(w, th.Line(line, toks)+"\n")
	return err
}

var styleAttrs = map[string]color.Attribute{
	"black":      color.FgBlack,
	"red":        color.FgRed,
	"green":      color.FgGreen,
	"yellow":     color.FgYellow,
	"blue":       color.FgBlue,
	"magenta":    color.FgMagenta,
	"cyan":       color.FgCyan,
	"white":      color.FgWhite,
	"hi-black":   color.FgHiBlack,
	"hi-red":     color.FgHiRed,
	"hi-green":   color.FgHiGreen,
	"hi-yellow":  color.FgHiYellow,
	"hi-blue":    color.FgHiBlue,
	"hi-magenta": color.FgHiMagenta,
	"hi-cyan":    color.FgHiCyan,
	"hi-white":   color.FgHiWhite,
	"bold":       color.Bold,
	"faint":      color.Faint,
	"italic":     color.Italic,
	"underline":  color.Underline,
}

// ParseStyle turns a comma-separated attribute list like "magenta,bold"
// into a style. "none" and the empty string mean unstyled.
func ParseStyle(s string) (*color.Color, error) {
	var attrs []color.Attribute
	for _, field := range strings.Split(s, ",") {
		name := strings.TrimSpace(strings.ToLower(field))
		if name == "" || name == "none" {
			continue
		}
		attr, ok := styleAttrs[name]
		if !ok {
			return nil, fmt.Errorf("unknown style attribute %q", name)
		}
		attrs = append(attrs, attr)
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	return color.New(attrs...), nil
}
