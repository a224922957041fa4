// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"limn/internal/langs"
	"limn/internal/render"
	"limn/internal/syntax"
	"limn/token"
)

const PROMPT = ">> "

// Start runs the interactive tokenizer loop. Each input line is tokenized
// with the selected language's table and the end state carries over to the
// next line, so multi-line constructs behave exactly as they do in a file.
func Start(in io.Reader, out io.Writer, reg *langs.Registry, lang string) {
	sess := &session{reg: reg, out: out, theme: render.DefaultTheme()}
	if lang != "" {
		sess.selectLanguage(lang)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if strings.HasPrefix(line, ":") {
			if sess.command(line) {
				return
			}
			continue
		}
		sess.tokenize(line)
	}
}

type session struct {
	reg   *langs.Registry
	out   io.Writer
	theme render.Theme
	table *syntax.Table
	state syntax.StateID
}

func (s *session) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true

	case ":langs":
		for _, name := range s.reg.Names() {
			fmt.Fprintf(s.out, "  %-8s %s\n", name, strings.Join(s.reg.Extensions(name), " "))
		}

	case ":lang":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, "usage: :lang <name>")
			return false
		}
		s.selectLanguage(fields[1])

	case ":state":
		if s.table == nil {
			fmt.Fprintln(s.out, "no language selected")
			return false
		}
		fmt.Fprintf(s.out, "state: %s\n", s.state)

	case ":reset":
		if s.table != nil {
			s.state = s.table.InitialState()
		}
		fmt.Fprintln(s.out, "state reset")

	default:
		fmt.Fprintf(s.out, "unknown command %s (try :lang, :state, :reset, :langs, :quit)\n", fields[0])
	}
	return false
}

func (s *session) selectLanguage(name string) {
	table, ok := s.reg.Lookup(name)
	if !ok {
		fmt.Fprintf(s.out, "unknown language %q, available: %s\n", name, strings.Join(s.reg.Names(), ", "))
		return
	}
	s.table = table
	s.state = table.InitialState()
	fmt.Fprintf(s.out, "language: %s\n", name)
}

func (s *session) tokenize(line string) {
	if s.table == nil {
		fmt.Fprintln(s.out, "no language selected, try :lang followed by one of:", strings.Join(s.reg.Names(), ", "))
		return
	}

	toks, next := s.table.TokenizeLine(line, s.state)
	fmt.Fprintln(s.out, s.theme.Line(line, toks))
	for _, t := range toks {
		fmt.Fprintf(s.out, "  %s %q\n", s.paintTag(t.Tag), t.Text(line))
	}
	if next != s.state {
		fmt.Fprintf(s.out, "  -> state %s\n", next)
	}
	s.state = next
}

// paintTag pads before coloring so the ANSI escapes do not break the
// column alignment.
func (s *session) paintTag(tag token.Tag) string {
	padded := fmt.Sprintf("%-12s", string(tag))
	if c, ok := s.theme[tag]; ok && c != nil {
		return c.Sprint(padded)
	}
	return padded
}
