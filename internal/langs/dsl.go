package langs

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"limn/grammar"
	"limn/internal/errors"
)

// FromDSL lowers a parsed .limn definition and compiles it. The returned
// diagnostics may contain warnings even when the language compiled.
func FromDSL(def *grammar.Definition) (*Language, []errors.ConfigError) {
	var diags []errors.ConfigError
	src := &definitionSource{languagePos: errors.Position{Line: 1, Column: 1}}

	for _, decl := range def.Decls {
		switch {
		case decl.Language != nil:
			if src.language != "" {
				diags = append(diags, duplicateHeader("language", decl.Language.Pos))
				continue
			}
			src.language = decl.Language.Name
			src.languagePos = position(decl.Language.Pos)

		case decl.Extensions != nil:
			// Multiple extension headers accumulate.
			for _, ext := range decl.Extensions.Exts {
				src.extensions = append(src.extensions, ext)
				src.extPos = append(src.extPos, position(decl.Extensions.Pos))
			}

		case decl.Initial != nil:
			if src.hasInitial {
				diags = append(diags, duplicateHeader("initial", decl.Initial.Pos))
				continue
			}
			src.hasInitial = true
			src.initial = decl.Initial.State
			src.initialPos = position(decl.Initial.Pos)

		case decl.Fallback != nil:
			if src.fallback != "" {
				diags = append(diags, duplicateHeader("fallback", decl.Fallback.Pos))
				continue
			}
			src.fallback = decl.Fallback.Tag

		case decl.State != nil:
			src.states = append(src.states, lowerState(decl.State))
		}
	}

	lang, cdiags := compile(src)
	diags = append(diags, cdiags...)
	if errors.HasErrors(diags) {
		return nil, diags
	}
	return lang, diags
}

// ParseDSL parses and compiles .limn source in one step. Parse failures
// come back as a single positioned diagnostic.
func ParseDSL(name, source string) (*Language, []errors.ConfigError) {
	def, err := grammar.Parse(name, source)
	if err != nil {
		return nil, []errors.ConfigError{parseDiagnostic(err)}
	}
	return FromDSL(def)
}

func lowerState(st *grammar.State) stateSource {
	out := stateSource{name: st.Name, pos: stateNamePosition(st)}
	for _, e := range st.Entries {
		if e.Rule == nil {
			continue
		}
		r := e.Rule
		rule := ruleSource{
			pattern:    r.Pattern(),
			pos:        position(r.Pos),
			patternLen: len(r.Regex),
			tag:        r.Tag,
			tagPos:     position(r.Pos),
			next:       r.Next,
			nextPos:    position(r.Pos),
		}
		// The significant tokens are the regex, the tag, then optionally
		// the arrow and the next state.
		if toks := ruleTokens(r); len(toks) > 1 {
			rule.tagPos = position(toks[1].Pos)
			if len(toks) > 3 {
				rule.nextPos = position(toks[3].Pos)
			}
		}
		out.rules = append(out.rules, rule)
	}
	return out
}

// ruleTokens drops the whitespace the lexer elides from a rule's captured
// tokens; captured slices keep elided tokens in them.
func ruleTokens(r *grammar.RuleDecl) []lexer.Token {
	toks := make([]lexer.Token, 0, 4)
	for _, t := range r.Tokens {
		if strings.TrimSpace(t.Value) == "" {
			continue
		}
		toks = append(toks, t)
	}
	return toks
}

// stateNamePosition points at the state's name rather than the keyword.
func stateNamePosition(st *grammar.State) errors.Position {
	p := position(st.Pos)
	p.Column += len("state ")
	return p
}

func position(p lexer.Position) errors.Position {
	return errors.Position{Line: p.Line, Column: p.Column}
}

func duplicateHeader(name string, p lexer.Position) errors.ConfigError {
	return errors.MalformedFile(fmt.Sprintf("duplicate '%s' header", name), position(p))
}

// parseDiagnostic converts a parser failure into a positioned diagnostic.
func parseDiagnostic(err error) errors.ConfigError {
	if perr, ok := err.(participle.Error); ok {
		return errors.MalformedFile(perr.Message(), position(perr.Position()))
	}
	return errors.MalformedFile(err.Error(), errors.Position{Line: 1, Column: 1})
}
