package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

type Definition struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Decls  []*Decl `parser:"@@*"`
}

type Decl struct {
	Comment    *Comment    `parser:"  @@"`
	Language   *Language   `parser:"| @@"`
	Extensions *Extensions `parser:"| @@"`
	Initial    *Initial    `parser:"| @@"`
	Fallback   *Fallback   `parser:"| @@"`
	State      *State      `parser:"| @@"`
}

type Comment struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Text   string `parser:"@Comment"`
}

type Language struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `parser:"\"language\" @Ident"`
}

type Extensions struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Exts   []string `parser:"\"extensions\" @Ext+"`
}

type Initial struct {
	Pos    lexer.Position
	EndPos lexer.Position
	State  string `parser:"\"initial\" @Ident"`
}

type Fallback struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Tag    string `parser:"\"fallback\" @Ident"`
}

type State struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Name    string        `parser:"\"state\" @Ident \"{\""`
	Entries []*StateEntry `parser:"@@* \"}\""`
}

type StateEntry struct {
	Comment *Comment  `parser:"  @@"`
	Rule    *RuleDecl `parser:"| @@"`
}

type RuleDecl struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Tokens []lexer.Token
	Regex  string `parser:"@Regex"`
	Tag    string `parser:"@Ident"`
	Next   string `parser:"[ \"->\" @Ident ]"`
}

// Pattern strips the slash delimiters from the rule's regex and resolves
// the \/ escape. All other escapes belong to the pattern itself and pass
// through untouched.
func (r *RuleDecl) Pattern() string {
	body := strings.TrimSuffix(strings.TrimPrefix(r.Regex, "/"), "/")
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) && body[i+1] == '/' {
			b.WriteByte('/')
			i++
			continue
		}
		b.WriteByte(body[i])
	}
	return b.String()
}

// Rules returns the definition's rules keyed by state, in declared order,
// with comments dropped.
func (d *Definition) Rules() map[string][]*RuleDecl {
	out := make(map[string][]*RuleDecl)
	for _, decl := range d.Decls {
		if decl.State == nil {
			continue
		}
		var rules []*RuleDecl
		for _, e := range decl.State.Entries {
			if e.Rule != nil {
				rules = append(rules, e.Rule)
			}
		}
		out[decl.State.Name] = rules
	}
	return out
}

// Language returns the declared language name, or "" when the header is
// missing.
func (d *Definition) Language() string {
	for _, decl := range d.Decls {
		if decl.Language != nil {
			return decl.Language.Name
		}
	}
	return ""
}

// Extensions returns every declared extension in order.
func (d *Definition) Extensions() []string {
	var exts []string
	for _, decl := range d.Decls {
		if decl.Extensions != nil {
			exts = append(exts, decl.Extensions.Exts...)
		}
	}
	return exts
}

// Initial returns the declared initial state, or "" for the default.
func (d *Definition) Initial() string {
	for _, decl := range d.Decls {
		if decl.Initial != nil {
			return decl.Initial.State
		}
	}
	return ""
}

// Fallback returns the declared fallback tag, or "" for the default.
func (d *Definition) Fallback() string {
	for _, decl := range d.Decls {
		if decl.Fallback != nil {
			return decl.Fallback.Tag
		}
	}
	return ""
}

// States returns the state blocks in declared order.
func (d *Definition) States() []*State {
	var states []*State
	for _, decl := range d.Decls {
		if decl.State != nil {
			states = append(states, decl.State)
		}
	}
	return states
}
