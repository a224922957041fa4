package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// Format renders a definition in canonical form: headers in declared
// order, one rule per line, four-space indents, a blank line before each
// state block. Comments stay where they were written.
func Format(d *Definition) string {
	return d.String()
}

func (d *Definition) String() string {
	var b strings.Builder
	for i, decl := range d.Decls {
		if decl.State != nil && i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(decl.String())
	}
	return b.String()
}

func (d *Decl) String() string {
	switch {
	case d.Comment != nil:
		return d.Comment.String() + "\n"
	case d.Language != nil:
		return fmt.Sprintf("language %s\n", d.Language.Name)
	case d.Extensions != nil:
		return fmt.Sprintf("extensions %s\n", strings.Join(d.Extensions.Exts, " "))
	case d.Initial != nil:
		return fmt.Sprintf("initial %s\n", d.Initial.State)
	case d.Fallback != nil:
		return fmt.Sprintf("fallback %s\n", d.Fallback.Tag)
	case d.State != nil:
		return d.State.StringWithIndent(0)
	}
	return ""
}

func (c *Comment) String() string {
	return c.Text
}

func (s *State) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%sstate %s {\n", indent(level), s.Name))
	for _, e := range s.Entries {
		b.WriteString(indent(level+1) + e.String() + "\n")
	}
	b.WriteString(indent(level) + "}\n")
	return b.String()
}

func (e *StateEntry) String() string {
	if e.Comment != nil {
		return e.Comment.String()
	}
	return e.Rule.String()
}

func (r *RuleDecl) String() string {
	if r.Next != "" {
		return fmt.Sprintf("%s %s -> %s", r.Regex, r.Tag, r.Next)
	}
	return fmt.Sprintf("%s %s", r.Regex, r.Tag)
}
