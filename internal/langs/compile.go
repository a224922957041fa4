package langs

import (
	goerrors "errors"
	"strings"

	"limn/internal/errors"
	"limn/internal/syntax"
	"limn/token"
)

// Language couples a compiled table with the registration metadata its
// definition file declared.
type Language struct {
	Table      *syntax.Table
	Extensions []string

	namePos errors.Position
	extPos  []errors.Position
}

// definitionSource is the format-independent view of a parsed definition:
// both the .limn and the YAML loader lower their input into one of these
// before validation, so every check and its position handling exists once.
type definitionSource struct {
	language    string
	languagePos errors.Position
	extensions  []string
	extPos      []errors.Position
	initial     string
	initialPos  errors.Position
	hasInitial  bool
	fallback    string
	states      []stateSource
}

type stateSource struct {
	name  string
	pos   errors.Position
	rules []ruleSource
}

type ruleSource struct {
	pattern    string
	pos        errors.Position
	patternLen int
	tag        string
	tagPos     errors.Position
	next       string
	nextPos    errors.Position
}

var conventionalTags = func() []string {
	tags := token.Conventional()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = string(t)
	}
	return names
}()

// compile validates a lowered definition and builds its table. Structural
// defects are collected exhaustively with their positions; pattern
// compilation is left to the engine and its errors are mapped back onto
// the source afterwards. Warnings ride along with a successful result.
func compile(src *definitionSource) (*Language, []errors.ConfigError) {
	var diags []errors.ConfigError

	if src.language == "" {
		diags = append(diags, errors.MissingLanguage(src.languagePos))
	}
	if len(src.states) == 0 {
		diags = append(diags, errors.EmptyDefinition(src.languagePos))
	}
	seenExts := make(map[string]bool)
	for i, ext := range src.extensions {
		if len(ext) < 2 || ext[0] != '.' {
			diags = append(diags, errors.BadExtension(ext, src.extPos[i]))
			continue
		}
		if seenExts[strings.ToLower(ext)] {
			diags = append(diags, errors.DuplicateExtension(ext, src.language, src.extPos[i]))
			continue
		}
		seenExts[strings.ToLower(ext)] = true
	}

	// First declaration of each state wins; later ones are reported and
	// dropped so the remaining checks see a consistent state set.
	declared := make(map[string]int)
	var states []stateSource
	var declaredNames []string
	for _, st := range src.states {
		if st.name == "" {
			diags = append(diags, errors.NewConfigError(
				errors.ErrorEmptyStateName, "state name is empty", st.pos).Build())
			continue
		}
		if firstLine, ok := declared[st.name]; ok {
			diags = append(diags, errors.DuplicateState(st.name, st.pos, firstLine))
			continue
		}
		declared[st.name] = st.pos.Line
		states = append(states, st)
		declaredNames = append(declaredNames, st.name)
	}

	initial := src.initial
	if initial == "" {
		initial = string(syntax.DefaultInitialState)
	}
	if _, ok := declared[initial]; !ok && len(states) > 0 {
		pos := src.initialPos
		if !src.hasInitial {
			pos = src.languagePos
		}
		diags = append(diags, errors.MissingInitialState(initial, pos, declaredNames))
	}

	warnedTags := make(map[string]bool)
	for _, st := range states {
		for i, r := range st.rules {
			if r.tag == "" {
				diags = append(diags, errors.EmptyTag(st.name, i, r.tagPos))
			} else if !isConventionalTag(r.tag) && !warnedTags[r.tag] {
				warnedTags[r.tag] = true
				diags = append(diags, errors.UnknownTag(r.tag, r.tagPos, conventionalTags))
			}
			if r.next != "" {
				if _, ok := declared[r.next]; !ok {
					diags = append(diags, errors.UnknownNextState(st.name, r.next, r.nextPos, declaredNames))
				}
			}
		}
	}

	if errors.HasErrors(diags) {
		return nil, diags
	}

	rules := make(syntax.Rules, len(states))
	for _, st := range states {
		list := make([]syntax.Rule, len(st.rules))
		for i, r := range st.rules {
			list[i] = syntax.Rule{Pattern: r.pattern, Tag: token.Tag(r.tag), Next: r.next}
		}
		rules[st.name] = list
	}

	opts := []syntax.Option{syntax.WithInitialState(syntax.StateID(initial))}
	if src.fallback != "" {
		opts = append(opts, syntax.WithFallbackTag(token.Tag(src.fallback)))
	}

	table, err := syntax.NewTable(src.language, rules, opts...)
	if err != nil {
		// Structure was proven sound above, so what remains is pattern
		// compilation failures.
		for _, de := range definitionErrors(err) {
			pos, length := rulePatternPos(states, de)
			diags = append(diags, errors.BadPattern(string(de.State), de.Rule, de.Err, pos, length))
		}
		return nil, diags
	}

	for _, name := range unreachableStates(states, initial) {
		diags = append(diags, errors.UnreachableState(name, statePos(states, name)))
	}

	return &Language{
		Table:      table,
		Extensions: src.extensions,
		namePos:    src.languagePos,
		extPos:     src.extPos,
	}, diags
}

func isConventionalTag(tag string) bool {
	for _, t := range conventionalTags {
		if t == tag {
			return true
		}
	}
	return false
}

// definitionErrors flattens the engine's joined validation error into its
// individual defects.
func definitionErrors(err error) []*syntax.DefinitionError {
	var list []*syntax.DefinitionError
	var collect func(error)
	collect = func(e error) {
		if multi, ok := e.(interface{ Unwrap() []error }); ok {
			for _, sub := range multi.Unwrap() {
				collect(sub)
			}
			return
		}
		var de *syntax.DefinitionError
		if goerrors.As(e, &de) {
			list = append(list, de)
		}
	}
	collect(err)
	return list
}

func rulePatternPos(states []stateSource, de *syntax.DefinitionError) (errors.Position, int) {
	for _, st := range states {
		if st.name != string(de.State) {
			continue
		}
		if de.Rule >= 0 && de.Rule < len(st.rules) {
			r := st.rules[de.Rule]
			return r.pos, r.patternLen
		}
		return st.pos, len(st.name)
	}
	return errors.Position{Line: 1, Column: 1}, 1
}

func statePos(states []stateSource, name string) errors.Position {
	for _, st := range states {
		if st.name == name {
			return st.pos
		}
	}
	return errors.Position{Line: 1, Column: 1}
}

// unreachableStates walks the transition graph from the initial state and
// returns every state, in declared order, that no chain of transitions can
// activate.
func unreachableStates(states []stateSource, initial string) []string {
	next := make(map[string][]string, len(states))
	for _, st := range states {
		for _, r := range st.rules {
			if r.next != "" {
				next[st.name] = append(next[st.name], r.next)
			}
		}
	}

	reached := map[string]bool{initial: true}
	work := []string{initial}
	for len(work) > 0 {
		cur := work[0]
		work = work[1:]
		for _, n := range next[cur] {
			if !reached[n] {
				reached[n] = true
				work = append(work, n)
			}
		}
	}

	var orphans []string
	for _, st := range states {
		if !reached[st.name] {
			orphans = append(orphans, st.name)
		}
	}
	return orphans
}
