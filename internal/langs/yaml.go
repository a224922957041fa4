package langs

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"limn/internal/errors"
)

// FromYAML compiles a YAML language definition. The document is walked as
// a node tree rather than decoded into a struct so each diagnostic can
// point at the exact line and column it came from, and so unknown fields
// are rejected instead of silently dropped.
func FromYAML(data []byte) (*Language, []errors.ConfigError) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, []errors.ConfigError{yamlDiagnostic(err)}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, []errors.ConfigError{errors.EmptyDefinition(errors.Position{Line: 1, Column: 1})}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, []errors.ConfigError{errors.MalformedFile(
			"definition must be a mapping of fields", nodePosition(root))}
	}

	var diags []errors.ConfigError
	src := &definitionSource{languagePos: errors.Position{Line: 1, Column: 1}}
	seen := make(map[string]bool)

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if seen[key.Value] {
			diags = append(diags, errors.MalformedFile(
				fmt.Sprintf("duplicate '%s' field", key.Value), nodePosition(key)))
			continue
		}
		seen[key.Value] = true

		switch key.Value {
		case "language":
			if s, ok := scalarValue(value); ok {
				src.language = s
				src.languagePos = nodePosition(value)
			} else {
				diags = append(diags, expectedScalar("language", value))
			}

		case "extensions":
			if value.Kind != yaml.SequenceNode {
				diags = append(diags, errors.MalformedFile(
					"'extensions' must be a list", nodePosition(value)))
				continue
			}
			for _, ext := range value.Content {
				if s, ok := scalarValue(ext); ok {
					src.extensions = append(src.extensions, s)
					src.extPos = append(src.extPos, nodePosition(ext))
				} else {
					diags = append(diags, expectedScalar("extension", ext))
				}
			}

		case "initial":
			if s, ok := scalarValue(value); ok {
				src.hasInitial = true
				src.initial = s
				src.initialPos = nodePosition(value)
			} else {
				diags = append(diags, expectedScalar("initial", value))
			}

		case "fallback":
			if s, ok := scalarValue(value); ok {
				src.fallback = s
			} else {
				diags = append(diags, expectedScalar("fallback", value))
			}

		case "states":
			states, sdiags := lowerYAMLStates(value)
			src.states = append(src.states, states...)
			diags = append(diags, sdiags...)

		default:
			diags = append(diags, errors.MalformedFile(
				fmt.Sprintf("unknown field '%s'", key.Value), nodePosition(key)))
		}
	}

	lang, cdiags := compile(src)
	diags = append(diags, cdiags...)
	if errors.HasErrors(diags) {
		return nil, diags
	}
	return lang, diags
}

// lowerYAMLStates walks the states mapping. yaml.v3 keeps repeated mapping
// keys in the node tree, so duplicate state names survive to this point
// and are reported by the shared validation pass.
func lowerYAMLStates(node *yaml.Node) ([]stateSource, []errors.ConfigError) {
	if node.Kind != yaml.MappingNode {
		return nil, []errors.ConfigError{errors.MalformedFile(
			"'states' must be a mapping of state names to rule lists", nodePosition(node))}
	}

	var states []stateSource
	var diags []errors.ConfigError
	for i := 0; i+1 < len(node.Content); i += 2 {
		nameNode, rulesNode := node.Content[i], node.Content[i+1]
		st := stateSource{name: nameNode.Value, pos: nodePosition(nameNode)}
		if rulesNode.Kind != yaml.SequenceNode {
			diags = append(diags, errors.MalformedFile(
				fmt.Sprintf("state '%s' must hold a list of rules", nameNode.Value),
				nodePosition(rulesNode)))
			states = append(states, st)
			continue
		}
		for _, ruleNode := range rulesNode.Content {
			rule, rdiags := lowerYAMLRule(nameNode.Value, ruleNode)
			diags = append(diags, rdiags...)
			if rule != nil {
				st.rules = append(st.rules, *rule)
			}
		}
		states = append(states, st)
	}
	return states, diags
}

func lowerYAMLRule(state string, node *yaml.Node) (*ruleSource, []errors.ConfigError) {
	if node.Kind != yaml.MappingNode {
		return nil, []errors.ConfigError{errors.MalformedFile(
			fmt.Sprintf("rule in state '%s' must be a mapping", state), nodePosition(node))}
	}

	var diags []errors.ConfigError
	rule := &ruleSource{
		pos:     nodePosition(node),
		tagPos:  nodePosition(node),
		nextPos: nodePosition(node),
	}
	hasPattern := false

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		s, scalar := scalarValue(value)
		switch key.Value {
		case "pattern":
			if !scalar {
				diags = append(diags, expectedScalar("pattern", value))
				continue
			}
			hasPattern = true
			rule.pattern = s
			rule.pos = nodePosition(value)
			rule.patternLen = max(len(s), 1)
		case "tag":
			if !scalar {
				diags = append(diags, expectedScalar("tag", value))
				continue
			}
			rule.tag = s
			rule.tagPos = nodePosition(value)
		case "next":
			if !scalar {
				diags = append(diags, expectedScalar("next", value))
				continue
			}
			rule.next = s
			rule.nextPos = nodePosition(value)
		default:
			diags = append(diags, errors.MalformedFile(
				fmt.Sprintf("unknown rule field '%s'", key.Value), nodePosition(key)))
		}
	}

	if !hasPattern {
		diags = append(diags, errors.MalformedFile(
			fmt.Sprintf("rule in state '%s' is missing its pattern", state), nodePosition(node)))
		return nil, diags
	}
	return rule, diags
}

func scalarValue(n *yaml.Node) (string, bool) {
	return n.Value, n.Kind == yaml.ScalarNode
}

func nodePosition(n *yaml.Node) errors.Position {
	return errors.Position{Line: n.Line, Column: n.Column}
}

func expectedScalar(field string, n *yaml.Node) errors.ConfigError {
	return errors.MalformedFile(fmt.Sprintf("'%s' must be a string", field), nodePosition(n))
}

// yamlDiagnostic recovers a line number from the decoder's message, which
// is the only place yaml.v3 reports one for syntax errors.
func yamlDiagnostic(err error) errors.ConfigError {
	msg := err.Error()
	pos := errors.Position{Line: 1, Column: 1}
	if rest, ok := strings.CutPrefix(msg, "yaml: line "); ok {
		if num, tail, found := strings.Cut(rest, ":"); found {
			if line, convErr := strconv.Atoi(num); convErr == nil {
				pos.Line = line
				msg = strings.TrimSpace(tail)
			}
		}
	}
	return errors.MalformedFile(msg, pos)
}
