package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[Definition](
	participle.Lexer(LimnLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses .limn definition source. The name labels error positions
// only; it is usually the file path.
func Parse(name, source string) (*Definition, error) {
	return parser.ParseString(name, source)
}

func ParseFile(path string) (*Definition, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(path, string(source))
}
