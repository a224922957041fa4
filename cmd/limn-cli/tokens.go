package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"limn/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the token stream for a file",
	Long: `Print every token the rule table produces for a file, one per
line: line number, byte span, tag and matched text. Useful when writing or
debugging a language definition.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().StringP("lang", "l", "", "language name (default: by file extension)")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	reg := buildRegistry()
	lang, _ := cmd.Flags().GetString("lang")
	table, err := resolveTable(reg, path, lang)
	if err != nil {
		return err
	}

	state := table.InitialState()
	lines := strings.Split(strings.ReplaceAll(string(source), "\r\n", "\n"), "\n")
	for i, line := range lines {
		var toks []token.Token
		toks, state = table.TokenizeLine(line, state)
		for _, t := range toks {
			fmt.Printf("%4d:%-3d %-12s %q\n", i+1, t.Start, t.Tag, t.Text(line))
		}
	}
	return nil
}
