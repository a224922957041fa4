package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"limn/grammar"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <definition.limn>",
	Short: "Canonically format a definition file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "rewrite the file in place")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	def, err := grammar.Parse(path, string(source))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	formatted := grammar.Format(def)
	if write, _ := cmd.Flags().GetBool("write"); write {
		return os.WriteFile(path, []byte(formatted), 0o644)
	}
	fmt.Print(formatted)
	return nil
}
