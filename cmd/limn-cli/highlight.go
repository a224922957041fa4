package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"limn/internal/document"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <file>",
	Short: "Render a file to the terminal with ANSI colors",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlight,
}

func init() {
	highlightCmd.Flags().StringP("lang", "l", "", "language name (default: by file extension)")
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
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

	theme := activeTheme()
	doc := document.New(table, string(source))

	// A trailing newline in the file shows up as one final empty line;
	// printing it would add a blank line the file does not have.
	lineCount := doc.LineCount()
	if lineCount > 0 && doc.Line(lineCount-1) == "" {
		lineCount--
	}

	total := 0
	for i := 0; i < lineCount; i++ {
		toks := doc.Tokens(i)
		total += len(toks)
		fmt.Println(theme.Line(doc.Line(i), toks))
	}

	color.Green("Highlighted %s (%d lines, %d tokens) in %s",
		path, lineCount, total, formatDuration(time.Since(startTime)))
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
