package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"limn/internal/errors"
	"limn/internal/langs"
)

var checkCmd = &cobra.Command{
	Use:   "check <definition>...",
	Short: "Validate language definition files",
	Long: `Compile each definition file and report every configuration error
with its position in the source. Warnings do not fail the check.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		source, _ := os.ReadFile(path)
		lang, diags := langs.Load(path)

		if len(diags) > 0 {
			fmt.Print(errors.NewErrorReporter(path, string(source)).FormatAll(diags))
		}
		if errors.HasErrors(diags) {
			failed++
			continue
		}

		color.Green("%s: ok (language %q, %d states, %d extensions)",
			path, lang.Table.Name(), len(lang.Table.States()), len(lang.Extensions))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d definitions failed validation", failed, len(args))
	}
	return nil
}
