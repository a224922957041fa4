package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List registered languages and their extensions",
	Args:  cobra.NoArgs,
	RunE:  runLangs,
}

func init() {
	rootCmd.AddCommand(langsCmd)
}

func runLangs(cmd *cobra.Command, args []string) error {
	reg := buildRegistry()
	for _, name := range reg.Names() {
		fmt.Printf("%-8s %s\n", name, strings.Join(reg.Extensions(name), " "))
	}
	return nil
}
