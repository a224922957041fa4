package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"limn/internal/errors"
	"limn/internal/langs"
	"limn/internal/render"
	"limn/internal/syntax"
	"limn/token"
)

var (
	version = "dev"
	cfgFile string
	cfg     cliConfig
)

// cliConfig is the on-disk configuration: per-tag theme overrides, extra
// definition directories loaded into the registry at startup, and the
// language to assume when a file's extension is not registered.
type cliConfig struct {
	Theme       map[string]string `mapstructure:"theme"`
	Definitions []string          `mapstructure:"definitions"`
	Language    string            `mapstructure:"language"`
}

var rootCmd = &cobra.Command{
	Use:     "limn-cli",
	Short:   "Tokenize and highlight files with rule tables",
	Long: `Tokenize and highlight source files using table-driven language
definitions. Languages come from the built-in catalog plus any definition
directories listed in the configuration.`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/limn/config.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "limn"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// buildRegistry assembles the built-in catalog plus every definition
// directory from the configuration. Definitions that fail to compile are
// reported to stderr and skipped; they never block the rest.
func buildRegistry() *langs.Registry {
	reg := langs.Builtin()
	for _, dir := range cfg.Definitions {
		issues, err := langs.LoadDir(reg, expandHome(dir))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}
		reportLoadIssues(issues)
	}
	return reg
}

func reportLoadIssues(issues map[string][]errors.ConfigError) {
	paths := make([]string, 0, len(issues))
	for path := range issues {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		source, _ := os.ReadFile(path)
		fmt.Fprint(os.Stderr, errors.NewErrorReporter(path, string(source)).FormatAll(issues[path]))
	}
}

// activeTheme starts from the default theme and applies the config's
// per-tag overrides.
func activeTheme() render.Theme {
	theme := render.DefaultTheme()
	for tag, style := range cfg.Theme {
		c, err := render.ParseStyle(style)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: theme.%s: %v\n", tag, err)
			continue
		}
		theme[token.Tag(tag)] = c
	}
	return theme
}

// resolveTable picks the table for a file: the explicit flag wins, then
// the extension, then the configured default language.
func resolveTable(reg *langs.Registry, path, lang string) (*syntax.Table, error) {
	if lang != "" {
		if t, ok := reg.Lookup(lang); ok {
			return t, nil
		}
		return nil, fmt.Errorf("unknown language %q (available: %s)",
			lang, strings.Join(reg.Names(), ", "))
	}
	if t, ok := reg.ForFilename(path); ok {
		return t, nil
	}
	if cfg.Language != "" {
		if t, ok := reg.Lookup(cfg.Language); ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("no language registered for %q (try --lang, available: %s)",
		filepath.Ext(path), strings.Join(reg.Names(), ", "))
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
