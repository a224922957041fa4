package langs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"limn/internal/errors"
)

// Load reads and compiles a single definition file, dispatching on its
// extension: .limn for the native format, .yaml or .yml for YAML.
func Load(path string) (*Language, []errors.ConfigError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []errors.ConfigError{errors.UnreadableFile(path, err)}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".limn":
		return ParseDSL(path, string(data))
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return nil, []errors.ConfigError{errors.MalformedFile(
			fmt.Sprintf("'%s' is not a definition file (expected .limn, .yaml or .yml)", filepath.Base(path)),
			errors.Position{Line: 1, Column: 1})}
	}
}

// LoadDir compiles every definition file in dir and registers the ones
// that compiled cleanly. One broken file never blocks the rest. The
// returned map carries each file's diagnostics keyed by path, including
// warnings from files that did register; the error is reserved for an
// unreadable directory.
func LoadDir(reg *Registry, dir string) (map[string][]errors.ConfigError, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".limn", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	// os.ReadDir already sorts, but the registration order is part of the
	// first-come-first-served contract, so spell it out.
	sort.Strings(names)

	issues := make(map[string][]errors.ConfigError)
	for _, name := range names {
		path := filepath.Join(dir, name)
		lang, diags := Load(path)
		if lang != nil {
			if conflicts := registrationConflicts(reg, lang); len(conflicts) > 0 {
				diags = append(diags, conflicts...)
			} else if err := reg.Register(lang.Table, lang.Extensions...); err != nil {
				diags = append(diags, errors.MalformedFile(err.Error(), lang.namePos))
			}
		}
		if len(diags) > 0 {
			issues[path] = diags
		}
	}
	return issues, nil
}

// registrationConflicts reports, with positions inside the definition,
// why registering lang would fail. The registry's own errors are plain
// strings, so the check runs here where the source positions still exist.
func registrationConflicts(reg *Registry, lang *Language) []errors.ConfigError {
	var diags []errors.ConfigError
	name := lang.Table.Name()
	if _, ok := reg.Lookup(name); ok {
		diags = append(diags, errors.DuplicateLanguage(name, lang.namePos))
	}
	for i, ext := range lang.Extensions {
		owner, ok := reg.extensionOwner(ext)
		if !ok {
			continue
		}
		pos := lang.namePos
		if i < len(lang.extPos) {
			pos = lang.extPos[i]
		}
		diags = append(diags, errors.DuplicateExtension(ext, owner, pos))
	}
	return diags
}
