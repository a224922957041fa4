// Package langs holds the built-in language tables, the registry that
// maps language names and file extensions to tables, and the loaders that
// compile external .limn and YAML definitions.
package langs

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"limn/internal/syntax"
)

// Registry is a caller-owned catalog of compiled tables. There is no
// package-level registry: whoever assembles the program decides which
// languages exist, starting from Builtin() or from an empty one.
type Registry struct {
	tables map[string]*syntax.Table
	exts   map[string]string // extension -> language name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[string]*syntax.Table),
		exts:   make(map[string]string),
	}
}

// Register adds a table under its own name and claims the given file
// extensions for it. Names and extensions are first-come-first-served;
// a duplicate of either is an error and leaves the registry unchanged.
func (r *Registry) Register(t *syntax.Table, exts ...string) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("table has no language name")
	}
	if _, ok := r.tables[name]; ok {
		return fmt.Errorf("language %q is already registered", name)
	}

	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
		if owner, ok := r.exts[ext]; ok {
			return fmt.Errorf("extension %q is already registered for %q", ext, owner)
		}
		normalized = append(normalized, ext)
	}

	r.tables[name] = t
	for _, ext := range normalized {
		r.exts[ext] = name
	}
	return nil
}

// Lookup returns the table registered under name.
func (r *Registry) Lookup(name string) (*syntax.Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// ForFilename returns the table claimed for the path's extension.
func (r *Registry) ForFilename(path string) (*syntax.Table, bool) {
	name, ok := r.exts[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, false
	}
	return r.Lookup(name)
}

// extensionOwner reports which language, if any, has claimed ext.
func (r *Registry) extensionOwner(ext string) (string, bool) {
	owner, ok := r.exts[strings.ToLower(ext)]
	return owner, ok
}

// Names returns the registered language names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extensions returns the extensions claimed for a language, sorted.
func (r *Registry) Extensions(name string) []string {
	var exts []string
	for ext, owner := range r.exts {
		if owner == name {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// Builtin creates a fresh registry holding the compiled-in languages.
func Builtin() *Registry {
	reg := NewRegistry()
	for _, b := range []struct {
		table *syntax.Table
		exts  []string
	}{
		{CSS(), []string{".css", ".scss"}},
		{JSON(), []string{".json"}},
		{HTML(), []string{".html", ".htm"}},
		{Limn(), []string{".limn"}},
	} {
		if err := reg.Register(b.table, b.exts...); err != nil {
			panic(err)
		}
	}
	return reg
}
