package secrets

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed resources/*.txt
var resources embed.FS

// MaxCustomFileBytes caps the size of a user-supplied secret file.
const MaxCustomFileBytes = 100 * 1024

// Origin records where a dictionary entry came from.
type Origin string

const (
	OriginDefault Origin = "default"
	OriginCustom  Origin = "custom"
)

// Entry is one candidate secret plus its provenance.
type Entry struct {
	Value  string
	Origin Origin
}

// Well-known list names. Modules ask the dictionary for the list(s) that
// match their secret category; custom entries are visible in every list.
const (
	ListSecrets     = "secrets"
	ListJWT         = "jwt_secrets"
	ListMachineKeys = "machinekeys"
	ListJSFKeys     = "jsf_keys"
	ListLaravelKeys = "laravel_keys"
)

// Dictionary maps list names to candidate secrets. Custom entries are kept
// separately so the defaults are never mutated; lookups see custom entries
// first so they shadow defaults of the same value.
type Dictionary struct {
	defaults map[string][]Entry
	custom   []Entry
}

// Default returns a dictionary populated from the embedded wordlists.
func Default() *Dictionary {
	d := &Dictionary{defaults: make(map[string][]Entry)}
	for _, name := range []string{ListSecrets, ListJWT, ListMachineKeys, ListJSFKeys, ListLaravelKeys} {
		b, err := resources.ReadFile("resources/" + name + ".txt")
		if err != nil {
			panic(fmt.Sprintf("secrets: missing embedded list %q: %v", name, err))
		}
		d.defaults[name] = parseLines(b, OriginDefault)
	}
	return d
}

// WithCustom returns a copy of d with extra entries layered on top. The
// receiver is left untouched.
func (d *Dictionary) WithCustom(entries []Entry) *Dictionary {
	nd := &Dictionary{defaults: d.defaults}
	nd.custom = append(append([]Entry{}, d.custom...), entries...)
	return nd
}

// List returns the entries for a named list, custom entries first, with
// duplicate values removed.
func (d *Dictionary) List(name string) []Entry {
	seen := make(map[string]bool)
	out := make([]Entry, 0, len(d.custom)+len(d.defaults[name]))
	for _, e := range d.custom {
		if !seen[e.Value] {
			seen[e.Value] = true
			out = append(out, e)
		}
	}
	for _, e := range d.defaults[name] {
		if !seen[e.Value] {
			seen[e.Value] = true
			out = append(out, e)
		}
	}
	return out
}

// HasCustom reports whether any custom entries are loaded.
func (d *Dictionary) HasCustom() bool { return len(d.custom) > 0 }

// LoadCustom reads user-supplied secret files. Each pattern may be a literal
// path or a doublestar glob. Files ending in .yml/.yaml must be a YAML list
// of strings (or a map with a "secrets" list); anything else is treated as
// one secret per line. Any unreadable or unparseable file fails the whole
// load: partial application would make scan results depend on file order.
func LoadCustom(patterns []string) ([]Entry, error) {
	var paths []string
	for _, pat := range patterns {
		if strings.ContainsAny(pat, "*?[{") {
			base, rest := doublestar.SplitPattern(pat)
			matches, err := doublestar.Glob(os.DirFS(base), rest)
			if err != nil {
				return nil, fmt.Errorf("bad secrets glob %q: %w", pat, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("secrets glob %q matched no files", pat)
			}
			for _, m := range matches {
				paths = append(paths, filepath.Join(base, m))
			}
			continue
		}
		paths = append(paths, pat)
	}

	var out []Entry
	for _, p := range paths {
		entries, err := loadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	return out, nil
}

func loadFile(path string) ([]Entry, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("custom secrets %s: %w", path, err)
	}
	if st.Size() > MaxCustomFileBytes {
		return nil, fmt.Errorf("custom secrets %s: exceeds %d byte limit", path, MaxCustomFileBytes)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("custom secrets %s: %w", path, err)
	}
	if bytes.ContainsRune(b, 0) {
		return nil, fmt.Errorf("custom secrets %s: binary content", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yml" || ext == ".yaml" {
		return parseYAML(path, b)
	}
	entries := parseLines(b, OriginCustom)
	if len(entries) == 0 {
		return nil, fmt.Errorf("custom secrets %s: no entries", path)
	}
	return entries, nil
}

func parseYAML(path string, b []byte) ([]Entry, error) {
	var list []string
	if err := yaml.Unmarshal(b, &list); err != nil {
		var doc struct {
			Secrets []string `yaml:"secrets"`
		}
		if err2 := yaml.Unmarshal(b, &doc); err2 != nil || len(doc.Secrets) == 0 {
			return nil, fmt.Errorf("custom secrets %s: not a YAML list of strings: %w", path, err)
		}
		list = doc.Secrets
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("custom secrets %s: no entries", path)
	}
	out := make([]Entry, 0, len(list))
	for _, s := range list {
		if s != "" {
			out = append(out, Entry{Value: s, Origin: OriginCustom})
		}
	}
	return out, nil
}

func parseLines(b []byte, origin Origin) []Entry {
	var out []Entry
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, Entry{Value: line, Origin: origin})
	}
	return out
}
