// Package engine wires the module registry and a secret dictionary into the
// three scan operations: check, carve, and hashcat advice.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/keyreaper/keyreaper/internal/modules"
	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

// LocationManual marks results for values supplied directly by the caller
// rather than carved out of a response.
const LocationManual = "manual"

// ErrNoCandidates is returned when the checker is called with nothing to
// check.
var ErrNoCandidates = errors.New("engine: no candidate values supplied")

// Engine runs detections against a fixed registry and dictionary. It holds
// no mutable state; one Engine is safe to reuse across scans.
type Engine struct {
	registry *modules.Registry
	dict     *secrets.Dictionary
}

// Option configures an Engine.
type Option func(*Engine)

// WithDictionary replaces the default secret dictionary.
func WithDictionary(d *secrets.Dictionary) Option {
	return func(e *Engine) { e.dict = d }
}

// WithCustomSecrets layers user-supplied secret entries over the defaults.
func WithCustomSecrets(entries []secrets.Entry) Option {
	return func(e *Engine) { e.dict = e.dict.WithCustom(entries) }
}

// New builds an Engine over the given registry. A nil registry means the
// default built-in module set.
func New(reg *modules.Registry, opts ...Option) *Engine {
	if reg == nil {
		reg = modules.Default()
	}
	e := &Engine{registry: reg, dict: secrets.Default()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Registry exposes the engine's module registry.
func (e *Engine) Registry() *modules.Registry { return e.registry }

// CheckAllModules tries every module in registration order against the
// candidate values and returns the first SecretFound result, or nil when no
// module matches. Modules that cannot use the given value count skip
// themselves; they never abort the scan.
func (e *Engine) CheckAllModules(values ...string) (*types.DetectionResult, error) {
	if len(values) == 0 {
		return nil, ErrNoCandidates
	}
	for _, m := range e.registry.All() {
		if r := m.Check(values, e.dict); r != nil {
			r.Location = LocationManual
			return r, nil
		}
	}
	return nil, nil
}

// CarveAllModules scans an HTTP response for embeddable tokens. Every module
// inspects its declared locations (cookies, headers, body patterns); each
// extracted candidate yields at most one result: SecretFound when a
// dictionary entry verifies it, ProductIdentified when only the structure
// matches. The returned slice is empty, never nil, on a clean scan.
func (e *Engine) CarveAllModules(resp *types.Response) []types.DetectionResult {
	results := []types.DetectionResult{}
	if resp == nil {
		return results
	}
	seen := make(map[string]bool) // module|location dedupe

	emit := func(m modules.Module, location string, values ...string) {
		key := m.Name() + "|" + location
		if seen[key] {
			return
		}
		if r := m.Check(values, e.dict); r != nil {
			r.Location = location
			seen[key] = true
			results = append(results, *r)
			return
		}
		if len(values) > 0 && m.Identify(values[0]) {
			seen[key] = true
			results = append(results, types.DetectionResult{
				Kind:            types.KindProductIdentified,
				DetectingModule: m.Name(),
				Description:     m.Description(),
				Product:         values[0],
				Location:        location,
			})
		}
	}

	cookieNames := sortedKeys(resp.Cookies)
	headerNames := sortedKeys(resp.Headers)

	// Cookies, then headers, then body; modules in registration order
	// within each location so output order is deterministic.
	for _, name := range cookieNames {
		value := resp.Cookies[name]
		for _, m := range e.registry.All() {
			t := m.CarveTargets()
			if matchesName(t.CookieNames, name) || (t.CookieValue != nil && t.CookieValue.MatchString(value)) {
				emit(m, "Cookie: "+name, value)
			}
		}
	}
	for _, name := range headerNames {
		value := resp.Headers[name]
		for _, m := range e.registry.All() {
			if matchesName(m.CarveTargets().HeaderNames, name) {
				emit(m, "Header: "+name, value)
			}
		}
	}
	for _, m := range e.registry.All() {
		for _, re := range m.CarveTargets().Body {
			match := re.FindStringSubmatch(resp.Body)
			if match == nil {
				continue
			}
			values := submatchValues(match)
			emit(m, "Body", values...)
		}
	}
	return results
}

// HashcatAllModules returns cracking command templates for the given product
// identifier: a module name, a product descriptor, or a raw token the
// modules can structurally identify. Absence of a mapping is an empty
// slice, never an error.
func (e *Engine) HashcatAllModules(identifier string) []types.HashcatCandidate {
	out := []types.HashcatCandidate{}
	id := strings.ToLower(strings.TrimSpace(identifier))
	for _, m := range e.registry.All() {
		desc := m.Description()
		if id == strings.ToLower(m.Name()) ||
			id == strings.ToLower(desc.Product) ||
			m.Identify(identifier) {
			out = append(out, m.HashcatCommands(identifier)...)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func matchesName(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// submatchValues turns a regex match into candidate values: capture groups
// when present (dropping empty optional ones), the whole match otherwise.
func submatchValues(match []string) []string {
	if len(match) == 1 {
		return []string{match[0]}
	}
	var values []string
	for _, g := range match[1:] {
		if g != "" {
			values = append(values, g)
		}
	}
	if len(values) == 0 {
		values = []string{match[0]}
	}
	return values
}

// LoadCustomSecrets parses user-supplied secret sources into dictionary
// entries. Any malformed source fails the whole load before detection runs.
func LoadCustomSecrets(patterns []string) ([]secrets.Entry, error) {
	entries, err := secrets.LoadCustom(patterns)
	if err != nil {
		return nil, fmt.Errorf("loading custom secrets: %w", err)
	}
	return entries, nil
}
