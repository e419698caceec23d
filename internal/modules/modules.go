// Package modules holds the detection modules and their registry. Each
// module knows one cryptographic token format: how to recognize it, how to
// try known secrets against it, and which offline-cracking commands apply.
package modules

import (
	"fmt"
	"regexp"

	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

// Module is the capability contract every detector implements.
type Module interface {
	// Name returns the unique module identifier.
	Name() string
	// Description returns the product and secret categories.
	Description() types.ProductInfo
	// Identify reports whether value structurally looks like this
	// module's token format, regardless of whether any secret verifies.
	Identify(value string) bool
	// Check tries every dictionary entry against the candidate values and
	// returns a SecretFound result on the first verification, or nil.
	// A value count the module cannot use returns nil (skip, not error).
	Check(values []string, dict *secrets.Dictionary) *types.DetectionResult
	// CarveTargets describes where in an HTTP response this module's
	// tokens are found.
	CarveTargets() CarveTargets
	// HashcatCommands returns cracking command templates with value
	// substituted in, or nil when the format has no hashcat support.
	HashcatCommands(value string) []types.HashcatCandidate
}

// CarveTargets lists the response locations a module's carver inspects.
// Body regexes may carry capture groups; when present, the submatches become
// the candidate values passed to Check (supporting multi-value modules).
type CarveTargets struct {
	// CookieNames are exact cookie names whose values are candidates.
	CookieNames []string
	// CookieValue, when set, makes any cookie whose value matches a
	// candidate regardless of its name.
	CookieValue *regexp.Regexp
	// HeaderNames are header names whose values are candidates.
	HeaderNames []string
	// Body regexes are run against the response body.
	Body []*regexp.Regexp
}

// Registry is an ordered, constructed-once collection of modules.
// Registration order is the tie-break order for matching.
type Registry struct {
	ordered []Module
	byName  map[string]Module
}

// New builds a registry from the given modules. Duplicate names are a
// configuration error and panic at startup.
func New(mods ...Module) *Registry {
	r := &Registry{byName: make(map[string]Module, len(mods))}
	for _, m := range mods {
		if _, dup := r.byName[m.Name()]; dup {
			panic(fmt.Sprintf("modules: duplicate registration of %q", m.Name()))
		}
		r.byName[m.Name()] = m
		r.ordered = append(r.ordered, m)
	}
	return r
}

// Default returns the registry of all built-in modules in their fixed order.
func Default() *Registry {
	return New(
		&ASPNetViewstate{},
		&JSFViewstate{},
		&FlaskSignedCookie{},
		&DjangoSignedCookie{},
		&ExpressSignedCookie{},
		&RackSignedCookie{},
		&LaravelSignedCookie{},
		&JWTHMAC{},
		&SymfonySignedURL{},
		&TelerikHashKey{},
	)
}

// All returns the modules in registration order.
func (r *Registry) All() []Module {
	return r.ordered
}

// Get looks a module up by name.
func (r *Registry) Get(name string) (Module, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// found builds a SecretFound result for a module. Location is filled in by
// the engine, which knows where the value came from.
func found(m Module, token, secret, details string) *types.DetectionResult {
	return &types.DetectionResult{
		Kind:            types.KindSecretFound,
		DetectingModule: m.Name(),
		Description:     m.Description(),
		Product:         token,
		Secret:          secret,
		Details:         details,
	}
}
