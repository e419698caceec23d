package core

import (
	"github.com/keyreaper/keyreaper/internal/engine"
	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type DetectionResult = types.DetectionResult
type HashcatCandidate = types.HashcatCandidate
type Response = types.Response
type ProductInfo = types.ProductInfo

const (
	SecretFound       = types.KindSecretFound
	ProductIdentified = types.KindProductIdentified
)

// CheckAllModules checks candidate values against every built-in module.
// customSecrets may list secret files or glob patterns; a malformed file
// fails the call before any detection runs.
func CheckAllModules(values []string, customSecrets ...string) (*DetectionResult, error) {
	e, err := build(customSecrets)
	if err != nil {
		return nil, err
	}
	return e.CheckAllModules(values...)
}

// CarveAllModules scans an HTTP response for embeddable tokens.
func CarveAllModules(resp *Response, customSecrets ...string) ([]DetectionResult, error) {
	e, err := build(customSecrets)
	if err != nil {
		return nil, err
	}
	return e.CarveAllModules(resp), nil
}

// HashcatAllModules returns cracking command templates for a product
// identifier or raw token.
func HashcatAllModules(identifier string) []HashcatCandidate {
	return engine.New(nil).HashcatAllModules(identifier)
}

// ModuleNames lists the built-in modules in registration order.
func ModuleNames() []string {
	var names []string
	for _, m := range engine.New(nil).Registry().All() {
		names = append(names, m.Name())
	}
	return names
}

func build(customSecrets []string) (*engine.Engine, error) {
	if len(customSecrets) == 0 {
		return engine.New(nil), nil
	}
	entries, err := secrets.LoadCustom(customSecrets)
	if err != nil {
		return nil, err
	}
	return engine.New(nil, engine.WithCustomSecrets(entries)), nil
}
