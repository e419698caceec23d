package modules

import (
	"testing"
)

func TestDefaultRegistryOrderIsStable(t *testing.T) {
	a := Default().All()
	b := Default().All()
	if len(a) == 0 {
		t.Fatalf("expected built-in modules")
	}
	for i := range a {
		if a[i].Name() != b[i].Name() {
			t.Fatalf("registration order not deterministic at %d: %s vs %s", i, a[i].Name(), b[i].Name())
		}
	}
}

func TestRegistryGet(t *testing.T) {
	r := Default()
	if _, ok := r.Get("jwt_hmac"); !ok {
		t.Fatalf("expected jwt_hmac to be registered")
	}
	if _, ok := r.Get("nope"); ok {
		t.Fatalf("unexpected module")
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()
	New(&JWTHMAC{}, &JWTHMAC{})
}

func TestDescriptionsComplete(t *testing.T) {
	for _, m := range Default().All() {
		d := m.Description()
		if m.Name() == "" || d.Product == "" || d.Secret == "" {
			t.Fatalf("module %q has an incomplete descriptor", m.Name())
		}
	}
}
