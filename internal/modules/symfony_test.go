package modules

import (
	"testing"

	"github.com/keyreaper/keyreaper/internal/secrets"
)

const symfonyURL = "http://localhost/_fragment?_path=_controller%3Dphpcredits%26flags%3D-1&_hash=Wuo6aiUwL1mx9xZKq5GLEb44mp9pVGVC5D/ioKwpfUk="

func TestSymfonySignedURLCheck(t *testing.T) {
	m := &SymfonySignedURL{}
	r := m.Check([]string{symfonyURL}, secrets.Default())
	if r == nil {
		t.Fatalf("expected secret found")
	}
	if r.Secret != "ThisTokenIsNotSoSecretChangeIt" {
		t.Fatalf("wrong secret %q", r.Secret)
	}
}

func TestSymfonyUnmatched(t *testing.T) {
	m := &SymfonySignedURL{}
	if m.Check([]string{"http://localhost/?q=1"}, secrets.Default()) != nil {
		t.Fatalf("expected no match for url without fragment hash")
	}
	tampered := symfonyURL[:len(symfonyURL)-5] + "AAAA="
	if m.Check([]string{tampered}, secrets.Default()) != nil {
		t.Fatalf("expected no match for tampered hash")
	}
}
