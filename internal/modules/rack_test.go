package modules

import (
	"strings"
	"testing"

	"github.com/keyreaper/keyreaper/internal/secrets"
)

const rackCookie = "eyJzZXNzaW9uX2lkIjoiYWJjMTIzIn0=--347218c5c33fbb0a018d4a11671851cfd04f933f"

func TestRackSignedCookieCheck(t *testing.T) {
	m := &RackSignedCookie{}
	r := m.Check([]string{rackCookie}, secrets.Default())
	if r == nil {
		t.Fatalf("expected secret found")
	}
	if r.Secret != "super secret" {
		t.Fatalf("wrong secret %q", r.Secret)
	}
	if !strings.Contains(r.Details, "session_id") {
		t.Fatalf("decoded session missing from details: %s", r.Details)
	}
}

func TestRackUnmatched(t *testing.T) {
	m := &RackSignedCookie{}
	tampered := strings.Replace(rackCookie, "347218", "000000", 1)
	if m.Check([]string{tampered}, secrets.Default()) != nil {
		t.Fatalf("expected no match for tampered digest")
	}
	if !m.Identify(tampered) {
		t.Fatalf("tampered cookie should still identify structurally")
	}
}
