package modules

import (
	"testing"

	"github.com/keyreaper/keyreaper/internal/secrets"
)

const expressCookie = "s:foo.76RrO0t1oL7AidII1OjH3iZCM6d0WH2GTCWnWuRqVdQ"

func TestExpressSignedCookieCheck(t *testing.T) {
	m := &ExpressSignedCookie{}
	r := m.Check([]string{expressCookie}, secrets.Default())
	if r == nil {
		t.Fatalf("expected secret found")
	}
	if r.Secret != "keyboard cat" {
		t.Fatalf("wrong secret %q", r.Secret)
	}
}

func TestExpressURLEncoded(t *testing.T) {
	m := &ExpressSignedCookie{}
	encoded := "s%3Afoo.76RrO0t1oL7AidII1OjH3iZCM6d0WH2GTCWnWuRqVdQ"
	if !m.Identify(encoded) {
		t.Fatalf("expected url-encoded cookie to identify")
	}
	if m.Check([]string{encoded}, secrets.Default()) == nil {
		t.Fatalf("expected url-encoded cookie to verify")
	}
}

func TestExpressUnmatched(t *testing.T) {
	m := &ExpressSignedCookie{}
	if m.Check([]string{"s:foo.AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"}, secrets.Default()) != nil {
		t.Fatalf("expected no match for bad signature")
	}
}
