package modules

import (
	"strings"
	"testing"

	"github.com/keyreaper/keyreaper/internal/secrets"
)

const flaskCookie = "eyJoZWxsbyI6IndvcmxkIn0.XKZueQ.6J2upr_oEShMpdzxTqnZ_kqYlUw"

func TestFlaskSignedCookieCheck(t *testing.T) {
	m := &FlaskSignedCookie{}
	r := m.Check([]string{flaskCookie}, secrets.Default())
	if r == nil {
		t.Fatalf("expected secret found")
	}
	if r.Secret != "CHANGEME" {
		t.Fatalf("wrong secret %q", r.Secret)
	}
	if !strings.Contains(r.Details, `"hello":"world"`) {
		t.Fatalf("session payload missing from details: %s", r.Details)
	}
}

func TestFlaskDoesNotClaimJWT(t *testing.T) {
	m := &FlaskSignedCookie{}
	if m.Identify(jwtHS256) {
		t.Fatalf("flask module should not identify a JWT")
	}
}

func TestFlaskUnknownSecret(t *testing.T) {
	m := &FlaskSignedCookie{}
	tampered := flaskCookie[:len(flaskCookie)-2] + "zz"
	if m.Check([]string{tampered}, secrets.Default()) != nil {
		t.Fatalf("expected no match for tampered signature")
	}
	if !m.Identify(tampered) {
		t.Fatalf("tampered cookie should still identify structurally")
	}
}
