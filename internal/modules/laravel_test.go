package modules

import (
	"testing"

	"github.com/keyreaper/keyreaper/internal/secrets"
)

const laravelCookie = "eyJpdiI6Ik1ERXlNelExTmpjNE9XRmlZMlJsWmc9PSIsInZhbHVlIjoiWlc1amNubHdkR1ZrY0dGNWJHOWhaR1Z1WTNKNWNIUmxaRjl3WVdRaElTRT0iLCJtYWMiOiJhOWNmYmMzZjRkZWYxNDhmNGM2ZGU1NzRlMGNmYTQwODdjZmVlNThmNDY5N2QxYzc2ZmNmMjg1Y2IxZTU1YTI5In0="

func TestLaravelSignedCookieCheck(t *testing.T) {
	m := &LaravelSignedCookie{}
	r := m.Check([]string{laravelCookie}, secrets.Default())
	if r == nil {
		t.Fatalf("expected secret found")
	}
	if r.Secret != "base64:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=" {
		t.Fatalf("wrong APP_KEY %q", r.Secret)
	}
}

func TestLaravelIdentify(t *testing.T) {
	m := &LaravelSignedCookie{}
	if !m.Identify(laravelCookie) {
		t.Fatalf("expected envelope to identify")
	}
	if m.Identify("just a plain string that is quite long but clearly not base64 json at all!") {
		t.Fatalf("non-envelope should not identify")
	}
}

func TestLaravelUnmatched(t *testing.T) {
	m := &LaravelSignedCookie{}
	if m.Check([]string{laravelCookie, "extra"}, secrets.Default()) != nil {
		t.Fatalf("expected arity mismatch to skip")
	}
}
