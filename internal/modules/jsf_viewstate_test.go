package modules

import (
	"testing"

	"github.com/keyreaper/keyreaper/internal/secrets"
)

const jsfViewstate = "ftYK64jpJg4CbwY5wAdNOG71n1dlObpYE764Wulx3CHT3MV6qoPh4d9KiRU="

func TestJSFViewstateCheck(t *testing.T) {
	m := &JSFViewstate{}
	r := m.Check([]string{jsfViewstate}, secrets.Default())
	if r == nil {
		t.Fatalf("expected secret found")
	}
	if r.Secret != "NzY1NDMyMTA=" {
		t.Fatalf("wrong state key %q", r.Secret)
	}
}

func TestJSFViewstateUnmatched(t *testing.T) {
	m := &JSFViewstate{}
	// wrong length for DES blocks + MAC
	if m.Check([]string{"QUJDREVGRw=="}, secrets.Default()) != nil {
		t.Fatalf("expected structural mismatch to skip")
	}
}
