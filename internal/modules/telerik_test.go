package modules

import (
	"testing"

	"github.com/keyreaper/keyreaper/internal/secrets"
)

const telerikBlob = "eyJUYXJnZXRGb2xkZXIiOiJkR1Z6ZEE9PSJ9pVnrKgM0Pg1i1SIIf9jSTAHWyJqMJn+vs7PW53LyCCo="

func TestTelerikHashKeyCheck(t *testing.T) {
	m := &TelerikHashKey{}
	r := m.Check([]string{telerikBlob}, secrets.Default())
	if r == nil {
		t.Fatalf("expected secret found")
	}
	if r.Secret != "YOUR_ENCRYPTION_KEY_TO_GO_HERE" {
		t.Fatalf("wrong hash key %q", r.Secret)
	}
}

func TestTelerikIdentify(t *testing.T) {
	m := &TelerikHashKey{}
	if !m.Identify(telerikBlob) {
		t.Fatalf("expected blob to identify")
	}
	if m.Identify("short") {
		t.Fatalf("short value should not identify")
	}
}
