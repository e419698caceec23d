package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/keyreaper/keyreaper/internal/types"
)

func sampleSecret() types.DetectionResult {
	return types.DetectionResult{
		Kind:            types.KindSecretFound,
		DetectingModule: "flask_signed_cookie",
		Description:     types.ProductInfo{Product: "Flask session cookie", Secret: "Flask SECRET_KEY"},
		Product:         "eyJ...sig",
		Location:        "Cookie: session",
		Secret:          "CHANGEME",
		Details:         `session: {"hello":"world"}`,
	}
}

func TestPrintResultSecret(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, sampleSecret(), Options{NoColor: true})
	out := buf.String()
	for _, want := range []string{
		"Known Secret Found!",
		"Detecting Module: flask_signed_cookie",
		"Product Type: Flask session cookie",
		"Secret Type: Flask SECRET_KEY",
		"Location: Cookie: session",
		"Secret: CHANGEME",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintResultIdentified(t *testing.T) {
	r := sampleSecret()
	r.Kind = types.KindProductIdentified
	r.Secret, r.Details = "", ""

	var buf bytes.Buffer
	PrintResult(&buf, r, Options{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "Cryptographic Product Identified") {
		t.Fatalf("missing identify banner:\n%s", out)
	}
	if strings.Contains(out, "Secret: ") {
		t.Fatalf("identify report must not print a secret:\n%s", out)
	}
}

func TestPrintResultJSON(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, sampleSecret(), Options{JSON: true})
	var decoded types.DetectionResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("not valid json: %v", err)
	}
	if decoded.Kind != types.KindSecretFound || decoded.Secret != "CHANGEME" {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestPrintNothing(t *testing.T) {
	var buf bytes.Buffer
	PrintNothing(&buf, Options{})
	if !strings.Contains(buf.String(), "No secrets found :(") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
