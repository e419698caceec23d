package modules

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

// Rack / pre-5.2 Rails session cookies: "<base64 data>--<hex HMAC-SHA1>".
var reRack = regexp.MustCompile(`^[A-Za-z0-9+/=%]+--[0-9a-f]{40}$`)

// RackSignedCookie cracks Rack::Session::Cookie and legacy Rails
// secret_token signed sessions.
type RackSignedCookie struct{}

func (m *RackSignedCookie) Name() string { return "rack_signed_cookie" }

func (m *RackSignedCookie) Description() types.ProductInfo {
	return types.ProductInfo{Product: "Rack/Rails signed session", Secret: "secret_token"}
}

func (m *RackSignedCookie) Identify(value string) bool {
	return reRack.MatchString(unquoteCookie(strings.TrimSpace(value)))
}

func (m *RackSignedCookie) Check(values []string, dict *secrets.Dictionary) *types.DetectionResult {
	if len(values) != 1 {
		return nil
	}
	token := unquoteCookie(strings.TrimSpace(values[0]))
	if !m.Identify(token) {
		return nil
	}
	idx := strings.LastIndex(token, "--")
	data, sigHex := token[:idx], token[idx+2:]
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return nil
	}
	for _, e := range dict.List(secrets.ListSecrets) {
		if macEqual(hmacSum(sha1.New, []byte(e.Value), []byte(data)), sig) {
			details := "session payload is marshalled Ruby data"
			if raw, ok := decodeB64(data); ok && isMostlyPrintable(raw) {
				details = fmt.Sprintf("session: %s", raw)
			}
			return found(m, token, e.Value, details)
		}
	}
	return nil
}

func isMostlyPrintable(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	printable := 0
	for _, c := range b {
		if c >= 0x20 && c < 0x7f {
			printable++
		}
	}
	return printable*10 >= len(b)*9
}

func (m *RackSignedCookie) CarveTargets() CarveTargets {
	return CarveTargets{
		CookieNames: []string{"rack.session", "_session_id"},
		CookieValue: reRack,
	}
}

func (m *RackSignedCookie) HashcatCommands(value string) []types.HashcatCandidate {
	return []types.HashcatCandidate{{
		DetectingModule: m.Name(),
		Description:     "Rack signed session (HMAC-SHA1)",
		Command:         fmt.Sprintf("hashcat -m 150 -a 0 %s <wordlist>", value),
	}}
}
