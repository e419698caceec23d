package modules

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

// Express cookie-signature format: "s:<value>.<base64 HMAC-SHA256>", the
// "s:" prefix usually arrives URL-encoded as "s%3A".
var reExpress = regexp.MustCompile(`^s:.+\.[A-Za-z0-9+/]{43}=?$`)

// ExpressSignedCookie cracks cookies signed by the express cookie-signature
// library ("keyboard cat" and friends).
type ExpressSignedCookie struct{}

func (m *ExpressSignedCookie) Name() string { return "express_signed_cookie" }

func (m *ExpressSignedCookie) Description() types.ProductInfo {
	return types.ProductInfo{Product: "Express.js signed cookie", Secret: "cookie-parser secret"}
}

func (m *ExpressSignedCookie) Identify(value string) bool {
	return reExpress.MatchString(unquoteCookie(strings.TrimSpace(value)))
}

func (m *ExpressSignedCookie) Check(values []string, dict *secrets.Dictionary) *types.DetectionResult {
	if len(values) != 1 {
		return nil
	}
	token := unquoteCookie(strings.TrimSpace(values[0]))
	if !m.Identify(token) {
		return nil
	}
	body := strings.TrimPrefix(token, "s:")
	idx := strings.LastIndex(body, ".")
	value, sigPart := body[:idx], strings.TrimRight(body[idx+1:], "=")
	for _, e := range dict.List(secrets.ListSecrets) {
		sum := hmacSum(sha256.New, []byte(e.Value), []byte(value))
		want := strings.TrimRight(base64.StdEncoding.EncodeToString(sum), "=")
		if want == sigPart {
			return found(m, token, e.Value, fmt.Sprintf("signed value: %s", value))
		}
	}
	return nil
}

func (m *ExpressSignedCookie) CarveTargets() CarveTargets {
	return CarveTargets{
		CookieNames: []string{"connect.sid"},
		CookieValue: regexp.MustCompile(`^s(:|%3A).+\.[A-Za-z0-9+/%]{43,}=?$`),
	}
}

func (m *ExpressSignedCookie) HashcatCommands(value string) []types.HashcatCandidate {
	return []types.HashcatCandidate{{
		DetectingModule: m.Name(),
		Description:     "Express cookie-signature (HMAC-SHA256)",
		Command:         fmt.Sprintf("hashcat -m 1450 -a 0 %s <wordlist>", value),
	}}
}
