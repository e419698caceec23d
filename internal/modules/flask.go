package modules

import (
	"bytes"
	"compress/zlib"
	"crypto/sha1"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

// Flask session cookies: urlsafe-base64 payload, timestamp, HMAC-SHA1
// signature. A leading "." marks a zlib-compressed payload.
var reFlask = regexp.MustCompile(`^\.?[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]{20,}$`)

// FlaskSignedCookie cracks itsdangerous-signed Flask session cookies.
type FlaskSignedCookie struct{}

func (m *FlaskSignedCookie) Name() string { return "flask_signed_cookie" }

func (m *FlaskSignedCookie) Description() types.ProductInfo {
	return types.ProductInfo{Product: "Flask session cookie", Secret: "Flask SECRET_KEY"}
}

func (m *FlaskSignedCookie) Identify(value string) bool {
	v := unquoteCookie(strings.TrimSpace(value))
	if !reFlask.MatchString(v) {
		return false
	}
	// Avoid swallowing JWTs, whose payloads are also base64 JSON.
	return !hasJWTHeader(v)
}

func (m *FlaskSignedCookie) Check(values []string, dict *secrets.Dictionary) *types.DetectionResult {
	if len(values) != 1 {
		return nil
	}
	token := unquoteCookie(strings.TrimSpace(values[0]))
	if !m.Identify(token) {
		return nil
	}
	idx := strings.LastIndex(token, ".")
	signed, sigPart := token[:idx], token[idx+1:]
	sig, ok := decodeB64URL(sigPart)
	if !ok {
		return nil
	}
	for _, e := range dict.List(secrets.ListSecrets) {
		// itsdangerous "django-concat" derivation with the flask
		// session salt.
		key := sha1.Sum([]byte("cookie-session" + "signer" + e.Value))
		if macEqual(hmacSum(sha1.New, key[:], []byte(signed)), sig) {
			return found(m, token, e.Value, m.decodePayload(signed))
		}
	}
	return nil
}

func (m *FlaskSignedCookie) decodePayload(signed string) string {
	payload := signed
	if i := strings.Index(signed, "."); i >= 0 {
		payload = signed[:i]
	}
	compressed := strings.HasPrefix(payload, ".")
	raw, ok := decodeB64URL(strings.TrimPrefix(payload, "."))
	if !ok {
		return "session payload undecodable"
	}
	if compressed {
		r, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return "session payload undecodable"
		}
		defer r.Close()
		if inflated, err := io.ReadAll(io.LimitReader(r, 1<<20)); err == nil {
			raw = inflated
		}
	}
	return fmt.Sprintf("session: %s", raw)
}

func (m *FlaskSignedCookie) CarveTargets() CarveTargets {
	return CarveTargets{CookieNames: []string{"session"}, CookieValue: reFlask}
}

func (m *FlaskSignedCookie) HashcatCommands(value string) []types.HashcatCandidate {
	return []types.HashcatCandidate{{
		DetectingModule: m.Name(),
		Description:     "Flask session cookie",
		Command:         fmt.Sprintf("hashcat -m 29100 -a 0 %s <wordlist>", value),
	}}
}
