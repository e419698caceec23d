package modules

import (
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"regexp"
	"strings"

	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

// Django signed-cookie sessions: base64 payload, base62 timestamp, base64url
// signature, colon separated. SHA-1 signatures are pre-3.1, SHA-256 after.
var reDjango = regexp.MustCompile(`^\.?[A-Za-z0-9_-]+:[A-Za-z0-9]{1,8}:[A-Za-z0-9_-]{27,}$`)

const djangoKeySalt = "django.contrib.sessions.backends.signed_cookies" + "signer"

// DjangoSignedCookie cracks Django SIGNED_COOKIES session backends.
type DjangoSignedCookie struct{}

func (m *DjangoSignedCookie) Name() string { return "django_signed_cookie" }

func (m *DjangoSignedCookie) Description() types.ProductInfo {
	return types.ProductInfo{Product: "Django signed cookie", Secret: "Django SECRET_KEY"}
}

func (m *DjangoSignedCookie) Identify(value string) bool {
	return reDjango.MatchString(unquoteCookie(strings.TrimSpace(value)))
}

func (m *DjangoSignedCookie) Check(values []string, dict *secrets.Dictionary) *types.DetectionResult {
	if len(values) != 1 {
		return nil
	}
	token := unquoteCookie(strings.TrimSpace(values[0]))
	if !m.Identify(token) {
		return nil
	}
	idx := strings.LastIndex(token, ":")
	signed, sigPart := token[:idx], token[idx+1:]
	sig, ok := decodeB64URL(sigPart)
	if !ok {
		return nil
	}
	algs := digestsByLen(len(sig))
	if algs == nil {
		return nil
	}
	for _, e := range dict.List(secrets.ListSecrets) {
		for _, h := range algs {
			if macEqual(hmacSum(h, saltedKey(h, e.Value), []byte(signed)), sig) {
				details := "session payload undecodable"
				if payload, ok := decodeB64URL(strings.SplitN(signed, ":", 2)[0]); ok {
					details = fmt.Sprintf("session: %s", payload)
				}
				return found(m, token, e.Value, details)
			}
		}
	}
	return nil
}

// saltedKey mirrors django.utils.crypto.salted_hmac key derivation.
func saltedKey(h func() hash.Hash, secret string) []byte {
	switch h().Size() {
	case sha256.Size:
		sum := sha256.Sum256([]byte(djangoKeySalt + secret))
		return sum[:]
	default:
		sum := sha1.Sum([]byte(djangoKeySalt + secret))
		return sum[:]
	}
}

func (m *DjangoSignedCookie) CarveTargets() CarveTargets {
	return CarveTargets{CookieNames: []string{"sessionid"}, CookieValue: reDjango}
}

func (m *DjangoSignedCookie) HashcatCommands(value string) []types.HashcatCandidate {
	return []types.HashcatCandidate{{
		DetectingModule: m.Name(),
		Description:     "Django signed cookie (HMAC-SHA256, derived key)",
		Command:         fmt.Sprintf("hashcat -m 1450 -a 0 %s <wordlist>", value),
	}}
}
