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

// Symfony signed _fragment URLs: the _hash query parameter is a base64
// HMAC-SHA256 over the rest of the URI.
var reSymfony = regexp.MustCompile(`_fragment\?.*_hash=`)

// SymfonySignedURL cracks the Symfony ESI fragment URI signer.
type SymfonySignedURL struct{}

func (m *SymfonySignedURL) Name() string { return "symfony_signed_url" }

func (m *SymfonySignedURL) Description() types.ProductInfo {
	return types.ProductInfo{Product: "Symfony _fragment URL", Secret: "kernel.secret"}
}

func (m *SymfonySignedURL) Identify(value string) bool {
	return reSymfony.MatchString(value)
}

func (m *SymfonySignedURL) Check(values []string, dict *secrets.Dictionary) *types.DetectionResult {
	if len(values) != 1 {
		return nil
	}
	uri := strings.TrimSpace(values[0])
	if !m.Identify(uri) {
		return nil
	}
	base, hashPart, ok := splitHashParam(uri)
	if !ok {
		return nil
	}
	sig, err := base64.StdEncoding.DecodeString(hashPart)
	if err != nil {
		if sig, err = base64.URLEncoding.DecodeString(hashPart); err != nil {
			return nil
		}
	}
	for _, e := range dict.List(secrets.ListSecrets) {
		if macEqual(hmacSum(sha256.New, []byte(e.Value), []byte(base)), sig) {
			return found(m, uri, e.Value, fmt.Sprintf("signed URI: %s", base))
		}
	}
	return nil
}

// splitHashParam removes the trailing _hash parameter, returning the signed
// base URI and the hash value. The signer always appends _hash last.
func splitHashParam(uri string) (base, hash string, ok bool) {
	for _, sep := range []string{"&_hash=", "?_hash="} {
		if i := strings.LastIndex(uri, sep); i >= 0 {
			return uri[:i], hashUnescaper.Replace(uri[i+len(sep):]), true
		}
	}
	return "", "", false
}

// The router percent-encodes the base64 hash when it renders URLs.
var hashUnescaper = strings.NewReplacer("%2B", "+", "%2F", "/", "%3D", "=", "%2b", "+", "%2f", "/", "%3d", "=")

func (m *SymfonySignedURL) CarveTargets() CarveTargets {
	return CarveTargets{
		Body: []*regexp.Regexp{regexp.MustCompile(`https?://[^\s"'<>]+_fragment\?[^\s"'<>]+_hash=[^\s"'<>]+`)},
	}
}

func (m *SymfonySignedURL) HashcatCommands(value string) []types.HashcatCandidate {
	return []types.HashcatCandidate{{
		DetectingModule: m.Name(),
		Description:     "Symfony URI signature (HMAC-SHA256)",
		Command:         fmt.Sprintf("hashcat -m 1450 -a 0 %s <wordlist>", value),
	}}
}
