package modules

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"hash"
	"regexp"
	"strings"

	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

var reJWT = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+$`)

// JWTHMAC cracks JWTs signed with a weak symmetric secret (HS256/384/512).
type JWTHMAC struct{}

func (m *JWTHMAC) Name() string { return "jwt_hmac" }

func (m *JWTHMAC) Description() types.ProductInfo {
	return types.ProductInfo{Product: "JSON Web Token (JWT)", Secret: "HMAC secret"}
}

func (m *JWTHMAC) Identify(value string) bool {
	// Flask and Django payloads are also dotted base64 JSON; a real JWT
	// carries an alg in its first segment.
	v := normalizeJWT(value)
	return reJWT.MatchString(v) && hasJWTHeader(v)
}

func normalizeJWT(value string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "Bearer "))
}

func (m *JWTHMAC) Check(values []string, dict *secrets.Dictionary) *types.DetectionResult {
	if len(values) != 1 {
		return nil
	}
	token := normalizeJWT(values[0])
	if !reJWT.MatchString(token) {
		return nil
	}
	parts := strings.Split(token, ".")
	headerRaw, ok := decodeB64URL(parts[0])
	if !ok {
		return nil
	}
	var header struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(headerRaw, &header); err != nil {
		return nil
	}
	var h func() hash.Hash
	switch strings.ToUpper(header.Alg) {
	case "HS256":
		h = sha256.New
	case "HS384":
		h = sha512.New384
	case "HS512":
		h = sha512.New
	default:
		// Asymmetric or none; nothing to crack with a dictionary.
		return nil
	}
	sig, ok := decodeB64URL(parts[2])
	if !ok {
		return nil
	}
	signed := []byte(parts[0] + "." + parts[1])
	for _, e := range dict.List(secrets.ListJWT) {
		keys := [][]byte{[]byte(e.Value)}
		// Secrets are sometimes distributed base64-encoded.
		if raw, ok := decodeB64(e.Value); ok && len(raw) > 0 {
			keys = append(keys, raw)
		}
		for _, key := range keys {
			if macEqual(hmacSum(h, key, signed), sig) {
				details := "claims undecodable"
				if payload, ok := decodeB64URL(parts[1]); ok {
					details = fmt.Sprintf("header: %s claims: %s", headerRaw, payload)
				}
				return found(m, token, e.Value, details)
			}
		}
	}
	return nil
}

func (m *JWTHMAC) CarveTargets() CarveTargets {
	return CarveTargets{
		CookieValue: reJWT,
		HeaderNames: []string{"Authorization", "X-Auth-Token"},
		Body:        []*regexp.Regexp{regexp.MustCompile(`eyJ[A-Za-z0-9_-]{2,}\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)},
	}
}

func (m *JWTHMAC) HashcatCommands(value string) []types.HashcatCandidate {
	return []types.HashcatCandidate{{
		DetectingModule: m.Name(),
		Description:     "JWT symmetric signature",
		Command:         fmt.Sprintf("hashcat -m 16500 -a 0 %s <wordlist>", value),
	}}
}
