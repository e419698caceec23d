package modules

import (
	"crypto/des"
	"crypto/sha1"
	"fmt"
	"regexp"
	"strings"

	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

// MyFaces client-side state: base64(DES-encrypted state || 20-byte
// HMAC-SHA1), both keyed from the org.apache.myfaces.SECRET value.
var reJSF = regexp.MustCompile(`^[A-Za-z0-9+/=%]{28,}$`)

// JSFViewstate cracks JSF (Apache MyFaces) client-side view state.
type JSFViewstate struct{}

func (m *JSFViewstate) Name() string { return "jsf_viewstate" }

func (m *JSFViewstate) Description() types.ProductInfo {
	return types.ProductInfo{Product: "JSF ViewState (MyFaces)", Secret: "org.apache.myfaces.SECRET"}
}

func (m *JSFViewstate) Identify(value string) bool {
	v := unquoteCookie(strings.TrimSpace(value))
	if !reJSF.MatchString(v) {
		return false
	}
	raw, ok := decodeB64(v)
	// Ciphertext must be whole DES blocks ahead of the 20-byte MAC.
	return ok && len(raw) > sha1.Size && (len(raw)-sha1.Size)%des.BlockSize == 0
}

func (m *JSFViewstate) Check(values []string, dict *secrets.Dictionary) *types.DetectionResult {
	if len(values) != 1 {
		return nil
	}
	token := unquoteCookie(strings.TrimSpace(values[0]))
	if !m.Identify(token) {
		return nil
	}
	raw, _ := decodeB64(token)
	enc, mac := raw[:len(raw)-sha1.Size], raw[len(raw)-sha1.Size:]
	for _, e := range dict.List(secrets.ListJSFKeys) {
		// MyFaces secrets are configured base64-encoded; fall back to
		// the raw string for hand-set values.
		key, ok := decodeB64(e.Value)
		if !ok {
			key = []byte(e.Value)
		}
		if macEqual(hmacSum(sha1.New, key, enc), mac) {
			return found(m, token, e.Value, m.details(enc, key))
		}
	}
	return nil
}

func (m *JSFViewstate) details(enc, key []byte) string {
	if len(key) != des.BlockSize {
		return "MAC verified; state not decryptable"
	}
	block, err := des.NewCipher(key)
	if err != nil {
		return "MAC verified; state not decryptable"
	}
	pt := make([]byte, len(enc))
	for i := 0; i < len(enc); i += des.BlockSize {
		block.Decrypt(pt[i:i+des.BlockSize], enc[i:i+des.BlockSize])
	}
	if !isMostlyPrintable(pt) {
		return "MAC verified; state is serialized Java data"
	}
	return fmt.Sprintf("state: %s", pt)
}

func (m *JSFViewstate) CarveTargets() CarveTargets {
	return CarveTargets{
		Body: []*regexp.Regexp{
			regexp.MustCompile(`(?:javax|jakarta)\.faces\.ViewState"[^>]*value="([^"]+)"`),
		},
	}
}

func (m *JSFViewstate) HashcatCommands(value string) []types.HashcatCandidate {
	return []types.HashcatCandidate{{
		DetectingModule: m.Name(),
		Description:     "MyFaces view state MAC (HMAC-SHA1)",
		Command:         fmt.Sprintf("hashcat -m 150 -a 0 %s <wordlist>", value),
	}}
}
