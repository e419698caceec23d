package modules

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

var reLaravel = regexp.MustCompile(`^[A-Za-z0-9+/=%]{80,}$`)

// LaravelSignedCookie cracks Laravel cookies encrypted with a known
// APP_KEY: a base64 JSON envelope {iv, value, mac} where mac is
// HMAC-SHA256(iv||value).
type LaravelSignedCookie struct{}

type laravelEnvelope struct {
	IV    string `json:"iv"`
	Value string `json:"value"`
	MAC   string `json:"mac"`
}

func (m *LaravelSignedCookie) Name() string { return "laravel_signed_cookie" }

func (m *LaravelSignedCookie) Description() types.ProductInfo {
	return types.ProductInfo{Product: "Laravel encrypted cookie", Secret: "APP_KEY"}
}

func (m *LaravelSignedCookie) Identify(value string) bool {
	_, ok := m.parse(value)
	return ok
}

func (m *LaravelSignedCookie) parse(value string) (laravelEnvelope, bool) {
	var env laravelEnvelope
	v := unquoteCookie(strings.TrimSpace(value))
	if !reLaravel.MatchString(v) {
		return env, false
	}
	raw, ok := decodeB64(v)
	if !ok {
		return env, false
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, false
	}
	if env.IV == "" || env.Value == "" || env.MAC == "" {
		return env, false
	}
	if _, err := hex.DecodeString(env.MAC); err != nil {
		return env, false
	}
	return env, true
}

func (m *LaravelSignedCookie) Check(values []string, dict *secrets.Dictionary) *types.DetectionResult {
	if len(values) != 1 {
		return nil
	}
	env, ok := m.parse(values[0])
	if !ok {
		return nil
	}
	want, _ := hex.DecodeString(env.MAC)
	for _, e := range dict.List(secrets.ListLaravelKeys) {
		key := laravelKeyBytes(e.Value)
		if key == nil {
			continue
		}
		if macEqual(hmacSum(sha256.New, key, []byte(env.IV+env.Value)), want) {
			return found(m, strings.TrimSpace(values[0]), e.Value, m.decrypt(env, key))
		}
	}
	return nil
}

// laravelKeyBytes resolves an APP_KEY string: "base64:" prefixed keys are
// decoded, anything else is used raw.
func laravelKeyBytes(appKey string) []byte {
	if rest, ok := strings.CutPrefix(appKey, "base64:"); ok {
		raw, err := base64.StdEncoding.DecodeString(rest)
		if err != nil {
			return nil
		}
		return raw
	}
	return []byte(appKey)
}

// decrypt is best effort: a verified MAC is the finding, the plaintext is
// just nicer details.
func (m *LaravelSignedCookie) decrypt(env laravelEnvelope, key []byte) string {
	iv, err1 := base64.StdEncoding.DecodeString(env.IV)
	ct, err2 := base64.StdEncoding.DecodeString(env.Value)
	if err1 != nil || err2 != nil || len(iv) != aes.BlockSize || len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "MAC verified; payload not decryptable"
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "MAC verified; payload not decryptable"
	}
	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, ct)
	if pad := int(pt[len(pt)-1]); pad > 0 && pad <= aes.BlockSize && pad <= len(pt) {
		pt = pt[:len(pt)-pad]
	}
	if !isMostlyPrintable(pt) {
		return "MAC verified; payload not decryptable"
	}
	return fmt.Sprintf("decrypted: %s", pt)
}

func (m *LaravelSignedCookie) CarveTargets() CarveTargets {
	return CarveTargets{
		CookieNames: []string{"laravel_session", "XSRF-TOKEN"},
	}
}

func (m *LaravelSignedCookie) HashcatCommands(value string) []types.HashcatCandidate {
	return []types.HashcatCandidate{{
		DetectingModule: m.Name(),
		Description:     "Laravel cookie MAC (HMAC-SHA256)",
		Command:         fmt.Sprintf("hashcat -m 1450 -a 0 %s <wordlist>", value),
	}}
}
