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

// Telerik UI AsyncUpload configuration: base64 payload with a trailing
// 44-character base64 HMAC-SHA256 computed with the ConfigurationHashKey.
var reTelerik = regexp.MustCompile(`^[A-Za-z0-9+/=]{60,}$`)

// TelerikHashKey cracks Telerik UI ConfigurationHashKey-signed blobs.
type TelerikHashKey struct{}

func (m *TelerikHashKey) Name() string { return "telerik_hash_key" }

func (m *TelerikHashKey) Description() types.ProductInfo {
	return types.ProductInfo{Product: "Telerik UI for ASP.NET AJAX", Secret: "ConfigurationHashKey"}
}

func (m *TelerikHashKey) Identify(value string) bool {
	v := strings.TrimSpace(value)
	if len(v) <= 44 || !reTelerik.MatchString(v) {
		return false
	}
	payload, sigPart := v[:len(v)-44], v[len(v)-44:]
	if _, err := base64.StdEncoding.DecodeString(sigPart); err != nil {
		return false
	}
	// The payload itself must be decodable base64 JSON-ish data.
	raw, ok := decodeB64(payload)
	return ok && len(raw) > 0 && (raw[0] == '{' || raw[0] == '[')
}

func (m *TelerikHashKey) Check(values []string, dict *secrets.Dictionary) *types.DetectionResult {
	if len(values) != 1 {
		return nil
	}
	token := strings.TrimSpace(values[0])
	if !m.Identify(token) {
		return nil
	}
	payload, sigPart := token[:len(token)-44], token[len(token)-44:]
	sig, err := base64.StdEncoding.DecodeString(sigPart)
	if err != nil {
		return nil
	}
	for _, e := range dict.List(secrets.ListSecrets) {
		if macEqual(hmacSum(sha256.New, []byte(e.Value), []byte(payload)), sig) {
			raw, _ := decodeB64(payload)
			return found(m, token, e.Value, fmt.Sprintf("signed configuration: %s", raw))
		}
	}
	return nil
}

func (m *TelerikHashKey) CarveTargets() CarveTargets {
	return CarveTargets{
		Body: []*regexp.Regexp{regexp.MustCompile(`"rauPostData"\s*:\s*"([A-Za-z0-9+/=]{60,})"`)},
	}
}

func (m *TelerikHashKey) HashcatCommands(value string) []types.HashcatCandidate {
	return []types.HashcatCandidate{{
		DetectingModule: m.Name(),
		Description:     "Telerik ConfigurationHashKey (HMAC-SHA256)",
		Command:         fmt.Sprintf("hashcat -m 1450 -a 0 %s <wordlist>", value),
	}}
}
