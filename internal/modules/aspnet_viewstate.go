package modules

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"regexp"
	"strconv"
	"strings"

	"github.com/keyreaper/keyreaper/internal/secrets"
	"github.com/keyreaper/keyreaper/internal/types"
)

// Unencrypted __VIEWSTATE blobs start with the serialized-format marker
// 0xFF 0x01 ("/wE" in base64) and end with an HMAC over the payload.
var reViewstate = regexp.MustCompile(`^/w[A-Za-z0-9+/=]+$`)

var reGenerator = regexp.MustCompile(`^[0-9A-Fa-f]{8}$`)

// ASPNetViewstate cracks MAC-validated ASP.NET ViewStates against known
// machine-key pairs. It takes one or two values: the __VIEWSTATE itself and
// optionally the __VIEWSTATEGENERATOR modifier.
type ASPNetViewstate struct{}

func (m *ASPNetViewstate) Name() string { return "aspnet_viewstate" }

func (m *ASPNetViewstate) Description() types.ProductInfo {
	return types.ProductInfo{Product: "ASP.NET ViewState", Secret: "MachineKey validation key"}
}

func (m *ASPNetViewstate) Identify(value string) bool {
	v := unquoteCookie(strings.TrimSpace(value))
	if !reViewstate.MatchString(v) {
		return false
	}
	raw, ok := decodeB64(v)
	// Minimum: the two-byte marker plus a SHA-1 MAC.
	return ok && len(raw) > 22 && raw[0] == 0xff && raw[1] == 0x01
}

func (m *ASPNetViewstate) Check(values []string, dict *secrets.Dictionary) *types.DetectionResult {
	if len(values) < 1 || len(values) > 2 {
		return nil
	}
	token := unquoteCookie(strings.TrimSpace(values[0]))
	if !m.Identify(token) {
		return nil
	}
	var modifier []byte
	if len(values) == 2 {
		gen := strings.TrimSpace(values[1])
		if !reGenerator.MatchString(gen) {
			return nil
		}
		n, err := strconv.ParseUint(gen, 16, 32)
		if err != nil {
			return nil
		}
		modifier = binary.LittleEndian.AppendUint32(nil, uint32(n))
	}
	raw, _ := decodeB64(token)

	for _, e := range dict.List(secrets.ListMachineKeys) {
		vkeyHex, _, ok := strings.Cut(e.Value, ",")
		if !ok {
			continue
		}
		vkey, err := hex.DecodeString(strings.TrimSpace(vkeyHex))
		if err != nil {
			continue
		}
		for _, macLen := range []int{20, 32, 48, 64} {
			if len(raw) <= macLen {
				continue
			}
			data, mac := raw[:len(raw)-macLen], raw[len(raw)-macLen:]
			for _, h := range digestsByLen(macLen) {
				if verifyViewstateMAC(h, vkey, data, mac, modifier) {
					return found(m, token, e.Value, viewstateDetails(vkeyHex, macLen))
				}
			}
		}
	}
	return nil
}

// verifyViewstateMAC checks both .NET conventions: HMAC over the payload
// alone, and over payload plus the little-endian generator modifier.
func verifyViewstateMAC(h func() hash.Hash, vkey, data, mac, modifier []byte) bool {
	if macEqual(hmacSum(h, vkey, data), mac) {
		return true
	}
	if modifier != nil {
		msg := append(append([]byte{}, data...), modifier...)
		return macEqual(hmacSum(h, vkey, msg), mac)
	}
	return false
}

func viewstateDetails(vkeyHex string, macLen int) string {
	alg := map[int]string{20: "HMAC-SHA1", 32: "HMAC-SHA256", 48: "HMAC-SHA384", 64: "HMAC-SHA512"}[macLen]
	return fmt.Sprintf("validation algorithm: %s validation key: %s", alg, vkeyHex)
}

func (m *ASPNetViewstate) CarveTargets() CarveTargets {
	return CarveTargets{
		Body: []*regexp.Regexp{
			// Capture the generator alongside when present so Check
			// can use the modifier.
			regexp.MustCompile(`__VIEWSTATE"[^>]*value="([^"]+)"(?:[\s\S]{0,512}?__VIEWSTATEGENERATOR"[^>]*value="([0-9A-Fa-f]{8})")?`),
		},
	}
}

func (m *ASPNetViewstate) HashcatCommands(value string) []types.HashcatCandidate {
	return []types.HashcatCandidate{{
		DetectingModule: m.Name(),
		Description:     "ViewState MAC (HMAC-SHA1, machine keys)",
		Command:         fmt.Sprintf("hashcat -m 150 -a 0 %s <wordlist>", value),
	}}
}
