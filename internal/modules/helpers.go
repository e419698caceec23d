package modules

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"hash"
	"net/url"
	"strings"
)

// hasJWTHeader reports whether the first dot-segment of v decodes to a JOSE
// header. Flask and Django payloads are also base64 JSON, so format regexes
// alone cannot tell them apart from JWTs.
func hasJWTHeader(v string) bool {
	seg, _, ok := strings.Cut(v, ".")
	if !ok {
		return false
	}
	raw, ok := decodeB64URL(seg)
	if !ok {
		return false
	}
	var header struct {
		Alg string `json:"alg"`
	}
	return json.Unmarshal(raw, &header) == nil && header.Alg != ""
}

// decodeB64 tries the common base64 variants in order. Tokens arrive with
// and without padding and in both alphabets depending on the framework.
func decodeB64(s string) ([]byte, bool) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return b, true
		}
	}
	return nil, false
}

// decodeB64URL decodes unpadded base64url, the JWT/itsdangerous alphabet.
func decodeB64URL(s string) ([]byte, bool) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, false
	}
	return b, true
}

// hmacSum computes HMAC over msg with the given hash constructor.
func hmacSum(h func() hash.Hash, key, msg []byte) []byte {
	mac := hmac.New(h, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// macEqual is a constant-time digest comparison.
func macEqual(a, b []byte) bool { return hmac.Equal(a, b) }

// unquoteCookie undoes URL-encoding that proxies and Set-Cookie apply to
// cookie values ("s%3A..." vs "s:...").
func unquoteCookie(v string) string {
	// PathUnescape, not QueryUnescape: "+" is meaningful base64, not a
	// space.
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

// digestsByLen maps a trailing-MAC length to the hash functions producing it.
func digestsByLen(n int) []func() hash.Hash {
	switch n {
	case sha1.Size:
		return []func() hash.Hash{sha1.New}
	case sha256.Size:
		return []func() hash.Hash{sha256.New}
	case sha512.Size384:
		return []func() hash.Hash{sha512.New384}
	case sha512.Size:
		return []func() hash.Hash{sha512.New}
	}
	return nil
}
