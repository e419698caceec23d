// Package fetch performs the one network operation keyreaper does: GET a
// URL and normalize the response into the minimal surface the carver
// consumes. Proxying, TLS verification, and user-agent concerns stay here;
// the engine never sees them.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/keyreaper/keyreaper/internal/types"
)

// maxBodyBytes caps how much of a response body is carved.
const maxBodyBytes = 5 << 20

// Options control a single fetch.
type Options struct {
	Proxy     string
	UserAgent string
	// VerifyTLS turns certificate verification on. Default is off: the
	// targets of interest are frequently dev boxes with self-signed
	// certs.
	VerifyTLS bool
	NoCache   bool
	Timeout   time.Duration
}

// Get fetches url and returns the normalized response. Responses are served
// from a short-lived local cache unless NoCache is set.
func Get(ctx context.Context, rawURL string, opts Options) (*types.Response, error) {
	if !opts.NoCache {
		if resp, ok := cachedResponse(rawURL, time.Now()); ok {
			return resp, nil
		}
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !opts.VerifyTLS},
	}
	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("bad proxy %q: %w", opts.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	client := &http.Client{Transport: transport, Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("bad url %q: %w", rawURL, err)
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}

	httpResp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error connecting to URL [%s]: %w", rawURL, err)
	}
	defer httpResp.Body.Close()

	resp := Normalize(httpResp)
	if !opts.NoCache {
		storeResponse(rawURL, resp, time.Now())
	}
	return resp, nil
}

// Normalize flattens an *http.Response into the transport-agnostic shape
// the engine consumes. Multi-valued headers are comma-joined; cookies come
// from Set-Cookie.
func Normalize(httpResp *http.Response) *types.Response {
	resp := &types.Response{
		Headers: make(map[string]string, len(httpResp.Header)),
		Cookies: map[string]string{},
	}
	for name, vals := range httpResp.Header {
		resp.Headers[name] = strings.Join(vals, ", ")
	}
	for _, c := range httpResp.Cookies() {
		resp.Cookies[c.Name] = c.Value
	}
	if httpResp.Body != nil {
		if b, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes)); err == nil {
			resp.Body = string(b)
		}
	}
	return resp
}
