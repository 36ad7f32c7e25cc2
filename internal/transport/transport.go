// Package transport implements the pluggable HTTP transport boundary:
// send(method, url, headers, cookies, body) -> (status, headers,
// set_cookies, body). It owns the cookie jar, proxy, and TLS
// configuration.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Config configures one Client.
type Config struct {
	ProxyURL  string // optional upstream proxy URL
	TLSVerify bool   // false disables certificate verification
	UserAgent string
	Timeout   time.Duration
}

// DefaultConfig returns sane defaults (TLS verified, 30s timeout).
func DefaultConfig() Config {
	return Config{TLSVerify: true, UserAgent: "raider/1.0", Timeout: 30 * time.Second}
}

// Client is the concrete HTTP transport. It follows redirects by default
// and carries a cookie jar shared across every flow it sends for;
// domain-matching is delegated to golang.org/x/net/publicsuffix, as
// net/http/cookiejar's own docs recommend.
type Client struct {
	http      *http.Client
	jar       *cookiejar.Jar
	userAgent string
}

// New builds a Client from cfg.
func New(cfg Config) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("transport: cookie jar: %w", err)
	}

	tr := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !cfg.TLSVerify}, //nolint:gosec // operator-controlled toggle
	}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("transport: proxy url: %w", err)
		}
		tr.Proxy = http.ProxyURL(proxyURL)
	}

	return &Client{
		http: &http.Client{
			Transport: tr,
			Jar:       jar,
			Timeout:   cfg.Timeout,
		},
		jar:       jar,
		userAgent: cfg.UserAgent,
	}, nil
}

// Send performs one HTTP round-trip and returns the final (post-redirect)
// response's pieces. A transport failure (connection, TLS, timeout) is
// surfaced as a non-nil error; the caller turns it into a terminal Error
// verdict.
func (c *Client) Send(ctx context.Context, method, rawURL string, headers map[string]string, cookies []string, body []byte) (status int, header http.Header, setCookies []*http.Cookie, respBody []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, nil, fmt.Errorf("transport: build request: %w", err)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if len(cookies) > 0 {
		var cookieHeader string
		for i, c := range cookies {
			if i > 0 {
				cookieHeader += "; "
			}
			cookieHeader += c
		}
		req.Header.Set("Cookie", cookieHeader)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, nil, nil, fmt.Errorf("transport: send %s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, nil, fmt.Errorf("transport: read body: %w", err)
	}

	// Merge Set-Cookie into the jar happens automatically via http.Client's
	// Jar on every redirect hop and the final response. We still surface
	// this response's own Set-Cookie list so output binding can read it
	// directly without reaching back into the jar.
	return resp.StatusCode, resp.Header, resp.Cookies(), data, nil
}

// Jar exposes the underlying cookie jar, e.g. for persistence dump/reload.
func (c *Client) Jar() *cookiejar.Jar { return c.jar }
