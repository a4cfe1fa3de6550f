// Copyright 2025 the jshound authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jshound

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/net/publicsuffix"
)

var (
	// ErrEmptyBody is the per-source error for 2xx responses with no content
	ErrEmptyBody = errors.New("no content to extract")
	// ErrProxyScheme is returned for proxy URLs that are not http, https or socks5
	ErrProxyScheme = errors.New("unsupported proxy scheme")
)

// maxErrorLen bounds error text recorded per source so logs stay readable.
const maxErrorLen = 200

// Response is the outcome of fetching one source.
type Response struct {
	// Body is the decompressed response body
	Body []byte
	// StatusCode is the HTTP status of the final (post-redirect) response
	StatusCode int
}

// HTTPError marks a non-2xx response. These are final: the server answered,
// so the fetch is not retried.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error %d", e.StatusCode)
}

// transientError wraps timeouts and connection-level failures, the only
// class of errors the retry loop acts on.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var t *transientError
	return errors.As(err, &t)
}

// Fetcher performs HTTP GETs with a fixed header set, bounded retries and an
// explicitly insecure TLS client. Certificate validation is disabled on this
// client only, never process-wide: the sources being fetched are routinely
// behind self-signed or mismatched certificates.
type Fetcher struct {
	client        *http.Client
	userAgent     string
	retries       int
	retryInterval time.Duration
}

// NewFetcher builds a Fetcher from the validated configuration.
func NewFetcher(cfg *Config) (*Fetcher, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy URL: %w", err)
		}
		switch proxyURL.Scheme {
		case "http", "https":
			transport.Proxy = http.ProxyURL(proxyURL)
		case "socks5":
			dialer, err := proxy.FromURL(proxyURL, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("building socks5 dialer: %w", err)
			}
			contextDialer, ok := dialer.(proxy.ContextDialer)
			if !ok {
				return nil, errors.New("socks5 dialer does not support context dialing")
			}
			transport.DialContext = contextDialer.DialContext
		default:
			return nil, fmt.Errorf("%w: %q", ErrProxyScheme, proxyURL.Scheme)
		}
	}

	return &Fetcher{
		client: &http.Client{
			Jar:       jar,
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		userAgent:     cfg.UserAgent,
		retries:       cfg.Retries,
		retryInterval: time.Second,
	}, nil
}

// SetClient replaces the underlying HTTP client. Used by tests to install
// mock transports.
func (f *Fetcher) SetClient(c *http.Client) {
	f.client = c
}

// Fetch performs one GET against rawURL. Transient network failures are
// retried up to the configured count with a fixed interval between attempts;
// HTTP error statuses and empty bodies are returned immediately. The returned
// Response carries the status code whenever one was received, even on error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.retryInterval):
			}
		}
		resp, err := f.do(ctx, rawURL)
		if err == nil || !isTransient(err) {
			return resp, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", f.retries+1, lastErr)
}

func (f *Fetcher) do(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Connection", "keep-alive")

	res, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &transientError{err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &Response{StatusCode: res.StatusCode}, &HTTPError{StatusCode: res.StatusCode}
	}

	// Accept-Encoding is set by hand, so the transport does not decompress
	// for us
	var bodyReader io.Reader = res.Body
	if !res.Uncompressed && strings.Contains(strings.ToLower(res.Header.Get("Content-Encoding")), "gzip") {
		gz, err := gzip.NewReader(bodyReader)
		if err != nil {
			return nil, &transientError{err}
		}
		defer gz.Close()
		bodyReader = gz
	}
	body, err := io.ReadAll(bodyReader)
	if err != nil {
		return nil, &transientError{err}
	}
	if len(body) == 0 {
		return &Response{StatusCode: res.StatusCode}, ErrEmptyBody
	}
	return &Response{Body: body, StatusCode: res.StatusCode}, nil
}

// errString renders err for per-source reports, truncating long underlying
// messages.
func errString(err error) string {
	s := err.Error()
	if len(s) > maxErrorLen {
		s = s[:maxErrorLen] + "..."
	}
	return s
}
