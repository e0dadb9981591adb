// Package network provides the HTTP session shared by every request of a run.
//
// A Session owns one cookie jar. Signing in fills the jar once; from then on
// concurrent fetches only read it.
package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/eggdl-cli/eggdl/constant"
	"github.com/eggdl-cli/eggdl/log"
	"golang.org/x/net/publicsuffix"
)

// Options tune a Session.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	Fingerprint bool
}

// Session is an HTTP client with a cookie jar.
type Session struct {
	client    *http.Client
	userAgent string
}

// NewSession builds a Session from opts.
func NewSession(opts Options) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	if opts.UserAgent == "" {
		opts.UserAgent = constant.UserAgent
	}

	return &Session{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: newTransport(opts.Fingerprint),
			Jar:       jar,
		},
		userAgent: opts.UserAgent,
	}, nil
}

// Client returns a copy of the session client without an overall timeout,
// for streaming large bodies. Cookies and transport are shared.
func (s *Session) Client() *http.Client {
	streaming := *s.client
	streaming.Timeout = 0
	return &streaming
}

// Get returns the body of a successful GET as text.
func (s *Session) Get(ctx context.Context, rawURL string) (string, error) {
	resp, err := s.Do(ctx, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rawURL, err)
	}

	return string(body), nil
}

// GetJSON decodes the body of a successful GET into v.
func (s *Session) GetJSON(ctx context.Context, rawURL string, v any) error {
	resp, err := s.Do(ctx, http.MethodGet, rawURL, nil, http.Header{"Accept": {"application/json"}})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", rawURL, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}

	return nil
}

// PostForm submits form without following a redirect, so the caller can
// inspect the status the server answered with.
func (s *Session) PostForm(ctx context.Context, rawURL string, form url.Values) (*http.Response, error) {
	header := http.Header{"Content-Type": {"application/x-www-form-urlencoded"}}
	req, err := s.newRequest(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()), header)
	if err != nil {
		return nil, err
	}

	noRedirect := *s.client
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noRedirect.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", rawURL, err)
	}
	return resp, nil
}

// Do sends a request carrying the session headers and cookies.
func (s *Session) Do(ctx context.Context, method, rawURL string, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := s.newRequest(ctx, method, rawURL, body, header)
	if err != nil {
		return nil, err
	}

	log.Debugf("%s %s", method, rawURL)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	return resp, nil
}

func (s *Session) newRequest(ctx context.Context, method, rawURL string, body io.Reader, header http.Header) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	return req, nil
}
