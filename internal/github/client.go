// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package github

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v67/github"
	"github.com/toeirei/keymaster-github/internal/logging"
	"github.com/toeirei/keymaster-github/internal/security"
)

const mediaType = "application/vnd.github.v3+json"

// Credentials authenticate a request with HTTP Basic auth. Password may be a
// real password or a personal access token; there is no 2FA/OTP support.
type Credentials struct {
	User     string
	Password security.Secret
}

// BasicAuth returns the Authorization header value for user:password using
// standard base64 without line breaks.
func BasicAuth(user string, password security.Secret) string {
	var header string
	_ = password.Use(func(p []byte) error {
		raw := make([]byte, 0, len(user)+1+len(p))
		raw = append(raw, user...)
		raw = append(raw, ':')
		raw = append(raw, p...)
		header = "Basic " + base64.StdEncoding.EncodeToString(raw)
		for i := range raw {
			raw[i] = 0
		}
		return nil
	})
	return header
}

// Options configure a Client.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	ValidateCerts bool
	UserAgent     string
	// HTTPClient overrides the client built from Timeout and ValidateCerts.
	HTTPClient *http.Client
}

// Client talks to one GitHub API root through go-github. The credentials are
// per request, so one Client serves both the anonymous and the authenticated
// endpoints.
type Client struct {
	api *gh.Client
}

// NewClient validates the base URL and prepares the go-github client.
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("github: empty API URL")
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("github: invalid API URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("github: unsupported API URL scheme %q", base.Scheme)
	}

	hc := opts.HTTPClient
	if hc == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if !opts.ValidateCerts {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- validate_certs=false
		}
		hc = &http.Client{Timeout: opts.Timeout, Transport: transport}
	}

	api := gh.NewClient(hc)
	// Set directly rather than WithEnterpriseURLs, which would append
	// /api/v3/ to roots that already point at the API.
	api.BaseURL = base
	if opts.UserAgent != "" {
		api.UserAgent = opts.UserAgent
	}
	return &Client{api: api}, nil
}

// Request describes a single API call. Path is relative to the API root.
type Request struct {
	Method string
	Path   string
	Body   any
	Auth   *Credentials
	// Created is the endpoint's documented success status when it is not 200.
	Created int
}

// Do performs req and returns the raw response body on success. A non-success
// status yields *APIError; transport failures are wrapped as-is.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	httpReq, err := c.api.NewRequest(req.Method, req.Path, req.Body)
	if err != nil {
		return nil, fmt.Errorf("github: build %s %s: %w", req.Method, req.Path, err)
	}
	if req.Auth != nil {
		httpReq.Header.Set("Authorization", BasicAuth(req.Auth.User, req.Auth.Password))
	}

	logging.Debugf("github: %s %s", req.Method, httpReq.URL.Path)
	var body bytes.Buffer
	resp, err := c.api.Do(ctx, httpReq, &body)
	if resp == nil || resp.Response == nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	logging.Debugf("github: %s %s -> %d (%d bytes)", req.Method, httpReq.URL.Path, resp.StatusCode, body.Len())

	if err != nil {
		return nil, c.responseError(req.Method, httpReq.URL.Path, resp, err)
	}
	if resp.StatusCode == http.StatusOK || (req.Created != 0 && resp.StatusCode == req.Created) {
		return body.Bytes(), nil
	}
	// go-github treats every 2xx as success; only 200 and the documented
	// status are.
	return nil, newAPIError(req.Method, httpReq.URL.Path, resp.Response, body.Bytes(), "")
}

// responseError turns the error go-github returned alongside a response into
// *APIError, keeping GitHub's own message when it sent one.
func (c *Client) responseError(method, path string, resp *gh.Response, err error) error {
	var (
		raw      []byte
		message  string
		accepted *gh.AcceptedError
		errResp  *gh.ErrorResponse
		twoFA    *gh.TwoFactorAuthError
		rate     *gh.RateLimitError
		abuse    *gh.AbuseRateLimitError
	)
	switch {
	case errors.As(err, &accepted):
		raw = accepted.Raw
	case errors.As(err, &errResp):
		message = errResp.Message
	case errors.As(err, &twoFA):
		message = twoFA.Message
	case errors.As(err, &rate):
		message = rate.Message
	case errors.As(err, &abuse):
		message = abuse.Message
	default:
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return fmt.Errorf("read response body: %w", err)
		}
	}
	if raw == nil {
		// go-github re-populates the body of error responses after decoding.
		raw, _ = io.ReadAll(resp.Body)
	}
	return newAPIError(method, path, resp.Response, raw, message)
}
