// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package github

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// APIError is returned for every response the endpoint does not treat as
// success.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the transport's status description, e.g.
	// "HTTP Error 404: Not Found".
	Message string
	// ServerMessage is the "message" field of GitHub's JSON error document,
	// when the body carried one.
	ServerMessage string
	// Body is the raw response body.
	Body []byte
	// Hint is appended to Message in Error(), separated by " - ".
	Hint string
}

func (e *APIError) Error() string {
	if e.Hint == "" {
		return e.Message
	}
	return e.Message + " - " + e.Hint
}

// IsAuth reports whether GitHub rejected the credentials.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func newAPIError(method, path string, resp *http.Response, body []byte, serverMessage string) *APIError {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return &APIError{
		Method:        method,
		Path:          path,
		StatusCode:    resp.StatusCode,
		Message:       fmt.Sprintf("HTTP Error %d: %s", resp.StatusCode, reason),
		ServerMessage: serverMessage,
		Body:          body,
	}
}

// FailureDetails exposes the status and GitHub's own explanation to the
// module failure document. Rejected credentials are flagged with auth_failed
// so playbooks can tell them apart from other API errors.
func (e *APIError) FailureDetails() map[string]any {
	d := map[string]any{"status": e.StatusCode}
	switch {
	case e.ServerMessage != "":
		d["response"] = e.ServerMessage
	case len(e.Body) > 0:
		d["response"] = string(e.Body)
	}
	if e.IsAuth() {
		d["auth_failed"] = true
	}
	return d
}
