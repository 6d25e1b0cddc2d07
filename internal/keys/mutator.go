// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/toeirei/keymaster-github/internal/github"
	"github.com/toeirei/keymaster-github/internal/logging"
	"github.com/toeirei/keymaster-github/internal/sshkey"
)

// KeyWriter is the part of the GitHub API a Mutator needs.
type KeyWriter interface {
	CreateKey(ctx context.Context, creds github.Credentials, title, key string) ([]byte, error)
	DeleteKey(ctx context.Context, creds github.Credentials, keyID string) ([]byte, error)
}

// Mutator applies a KeyRequest with exactly one API call.
type Mutator struct {
	api KeyWriter
}

// NewMutator returns a Mutator backed by api.
func NewMutator(api KeyWriter) *Mutator {
	return &Mutator{api: api}
}

// Execute performs the request and returns GitHub's response body untouched.
// The request's password is zeroed once the call returns.
func (m *Mutator) Execute(ctx context.Context, req KeyRequest) ([]byte, error) {
	if req != nil {
		defer forget(req.credentials())
	}
	switch r := req.(type) {
	case Present:
		return m.add(ctx, r)
	case Absent:
		return m.remove(ctx, r)
	default:
		return nil, fmt.Errorf("keys: unsupported request type %T", req)
	}
}

func (m *Mutator) add(ctx context.Context, r Present) ([]byte, error) {
	line, err := sshkey.ReadPublicKeyLine(r.KeyPath)
	if err != nil {
		return nil, err
	}
	info, err := sshkey.Describe(line)
	switch {
	case err == nil:
		logging.Infof("uploading %s key %s as %q for %s", info.Algorithm, info.Fingerprint, r.Title, r.User)
	case info.Algorithm != "":
		logging.Warnf("%s key in %s does not decode, uploading as-is: %v", info.Algorithm, r.KeyPath, err)
	default:
		logging.Warnf("%s does not parse as an OpenSSH public key, uploading as-is: %v", r.KeyPath, err)
	}

	body, err := m.api.CreateKey(ctx, r.credentials(), r.Title, line)
	if err != nil {
		var apiErr *github.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
			apiErr.Hint = DuplicateKeyHint
		}
		return nil, err
	}
	return body, nil
}

func (m *Mutator) remove(ctx context.Context, r Absent) ([]byte, error) {
	logging.Infof("deleting key %s for %s", r.KeyID, r.User)
	return m.api.DeleteKey(ctx, r.credentials(), r.KeyID)
}

func forget(c github.Credentials) {
	c.Password.Zero()
}
