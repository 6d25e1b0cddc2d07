// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"context"
	"fmt"

	"github.com/toeirei/keymaster-github/internal/github"
	"github.com/toeirei/keymaster-github/internal/logging"
)

// KeyReader is the part of the GitHub API a Query needs.
type KeyReader interface {
	ListPublicKeys(ctx context.Context, user string) ([]byte, error)
	ListKeys(ctx context.Context, creds github.Credentials) ([]byte, error)
	GetKey(ctx context.Context, creds github.Credentials, keyID string) ([]byte, error)
}

// Query answers a FactsRequest with exactly one API call.
type Query struct {
	api KeyReader
}

// NewQuery returns a Query backed by api.
func NewQuery(api KeyReader) *Query {
	return &Query{api: api}
}

// Execute returns GitHub's response body untouched. The request's password
// is zeroed once the call returns.
func (q *Query) Execute(ctx context.Context, req FactsRequest) ([]byte, error) {
	defer forget(req.credentials())
	mode := req.Mode()
	logging.Debugf("gathering %s key facts for %s", mode, req.User)

	switch mode {
	case PublicListing:
		return q.api.ListPublicKeys(ctx, req.User)
	case AuthenticatedListing:
		return q.api.ListKeys(ctx, req.credentials())
	case SingleKey:
		return q.api.GetKey(ctx, req.credentials(), req.KeyID)
	default:
		return nil, fmt.Errorf("keys: unknown facts mode %v", mode)
	}
}
