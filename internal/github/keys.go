// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package github

import (
	"context"
	"net/http"
	"net/url"
)

const userKeysPath = "user/keys"

type createKeyBody struct {
	Title string `json:"title"`
	Key   string `json:"key"`
}

func userKeyPath(keyID string) string {
	return userKeysPath + "/" + url.PathEscape(keyID)
}

// CreateKey uploads a public key for the authenticated user (POST /user/keys).
func (c *Client) CreateKey(ctx context.Context, creds Credentials, title, key string) ([]byte, error) {
	return c.Do(ctx, Request{
		Method:  http.MethodPost,
		Path:    userKeysPath,
		Body:    createKeyBody{Title: title, Key: key},
		Auth:    &creds,
		Created: http.StatusCreated,
	})
}

// DeleteKey removes one of the authenticated user's keys
// (DELETE /user/keys/{key_id}).
func (c *Client) DeleteKey(ctx context.Context, creds Credentials, keyID string) ([]byte, error) {
	return c.Do(ctx, Request{
		Method:  http.MethodDelete,
		Path:    userKeyPath(keyID),
		Auth:    &creds,
		Created: http.StatusNoContent,
	})
}

// ListPublicKeys lists any user's public keys without authentication
// (GET /users/{user}/keys). GitHub returns only id and key for each entry.
func (c *Client) ListPublicKeys(ctx context.Context, user string) ([]byte, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "users/" + url.PathEscape(user) + "/keys",
	})
}

// ListKeys lists the authenticated user's keys with full metadata
// (GET /user/keys).
func (c *Client) ListKeys(ctx context.Context, creds Credentials) ([]byte, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   userKeysPath,
		Auth:   &creds,
	})
}

// GetKey fetches a single key of the authenticated user
// (GET /user/keys/{key_id}).
func (c *Client) GetKey(ctx context.Context, creds Credentials, keyID string) ([]byte, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   userKeyPath(keyID),
		Auth:   &creds,
	})
}
