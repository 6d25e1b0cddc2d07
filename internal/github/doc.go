// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package github is a minimal GitHub REST v3 client for the user SSH key
// endpoints. Every call issues exactly one HTTP request: no retries, no
// pagination, no rate-limit handling. Response bodies are returned as raw
// bytes and never decoded on the success path.
package github
