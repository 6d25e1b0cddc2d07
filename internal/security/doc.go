// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package security holds the credential wrapper used for GitHub passwords and
// personal access tokens. A Secret never renders its content through fmt,
// JSON or YAML, so passing one to a logger or a result document is safe.
package security
