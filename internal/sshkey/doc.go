// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshkey reads public key material from disk and describes it. The
// line read from the key file is uploaded verbatim; parsing only feeds logs
// and human-readable output.
package sshkey
