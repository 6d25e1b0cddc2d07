// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package keys implements the two module operations: Mutator adds or removes
// a key according to the desired state, Query reads keys back as facts.
// Requests are validated when they are constructed, so Execute never sees an
// incomplete request and never touches the network for one.
package keys
