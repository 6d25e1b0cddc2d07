// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"encoding/json"
	"fmt"
	"io"
)

// Placeholder is what a Secret renders as everywhere it could leak.
const Placeholder = "[SECRET]"

// Secret wraps a GitHub password or token for the lifetime of one request.
type Secret []byte

// String redacts the secret for fmt.Print* convenience.
func (s Secret) String() string { return Placeholder }

// Format implements fmt.Formatter so `%v`, `%#v`, `%q` and friends are redacted.
func (s Secret) Format(f fmt.State, c rune) {
	_, _ = io.WriteString(f, Placeholder)
}

// MarshalJSON redacts secrets in JSON marshaling.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(Placeholder) }

// MarshalText redacts secrets for text encoders (YAML included).
func (s Secret) MarshalText() ([]byte, error) { return []byte(Placeholder), nil }

// IsZero reports whether no secret was supplied. An explicitly empty
// password is not zero.
func (s Secret) IsZero() bool { return s == nil }

// Use executes fn with the underlying bytes (not a copy).
func (s Secret) Use(fn func([]byte) error) error {
	return fn([]byte(s))
}

// Reveal returns the plain value. Only the Authorization header builder
// should need this.
func (s Secret) Reveal() string { return string(s) }

// Zero overwrites the underlying byte slice with zeros.
func (s *Secret) Zero() {
	if s == nil || *s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
}

// FromString copies in into a new Secret.
func FromString(in string) Secret { return Secret([]byte(in)) }

// FromOptional returns nil when in is nil, which is how module parameters
// report "not set".
func FromOptional(in *string) Secret {
	if in == nil {
		return nil
	}
	return FromString(*in)
}
