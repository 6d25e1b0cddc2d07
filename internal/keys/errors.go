// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import "fmt"

// DuplicateKeyHint is attached to a 422 answer to a key upload. GitHub uses
// 422 when the key material is already registered to some account.
const DuplicateKeyHint = "key is already in use"

// ValidationError reports a parameter that is missing or invalid for the
// requested operation.
type ValidationError struct {
	Field string
	State string
	// Reason replaces the default message when set.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.State == "" {
		return fmt.Sprintf("%s cannot be null", e.Field)
	}
	return fmt.Sprintf("%s cannot be null for state [%s]", e.Field, e.State)
}
