// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"fmt"

	"github.com/toeirei/keymaster-github/internal/github"
	"github.com/toeirei/keymaster-github/internal/security"
)

// State is the desired state of a key.
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// States lists the accepted values, default first.
var States = []string{string(StatePresent), string(StateAbsent)}

// Params carries the raw module parameters. Nil pointers mean "not given".
type Params struct {
	State    string
	User     string
	Password *string
	Title    *string
	Key      *string
	KeyID    *string
}

// KeyRequest is either Present or Absent.
type KeyRequest interface {
	State() State
	credentials() github.Credentials
}

// Present asks for a key to be uploaded.
type Present struct {
	User     string
	Password security.Secret
	Title    string
	// KeyPath is the local file holding the public key.
	KeyPath string
}

// Absent asks for a key to be deleted.
type Absent struct {
	User     string
	Password security.Secret
	KeyID    string
}

func (Present) State() State { return StatePresent }
func (Absent) State() State  { return StateAbsent }

func (p Present) credentials() github.Credentials {
	return github.Credentials{User: p.User, Password: p.Password}
}

func (a Absent) credentials() github.Credentials {
	return github.Credentials{User: a.User, Password: a.Password}
}

// NewKeyRequest validates p and builds the matching variant. State defaults
// to present. Required fields are checked in the order title, key, password
// for present and key_id, password for absent.
func NewKeyRequest(p Params) (KeyRequest, error) {
	state := State(p.State)
	if state == "" {
		state = StatePresent
	}
	if p.User == "" {
		return nil, &ValidationError{Field: "user"}
	}

	switch state {
	case StatePresent:
		if err := requireFields(state, field{"title", p.Title}, field{"key", p.Key}, field{"password", p.Password}); err != nil {
			return nil, err
		}
		return Present{
			User:     p.User,
			Password: security.FromOptional(p.Password),
			Title:    *p.Title,
			KeyPath:  *p.Key,
		}, nil
	case StateAbsent:
		if err := requireFields(state, field{"key_id", p.KeyID}, field{"password", p.Password}); err != nil {
			return nil, err
		}
		return Absent{
			User:     p.User,
			Password: security.FromOptional(p.Password),
			KeyID:    *p.KeyID,
		}, nil
	default:
		return nil, &ValidationError{
			Field:  "state",
			Reason: fmt.Sprintf("value of state must be one of: present, absent, got: %s", p.State),
		}
	}
}

type field struct {
	name  string
	value *string
}

func requireFields(state State, fields ...field) error {
	for _, f := range fields {
		if f.value == nil {
			return &ValidationError{Field: f.name, State: string(state)}
		}
	}
	return nil
}

// FactsMode selects which listing endpoint a FactsRequest hits.
type FactsMode int

const (
	// PublicListing reads /users/{user}/keys without credentials.
	PublicListing FactsMode = iota
	// AuthenticatedListing reads /user/keys.
	AuthenticatedListing
	// SingleKey reads /user/keys/{key_id}.
	SingleKey
)

func (m FactsMode) String() string {
	switch m {
	case PublicListing:
		return "public"
	case AuthenticatedListing:
		return "authenticated"
	case SingleKey:
		return "single"
	default:
		return fmt.Sprintf("FactsMode(%d)", int(m))
	}
}

// FactsRequest is a read-only key lookup.
type FactsRequest struct {
	User     string
	Password security.Secret
	// KeyID is only honored together with a password.
	KeyID string
	hasID bool
}

// NewFactsRequest builds a FactsRequest. Only user is required.
func NewFactsRequest(user string, password, keyID *string) (FactsRequest, error) {
	if user == "" {
		return FactsRequest{}, &ValidationError{Field: "user"}
	}
	r := FactsRequest{User: user, Password: security.FromOptional(password)}
	if keyID != nil {
		r.KeyID = *keyID
		r.hasID = true
	}
	return r, nil
}

// Mode reports the endpoint selected by the credential combination.
func (r FactsRequest) Mode() FactsMode {
	switch {
	case r.Password.IsZero():
		return PublicListing
	case r.hasID:
		return SingleKey
	default:
		return AuthenticatedListing
	}
}

func (r FactsRequest) credentials() github.Credentials {
	return github.Credentials{User: r.User, Password: r.Password}
}
