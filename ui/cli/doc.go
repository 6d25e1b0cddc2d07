// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli builds the cobra commands behind the gh_keys and gh_keys_facts
// binaries. Invoked with an arguments file the commands speak the Ansible
// module protocol; invoked with flags they are ordinary CLI tools. Either way
// the work is delegated to internal/keys and the result goes through
// internal/ansible so both paths print the same document.
package cli
