// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Command gh_keys_facts is the Ansible module that reads GitHub SSH keys.
//
// Usage:
//
//	gh_keys_facts <args-file>
//	gh_keys_facts --user leo -o table
package main

import (
	"os"

	"github.com/toeirei/keymaster-github/ui/cli"
)

func main() {
	if err := cli.Execute(cli.NewGhKeysFactsCmd()); err != nil {
		os.Exit(1)
	}
}
