// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Command gh_keys is the Ansible module that adds or removes a GitHub SSH key.
//
// Usage:
//
//	gh_keys <args-file>
//	gh_keys --user leo --title laptop --key ~/.ssh/id_ed25519.pub --ask-password
package main

import (
	"os"

	"github.com/toeirei/keymaster-github/ui/cli"
)

func main() {
	if err := cli.Execute(cli.NewGhKeysCmd()); err != nil {
		os.Exit(1)
	}
}
