// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for keymaster-github.
//
// Usage:
//
//	go run . gh_keys --help
//	./keymaster-github gh_keys_facts --user leo
package main

import (
	"os"

	"github.com/toeirei/keymaster-github/ui/cli"
)

func main() {
	if err := cli.Execute(cli.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
