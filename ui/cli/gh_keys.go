// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/toeirei/keymaster-github/internal/ansible"
	"github.com/toeirei/keymaster-github/internal/keys"
	"github.com/toeirei/keymaster-github/internal/logging"
)

var ghKeysSpec = ansible.ArgumentSpec{
	{Name: "state", Default: string(keys.StatePresent), Choices: keys.States},
	{Name: "user", Required: true},
	{Name: "password", NoLog: true},
	{Name: "title"},
	{Name: "key"},
	{Name: "key_id"},
	{Name: "validate_certs", Kind: ansible.Bool},
	{Name: "api_url"},
}

// NewGhKeysCmd returns the gh_keys module command.
func NewGhKeysCmd() *cobra.Command {
	return newModuleCmd(moduleDef{
		name:  "gh_keys",
		short: "Add or remove an SSH key on a GitHub account",
		long: `gh_keys manages one SSH public key of a GitHub user through the REST v3 API.

  state=present uploads the first line of the file named by key under title.
  state=absent deletes the key with id key_id.

Both states authenticate with user and password (a personal access token when
the account uses 2FA). As an Ansible module it takes the arguments file path
as its only argument; without one it reads the flags below.`,
		spec: ghKeysSpec,
		flags: []paramFlag{
			{param: "state", flag: "state", short: "s", usage: "present or absent (default present)"},
			{param: "user", flag: "user", short: "u", usage: "GitHub username"},
			{param: "password", flag: "password", short: "p", usage: "GitHub password or token (prefer " + passwordEnv + " or --ask-password)"},
			{param: "title", flag: "title", short: "t", usage: "Title of the new key (state=present)"},
			{param: "key", flag: "key", short: "k", usage: "Path of the public key file (state=present)"},
			{param: "key_id", flag: "key-id", short: "i", usage: "Key id assigned by GitHub (state=absent)"},
		},
		run: runGhKeys,
	})
}

func runGhKeys(ctx context.Context, env *moduleEnv) error {
	m := env.mod
	req, err := keys.NewKeyRequest(keys.Params{
		State:    env.param("state"),
		User:     env.param("user"),
		Password: m.String("password"),
		Title:    m.String("title"),
		Key:      m.String("key"),
		KeyID:    m.String("key_id"),
	})
	if err != nil {
		return m.Fail(err)
	}

	if m.CheckMode {
		logging.Infof("check mode: state=%s not applied", req.State())
		return m.Exit(ansible.Result{Changed: true})
	}

	client, err := env.client()
	if err != nil {
		return m.Fail(err)
	}
	body, err := keys.NewMutator(client).Execute(ctx, req)
	if err != nil {
		return m.Fail(err)
	}
	result := string(body)
	return m.Exit(ansible.Result{Changed: true, Result: &result})
}
