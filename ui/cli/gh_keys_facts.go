// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/keymaster-github/internal/ansible"
	"github.com/toeirei/keymaster-github/internal/keys"
	"github.com/toeirei/keymaster-github/internal/logging"
)

var ghKeysFactsSpec = ansible.ArgumentSpec{
	{Name: "user", Required: true},
	{Name: "password", NoLog: true},
	{Name: "key_id"},
	{Name: "validate_certs", Kind: ansible.Bool},
	{Name: "api_url"},
}

// NewGhKeysFactsCmd returns the gh_keys_facts module command.
func NewGhKeysFactsCmd() *cobra.Command {
	return newModuleCmd(moduleDef{
		name:  "gh_keys_facts",
		short: "Read SSH keys of a GitHub account",
		long: `gh_keys_facts reads SSH public keys from the GitHub REST v3 API.

  user only                    public keys of any user (id and key only)
  user and password            all keys of the authenticated user
  user, password and key_id    one key of the authenticated user`,
		spec: ghKeysFactsSpec,
		flags: []paramFlag{
			{param: "user", flag: "user", short: "u", usage: "GitHub username"},
			{param: "password", flag: "password", short: "p", usage: "GitHub password or token (prefer " + passwordEnv + " or --ask-password)"},
			{param: "key_id", flag: "key-id", short: "i", usage: "Key id assigned by GitHub"},
		},
		extra: func(cmd *cobra.Command) {
			cmd.Flags().StringP("output", "o", outputModule, "Output format in flag mode: module, json, yaml or table")
		},
		run: runGhKeysFacts,
	})
}

func runGhKeysFacts(ctx context.Context, env *moduleEnv) error {
	m := env.mod

	format := outputModule
	if env.flagMode {
		format, _ = env.cmd.Flags().GetString("output")
		if !validOutput(format) {
			return m.Fail(fmt.Errorf("unknown output format %q", format))
		}
	}

	req, err := keys.NewFactsRequest(env.param("user"), m.String("password"), m.String("key_id"))
	if err != nil {
		return m.Fail(err)
	}

	if m.CheckMode {
		logging.Infof("check mode: %s listing for %s not requested", req.Mode(), req.User)
		return m.Exit(ansible.Result{Changed: true})
	}

	client, err := env.client()
	if err != nil {
		return m.Fail(err)
	}
	body, err := keys.NewQuery(client).Execute(ctx, req)
	if err != nil {
		return m.Fail(err)
	}

	if format != outputModule {
		if err := renderFacts(env.cmd.OutOrStdout(), body, format); err != nil {
			return m.Fail(err)
		}
		return nil
	}
	result := string(body)
	return m.Exit(ansible.Result{Changed: true, Result: &result})
}
