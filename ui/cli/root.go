// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/toeirei/keymaster-github/internal/ansible"
	"github.com/toeirei/keymaster-github/internal/config"
	"github.com/toeirei/keymaster-github/internal/logging"
)

// NewRootCmd creates the combined keymaster-github command with both modules
// and the config helpers as subcommands. Tests build a fresh one per case.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keymaster-github",
		Short: "Manage GitHub SSH keys, standalone or as Ansible modules",
		Long: `keymaster-github bundles the gh_keys and gh_keys_facts Ansible modules.

Copy or link the binary as gh_keys / gh_keys_facts into an Ansible library
directory, or run the subcommands directly with flags.`,
		Version:       compositeVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	applySettingsFlags(cmd)
	cmd.AddCommand(NewGhKeysCmd(), NewGhKeysFactsCmd(), newConfigCmd())
	return cmd
}

func newConfigCmd() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize the settings file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(s)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the resolved settings to the user (or system) config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			system, _ := cmd.Flags().GetBool("system")
			path, err := config.WriteConfigFile(&s, system)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("system", false, "Write the system-wide file instead of the user one")

	cfgCmd.AddCommand(show, initCmd)
	return cfgCmd
}

// Execute runs cmd. A module failure has already been printed as JSON, so
// only other errors are logged.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, ansible.ErrFailed) {
		logging.Errorf("%s: %v", cmd.Name(), err)
	}
	return err
}
