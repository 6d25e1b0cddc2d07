// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/keymaster-github/internal/ansible"
	"github.com/toeirei/keymaster-github/internal/config"
	"github.com/toeirei/keymaster-github/internal/github"
	"github.com/toeirei/keymaster-github/internal/logging"
)

// passwordEnv supplies the password in flag mode without putting it on the
// command line.
const passwordEnv = "GHKEYS_PASSWORD"

// paramFlag maps a module parameter onto a CLI flag.
type paramFlag struct {
	param string
	flag  string
	short string
	usage string
}

type moduleDef struct {
	name  string
	short string
	long  string
	spec  ansible.ArgumentSpec
	flags []paramFlag
	// extra registers command-specific flags.
	extra func(cmd *cobra.Command)
	run   func(ctx context.Context, env *moduleEnv) error
}

// moduleEnv is everything a module body needs for one invocation.
type moduleEnv struct {
	cmd      *cobra.Command
	mod      *ansible.Module
	settings config.Settings
	// flagMode is true when parameters came from flags rather than an
	// arguments file.
	flagMode bool
}

func (e *moduleEnv) param(name string) string {
	if v := e.mod.String(name); v != nil {
		return *v
	}
	return ""
}

// client builds the GitHub client, letting module parameters override the
// API URL and certificate validation from the settings.
func (e *moduleEnv) client() (*github.Client, error) {
	opts := github.Options{
		BaseURL:       e.settings.APIURL,
		Timeout:       e.settings.Timeout,
		ValidateCerts: e.settings.ValidateCerts,
		UserAgent:     e.settings.UserAgent,
	}
	if v := e.param("api_url"); v != "" {
		opts.BaseURL = v
	}
	if e.mod.Has("validate_certs") {
		opts.ValidateCerts = e.mod.Bool("validate_certs")
	}
	return github.NewClient(opts)
}

func newModuleCmd(def moduleDef) *cobra.Command {
	cmd := &cobra.Command{
		Use:           def.name + " [args-file]",
		Short:         def.short,
		Long:          def.long,
		Args:          cobra.MaximumNArgs(1),
		Version:       compositeVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mod := ansible.NewModule(def.name, def.spec, true, cmd.OutOrStdout())

			settings, err := loadSettings(cmd)
			if err != nil {
				return mod.Fail(err)
			}

			raw, err := collectParams(cmd, def, args)
			if err != nil {
				return mod.Fail(err)
			}
			if err := mod.Parse(raw); err != nil {
				return mod.Fail(err)
			}

			return def.run(cmd.Context(), &moduleEnv{
				cmd:      cmd,
				mod:      mod,
				settings: settings,
				flagMode: len(args) == 0,
			})
		},
	}

	applySettingsFlags(cmd)
	for _, pf := range def.flags {
		cmd.Flags().StringP(pf.flag, pf.short, "", pf.usage)
	}
	cmd.Flags().Bool("check", false, "Dry run: validate parameters and report the change without calling GitHub")
	cmd.Flags().Bool("ask-password", false, "Prompt for the GitHub password or token")
	if def.extra != nil {
		def.extra(cmd)
	}
	return cmd
}

// applySettingsFlags registers the flags that feed config.Settings.
func applySettingsFlags(cmd *cobra.Command) {
	if cmd.PersistentFlags().Lookup("config") != nil {
		return
	}
	cmd.PersistentFlags().String("config", "", "config file (default: <user config dir>/keymaster/ghkeys.yaml)")
	cmd.PersistentFlags().String("api-url", config.DefaultAPIURL, "GitHub API root, e.g. https://ghe.example.com/api/v3/")
	cmd.PersistentFlags().Duration("timeout", 0, "HTTP timeout (0 keeps the transport default)")
	cmd.PersistentFlags().Bool("validate-certs", true, "Verify the API server's TLS certificate")
	cmd.PersistentFlags().String("user-agent", "", "User-Agent header sent to GitHub")
	cmd.PersistentFlags().String("log-level", "warn", "Log level on stderr (debug, info, warn, error)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Shorthand for --log-level debug")
}

func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	explicit, err := getConfigPathFromCli(cmd)
	if err != nil {
		return config.Settings{}, err
	}
	v, _, _ := resolveBuildVersion(nil)
	settings, err := config.LoadConfig[config.Settings](cmd, config.Defaults(v), explicit)
	if err != nil {
		return settings, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		settings.LogLevel = "debug"
	}
	if err := logging.SetLevel(settings.LogLevel); err != nil {
		return settings, err
	}
	logging.Debugf("api_url=%s timeout=%s validate_certs=%t", settings.APIURL, settings.Timeout, settings.ValidateCerts)
	return settings, nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// collectParams reads the arguments file when one is given, otherwise maps
// the changed flags onto module parameters.
func collectParams(cmd *cobra.Command, def moduleDef, args []string) (map[string]any, error) {
	if len(args) == 1 {
		return ansible.LoadArgs(args[0])
	}

	raw := map[string]any{}
	for _, pf := range def.flags {
		if cmd.Flags().Changed(pf.flag) {
			v, _ := cmd.Flags().GetString(pf.flag)
			raw[pf.param] = v
		}
	}
	if check, _ := cmd.Flags().GetBool("check"); check {
		raw["_ansible_check_mode"] = true
	}

	if _, declared := def.spec.Lookup("password"); declared {
		if _, given := raw["password"]; !given {
			if pw, ok := os.LookupEnv(passwordEnv); ok {
				raw["password"] = pw
			} else if ask, _ := cmd.Flags().GetBool("ask-password"); ask {
				pw, err := readPassword(cmd)
				if err != nil {
					return nil, err
				}
				raw["password"] = pw
			}
		}
	}
	return raw, nil
}
