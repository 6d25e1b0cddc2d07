// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the runtime settings shared by the gh_keys modules:
// where the GitHub API lives, how the HTTP client behaves and how loud the
// logger is. Module parameters (user, password, key...) are not settings and
// never pass through here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultAPIURL is GitHub's public REST v3 endpoint.
const DefaultAPIURL = "https://api.github.com/"

// EnvPrefix is prepended to every environment override (GHKEYS_API_URL, ...).
const EnvPrefix = "ghkeys"

// Settings is the resolved runtime configuration.
type Settings struct {
	APIURL        string        `mapstructure:"api_url" yaml:"api_url"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ValidateCerts bool          `mapstructure:"validate_certs" yaml:"validate_certs"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level"`
}

// Defaults returns the built-in defaults keyed the way viper expects them.
func Defaults(version string) map[string]any {
	return map[string]any{
		"api_url":        DefaultAPIURL,
		"timeout":        "0s",
		"validate_certs": true,
		"user_agent":     "keymaster-github/" + version,
		"log_level":      "warn",
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Keymaster")
		default:
			configDir = "/etc/keymaster"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "keymaster")
	}

	return filepath.Join(configDir, "ghkeys.yaml"), nil
}

// LoadConfig resolves T from defaults, the first ghkeys.yaml found (or the
// explicit file), GHKEYS_* environment variables and finally the command's
// flags. Only flags naming a key in defaults are bound, with dashes turned
// into underscores, so module parameters such as --password stay out of viper.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("ghkeys")
	v.SetConfigType("yaml")
	if explicitFile != nil {
		v.SetConfigFile(*explicitFile)
	}
	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file just means defaults; a malformed one is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		var bindErr error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if bindErr != nil {
				return
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, known := defaults[key]; !known {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return c, bindErr
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// WriteConfigFile persists c as YAML to the user (or system) config path and
// returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := getConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}
