// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package ansible

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/toeirei/keymaster-github/internal/logging"
)

// Controller-internal parameters start with this prefix.
const internalPrefix = "_ansible_"

// Module is one invocation of a module binary.
type Module struct {
	Name string
	Spec ArgumentSpec
	// SupportsCheckMode mirrors supports_check_mode in the module metadata.
	SupportsCheckMode bool
	// CheckMode is true when the controller asked for a dry run.
	CheckMode bool

	out    io.Writer
	params map[string]any
	noLog  []string
}

// NewModule prepares a module that prints its result to out.
func NewModule(name string, spec ArgumentSpec, supportsCheckMode bool, out io.Writer) *Module {
	return &Module{
		Name:              name,
		Spec:              spec,
		SupportsCheckMode: supportsCheckMode,
		out:               out,
		params:            map[string]any{},
	}
}

// Parse validates raw against the argument spec: unknown keys, type
// coercion, required parameters, choices and defaults, in that order.
func (m *Module) Parse(raw map[string]any) error {
	var unsupported []string
	for k, v := range raw {
		if strings.HasPrefix(k, internalPrefix) {
			if err := m.setInternal(k, v); err != nil {
				return err
			}
			continue
		}
		if _, ok := m.Spec.Lookup(k); !ok {
			unsupported = append(unsupported, k)
		}
	}
	if len(unsupported) > 0 {
		sort.Strings(unsupported)
		supported := m.Spec.Names()
		sort.Strings(supported)
		return fmt.Errorf("Unsupported parameters for (%s) module: %s. Supported parameters include: %s",
			m.Name, strings.Join(unsupported, ", "), strings.Join(supported, ", "))
	}

	var missing []string
	for _, o := range m.Spec {
		v, given := raw[o.Name]
		if !given || v == nil {
			if o.Required {
				missing = append(missing, o.Name)
				continue
			}
			if o.Default != nil {
				m.params[o.Name] = o.Default
			}
			continue
		}
		cv, err := coerce(o, v)
		if err != nil {
			return err
		}
		if o.NoLog {
			if s, ok := cv.(string); ok && s != "" {
				m.noLog = append(m.noLog, s)
			}
		}
		m.params[o.Name] = cv
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required arguments: %s", strings.Join(missing, ", "))
	}

	for _, o := range m.Spec {
		if len(o.Choices) == 0 {
			continue
		}
		v, ok := m.params[o.Name].(string)
		if ok && !slices.Contains(o.Choices, v) {
			return fmt.Errorf("value of %s must be one of: %s, got: %s", o.Name, strings.Join(o.Choices, ", "), v)
		}
	}

	if m.CheckMode && !m.SupportsCheckMode {
		return errors.New("check mode is not supported by " + m.Name)
	}
	return nil
}

func (m *Module) setInternal(k string, v any) error {
	switch k {
	case "_ansible_check_mode":
		b, err := toBool(k, v)
		if err != nil {
			return err
		}
		m.CheckMode = b
	case "_ansible_verbosity":
		if s, err := toString(k, v); err == nil && s != "0" {
			_ = logging.SetLevel("debug")
		}
	default:
		logging.Debugf("ignoring controller parameter %s", k)
	}
	return nil
}

// String returns a string parameter, or nil when it was not given and has
// no default.
func (m *Module) String(name string) *string {
	v, ok := m.params[name].(string)
	if !ok {
		return nil
	}
	return &v
}

// Bool returns a bool parameter, false when unset.
func (m *Module) Bool(name string) bool {
	v, _ := m.params[name].(bool)
	return v
}

// Has reports whether the parameter ended up with a value.
func (m *Module) Has(name string) bool {
	_, ok := m.params[name]
	return ok
}
