// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package ansible

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the type a parameter is coerced to.
type Kind int

const (
	String Kind = iota
	Bool
)

// Option declares one module parameter.
type Option struct {
	Name     string
	Kind     Kind
	Required bool
	Default  any
	Choices  []string
	// NoLog masks the value in every document the module prints.
	NoLog bool
}

// ArgumentSpec is the full parameter declaration of a module.
type ArgumentSpec []Option

// Names returns the declared parameter names in declaration order.
func (s ArgumentSpec) Names() []string {
	out := make([]string, 0, len(s))
	for _, o := range s {
		out = append(out, o.Name)
	}
	return out
}

// Lookup finds an option by name.
func (s ArgumentSpec) Lookup(name string) (Option, bool) {
	for _, o := range s {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

func coerce(o Option, v any) (any, error) {
	switch o.Kind {
	case Bool:
		return toBool(o.Name, v)
	default:
		return toString(o.Name, v)
	}
}

func toString(name string, v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10), nil
		}
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("argument %s is of type %T and we were unable to convert to str", name, v)
	}
}

func toBool(name string, v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "y", "yes", "on", "1", "true", "t":
			return true, nil
		case "n", "no", "off", "0", "false", "f":
			return false, nil
		}
	case int, int64, uint64:
		s := fmt.Sprint(t)
		if s == "1" {
			return true, nil
		}
		if s == "0" {
			return false, nil
		}
	}
	return false, fmt.Errorf("argument %s is of type %T and we were unable to convert to bool: %v", name, v, v)
}
