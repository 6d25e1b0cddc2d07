// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package ansible

import (
	"encoding/json"
	"errors"
	"strings"
)

const (
	maskedValue    = "********"
	maskedArgument = "VALUE_SPECIFIED_IN_NO_LOG_PARAMETER"
)

// ErrFailed is returned by Fail so callers can map it to a non-zero exit.
var ErrFailed = errors.New("module failed")

// Result is the success document.
type Result struct {
	Changed bool
	// Result carries the raw GitHub response body.
	Result *string
}

// Detailer is implemented by errors that carry extra failure fields, such as
// the HTTP status of an API call.
type Detailer interface {
	FailureDetails() map[string]any
}

type invocation struct {
	ModuleArgs map[string]any `json:"module_args"`
}

// Exit prints the success document.
func (m *Module) Exit(res Result) error {
	doc := map[string]any{
		"changed":    res.Changed,
		"invocation": m.invocation(),
	}
	if res.Result != nil {
		doc["result"] = *res.Result
	}
	return m.emit(doc)
}

// Fail prints the failure document for err and returns ErrFailed, or the
// write error if printing failed.
func (m *Module) Fail(err error) error {
	doc := map[string]any{
		"failed":     true,
		"msg":        err.Error(),
		"invocation": m.invocation(),
	}
	var d Detailer
	if errors.As(err, &d) {
		for k, v := range d.FailureDetails() {
			if _, taken := doc[k]; !taken {
				doc[k] = v
			}
		}
	}
	if werr := m.emit(doc); werr != nil {
		return werr
	}
	return ErrFailed
}

func (m *Module) invocation() invocation {
	args := make(map[string]any, len(m.params))
	for k, v := range m.params {
		if o, ok := m.Spec.Lookup(k); ok && o.NoLog {
			args[k] = maskedArgument
			continue
		}
		args[k] = v
	}
	return invocation{ModuleArgs: args}
}

func (m *Module) emit(doc map[string]any) error {
	masked := m.mask(doc).(map[string]any)
	// The response body is relayed exactly as GitHub sent it.
	if body, ok := doc["result"]; ok {
		masked["result"] = body
	}
	enc := json.NewEncoder(m.out)
	enc.SetEscapeHTML(false)
	return enc.Encode(masked)
}

// mask replaces every occurrence of a no_log value in string leaves.
// emit exempts the top-level result.
func (m *Module) mask(v any) any {
	if len(m.noLog) == 0 {
		return v
	}
	switch t := v.(type) {
	case string:
		for _, secret := range m.noLog {
			t = strings.ReplaceAll(t, secret, maskedValue)
		}
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = m.mask(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = m.mask(vv)
		}
		return out
	case invocation:
		return invocation{ModuleArgs: m.mask(t.ModuleArgs).(map[string]any)}
	default:
		return v
	}
}
