// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package ansible

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
)

var kvStart = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)

// LoadArgs reads and decodes the arguments file passed by the controller.
func LoadArgs(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read arguments file: %w", err)
	}
	return ParseArgs(data)
}

// ParseArgs decodes module arguments. New-style modules receive a JSON
// object, which the YAML decoder reads as well; old-style modules receive
// space-separated key=value pairs with shell quoting.
func ParseArgs(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	if kvStart.Match(trimmed) {
		return parseKeyValue(string(trimmed))
	}

	var out map[string]any
	if err := yaml.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func parseKeyValue(s string) (map[string]any, error) {
	tokens, err := splitArgs(s)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(tokens))
	for _, tok := range tokens {
		k, v, ok := strings.Cut(tok, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("decode arguments: %q is not key=value", tok)
		}
		out[k] = v
	}
	return out, nil
}

// splitArgs splits on unquoted whitespace. Single quotes are literal, double
// quotes honor backslash escapes, quotes may appear mid-token (key="a b").
func splitArgs(s string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inToken bool
		quote   rune
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote == '"' && r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case r == '\\':
			escaped = true
			inToken = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 || escaped {
		return nil, fmt.Errorf("decode arguments: unterminated quote or escape")
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}
