// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/toeirei/keymaster-github/internal/sshkey"
)

const (
	outputModule = "module"
	outputJSON   = "json"
	outputYAML   = "yaml"
	outputTable  = "table"
)

func validOutput(f string) bool {
	switch f {
	case outputModule, outputJSON, outputYAML, outputTable:
		return true
	}
	return false
}

// keyRecord is the subset of GitHub's key object shown in table output. The
// public listing only fills ID and Key.
type keyRecord struct {
	ID        int64  `json:"id"`
	Key       string `json:"key"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	Verified  *bool  `json:"verified"`
	ReadOnly  *bool  `json:"read_only"`
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderFacts(w io.Writer, body []byte, format string) error {
	switch format {
	case outputJSON:
		_, err := fmt.Fprintln(w, string(body))
		return err
	case outputYAML:
		out, err := yaml.JSONToYAML(body)
		if err != nil {
			return fmt.Errorf("convert response to yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case outputTable:
		records, err := decodeRecords(body)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, keyTable(records))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func decodeRecords(body []byte) ([]keyRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var one keyRecord
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("decode key: %w", err)
		}
		return []keyRecord{one}, nil
	}
	var many []keyRecord
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return nil, fmt.Errorf("decode key list: %w", err)
	}
	return many, nil
}

func keyTable(records []keyRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "TYPE", "FINGERPRINT", "CREATED", "VERIFIED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range records {
		typ, fp := "?", "?"
		info, err := sshkey.Describe(r.Key)
		if info.Algorithm != "" {
			typ = info.Algorithm
		}
		if err == nil {
			fp = info.Fingerprint
		}
		t.Row(strconv.FormatInt(r.ID, 10), orDash(r.Title), typ, fp, orDash(r.CreatedAt), yesNo(r.Verified))
	}
	return t.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b *bool) string {
	switch {
	case b == nil:
		return "-"
	case *b:
		return "yes"
	default:
		return "no"
	}
}
