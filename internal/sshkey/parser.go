// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// Info summarizes a public key line.
type Info struct {
	Algorithm   string
	Comment     string
	Fingerprint string
}

var keyPrefixes = []string{"ssh-", "ecdsa-", "sk-"}

// Parse splits a raw public key string (like one from an authorized_keys file)
// into its three core components: algorithm, key data, and comment.
// Leading options (from="...",command="...") are skipped.
func Parse(rawKey string) (algorithm, keyData, comment string, err error) {
	fields := strings.Fields(rawKey)
	if len(fields) == 0 {
		err = fmt.Errorf("empty line")
		return
	}

	keyStartIndex := -1
	for i, field := range fields {
		if hasKeyPrefix(field) {
			keyStartIndex = i
			break
		}
	}
	if keyStartIndex == -1 {
		err = fmt.Errorf("no valid SSH key type found in line")
		return
	}
	if len(fields) < keyStartIndex+2 {
		err = fmt.Errorf("invalid public key format: missing key data after algorithm")
		return
	}

	algorithm = fields[keyStartIndex]
	keyData = fields[keyStartIndex+1]
	if len(fields) > keyStartIndex+2 {
		comment = strings.Join(fields[keyStartIndex+2:], " ")
	}
	return
}

func hasKeyPrefix(field string) bool {
	for _, p := range keyPrefixes {
		if strings.HasPrefix(field, p) {
			return true
		}
	}
	return false
}

// Describe decodes the key blob and returns its SHA256 fingerprint next to
// the algorithm and comment. When the blob does not decode, the line is still
// split with Parse and the returned Info carries the algorithm and comment
// (no fingerprint) alongside the error.
func Describe(line string) (Info, error) {
	pub, comment, _, _, err := ssh.ParseAuthorizedKey([]byte(line))
	if err != nil {
		var info Info
		if alg, _, c, perr := Parse(line); perr == nil {
			info = Info{Algorithm: alg, Comment: c}
		}
		return info, fmt.Errorf("parse public key: %w", err)
	}
	return Info{
		Algorithm:   pub.Type(),
		Comment:     comment,
		Fingerprint: ssh.FingerprintSHA256(pub),
	}, nil
}
