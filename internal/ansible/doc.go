// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ansible implements the host side of the Ansible binary module
// protocol: the controller hands the module a file of arguments, the module
// validates them against its argument spec and prints exactly one JSON
// document on stdout describing success or failure.
//
// The package knows nothing about GitHub. Modules declare an ArgumentSpec,
// call Parse, read typed parameters back and finish with Exit or Fail.
package ansible
