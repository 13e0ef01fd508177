/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"fmt"
	"os"
)

var (
	// These variables are set using -ldflags
	q3cVersion     string
	gitBranch      string
	lastCommitSHA  string
	lastCommitTime string
)

// BuildDetails returns a string containing details about the q3c binary.
func BuildDetails() string {
	return fmt.Sprintf(`
q3c version      : %v
Commit SHA-1     : %v
Commit timestamp : %v
Branch           : %v

Licensed under the Apache Public License 2.0.

`,
		Version(), lastCommitSHA, lastCommitTime, gitBranch)
}

// PrintVersionOnly prints version and other helpful information if --version.
func PrintVersionOnly() {
	fmt.Println(BuildDetails())
	os.Exit(0)
}

// Version returns a string containing the q3c version.
func Version() string {
	if q3cVersion == "" {
		return "dev"
	}
	return q3cVersion
}
