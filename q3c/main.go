/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"github.com/waqasbhatti/q3c/q3c/cmd"
)

func main() {
	cmd.Execute()
}
