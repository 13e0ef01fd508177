/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package version

import (
	"github.com/spf13/cobra"

	"github.com/waqasbhatti/q3c/x"
)

// Version is the sub-command invoked when running "q3c version".
var Version x.SubCommand

func init() {
	Version.Cmd = &cobra.Command{
		Use:   "version",
		Short: "Prints the q3c version details",
		Long:  "Version prints the q3c version as reported by the build details.",
		Run: func(cmd *cobra.Command, args []string) {
			x.PrintVersionOnly()
		},
		Annotations: map[string]string{"group": "default"},
	}
	Version.Cmd.SetHelpTemplate(x.NonRootTemplate)
}
