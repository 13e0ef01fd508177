/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package conv

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/waqasbhatti/q3c/frames"
	"github.com/waqasbhatti/q3c/q3c/cmd/input"
	"github.com/waqasbhatti/q3c/x"
)

// Conv is the sub-command invoked when running "q3c conv".
var Conv x.SubCommand

func init() {
	Conv.Cmd = &cobra.Command{
		Use:   "conv <lon> <lat>",
		Short: "Converts a position between the equatorial and galactic frames",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			stop, err := Conv.Setup()
			x.Check(err)
			defer stop.Stop()
			if err := run(cmd.OutOrStdout(), args); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "tool"},
	}
	Conv.EnvPrefix = "Q3C_CONV"
	Conv.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flag := Conv.Cmd.Flags()
	flag.String("from", "eq", "Frame of the input position: eq or gal.")
	flag.String("to", "gal", "Frame of the output position: eq or gal.")
	flag.BoolP("sexagesimal", "s", false, "Also print equatorial output as hours and degrees.")
}

func run(w io.Writer, args []string) error {
	from, err := frames.ParseFrame(Conv.GetStringP("from", "", "eq"))
	if err != nil {
		return err
	}
	to, err := frames.ParseFrame(Conv.GetStringP("to", "", "gal"))
	if err != nil {
		return err
	}
	lon, lat, err := input.Angles(args[0], args[1])
	if err != nil {
		return err
	}

	c := frames.Converter{Diagnostic: x.Config.Diagnostic}
	a, b := c.Convert(from, to, lon, lat)
	fmt.Fprintf(w, "%s: %.8f %.8f\n", to, a, b)
	if to == frames.Equatorial && Conv.GetBoolP("sexagesimal", "s", false) {
		fmt.Fprintln(w, frames.FormatEquatorial(a, b))
	}
	return nil
}
