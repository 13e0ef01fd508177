/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package classify

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/waqasbhatti/q3c/cube"
	"github.com/waqasbhatti/q3c/frames"
	"github.com/waqasbhatti/q3c/poly"
	"github.com/waqasbhatti/q3c/q3c/cmd/input"
	"github.com/waqasbhatti/q3c/x"
)

const defaultLevel = 8

// Classify is the sub-command invoked when running "q3c classify".
var Classify x.SubCommand

func init() {
	Classify.Cmd = &cobra.Command{
		Use:   "classify <ra> <dec>...",
		Short: "Relates the cells holding positions to a polygon",
		Long: `Classify finds, for every ra dec pair, the cell at --level holding the
position and prints whether the polygon covers it, crosses it or misses it.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("want ra dec pairs, got %d arguments", len(args))
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			stop, err := Classify.Setup()
			x.Check(err)
			defer stop.Stop()
			if err := run(cmd.OutOrStdout(), args); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "tool"},
	}
	Classify.EnvPrefix = "Q3C_CLASSIFY"
	Classify.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flag := Classify.Cmd.Flags()
	flag.IntP("level", "l", defaultLevel, "Level of the cells to classify.")
	input.AddPolygonFlags(flag)
}

func run(w io.Writer, args []string) error {
	level, err := input.Level(Classify, defaultLevel)
	if err != nil {
		return err
	}
	p, err := input.Polygon(Classify)
	if err != nil {
		return err
	}
	mf, err := poly.BuildMultiFace(p)
	if err != nil {
		return err
	}
	for i := 0; i < len(args); i += 2 {
		ra, dec, err := input.Position(frames.Equatorial, args[i], args[i+1])
		if err != nil {
			return err
		}
		cell := cube.CellFromIPix(cube.IPix(ra, dec), level)
		fmt.Fprintf(w, "%-24v %s\n", cell, mf.Classify(cell))
	}
	return nil
}
