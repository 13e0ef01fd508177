/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package locate

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/waqasbhatti/q3c/cube"
	"github.com/waqasbhatti/q3c/frames"
	"github.com/waqasbhatti/q3c/geo"
	"github.com/waqasbhatti/q3c/poly"
	"github.com/waqasbhatti/q3c/q3c/cmd/input"
	"github.com/waqasbhatti/q3c/x"
)

// Locate is the sub-command invoked when running "q3c locate".
var Locate x.SubCommand

func init() {
	Locate.Cmd = &cobra.Command{
		Use:   "locate <ra> <dec>",
		Short: "Prints the face, pixel and cell of a position",
		Long: `Locate projects a position onto its cube face and prints the planar
coordinates, the leaf pixel and the cell at the requested level. When a polygon
is given it also reports whether the position lies inside it.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			stop, err := Locate.Setup()
			x.Check(err)
			defer stop.Stop()
			if err := run(cmd.OutOrStdout(), args); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "tool"},
	}
	Locate.EnvPrefix = "Q3C_LOCATE"
	Locate.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flag := Locate.Cmd.Flags()
	flag.String("frame", "eq", "Frame of the position: eq or gal.")
	flag.IntP("level", "l", geo.MaxCellLevel, "Level of the cell to print.")
	flag.BoolP("tokens", "t", false, "Print the index keys of the position.")
	input.AddPolygonFlags(flag)
}

func run(w io.Writer, args []string) error {
	frame, err := frames.ParseFrame(Locate.GetStringP("frame", "", "eq"))
	if err != nil {
		return err
	}
	ra, dec, err := input.Position(frame, args[0], args[1])
	if err != nil {
		return err
	}
	level, err := input.Level(Locate, geo.MaxCellLevel)
	if err != nil {
		return err
	}

	f, px, py := cube.FaceXY(ra, dec)
	ipix := cube.IPix(ra, dec)
	cell := cube.CellFromIPix(ipix, level)
	fmt.Fprintf(w, "position : %s\n", frames.FormatEquatorial(ra, dec))
	fmt.Fprintf(w, "face     : %v\n", f)
	fmt.Fprintf(w, "plane    : %.10f %.10f\n", px, py)
	fmt.Fprintf(w, "ipix     : %d\n", ipix)
	fmt.Fprintf(w, "cell     : %v (token %s)\n", cell, cell.Token())

	if Locate.GetBoolP("tokens", "t", false) {
		for _, k := range geo.IndexKeys(ra, dec) {
			fmt.Fprintf(w, "key      : %s\n", k)
		}
	}

	if Locate.GetStringP("poly", "p", "") == "" && Locate.GetStringP("file", "f", "") == "" {
		return nil
	}
	p, err := input.Polygon(Locate)
	if err != nil {
		return err
	}
	mf, err := poly.BuildMultiFace(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "inside   : %v\n", mf.Locate(ra, dec))
	return nil
}
