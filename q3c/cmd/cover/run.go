/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cover

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	geojson "github.com/paulmach/go.geojson"
	"github.com/spf13/cobra"

	"github.com/waqasbhatti/q3c/cube"
	"github.com/waqasbhatti/q3c/geo"
	"github.com/waqasbhatti/q3c/poly"
	"github.com/waqasbhatti/q3c/q3c/cmd/input"
	"github.com/waqasbhatti/q3c/x"
)

// Cover is the sub-command invoked when running "q3c cover".
var Cover x.SubCommand

func init() {
	Cover.Cmd = &cobra.Command{
		Use:   "cover",
		Short: "Prints the cells covering a polygon",
		Long: `Cover walks the cell tree of every face a polygon reaches and prints the
cells it keeps: full cells lie inside the polygon and partial cells cross its
boundary. The cover_* flags control the levels and the number of cells.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			stop, err := Cover.Setup()
			x.Check(err)
			defer stop.Stop()
			if err := run(cmd.OutOrStdout()); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "tool"},
	}
	Cover.EnvPrefix = "Q3C_COVER"
	Cover.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flag := Cover.Cmd.Flags()
	flag.Bool("geojson", false, "Print the covering as a GeoJSON feature collection.")
	flag.BoolP("tokens", "t", false, "Print the index keys to look up instead of the cells.")
	input.AddPolygonFlags(flag)
}

func run(w io.Writer) error {
	p, err := input.Polygon(Cover)
	if err != nil {
		return err
	}
	mf, err := poly.BuildMultiFace(p)
	if err != nil {
		return err
	}
	cov := input.Coverer().Covering(mf)

	switch {
	case Cover.GetBoolP("geojson", "", false):
		data, err := FeatureCollection(p, cov).MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case Cover.GetBoolP("tokens", "t", false):
		for _, t := range geo.CoveringTokens(cov) {
			fmt.Fprintf(w, "%s\n", t)
		}
	default:
		for _, c := range cov.Full {
			fmt.Fprintf(w, "%-24v %-18s %s\n", c, c.Token(), poly.Cover)
		}
		for _, c := range cov.Partial {
			fmt.Fprintf(w, "%-24v %-18s %s\n", c, c.Token(), poly.Partial)
		}
	}
	fmt.Fprintf(os.Stderr, "faces %v: %s full and %s partial cells\n", mf.Faces(),
		humanize.Comma(int64(len(cov.Full))), humanize.Comma(int64(len(cov.Partial))))
	return nil
}

// FeatureCollection renders the polygon and its covering cells as GeoJSON, with
// ra as longitude and dec as latitude. Cell edges are drawn as straight lines
// between the cell corners.
func FeatureCollection(p *poly.Polygon, cov geo.Covering) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	ring := make([][]float64, 0, p.Len()+1)
	for i := 0; i < p.Len(); i++ {
		ra, dec := p.Vertex(i)
		ring = append(ring, []float64{ra, dec})
	}
	ring = append(ring, ring[0])
	f := geojson.NewPolygonFeature([][][]float64{ring})
	f.SetProperty("kind", "polygon")
	fc.AddFeature(f)

	add := func(c cube.Cell, rel poly.Relation) {
		f := geojson.NewPolygonFeature([][][]float64{cellRing(c)})
		f.SetProperty("kind", "cell")
		f.SetProperty("token", c.Token())
		f.SetProperty("level", c.Level)
		f.SetProperty("relation", rel.String())
		fc.AddFeature(f)
	}
	for _, c := range cov.Full {
		add(c, poly.Cover)
	}
	for _, c := range cov.Partial {
		add(c, poly.Partial)
	}
	return fc
}

func cellRing(c cube.Cell) [][]float64 {
	b := c.Bounds()
	corners := [][2]float64{
		{b.X.Lo, b.Y.Lo}, {b.X.Hi, b.Y.Lo}, {b.X.Hi, b.Y.Hi}, {b.X.Lo, b.Y.Hi}, {b.X.Lo, b.Y.Lo},
	}
	ring := make([][]float64, 0, len(corners))
	for _, xy := range corners {
		ra, dec := cube.Unproject(c.Face, xy[0], xy[1])
		ring = append(ring, []float64{ra, dec})
	}
	return ring
}
