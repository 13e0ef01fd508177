/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package query

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/waqasbhatti/q3c/catalog"
	"github.com/waqasbhatti/q3c/frames"
	"github.com/waqasbhatti/q3c/q3c/cmd/input"
	"github.com/waqasbhatti/q3c/x"
)

// Query is the sub-command invoked when running "q3c query".
var Query x.SubCommand

func init() {
	Query.Cmd = &cobra.Command{
		Use:   "query",
		Short: "Prints the catalog objects inside a polygon",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			stop, err := Query.Setup()
			x.Check(err)
			defer stop.Stop()
			if err := run(); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "tool"},
	}
	Query.EnvPrefix = "Q3C_QUERY"
	Query.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flag := Query.Cmd.Flags()
	flag.String("dir", "q3c", "Directory of the catalog.")
	flag.Bool("recheck", true,
		"Test every object of a full cell against the polygon as well.")
	flag.Int("concurrency", 8, "Number of cells scanned in parallel.")
	flag.Duration("timeout", time.Minute, "Give up on the query after this long.")
	flag.BoolP("count", "c", false, "Only print the number of objects found.")
	input.AddPolygonFlags(flag)
}

func run() error {
	p, err := input.Polygon(Query)
	if err != nil {
		return err
	}

	opt := catalog.DefaultOptions(Query.Conf.GetString("dir"))
	opt.Coverer = input.Coverer()
	opt.Recheck = Query.GetBoolP("recheck", "", true)
	opt.Concurrency = Query.GetIntP("concurrency", "", 8)
	cat, err := catalog.Open(opt)
	if err != nil {
		return err
	}
	defer func() {
		if err := cat.Close(); err != nil {
			glog.Errorf("while closing catalog: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), Query.Conf.GetDuration("timeout"))
	defer cancel()
	start := time.Now()
	objs, err := cat.Query(ctx, p)
	if err != nil {
		return err
	}
	took := time.Since(start).Round(time.Microsecond)

	if !Query.GetBoolP("count", "c", false) {
		sort.Slice(objs, func(i, j int) bool { return objs[i].ID < objs[j].ID })
		for _, o := range objs {
			fmt.Printf("%016x %12.8f %12.8f  %s\n", o.ID, o.RA, o.Dec,
				frames.FormatEquatorial(o.RA, o.Dec))
		}
	}
	fmt.Printf("Found %s objects in %s\n", humanize.Comma(int64(len(objs))), took)
	return nil
}
