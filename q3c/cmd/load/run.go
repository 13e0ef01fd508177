/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package load

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/waqasbhatti/q3c/catalog"
	"github.com/waqasbhatti/q3c/q3c/cmd/input"
	"github.com/waqasbhatti/q3c/x"
)

const defaultBatch = 10000

// Load is the sub-command invoked when running "q3c load".
var Load x.SubCommand

func init() {
	Load.Cmd = &cobra.Command{
		Use:   "load",
		Short: "Loads point sources from a CSV file into a catalog",
		Long: `Load reads rows of name, ra, dec from a CSV file and stores them in the
catalog at --dir. Object ids are derived from the names, so loading a file
twice leaves the catalog unchanged.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			stop, err := Load.Setup()
			x.Check(err)
			defer stop.Stop()
			if err := run(); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "data-load"},
	}
	Load.EnvPrefix = "Q3C_LOAD"
	Load.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flag := Load.Cmd.Flags()
	flag.String("dir", "q3c", "Directory of the catalog.")
	flag.String("csv", "", "CSV file with name, ra, dec columns.")
	flag.Int("batch", defaultBatch, "Number of objects written per batch.")
	x.Check(Load.Cmd.MarkFlagRequired("csv"))
}

func run() error {
	fd, err := os.Open(Load.Conf.GetString("csv"))
	if err != nil {
		return err
	}
	defer fd.Close()

	opt := catalog.DefaultOptions(Load.Conf.GetString("dir"))
	opt.Coverer = input.Coverer()
	cat, err := catalog.Open(opt)
	if err != nil {
		return err
	}
	defer func() {
		if err := cat.Close(); err != nil {
			glog.Errorf("while closing catalog: %v", err)
		}
	}()

	start := time.Now()
	n, err := loadCSV(context.Background(), cat, fd, Load.GetIntP("batch", "", defaultBatch))
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %s objects in %s\n", humanize.Comma(int64(n)),
		time.Since(start).Round(time.Millisecond))
	return nil
}

// loadCSV writes the rows of r to cat in batches of size batch. A first row
// whose ra is not a number is taken as a header.
func loadCSV(ctx context.Context, cat *catalog.Catalog, r io.Reader, batch int) (int, error) {
	if batch < 1 {
		batch = 1
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var total, line int
	objs := make([]catalog.Object, 0, batch)
	flush := func() error {
		if len(objs) == 0 {
			return nil
		}
		if err := cat.Put(ctx, objs); err != nil {
			return err
		}
		total += len(objs)
		objs = objs[:0]
		glog.V(1).Infof("Loaded %s objects", humanize.Comma(int64(total)))
		return nil
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, errors.Wrapf(err, "while reading CSV")
		}
		line++
		for i, v := range rec {
			rec[i] = strings.TrimSpace(v)
		}
		if rec[1] == "" || rec[2] == "" {
			return total, errors.Errorf("line %d: missing position", line)
		}
		ra, err := cast.ToFloat64E(rec[1])
		if err != nil {
			if line == 1 {
				continue
			}
			return total, errors.Wrapf(err, "line %d: invalid ra", line)
		}
		dec, err := cast.ToFloat64E(rec[2])
		if err != nil {
			return total, errors.Wrapf(err, "line %d: invalid dec", line)
		}
		objs = append(objs, catalog.Object{ID: catalog.ObjectID(rec[0]), RA: ra, Dec: dec})
		if len(objs) == batch {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	return total, flush()
}
