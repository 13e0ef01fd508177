/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/waqasbhatti/q3c/cube"
)

// Options stores the process wide options shared by the q3c commands.
type Options struct {
	// CoverMinLevel and CoverMaxLevel bound the cell levels used to cover a
	// query polygon.
	CoverMinLevel int
	CoverMaxLevel int
	// CoverMaxCells is the soft limit on the number of cells in a covering.
	CoverMaxCells int
	// CacheMB is the size of the cache of built query polygons.
	CacheMB int64
	// Diagnostic logs every frame conversion.
	Diagnostic bool
}

// Config stores the global instance of this package's options.
var Config = Options{
	CoverMinLevel: 4,
	CoverMaxLevel: 16,
	CoverMaxCells: 64,
	CacheMB:       16,
}

// FillCoverFlags registers the flags read by LoadConfig.
func FillCoverFlags(flag *pflag.FlagSet) {
	flag.Int("cover_min_level", Config.CoverMinLevel,
		"Coarsest cell level used when covering a polygon.")
	flag.Int("cover_max_level", Config.CoverMaxLevel,
		"Finest cell level used when covering a polygon.")
	flag.Int("cover_max_cells", Config.CoverMaxCells,
		"Soft limit on the number of cells covering a polygon. 0 means no limit.")
	flag.Int64("cache_mb", Config.CacheMB,
		"Size of the cache of built query polygons, in MB.")
	flag.Bool("diagnostic", Config.Diagnostic,
		"Log the intermediate results of frame conversions.")
}

// LoadConfig fills Config from conf, keeping the current values for unset keys.
func LoadConfig(conf *viper.Viper) error {
	opt := Config
	if conf.IsSet("cover_min_level") {
		opt.CoverMinLevel = conf.GetInt("cover_min_level")
	}
	if conf.IsSet("cover_max_level") {
		opt.CoverMaxLevel = conf.GetInt("cover_max_level")
	}
	if conf.IsSet("cover_max_cells") {
		opt.CoverMaxCells = conf.GetInt("cover_max_cells")
	}
	if conf.IsSet("cache_mb") {
		opt.CacheMB = conf.GetInt64("cache_mb")
	}
	if conf.IsSet("diagnostic") {
		opt.Diagnostic = conf.GetBool("diagnostic")
	}
	if err := opt.Validate(); err != nil {
		return err
	}
	Config = opt
	return nil
}

// Validate checks that the options are consistent.
func (o Options) Validate() error {
	switch {
	case o.CoverMinLevel < 0:
		return errors.Errorf("cover_min_level must not be negative, got %d", o.CoverMinLevel)
	case o.CoverMaxLevel < o.CoverMinLevel:
		return errors.Errorf("cover_max_level %d is below cover_min_level %d",
			o.CoverMaxLevel, o.CoverMinLevel)
	case o.CoverMaxLevel > cube.MaxLevel:
		return errors.Errorf("cover_max_level must be at most %d, got %d",
			cube.MaxLevel, o.CoverMaxLevel)
	case o.CoverMaxCells < 0:
		return errors.Errorf("cover_max_cells must not be negative, got %d", o.CoverMaxCells)
	case o.CacheMB < 0:
		return errors.Errorf("cache_mb must not be negative, got %d", o.CacheMB)
	}
	return nil
}
