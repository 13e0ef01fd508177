/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package input holds the flags shared by the commands that take a polygon.
package input

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"github.com/waqasbhatti/q3c/cube"
	"github.com/waqasbhatti/q3c/frames"
	"github.com/waqasbhatti/q3c/geo"
	"github.com/waqasbhatti/q3c/poly"
	"github.com/waqasbhatti/q3c/x"
)

// AddPolygonFlags registers the poly and file flags.
func AddPolygonFlags(flag *pflag.FlagSet) {
	flag.StringP("poly", "p", "",
		`Polygon vertices in degrees, as "ra dec, ra dec, ...".`)
	flag.StringP("file", "f", "",
		"GeoJSON or WKB (.wkb) file holding the polygon. Ignored if --poly is set.")
}

// Polygon reads the polygon named by the flags of sc.
func Polygon(sc x.SubCommand) (*poly.Polygon, error) {
	if s := sc.GetStringP("poly", "p", ""); s != "" {
		return poly.Parse(s)
	}
	if name := sc.GetStringP("file", "f", ""); name != "" {
		return geo.LoadPolygon(name)
	}
	return nil, errors.New("one of --poly or --file is required")
}

// Angles parses a longitude and a latitude in degrees.
func Angles(lon, lat string) (float64, float64, error) {
	switch {
	case strings.TrimSpace(lon) == "":
		return 0, 0, errors.New("invalid longitude: empty")
	case strings.TrimSpace(lat) == "":
		return 0, 0, errors.New("invalid latitude: empty")
	}
	a, err := cast.ToFloat64E(lon)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid longitude %q", lon)
	}
	b, err := cast.ToFloat64E(lat)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid latitude %q", lat)
	}
	return a, b, nil
}

// Position parses a position given in frame f and returns it as equatorial
// ra, dec with ra folded into [0, 360).
func Position(f frames.Frame, lon, lat string) (ra, dec float64, err error) {
	a, b, err := Angles(lon, lat)
	if err != nil {
		return 0, 0, err
	}
	if b < -90 || b > 90 {
		return 0, 0, errors.Errorf("latitude %v is out of range", b)
	}
	conv := frames.Converter{Diagnostic: x.Config.Diagnostic}
	ra, dec = conv.Convert(f, frames.Equatorial, a, b)
	return cube.NormalizeRA(ra), dec, nil
}

// Level reads the cell level flag of sc and checks its range.
func Level(sc x.SubCommand, def int) (int, error) {
	level := sc.GetIntP("level", "l", def)
	if level < 0 || level > cube.MaxLevel {
		return 0, errors.Errorf("level must be in [0, %d], got %d", cube.MaxLevel, level)
	}
	return level, nil
}

// Coverer returns the coverer configured by the global cover flags.
func Coverer() geo.Coverer {
	return geo.Coverer{
		MinLevel: x.Config.CoverMinLevel,
		MaxLevel: x.Config.CoverMaxLevel,
		MaxCells: x.Config.CoverMaxCells,
	}
}
