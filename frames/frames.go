/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package frames converts sky positions between the J2000 equatorial frame
// and the IAU 1958 galactic frame.
package frames

import (
	"strings"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Frame is a celestial coordinate frame.
type Frame int

const (
	// Equatorial is the J2000 (FK5) equatorial frame: ra, dec.
	Equatorial Frame = iota
	// Galactic is the IAU 1958 galactic frame: l, b.
	Galactic
)

func (f Frame) String() string {
	switch f {
	case Equatorial:
		return "equatorial"
	case Galactic:
		return "galactic"
	}
	return "unknown"
}

// ParseFrame accepts the frame names printed by String, plus the short forms
// "eq", "fk5", "icrs" and "gal".
func ParseFrame(s string) (Frame, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equatorial", "eq", "fk5", "icrs", "j2000":
		return Equatorial, nil
	case "galactic", "gal":
		return Galactic, nil
	}
	return 0, errors.Errorf("unknown frame %q", s)
}

// toGalactic rotates J2000 equatorial unit vectors into the galactic frame
// (Blaauw et al, MNRAS 121, 123, 1960). Its transpose is the inverse.
var toGalactic = [3]r3.Vector{
	{X: -0.054875539726, Y: -0.873437108010, Z: -0.483834985808},
	{X: 0.494109453312, Y: -0.444829589425, Z: 0.746982251810},
	{X: -0.867666135858, Y: -0.198076386122, Z: 0.455983795705},
}

var fromGalactic = transpose(toGalactic)

func transpose(m [3]r3.Vector) [3]r3.Vector {
	return [3]r3.Vector{
		{X: m[0].X, Y: m[1].X, Z: m[2].X},
		{X: m[0].Y, Y: m[1].Y, Z: m[2].Y},
		{X: m[0].Z, Y: m[1].Z, Z: m[2].Z},
	}
}

// rotate applies m to the direction (lon, lat), both in degrees, and returns
// the rotated direction with lon in [0, 360).
func rotate(m [3]r3.Vector, lon, lat float64) (float64, float64) {
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	v := r3.Vector{X: m[0].Dot(p.Vector), Y: m[1].Dot(p.Vector), Z: m[2].Dot(p.Vector)}
	ll := s2.LatLngFromPoint(s2.Point{Vector: v})
	out := ll.Lng.Degrees()
	if out < 0 {
		out += 360
	}
	if out >= 360 {
		out -= 360
	}
	return out, ll.Lat.Degrees()
}

// Converter converts positions between frames. Diagnostic turns on logging
// of every conversion, including the sexagesimal form of the equatorial side.
type Converter struct {
	Diagnostic bool
}

// EquatorialToGalactic converts J2000 (ra, dec) to galactic (l, b), in degrees.
func (c Converter) EquatorialToGalactic(ra, dec float64) (l, b float64) {
	l, b = rotate(toGalactic, ra, dec)
	if c.Diagnostic {
		glog.Infof("fk5->gal: J2000 RA,Dec= %s", FormatEquatorial(ra, dec))
		glog.Infof("fk5->gal: long = %.5f lat = %.5f", l, b)
	}
	return l, b
}

// GalacticToEquatorial converts galactic (l, b) to J2000 (ra, dec), in degrees.
func (c Converter) GalacticToEquatorial(l, b float64) (ra, dec float64) {
	ra, dec = rotate(fromGalactic, l, b)
	if c.Diagnostic {
		glog.Infof("gal->fk5: long = %.5f lat = %.5f", l, b)
		glog.Infof("gal->fk5: J2000 RA,Dec= %s", FormatEquatorial(ra, dec))
	}
	return ra, dec
}

// Convert moves the position (a, b) given in frame from into frame to.
func (c Converter) Convert(from, to Frame, a, b float64) (float64, float64) {
	switch {
	case from == to:
		return a, b
	case from == Equatorial && to == Galactic:
		return c.EquatorialToGalactic(a, b)
	case from == Galactic && to == Equatorial:
		return c.GalacticToEquatorial(a, b)
	}
	glog.Warningf("cannot convert from %v to %v", from, to)
	return a, b
}
