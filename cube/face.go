/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package cube implements the quadrilateralized cube tessellation of the
// celestial sphere: the gnomonic projection of (ra, dec) onto the six faces of
// an inscribed cube, its inverse, and the hierarchical cells every face is
// split into.
//
// Faces are numbered 0 (north cap, centred on dec=+90), 1..4 (equatorial,
// centred on ra = 0, 90, 180, 270) and 5 (south cap). Planar face coordinates
// live in [-0.5, 0.5] on both axes.
package cube

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// Face identifies one of the six faces of the cube.
type Face int8

const (
	// North is the polar cap face centred on dec=+90.
	North Face = 0
	// South is the polar cap face centred on dec=-90.
	South Face = 5
	// NoFace marks the absence of a face, e.g. on a plane that failed to project.
	NoFace Face = -1

	// NumFaces is the number of faces on the cube.
	NumFaces = 6

	// Half is the half-width of a face in planar coordinates.
	Half = 0.5
)

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool { return f >= North && f <= South }

// Equatorial reports whether f is one of the four faces around the equator.
func (f Face) Equatorial() bool { return f > North && f < South }

func (f Face) String() string {
	switch {
	case f == North:
		return "north"
	case f == South:
		return "south"
	case f.Equatorial():
		return fmt.Sprintf("eq%d", int(f))
	}
	return fmt.Sprintf("Face(%d)", int(f))
}

func radians(deg float64) float64 { return (s1.Angle(deg) * s1.Degree).Radians() }

func degrees(rad float64) float64 { return (s1.Angle(rad) * s1.Radian).Degrees() }

// NormalizeRA folds ra into [0, 360).
func NormalizeRA(ra float64) float64 {
	r := math.Mod(ra, 360)
	if r < 0 {
		r += 360
	}
	if r >= 360 {
		r = 0
	}
	return r
}

// wrap180 folds an angle in degrees into (-180, 180].
func wrap180(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// meridian returns the ra of the centre of an equatorial face.
func (f Face) meridian() float64 { return 90 * float64(f-1) }

// FaceOf returns the face the point (ra, dec) projects onto.
func FaceOf(ra, dec float64) Face {
	if dec >= 45 {
		return North
	}
	if dec <= -45 {
		return South
	}
	eq := int((NormalizeRA(ra)+45)/90) % 4
	f := Face(eq + 1)
	y := math.Tan(radians(dec)) / math.Cos(radians(NormalizeRA(ra)-f.meridian()))
	switch {
	case y > 1:
		return North
	case y < -1:
		return South
	}
	return f
}

// FaceXY returns the face of (ra, dec) together with the planar coordinates of
// the point on that face.
func FaceXY(ra, dec float64) (Face, float64, float64) {
	f := FaceOf(ra, dec)
	x, y, _ := Project(f, ra, dec)
	return f, x, y
}

// Project maps (ra, dec) onto the tangent plane of face f. ok is false when the
// point lies 90 degrees or more away from the face centre, where the gnomonic
// projection onto f is undefined; x and y are zero in that case.
func Project(f Face, ra, dec float64) (x, y float64, ok bool) {
	switch {
	case f.Equatorial():
		d := wrap180(ra - f.meridian())
		if math.Abs(d) >= 90 || math.Abs(dec) >= 90 {
			return 0, 0, false
		}
		r := radians(d)
		return math.Tan(r) / 2, math.Tan(radians(dec)) / math.Cos(r) / 2, true
	case f == North:
		if dec <= 0 {
			return 0, 0, false
		}
		t := 1 / math.Tan(radians(dec))
		s, c := math.Sincos(radians(ra))
		return s * t / 2, -c * t / 2, true
	case f == South:
		if dec >= 0 {
			return 0, 0, false
		}
		t := 1 / math.Tan(radians(dec))
		s, c := math.Sincos(radians(ra))
		return -s * t / 2, -c * t / 2, true
	}
	return 0, 0, false
}

// Unproject maps planar coordinates on face f back to (ra, dec). The planar
// point need not lie inside the face; points outside it map to positions on
// the neighbouring faces.
func Unproject(f Face, x, y float64) (ra, dec float64) {
	x, y = 2*x, 2*y
	switch {
	case f.Equatorial():
		r := math.Atan(x)
		dec = degrees(math.Atan(y * math.Cos(r)))
		ra = degrees(r) + f.meridian()
	case f == North:
		ra = degrees(math.Atan2(x, -y))
		dec = degrees(math.Atan(1 / math.Hypot(x, y)))
	case f == South:
		ra = degrees(math.Atan2(x, y))
		dec = -degrees(math.Atan(1 / math.Hypot(x, y)))
	default:
		return math.NaN(), math.NaN()
	}
	return NormalizeRA(ra), dec
}

// FaceOfXY resolves which face holds the planar point (x, y) given in the
// coordinates of face ref. It is used for points just outside ref's domain.
func FaceOfXY(x, y float64, ref Face) Face {
	if !ref.Valid() {
		return NoFace
	}
	ra, dec := Unproject(ref, x, y)
	return FaceOf(ra, dec)
}
