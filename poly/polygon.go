/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package poly implements spherical polygons over the cube tessellation: the
// projection of a polygon onto a face, the planar crossing-number test, the
// cover/partial/disjoint classification of face cells used to prune an index
// traversal, and polygons that straddle up to three faces.
package poly

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/waqasbhatti/q3c/cube"
)

// MaxVertices is the largest number of vertices a polygon may have.
const MaxVertices = 100

var (
	// ErrTooLarge is returned when a polygon cannot be placed on the tangent
	// plane of a face. Callers should fall back to a coarser filter.
	ErrTooLarge = errors.New("polygon too large to represent")
	// ErrTooFewVertices is returned for polygons with fewer than three vertices.
	ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")
	// ErrTooManyVertices is returned for polygons with more than MaxVertices.
	ErrTooManyVertices = errors.Errorf("polygon has more than %d vertices", MaxVertices)
	// ErrBadCoordinate is returned for non-finite or out of range vertices.
	ErrBadCoordinate = errors.New("invalid vertex coordinate")
)

// Polygon is a spherical polygon given by its vertices in degrees. Edges join
// consecutive vertices and the last vertex back to the first. A Polygon is
// immutable once built.
type Polygon struct {
	ra, dec []float64
}

// New copies the vertex lists into a new Polygon. Right ascensions are folded
// into [0, 360).
func New(ra, dec []float64) (*Polygon, error) {
	if len(ra) != len(dec) {
		return nil, errors.Errorf("polygon has %d ra and %d dec values", len(ra), len(dec))
	}
	if err := checkLen(len(ra)); err != nil {
		return nil, err
	}
	p := &Polygon{
		ra:  make([]float64, len(ra)),
		dec: make([]float64, len(dec)),
	}
	for i := range ra {
		if !finite(ra[i]) || !finite(dec[i]) || math.Abs(dec[i]) > 90 {
			return nil, errors.Wrapf(ErrBadCoordinate, "vertex %d: ra=%v dec=%v", i, ra[i], dec[i])
		}
		p.ra[i] = cube.NormalizeRA(ra[i])
		p.dec[i] = dec[i]
	}
	return p, nil
}

// FromVertices builds a Polygon from (ra, dec) pairs.
func FromVertices(v [][2]float64) (*Polygon, error) {
	ra := make([]float64, len(v))
	dec := make([]float64, len(v))
	for i := range v {
		ra[i], dec[i] = v[i][0], v[i][1]
	}
	return New(ra, dec)
}

func checkLen(n int) error {
	switch {
	case n < 3:
		return errors.Wrapf(ErrTooFewVertices, "got %d", n)
	case n > MaxVertices:
		return errors.Wrapf(ErrTooManyVertices, "got %d", n)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Len returns the number of vertices.
func (p *Polygon) Len() int { return len(p.ra) }

// Vertex returns the i-th vertex.
func (p *Polygon) Vertex(i int) (ra, dec float64) { return p.ra[i], p.dec[i] }

// PrimaryFace is the face of the first vertex.
func (p *Polygon) PrimaryFace() cube.Face { return cube.FaceOf(p.ra[0], p.dec[0]) }

// String renders the vertices exactly, so equal strings mean equal polygons.
func (p *Polygon) String() string {
	var sb strings.Builder
	for i := range p.ra {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(p.ra[i], 'g', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(p.dec[i], 'g', -1, 64))
	}
	return sb.String()
}

// Parse reads a polygon written as "ra dec, ra dec, ...", the form produced by
// String.
func Parse(s string) (*Polygon, error) {
	parts := strings.Split(s, ",")
	ra := make([]float64, 0, len(parts))
	dec := make([]float64, 0, len(parts))
	for i, part := range parts {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return nil, errors.Errorf("vertex %d: want \"ra dec\", got %q", i, strings.TrimSpace(part))
		}
		a, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "vertex %d ra", i)
		}
		d, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "vertex %d dec", i)
		}
		ra, dec = append(ra, a), append(dec, d)
	}
	return New(ra, dec)
}

// Project returns the planar form of p on face f.
func (p *Polygon) Project(f cube.Face) (*Plane, error) {
	pl := new(Plane)
	if err := p.ProjectInto(f, pl); err != nil {
		return nil, err
	}
	return pl, nil
}

// ProjectInto projects every vertex of p onto face f, writing the planar
// coordinates into pl's buffers, and recomputes the edge deltas. If any vertex
// cannot be projected, pl is left empty and the error wraps ErrTooLarge.
func (p *Polygon) ProjectInto(f cube.Face, pl *Plane) error {
	n := len(p.ra)
	pl.resize(n)
	for i := 0; i < n; i++ {
		x, y, ok := cube.Project(f, p.ra[i], p.dec[i])
		if !ok {
			pl.reset()
			return errors.Wrapf(ErrTooLarge, "vertex %d (%v, %v) on face %v",
				i, p.ra[i], p.dec[i], f)
		}
		pl.x[i], pl.y[i] = x, y
	}
	pl.face = f
	pl.prepare()
	return nil
}
