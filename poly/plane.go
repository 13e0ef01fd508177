/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package poly

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/waqasbhatti/q3c/cube"
)

// Plane is a polygon in the planar coordinates of one face, with the edge
// vectors ax[i] = x[i+1]-x[i], ay[i] = y[i+1]-y[i] taken over the cyclic
// vertex order. Planes are only handed out after both projection and edge
// preparation have run, so the predicates never see stale deltas.
//
// A Plane must not be shared between goroutines while it is being
// re-projected with Polygon.ProjectInto.
type Plane struct {
	face   cube.Face
	x, y   []float64
	ax, ay []float64
}

// NewPlane builds a Plane directly from planar vertices on face f.
func NewPlane(f cube.Face, x, y []float64) (*Plane, error) {
	if len(x) != len(y) {
		return nil, errors.Errorf("plane has %d x and %d y values", len(x), len(y))
	}
	if err := checkLen(len(x)); err != nil {
		return nil, err
	}
	pl := &Plane{face: f}
	pl.resize(len(x))
	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			return nil, errors.Wrapf(ErrBadCoordinate, "vertex %d: x=%v y=%v", i, x[i], y[i])
		}
	}
	copy(pl.x, x)
	copy(pl.y, y)
	pl.prepare()
	return pl, nil
}

func (pl *Plane) resize(n int) {
	if cap(pl.x) < n {
		pl.x = make([]float64, n)
		pl.y = make([]float64, n)
		pl.ax = make([]float64, n)
		pl.ay = make([]float64, n)
		return
	}
	pl.x, pl.y = pl.x[:n], pl.y[:n]
	pl.ax, pl.ay = pl.ax[:n], pl.ay[:n]
}

func (pl *Plane) reset() {
	pl.face = cube.NoFace
	pl.resize(0)
}

// prepare fills the edge deltas from the current vertices.
func (pl *Plane) prepare() {
	n := len(pl.x)
	if n == 0 {
		return
	}
	x, y := pl.x, pl.y
	for i := 0; i < n-1; i++ {
		pl.ax[i] = x[i+1] - x[i]
		pl.ay[i] = y[i+1] - y[i]
	}
	pl.ax[n-1] = x[0] - x[n-1]
	pl.ay[n-1] = y[0] - y[n-1]
}

// Face returns the face the plane lives on, or cube.NoFace for an empty plane.
func (pl *Plane) Face() cube.Face { return pl.face }

// Len returns the number of vertices.
func (pl *Plane) Len() int { return len(pl.x) }

// Vertex returns the planar coordinates of vertex i.
func (pl *Plane) Vertex(i int) (x, y float64) { return pl.x[i], pl.y[i] }

// Edge returns the vector from vertex i to the next vertex.
func (pl *Plane) Edge(i int) (ax, ay float64) { return pl.ax[i], pl.ay[i] }

// Bounds returns the bounding box of the vertices.
func (pl *Plane) Bounds() r2.Rect {
	if len(pl.x) == 0 {
		return r2.EmptyRect()
	}
	b := r2.Rect{
		X: r1.Interval{Lo: pl.x[0], Hi: pl.x[0]},
		Y: r1.Interval{Lo: pl.y[0], Hi: pl.y[0]},
	}
	for i := 1; i < len(pl.x); i++ {
		b.X.Lo = math.Min(b.X.Lo, pl.x[i])
		b.X.Hi = math.Max(b.X.Hi, pl.x[i])
		b.Y.Lo = math.Min(b.Y.Lo, pl.y[i])
		b.Y.Hi = math.Max(b.Y.Hi, pl.y[i])
	}
	return b
}
