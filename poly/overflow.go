/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package poly

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/waqasbhatti/q3c/cube"
)

// Sides of the face domain a bounding box can spill over.
const (
	overLeft = 1 << iota
	overRight
	overBottom
	overTop
)

// pick selects one value of a bounding box interval.
type pick int8

const (
	lo pick = iota
	mid
	hi
)

type spill struct{ x, y pick }

// overflowSpills maps the sides a bounding box overflows to the points, in
// terms of the box, whose faces the polygon spills onto. One side gives the
// midpoint of that side of the box. Two sides give two opposite corners of
// the box, one beyond each overflowing side of the face.
var overflowSpills = map[int][]spill{
	overLeft:               {{lo, mid}},
	overRight:              {{hi, mid}},
	overBottom:             {{mid, lo}},
	overTop:                {{mid, hi}},
	overLeft | overBottom:  {{hi, lo}, {lo, hi}},
	overLeft | overTop:     {{hi, hi}, {lo, lo}},
	overRight | overBottom: {{lo, lo}, {hi, hi}},
	overRight | overTop:    {{lo, hi}, {hi, lo}},
}

// overflow returns which sides of the face domain b spills over. Left takes
// precedence over right and bottom over top.
func overflow(b r2.Rect) int {
	var k int
	switch {
	case b.X.Lo < -cube.Half:
		k |= overLeft
	case b.X.Hi > cube.Half:
		k |= overRight
	}
	switch {
	case b.Y.Lo < -cube.Half:
		k |= overBottom
	case b.Y.Hi > cube.Half:
		k |= overTop
	}
	return k
}

func (p pick) of(i r1.Interval) float64 {
	switch p {
	case lo:
		return i.Lo
	case hi:
		return i.Hi
	}
	return i.Center()
}

// overflowPoints returns the planar points just outside the face that decide
// which neighbouring faces a polygon with bounding box b reaches.
func overflowPoints(b r2.Rect) []r2.Point {
	spills := overflowSpills[overflow(b)]
	pts := make([]r2.Point, 0, len(spills))
	for _, s := range spills {
		pts = append(pts, r2.Point{
			X: s.x.of(b.X),
			Y: s.y.of(b.Y),
		})
	}
	return pts
}
