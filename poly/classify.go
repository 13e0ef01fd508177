/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package poly

// Relation is how a query cell relates to a polygon.
type Relation int8

const (
	// Disjoint means the cell and the polygon do not overlap.
	Disjoint Relation = iota
	// Partial means the polygon boundary may pass through the cell, so an
	// index traversal has to look at its children.
	Partial
	// Cover means every corner of the cell is inside the polygon.
	Cover
)

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "DISJOINT"
	case Partial:
		return "PARTIAL"
	case Cover:
		return "COVER"
	}
	return "UNKNOWN"
}

// Classify compares the square cell centred on (xc, yc) with side size against
// the polygon.
//
// The decision is driven by the four corners. If they disagree the boundary
// crosses the cell. If all are inside the cell is reported as covered, even
// though a concave polygon may dip into the cell between corners; index
// traversals built on this rely on that behaviour. If all are outside the
// cell can still overlap the polygon when an edge clips it or the whole
// polygon sits inside it.
func (pl *Plane) Classify(xc, yc, size float64) Relation {
	if len(pl.x) == 0 {
		return Disjoint
	}
	h := size / 2
	xl, xr := xc-h, xc+h
	yb, yt := yc-h, yc+h

	first := pl.Contains(xl, yb)
	if pl.Contains(xr, yb) != first ||
		pl.Contains(xr, yt) != first ||
		pl.Contains(xl, yt) != first {
		return Partial
	}
	if first {
		return Cover
	}
	if pl.crossesBox(xl, yb, size) {
		return Partial
	}
	if x, y := pl.x[0], pl.y[0]; xl < x && x < xr && yb < y && y < yt {
		return Partial
	}
	return Disjoint
}

// crossesBox reports whether any polygon edge meets a side of the square with
// low corner (xl, yb) and side size. A zero delta on one axis rules out the
// sides the edge runs parallel to.
func (pl *Plane) crossesBox(xl, yb, size float64) bool {
	hit := func(t, off float64) bool {
		return t >= 0 && t <= 1 && off >= 0 && off <= size
	}
	for i := range pl.x {
		x, y := pl.x[i], pl.y[i]
		ax, ay := pl.ax[i], pl.ay[i]
		if ay != 0 {
			// Bottom and top sides.
			for _, side := range [2]float64{yb, yb + size} {
				t := (side - y) / ay
				if hit(t, x+t*ax-xl) {
					return true
				}
			}
		}
		if ax != 0 {
			// Left and right sides.
			for _, side := range [2]float64{xl, xl + size} {
				t := (side - x) / ax
				if hit(t, y+t*ay-yb) {
					return true
				}
			}
		}
	}
	return false
}
