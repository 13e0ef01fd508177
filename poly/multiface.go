/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package poly

import (
	"github.com/pkg/errors"

	"github.com/waqasbhatti/q3c/cube"
)

// MultiFace is a polygon projected onto every face it touches, at most three.
// The first face is the face of the polygon's first vertex. A MultiFace is
// read-only once built and may be shared between goroutines.
type MultiFace struct {
	poly   *Polygon
	planes []*Plane
}

// BuildMultiFace projects p onto its primary face and, when the projection
// spills over the edge of that face, onto the neighbouring faces it reaches.
// It fails with an error wrapping ErrTooLarge if any of these projections is
// undefined.
func BuildMultiFace(p *Polygon) (*MultiFace, error) {
	primary := p.PrimaryFace()
	pl, err := p.Project(primary)
	if err != nil {
		return nil, err
	}
	mf := &MultiFace{poly: p, planes: []*Plane{pl}}

	for _, pt := range overflowPoints(pl.Bounds()) {
		f := cube.FaceOfXY(pt.X, pt.Y, primary)
		if mf.Plane(f) != nil {
			continue
		}
		extra, err := p.Project(f)
		if err != nil {
			return nil, errors.Wrapf(err, "extending polygon from face %v", primary)
		}
		mf.planes = append(mf.planes, extra)
	}
	return mf, nil
}

// Polygon returns the spherical polygon mf was built from.
func (mf *MultiFace) Polygon() *Polygon { return mf.poly }

// Faces returns the faces the polygon is projected onto, primary face first.
func (mf *MultiFace) Faces() []cube.Face {
	out := make([]cube.Face, len(mf.planes))
	for i, pl := range mf.planes {
		out[i] = pl.face
	}
	return out
}

// Plane returns the projection onto face f, or nil if the polygon does not
// reach f.
func (mf *MultiFace) Plane(f cube.Face) *Plane {
	for _, pl := range mf.planes {
		if pl.face == f {
			return pl
		}
	}
	return nil
}

// Locate reports whether the point (ra, dec) lies inside the polygon. Points
// on faces the polygon does not reach are outside without further tests.
func (mf *MultiFace) Locate(ra, dec float64) bool {
	f, x, y := cube.FaceXY(ra, dec)
	pl := mf.Plane(f)
	if pl == nil {
		return false
	}
	return pl.Contains(x, y)
}

// Classify relates the cell c to the polygon on the cell's face.
func (mf *MultiFace) Classify(c cube.Cell) Relation {
	pl := mf.Plane(c.Face)
	if pl == nil {
		return Disjoint
	}
	ctr := c.Center()
	return pl.Classify(ctr.X, ctr.Y, c.Size())
}
