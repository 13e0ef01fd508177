/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package poly

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/waqasbhatti/q3c/cube"
)

func mustPolygon(t *testing.T, v [][2]float64) *Polygon {
	p, err := FromVertices(v)
	require.NoError(t, err)
	return p
}

func TestMultiFaceSingle(t *testing.T) {
	p := mustPolygon(t, [][2]float64{{8, 8}, {12, 8}, {12, 12}, {8, 12}})
	mf, err := BuildMultiFace(p)
	require.NoError(t, err)
	require.Equal(t, []cube.Face{1}, mf.Faces())
	require.Same(t, p, mf.Polygon())

	require.True(t, mf.Locate(10, 10))
	require.False(t, mf.Locate(13, 10))
	require.False(t, mf.Locate(100, 10))
	require.Nil(t, mf.Plane(2))
}

func TestMultiFaceTwoFaces(t *testing.T) {
	// Straddles ra=45, the border between faces 1 and 2.
	p := mustPolygon(t, [][2]float64{{40, -5}, {50, -5}, {50, 5}, {40, 5}})
	mf, err := BuildMultiFace(p)
	require.NoError(t, err)
	require.Equal(t, []cube.Face{1, 2}, mf.Faces())

	b := mf.Plane(1).Bounds()
	require.Greater(t, b.X.Hi, cube.Half)

	require.True(t, mf.Locate(42, 0))
	require.True(t, mf.Locate(48, 1))
	require.True(t, mf.Locate(44.99, -4))
	require.True(t, mf.Locate(45.01, 4))
	require.False(t, mf.Locate(55, 0))
	require.False(t, mf.Locate(38, 0))
	require.False(t, mf.Locate(45, 6))
	require.False(t, mf.Locate(42, 60))
}

func TestMultiFaceNorthCap(t *testing.T) {
	p := mustPolygon(t, [][2]float64{{0, 80}, {90, 80}, {180, 80}, {270, 80}})
	mf, err := BuildMultiFace(p)
	require.NoError(t, err)
	require.Equal(t, []cube.Face{cube.North}, mf.Faces())
	require.True(t, mf.Locate(45, 85))
	require.True(t, mf.Locate(300, 89))
	require.False(t, mf.Locate(45, 50))
}

func TestMultiFaceCapToEquator(t *testing.T) {
	// Straddles dec=45 around ra=0, spilling off the bottom of the north cap.
	p := mustPolygon(t, [][2]float64{{355, 47}, {5, 47}, {5, 43}, {355, 43}})
	require.Equal(t, cube.North, p.PrimaryFace())
	mf, err := BuildMultiFace(p)
	require.NoError(t, err)
	require.Equal(t, []cube.Face{cube.North, 1}, mf.Faces())
	require.True(t, mf.Locate(0, 46))
	require.True(t, mf.Locate(1, 44))
	require.False(t, mf.Locate(0, 42))
}

// tangentPlane projects (ra, dec) gnomonically about (ra0, dec0). Great circles
// map to straight lines, so a polygon near the centre is exact on this plane.
func tangentPlane(ra0, dec0, ra, dec float64) (float64, float64) {
	const rad = math.Pi / 180
	sd0, cd0 := math.Sincos(dec0 * rad)
	sd, cd := math.Sincos(dec * rad)
	sa, ca := math.Sincos((ra - ra0) * rad)
	cosc := sd0*sd + cd0*cd*ca
	return cd * sa / cosc, (cd0*sd - sd0*cd*ca) / cosc
}

func TestMultiFaceCubeCorners(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	corner := math.Atan(1/math.Sqrt2) * 180 / math.Pi
	for _, dec0 := range []float64{corner, -corner} {
		for k := 0; k < 4; k++ {
			ra0 := 45 + 90*float64(k)
			square := [][2]float64{
				{ra0 - 2.5, dec0 - 2}, {ra0 + 2.5, dec0 - 2},
				{ra0 + 2.5, dec0 + 2}, {ra0 - 2.5, dec0 + 2},
			}
			xs := make([]float64, len(square))
			ys := make([]float64, len(square))
			for i, v := range square {
				xs[i], ys[i] = tangentPlane(ra0, dec0, v[0], v[1])
			}
			ref, err := NewPlane(1, xs, ys)
			require.NoError(t, err)

			for rot := 0; rot < len(square); rot++ {
				v := append(append([][2]float64{}, square[rot:]...), square[:rot]...)
				mf, err := BuildMultiFace(mustPolygon(t, v))
				require.NoError(t, err)
				require.Len(t, mf.Faces(), 3, "corner (%v, %v) rotation %d", ra0, dec0, rot)

				for n := 0; n < 2500; n++ {
					ra := ra0 - 4 + 8*r.Float64()
					dec := dec0 - 3.5 + 7*r.Float64()
					want := ref.Contains(tangentPlane(ra0, dec0, ra, dec))
					require.Equal(t, want, mf.Locate(ra, dec),
						"corner (%v, %v) rotation %d point (%v, %v)", ra0, dec0, rot, ra, dec)
				}
			}
		}
	}
}

func TestMultiFaceTooLarge(t *testing.T) {
	p := mustPolygon(t, [][2]float64{{10, 0}, {20, 0}, {15, 90}})
	_, err := p.Project(1)
	require.True(t, errors.Is(err, ErrTooLarge))

	mf, err := BuildMultiFace(p)
	require.Nil(t, mf)
	require.True(t, errors.Is(err, ErrTooLarge))
}

func TestProjectIntoResetsOnFailure(t *testing.T) {
	ok := mustPolygon(t, [][2]float64{{8, 8}, {12, 8}, {12, 12}})
	bad := mustPolygon(t, [][2]float64{{8, 8}, {12, 8}, {200, 12}})

	var pl Plane
	require.NoError(t, ok.ProjectInto(1, &pl))
	require.Equal(t, cube.Face(1), pl.Face())
	require.Equal(t, 3, pl.Len())

	err := bad.ProjectInto(1, &pl)
	require.ErrorIs(t, err, ErrTooLarge)
	require.Equal(t, cube.NoFace, pl.Face())
	require.Equal(t, 0, pl.Len())
	require.False(t, pl.Contains(0, 0))

	// The buffers are reused on the next projection.
	require.NoError(t, ok.ProjectInto(2, &pl))
	require.Equal(t, cube.Face(2), pl.Face())
	require.Equal(t, 3, pl.Len())
}

func TestOverflowPoints(t *testing.T) {
	rect := func(xl, xh, yl, yh float64) r2.Rect {
		return r2.Rect{X: r1.Interval{Lo: xl, Hi: xh}, Y: r1.Interval{Lo: yl, Hi: yh}}
	}
	tests := []struct {
		b    r2.Rect
		want []r2.Point
	}{
		{rect(-0.4, 0.4, -0.4, 0.4), []r2.Point{}},
		{rect(-0.6, 0.4, -0.2, 0.2), []r2.Point{{X: -0.6, Y: 0}}},
		{rect(-0.4, 0.6, -0.2, 0.2), []r2.Point{{X: 0.6, Y: 0}}},
		{rect(-0.2, 0.2, -0.6, 0.4), []r2.Point{{X: 0, Y: -0.6}}},
		{rect(-0.2, 0.2, -0.4, 0.6), []r2.Point{{X: 0, Y: 0.6}}},
		{rect(-0.6, 0.4, -0.6, 0.4), []r2.Point{{X: 0.4, Y: -0.6}, {X: -0.6, Y: 0.4}}},
		{rect(-0.6, 0.4, -0.4, 0.6), []r2.Point{{X: 0.4, Y: 0.6}, {X: -0.6, Y: -0.4}}},
		{rect(-0.4, 0.6, -0.6, 0.4), []r2.Point{{X: -0.4, Y: -0.6}, {X: 0.6, Y: 0.4}}},
		{rect(-0.4, 0.6, -0.4, 0.6), []r2.Point{{X: -0.4, Y: 0.6}, {X: 0.6, Y: -0.4}}},
		// Bounds on the face edges stay on the face.
		{rect(-0.5, 0.5, -0.5, 0.5), []r2.Point{}},
		{rect(-0.5, 0.4, -0.2, 0.5), []r2.Point{}},
		// Left wins over right, bottom over top.
		{rect(-0.6, 0.6, -0.2, 0.2), []r2.Point{{X: -0.6, Y: 0}}},
		{rect(-0.2, 0.2, -0.6, 0.6), []r2.Point{{X: 0, Y: -0.6}}},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, overflowPoints(tc.b), "%v", tc.b)
	}
}
