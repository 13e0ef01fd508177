/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cube

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

const (
	// MaxLevel is the deepest level of the hierarchy. A leaf cell is 2^-30 of a
	// face wide, well below a milliarcsecond.
	MaxLevel = 30

	faceBits = 2 * MaxLevel
	posMask  = uint64(1)<<faceBits - 1
)

// Cell is an axis-aligned square of a face at some level of the hierarchy.
// Level 0 is the whole face; every level splits a cell into 2x2 children.
// I and J index the cell along x and y, starting at the face's low corner.
type Cell struct {
	Face  Face
	Level int
	I, J  uint32
}

// Root returns the level 0 cell covering face f.
func Root(f Face) Cell { return Cell{Face: f} }

// LeafCell returns the leaf cell holding (ra, dec).
func LeafCell(ra, dec float64) Cell {
	f, x, y := FaceXY(ra, dec)
	return Cell{Face: f, Level: MaxLevel, I: leafIndex(x), J: leafIndex(y)}
}

func leafIndex(v float64) uint32 {
	const n = 1 << MaxLevel
	i := int64(math.Floor((v + Half) * n))
	if i < 0 {
		i = 0
	} else if i >= n {
		i = n - 1
	}
	return uint32(i)
}

// IPix returns the pixel number of (ra, dec) at the leaf level.
func IPix(ra, dec float64) uint64 {
	lo, _ := LeafCell(ra, dec).IPixRange()
	return lo
}

// CellFromIPix returns the cell at the given level containing leaf pixel ipix.
func CellFromIPix(ipix uint64, level int) Cell {
	pos := (ipix & posMask) >> uint(2*(MaxLevel-level))
	return Cell{
		Face:  Face(ipix >> faceBits),
		Level: level,
		I:     compact(pos),
		J:     compact(pos >> 1),
	}
}

// Size is the side length of the cell in planar coordinates.
func (c Cell) Size() float64 { return math.Ldexp(1, -c.Level) }

// Center returns the planar centre of the cell.
func (c Cell) Center() r2.Point {
	s := c.Size()
	return r2.Point{
		X: -Half + (float64(c.I)+0.5)*s,
		Y: -Half + (float64(c.J)+0.5)*s,
	}
}

// Bounds returns the planar extent of the cell.
func (c Cell) Bounds() r2.Rect {
	s := c.Size()
	x0 := -Half + float64(c.I)*s
	y0 := -Half + float64(c.J)*s
	return r2.Rect{
		X: r1.Interval{Lo: x0, Hi: x0 + s},
		Y: r1.Interval{Lo: y0, Hi: y0 + s},
	}
}

// IsLeaf reports whether the cell is at MaxLevel.
func (c Cell) IsLeaf() bool { return c.Level >= MaxLevel }

// Children returns the four cells one level down, in ipix order.
func (c Cell) Children() [4]Cell {
	l, i, j := c.Level+1, c.I<<1, c.J<<1
	return [4]Cell{
		{Face: c.Face, Level: l, I: i, J: j},
		{Face: c.Face, Level: l, I: i + 1, J: j},
		{Face: c.Face, Level: l, I: i, J: j + 1},
		{Face: c.Face, Level: l, I: i + 1, J: j + 1},
	}
}

// Parent returns the cell one level up. The root is its own parent.
func (c Cell) Parent() Cell {
	if c.Level == 0 {
		return c
	}
	return Cell{Face: c.Face, Level: c.Level - 1, I: c.I >> 1, J: c.J >> 1}
}

// IPixRange returns the half-open range [lo, hi) of leaf pixels inside c.
func (c Cell) IPixRange() (lo, hi uint64) {
	shift := uint(2 * (MaxLevel - c.Level))
	lo = uint64(c.Face)<<faceBits | interleave(c.I, c.J)<<shift
	return lo, lo + uint64(1)<<shift
}

// ID packs the cell into a single integer that is unique across levels: the
// leaf range start shifted left by one, plus a marker bit whose position
// encodes the level.
func (c Cell) ID() uint64 {
	lo, hi := c.IPixRange()
	return lo<<1 + (hi - lo)
}

// Token is the ID in hex with trailing zeros removed.
func (c Cell) Token() string {
	return strings.TrimRight(fmt.Sprintf("%016x", c.ID()), "0")
}

func (c Cell) String() string {
	return fmt.Sprintf("%v/%d/%d,%d", c.Face, c.Level, c.I, c.J)
}

// interleave puts the bits of i on the even and the bits of j on the odd
// positions of the result.
func interleave(i, j uint32) uint64 {
	return spread(i) | spread(j)<<1
}

func spread(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<16) & 0x0000FFFF0000FFFF
	x = (x | x<<8) & 0x00FF00FF00FF00FF
	x = (x | x<<4) & 0x0F0F0F0F0F0F0F0F
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}

func compact(x uint64) uint32 {
	x &= 0x5555555555555555
	x = (x | x>>1) & 0x3333333333333333
	x = (x | x>>2) & 0x0F0F0F0F0F0F0F0F
	x = (x | x>>4) & 0x00FF00FF00FF00FF
	x = (x | x>>8) & 0x0000FFFF0000FFFF
	x = (x | x>>16) & 0x00000000FFFFFFFF
	return uint32(x)
}
