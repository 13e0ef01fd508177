/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"bytes"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/waqasbhatti/q3c/cube"
	"github.com/waqasbhatti/q3c/poly"
	"github.com/waqasbhatti/q3c/x"
)

const (
	// MinCellLevel is the smallest cell level (largest cell size) used by indexing.
	MinCellLevel = 4 // Approx 5.6 x 5.6 deg at the face centre
	// MaxCellLevel is the largest cell level (smallest cell size) used by indexing.
	MaxCellLevel = 16 // Approx 5 x 5 arcsec at the face centre
	// MaxCells is the default budget of cells when covering a polygon.
	MaxCells = 64

	parentPrefix = "p/"
	coverPrefix  = "c/"
)

// Coverer approximates polygons with cells of the cube hierarchy.
type Coverer struct {
	// MinLevel is the coarsest level emitted. Cells above it are always split.
	MinLevel int
	// MaxLevel is the finest level visited. Cells still crossing the polygon
	// boundary at this level are emitted as partial.
	MaxLevel int
	// MaxCells bounds the size of the covering once MinLevel is reached. It is
	// a soft limit: a level is only refined if the result stays within it.
	MaxCells int
}

// DefaultCoverer uses the index levels and cell budget.
var DefaultCoverer = Coverer{MinLevel: MinCellLevel, MaxLevel: MaxCellLevel, MaxCells: MaxCells}

// Covering is the set of cells touching a polygon. Full cells have all their
// corners inside the polygon. Partial cells may hold points on either side of
// its boundary.
type Covering struct {
	Full    []cube.Cell
	Partial []cube.Cell
}

// Len returns the number of cells in the covering.
func (cov Covering) Len() int { return len(cov.Full) + len(cov.Partial) }

// Validate checks that the levels are ordered and within the cell hierarchy.
func (c Coverer) Validate() error {
	switch {
	case c.MinLevel < 0:
		return errors.Errorf("cover min level must not be negative, got %d", c.MinLevel)
	case c.MaxLevel < c.MinLevel:
		return errors.Errorf("cover max level %d is below min level %d", c.MaxLevel, c.MinLevel)
	case c.MaxLevel > cube.MaxLevel:
		return errors.Errorf("cover max level must be at most %d, got %d", cube.MaxLevel, c.MaxLevel)
	case c.MaxCells < 0:
		return errors.Errorf("cover max cells must not be negative, got %d", c.MaxCells)
	}
	return nil
}

// Covering walks the cell hierarchy of every face the polygon is projected on,
// top down, classifying each cell against the polygon. Disjoint cells are
// dropped, covered cells are kept whole and partial cells are split until
// MaxLevel is reached or the budget runs out. c must pass Validate.
func (c Coverer) Covering(mf *poly.MultiFace) Covering {
	x.AssertTruef(c.Validate() == nil, "invalid coverer %+v", c)

	var cov Covering
	var frontier []cube.Cell
	for _, f := range mf.Faces() {
		frontier = append(frontier, cube.Root(f))
	}
	for len(frontier) > 0 {
		var split, refine []cube.Cell
		for _, cell := range frontier {
			switch rel := mf.Classify(cell); {
			case rel == poly.Disjoint:
			case cell.Level < c.MinLevel:
				split = append(split, cell)
			case rel == poly.Cover:
				cov.Full = append(cov.Full, cell)
			case cell.Level >= c.MaxLevel:
				cov.Partial = append(cov.Partial, cell)
			default:
				refine = append(refine, cell)
			}
		}
		if len(refine) > 0 && c.MaxCells > 0 &&
			cov.Len()+4*(len(split)+len(refine)) > c.MaxCells {
			cov.Partial = append(cov.Partial, refine...)
			refine = nil
		}

		frontier = frontier[:0]
		for _, cell := range append(split, refine...) {
			ch := cell.Children()
			frontier = append(frontier, ch[:]...)
		}
	}
	if glog.V(2) {
		glog.Infof("covering of %d faces: %d full, %d partial cells",
			len(mf.Faces()), len(cov.Full), len(cov.Partial))
	}
	return cov
}

// IndexKeys returns the tokens of the cells holding the point (ra, dec) at
// every level from MinCellLevel to MaxCellLevel. They are the keys a token
// index stores the point under; the catalog does not keep one and scans pixel
// ranges instead, so these serve tools that export cells to other stores.
func IndexKeys(ra, dec float64) [][]byte {
	leaf := cube.LeafCell(ra, dec)
	lo, _ := leaf.IPixRange()
	keys := make([][]byte, 0, MaxCellLevel-MinCellLevel+1)
	for l := MinCellLevel; l <= MaxCellLevel; l++ {
		keys = append(keys, token(parentPrefix, cube.CellFromIPix(lo, l)))
	}
	return keys
}

// CoveringTokens returns the tokens to look up in a token index for a
// covering. Full cells carry the cover prefix and partial cells the parent
// prefix, so a reader can tell which hits still need the exact filter; with
// the prefix swapped to the parent one a token equals an IndexKeys entry. Cells finer than MaxCellLevel
// are replaced by their ancestor at that level and cells coarser than
// MinCellLevel by their descendants at that level.
func CoveringTokens(cov Covering) [][]byte {
	seen := make(map[string]struct{}, cov.Len())
	toks := make([][]byte, 0, cov.Len())
	var add func(prefix string, c cube.Cell)
	add = func(prefix string, c cube.Cell) {
		if c.Level < MinCellLevel {
			for _, ch := range c.Children() {
				add(prefix, ch)
			}
			return
		}
		for c.Level > MaxCellLevel {
			c = c.Parent()
		}
		t := token(prefix, c)
		if _, ok := seen[string(t)]; ok {
			return
		}
		seen[string(t)] = struct{}{}
		toks = append(toks, t)
	}
	for _, c := range cov.Full {
		add(coverPrefix, c)
	}
	for _, c := range cov.Partial {
		add(parentPrefix, c)
	}
	return toks
}

func token(prefix string, c cube.Cell) []byte {
	var buf bytes.Buffer
	_, err := buf.WriteString(prefix)
	x.Check(err)
	_, err = buf.WriteString(c.Token())
	x.Check(err)
	return buf.Bytes()
}
