/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/waqasbhatti/q3c/poly"
)

// PolygonFromGeom converts the outer ring of a geom.Polygon into a sky
// polygon. Coordinates are read as [ra, dec] in degrees, the same order GeoJSON
// uses for [long, lat]. Holes are ignored.
func PolygonFromGeom(p *geom.Polygon) (*poly.Polygon, error) {
	if p.Layout().Stride() < 2 || p.NumLinearRings() == 0 {
		return nil, errors.Errorf("cannot convert an empty polygon")
	}
	r := p.LinearRing(0)
	n := r.NumCoords()
	// The ring repeats its first coordinate at the end to close it. The sky
	// polygon is closed implicitly, so we skip the last point.
	if n > 1 && coordsEqual(r.Coord(0), r.Coord(n-1)) {
		n--
	}
	ra := make([]float64, n)
	dec := make([]float64, n)
	for i := 0; i < n; i++ {
		c := r.Coord(i)
		ra[i], dec[i] = c.X(), c.Y()
	}
	return poly.New(ra, dec)
}

func coordsEqual(a, b geom.Coord) bool {
	return a.X() == b.X() && a.Y() == b.Y()
}

// PolygonFromGeoJSON parses a GeoJSON geometry or feature holding a Polygon.
func PolygonFromGeoJSON(data []byte) (*poly.Polygon, error) {
	var g geom.T
	var gf geojson.Feature
	if err := gf.UnmarshalJSON(data); err == nil && gf.Geometry != nil {
		g = gf.Geometry
	} else if err := geojson.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrapf(err, "while parsing geojson")
	}
	return polygonFromT(g)
}

// PolygonFromWKB decodes a polygon in well-known binary.
func PolygonFromWKB(data []byte) (*poly.Polygon, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "while decoding wkb")
	}
	return polygonFromT(g)
}

// PolygonToWKB encodes p as a closed well-known binary polygon.
func PolygonToWKB(p *poly.Polygon) ([]byte, error) {
	return wkb.Marshal(ToGeom(p), binary.LittleEndian)
}

// ToGeom returns p as a closed geom.Polygon with [ra, dec] coordinates.
func ToGeom(p *poly.Polygon) *geom.Polygon {
	ring := make([]geom.Coord, 0, p.Len()+1)
	for i := 0; i < p.Len(); i++ {
		ra, dec := p.Vertex(i)
		ring = append(ring, geom.Coord{ra, dec})
	}
	ring = append(ring, ring[0])
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{ring})
}

// LoadPolygon reads a polygon from a file, picking the decoder from the file
// extension: .wkb for well-known binary, anything else for GeoJSON.
func LoadPolygon(name string) (*poly.Polygon, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "while reading %s", name)
	}
	if strings.EqualFold(filepath.Ext(name), ".wkb") {
		return PolygonFromWKB(b)
	}
	return PolygonFromGeoJSON(b)
}

func polygonFromT(g geom.T) (*poly.Polygon, error) {
	switch v := g.(type) {
	case *geom.Polygon:
		return PolygonFromGeom(v)
	case *geom.MultiPolygon:
		if v.NumPolygons() == 1 {
			return PolygonFromGeom(v.Polygon(0))
		}
		return nil, errors.Errorf("expected a single polygon, got %d", v.NumPolygons())
	default:
		return nil, errors.Errorf("cannot build a polygon from geometry of type %T", v)
	}
}
