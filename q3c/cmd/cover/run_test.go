/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cover

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/waqasbhatti/q3c/geo"
	"github.com/waqasbhatti/q3c/poly"
)

func TestFeatureCollection(t *testing.T) {
	p, err := poly.Parse("30 -5, 40 -5, 40 5, 30 5")
	require.NoError(t, err)
	mf, err := poly.BuildMultiFace(p)
	require.NoError(t, err)
	cov := geo.DefaultCoverer.Covering(mf)
	require.NotZero(t, cov.Len())

	fc := FeatureCollection(p, cov)
	require.Len(t, fc.Features, cov.Len()+1)

	first := fc.Features[0]
	require.Equal(t, "polygon", first.Properties["kind"])
	ring := first.Geometry.Polygon[0]
	require.Len(t, ring, 5)
	require.Equal(t, ring[0], ring[4])

	for _, f := range fc.Features[1:] {
		require.Equal(t, "cell", f.Properties["kind"])
		rel := f.Properties["relation"]
		require.Contains(t, []interface{}{"COVER", "PARTIAL"}, rel)
		ring := f.Geometry.Polygon[0]
		require.Len(t, ring, 5)
		for _, pt := range ring {
			// The cells hug the polygon, so their corners stay near it.
			require.InDelta(t, 35, pt[0], 15)
			require.InDelta(t, 0, pt[1], 15)
		}
	}

	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	require.Contains(t, string(data), `"FeatureCollection"`)
}
