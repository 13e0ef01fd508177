/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package catalog

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/waqasbhatti/q3c/poly"
)

func withCatalog(t *testing.T, opt Options, test func(c *Catalog)) {
	c, err := Open(opt)
	require.NoError(t, err)
	defer func() { require.NoError(t, c.Close()) }()
	test(c)
}

func memOptions() Options {
	opt := DefaultOptions("")
	opt.CacheMB = 1
	return opt
}

// randomObjects scatters n objects over ra in [raLo, raHi), dec in [decLo, decHi).
func randomObjects(r *rand.Rand, n int, raLo, raHi, decLo, decHi float64) []Object {
	objs := make([]Object, n)
	for i := range objs {
		objs[i] = Object{
			ID:  uint64(i + 1),
			RA:  raLo + r.Float64()*(raHi-raLo),
			Dec: decLo + r.Float64()*(decHi-decLo),
		}
	}
	return objs
}

func ids(objs []Object) []uint64 {
	out := make([]uint64, len(objs))
	for i, o := range objs {
		out[i] = o.ID
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func bruteForce(t *testing.T, p *poly.Polygon, objs []Object) []uint64 {
	mf, err := poly.BuildMultiFace(p)
	require.NoError(t, err)
	var in []Object
	for _, o := range objs {
		if mf.Locate(o.RA, o.Dec) {
			in = append(in, o)
		}
	}
	return ids(in)
}

func TestQueryMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	objs := randomObjects(r, 5000, 20, 70, -20, 20)

	polys := map[string][][2]float64{
		"square":     {{30, -5}, {40, -5}, {40, 5}, {30, 5}},
		"two faces":  {{40, -5}, {50, -5}, {50, 5}, {40, 5}},
		"concave":    {{25, -15}, {60, -15}, {60, 15}, {50, 15}, {50, -5}, {35, -5}, {35, 15}, {25, 15}},
		"thin strip": {{30, -0.2}, {65, -0.2}, {65, 0.2}, {30, 0.2}},
		"triangle":   {{22, -18}, {68, 0}, {22, 18}},
	}

	withCatalog(t, memOptions(), func(c *Catalog) {
		ctx := context.Background()
		require.NoError(t, c.Put(ctx, objs))
		n, err := c.Count()
		require.NoError(t, err)
		require.Equal(t, len(objs), n)

		for name, v := range polys {
			t.Run(name, func(t *testing.T) {
				p, err := poly.FromVertices(v)
				require.NoError(t, err)
				want := bruteForce(t, p, objs)
				require.NotEmpty(t, want)

				got, err := c.Query(ctx, p)
				require.NoError(t, err)
				require.Equal(t, want, ids(got))
			})
		}
	})
}

func TestQueryAcrossZeroRA(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	objs := randomObjects(r, 2000, -20, 20, 30, 60)
	p, err := poly.FromVertices([][2]float64{{355, 47}, {5, 47}, {5, 43}, {355, 43}})
	require.NoError(t, err)

	withCatalog(t, memOptions(), func(c *Catalog) {
		require.NoError(t, c.Put(context.Background(), objs))
		got, err := c.Query(context.Background(), p)
		require.NoError(t, err)
		want := bruteForce(t, p, objs)
		require.NotEmpty(t, want)
		require.Equal(t, want, ids(got))
		for _, o := range got {
			require.True(t, o.RA >= 0 && o.RA < 360, "ra %v is not normalized", o.RA)
		}
	})
}

func TestQueryWithoutRecheck(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	objs := randomObjects(r, 3000, 20, 70, -20, 20)
	p, err := poly.FromVertices([][2]float64{
		{25, -15}, {60, -15}, {60, 15}, {50, 15}, {50, -5}, {35, -5}, {35, 15}, {25, 15}})
	require.NoError(t, err)

	opt := memOptions()
	opt.Recheck = false
	withCatalog(t, opt, func(c *Catalog) {
		require.NoError(t, c.Put(context.Background(), objs))
		got, err := c.Query(context.Background(), p)
		require.NoError(t, err)

		// Without the recheck a query may return extra objects, never fewer.
		all := make(map[uint64]bool, len(got))
		for _, id := range ids(got) {
			all[id] = true
		}
		for _, id := range bruteForce(t, p, objs) {
			require.True(t, all[id], "object %d missing", id)
		}
	})
}

func TestQueryTooLarge(t *testing.T) {
	p, err := poly.FromVertices([][2]float64{{10, 0}, {20, 0}, {15, 90}})
	require.NoError(t, err)
	withCatalog(t, memOptions(), func(c *Catalog) {
		_, err := c.Query(context.Background(), p)
		require.True(t, errors.Is(err, poly.ErrTooLarge))
	})
}

func TestQueryCanceled(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	objs := randomObjects(r, 500, 20, 70, -20, 20)
	p, err := poly.FromVertices([][2]float64{{30, -5}, {40, -5}, {40, 5}, {30, 5}})
	require.NoError(t, err)

	withCatalog(t, memOptions(), func(c *Catalog) {
		require.NoError(t, c.Put(context.Background(), objs))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.Query(ctx, p)
		require.ErrorIs(t, err, context.Canceled)
		require.ErrorIs(t, c.Put(ctx, objs), context.Canceled)
	})
}

func TestQueryCachesPolygons(t *testing.T) {
	p, err := poly.FromVertices([][2]float64{{30, -5}, {40, -5}, {40, 5}, {30, 5}})
	require.NoError(t, err)
	withCatalog(t, memOptions(), func(c *Catalog) {
		mf, err := c.multiFace(p)
		require.NoError(t, err)
		c.cache.Wait()

		again, err := c.multiFace(p)
		require.NoError(t, err)
		require.Same(t, mf, again)
		require.Equal(t, uint64(1), c.cache.Metrics.Hits())
	})
}

func TestPutRejectsBadPositions(t *testing.T) {
	withCatalog(t, memOptions(), func(c *Catalog) {
		err := c.Put(context.Background(), []Object{{ID: 1, RA: 10, Dec: 95}})
		require.Error(t, err)
		n, err := c.Count()
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func TestPutIsIdempotent(t *testing.T) {
	objs := []Object{{ID: 1, RA: 10, Dec: 10}, {ID: 2, RA: 370, Dec: -10}}
	withCatalog(t, memOptions(), func(c *Catalog) {
		require.NoError(t, c.Put(context.Background(), objs))
		require.NoError(t, c.Put(context.Background(), objs))
		n, err := c.Count()
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})
}

func TestOpenRejectsBadCoverer(t *testing.T) {
	opt := memOptions()
	opt.Coverer.MinLevel, opt.Coverer.MaxLevel = 10, 5
	_, err := Open(opt)
	require.ErrorContains(t, err, "below min level")

	opt = memOptions()
	opt.Coverer.MaxLevel = 31
	_, err = Open(opt)
	require.Error(t, err)
}

func TestObjectKeyOrder(t *testing.T) {
	a := objectKey(5, 100)
	b := objectKey(6, 1)
	require.Less(t, string(a), string(b))
	ipix, id, err := parseKey(a)
	require.NoError(t, err)
	require.Equal(t, uint64(5), ipix)
	require.Equal(t, uint64(100), id)
	require.Less(t, string(pixelKey(5)), string(a))

	_, _, err = parseKey(pixelKey(5))
	require.Error(t, err)
}

func TestObjectID(t *testing.T) {
	require.Equal(t, ObjectID("M31"), ObjectID("M31"))
	require.NotEqual(t, ObjectID("M31"), ObjectID("M33"))
}
