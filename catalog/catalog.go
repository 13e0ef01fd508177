/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package catalog stores point sources keyed by their leaf pixel and answers
// polygon queries by scanning the pixel ranges of a covering.
package catalog

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/dgryski/go-farm"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/waqasbhatti/q3c/cube"
	"github.com/waqasbhatti/q3c/geo"
	"github.com/waqasbhatti/q3c/poly"
	"github.com/waqasbhatti/q3c/x"
)

// objectPrefix is followed by the big endian leaf pixel and object id, so that
// the objects of a cell form one contiguous key range.
const objectPrefix = "o/"

const keyLen = len(objectPrefix) + 16

// Object is a point source.
type Object struct {
	ID      uint64
	RA, Dec float64
}

// ObjectID derives a stable id from a source name.
func ObjectID(name string) uint64 { return farm.Fingerprint64([]byte(name)) }

// Options configures a Catalog.
type Options struct {
	// Dir holds the badger files. An empty Dir keeps the catalog in memory.
	Dir string
	// CacheMB is the size of the cache of built query polygons. Zero disables it.
	CacheMB int64
	// Coverer picks the cells scanned by a query.
	Coverer geo.Coverer
	// Recheck also runs the exact point test on objects found in full cells.
	// A cell is full when its corners are inside the polygon, which a concave
	// edge can still cut through.
	Recheck bool
	// Concurrency is the number of cells scanned in parallel.
	Concurrency int
}

// DefaultOptions returns the options of a catalog stored in dir.
func DefaultOptions(dir string) Options {
	return Options{
		Dir:         dir,
		CacheMB:     x.Config.CacheMB,
		Coverer:     geo.DefaultCoverer,
		Recheck:     true,
		Concurrency: 8,
	}
}

// Catalog is a badger backed store of objects.
type Catalog struct {
	opt   Options
	db    *badger.DB
	cache *ristretto.Cache[string, *poly.MultiFace]
}

// Open opens or creates the catalog described by opt.
func Open(opt Options) (*Catalog, error) {
	if err := opt.Coverer.Validate(); err != nil {
		return nil, errors.Wrapf(err, "while opening catalog")
	}
	if opt.Concurrency < 1 {
		opt.Concurrency = 1
	}
	bopt := badger.DefaultOptions(opt.Dir).
		WithInMemory(opt.Dir == "").
		WithLogger(&x.ToGlog{})
	db, err := badger.Open(bopt)
	if err != nil {
		return nil, errors.Wrapf(err, "while opening catalog at %q", opt.Dir)
	}
	c := &Catalog{opt: opt, db: db}
	if opt.CacheMB > 0 {
		size := opt.CacheMB << 20
		c.cache, err = ristretto.NewCache(&ristretto.Config[string, *poly.MultiFace]{
			// Use 5% of cache memory for storing counters.
			NumCounters: int64(float64(size) * 0.05 * 2),
			MaxCost:     int64(float64(size) * 0.95),
			BufferItems: 64,
			Metrics:     true,
			Cost:        multiFaceCost,
		})
		if err != nil {
			x.Ignore(db.Close())
			return nil, errors.Wrapf(err, "while creating polygon cache")
		}
	}
	glog.Infof("Opened catalog at %q (in memory: %v)", opt.Dir, opt.Dir == "")
	return c, nil
}

// Five float64 slices per face plus the lon/lat of the polygon itself.
func multiFaceCost(mf *poly.MultiFace) int64 {
	n := int64(mf.Polygon().Len())
	return 16*n + 40*n*int64(len(mf.Faces()))
}

// Close releases the catalog.
func (c *Catalog) Close() error {
	if c.cache != nil {
		c.cache.Close()
	}
	return c.db.Close()
}

func objectKey(ipix, id uint64) []byte {
	key := make([]byte, keyLen)
	n := copy(key, objectPrefix)
	binary.BigEndian.PutUint64(key[n:], ipix)
	binary.BigEndian.PutUint64(key[n+8:], id)
	return key
}

func pixelKey(ipix uint64) []byte {
	key := make([]byte, len(objectPrefix)+8)
	n := copy(key, objectPrefix)
	binary.BigEndian.PutUint64(key[n:], ipix)
	return key
}

func parseKey(key []byte) (ipix, id uint64, err error) {
	if len(key) != keyLen {
		return 0, 0, errors.Errorf("malformed object key %x", key)
	}
	n := len(objectPrefix)
	return binary.BigEndian.Uint64(key[n:]), binary.BigEndian.Uint64(key[n+8:]), nil
}

func encodePosition(ra, dec float64) []byte {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(ra))
	binary.BigEndian.PutUint64(buf[8:], math.Float64bits(dec))
	return buf[:]
}

func decodePosition(val []byte) (ra, dec float64, err error) {
	if len(val) != 16 {
		return 0, 0, errors.Errorf("object value has %d bytes, want 16", len(val))
	}
	ra = math.Float64frombits(binary.BigEndian.Uint64(val))
	dec = math.Float64frombits(binary.BigEndian.Uint64(val[8:]))
	return ra, dec, nil
}

func validPosition(ra, dec float64) bool {
	return !math.IsNaN(ra) && !math.IsInf(ra, 0) && !math.IsNaN(dec) && dec >= -90 && dec <= 90
}

// Put writes objs to the catalog. Objects are keyed by position and id, so
// writing the same object twice is a no-op.
func (c *Catalog) Put(ctx context.Context, objs []Object) error {
	start := time.Now()
	wb := c.db.NewWriteBatch()
	defer wb.Cancel()

	for i, o := range objs {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if !validPosition(o.RA, o.Dec) {
			return errors.Errorf("object %d has invalid position (%v, %v)", o.ID, o.RA, o.Dec)
		}
		ra := cube.NormalizeRA(o.RA)
		key := objectKey(cube.IPix(ra, o.Dec), o.ID)
		if err := wb.Set(key, encodePosition(ra, o.Dec)); err != nil {
			return errors.Wrapf(err, "while writing object %d", o.ID)
		}
	}
	if err := wb.Flush(); err != nil {
		return errors.Wrapf(err, "while flushing %d objects", len(objs))
	}
	x.NumObjects.WithLabelValues("put").Add(float64(len(objs)))
	x.LatencyMs.WithLabelValues("put").Observe(sinceMs(start))
	return nil
}

// Count returns the number of objects in the catalog.
func (c *Catalog) Count() (int, error) {
	var n int
	err := c.db.View(func(txn *badger.Txn) error {
		opt := badger.DefaultIteratorOptions
		opt.PrefetchValues = false
		opt.Prefix = []byte(objectPrefix)
		itr := txn.NewIterator(opt)
		defer itr.Close()
		for itr.Rewind(); itr.Valid(); itr.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// multiFace returns the built form of p, from the cache when possible.
func (c *Catalog) multiFace(p *poly.Polygon) (*poly.MultiFace, error) {
	if c.cache == nil {
		return poly.BuildMultiFace(p)
	}
	key := p.String()
	if mf, ok := c.cache.Get(key); ok {
		x.CacheHits.WithLabelValues("hit").Inc()
		return mf, nil
	}
	x.CacheHits.WithLabelValues("miss").Inc()
	mf, err := poly.BuildMultiFace(p)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, mf, 0)
	return mf, nil
}

// Query returns the objects inside p. A polygon too large to be projected
// yields an error wrapping poly.ErrTooLarge.
func (c *Catalog) Query(ctx context.Context, p *poly.Polygon) ([]Object, error) {
	start := time.Now()
	objs, err := c.query(ctx, p)
	switch {
	case errors.Is(err, poly.ErrTooLarge):
		x.NumQueries.WithLabelValues("too_large").Inc()
	case err != nil:
		x.NumQueries.WithLabelValues("error").Inc()
	default:
		x.NumQueries.WithLabelValues("ok").Inc()
		x.NumObjects.WithLabelValues("query").Add(float64(len(objs)))
	}
	x.LatencyMs.WithLabelValues("query").Observe(sinceMs(start))
	return objs, err
}

type scan struct {
	cell  cube.Cell
	exact bool
}

func (c *Catalog) query(ctx context.Context, p *poly.Polygon) ([]Object, error) {
	mf, err := c.multiFace(p)
	if err != nil {
		return nil, err
	}
	q := geo.NewQueryData(mf, &c.opt.Coverer)
	cov := q.Covering()
	x.NumCells.WithLabelValues(poly.Cover.String()).Add(float64(len(cov.Full)))
	x.NumCells.WithLabelValues(poly.Partial.String()).Add(float64(len(cov.Partial)))

	scans := make([]scan, 0, cov.Len())
	for _, cell := range cov.Full {
		scans = append(scans, scan{cell: cell, exact: c.opt.Recheck})
	}
	for _, cell := range cov.Partial {
		scans = append(scans, scan{cell: cell, exact: true})
	}

	// Cells of a covering never overlap, so every object is found at most once.
	results := make([][]Object, len(scans))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opt.Concurrency)
	for i, s := range scans {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var err error
			results[i], err = c.scanCell(gctx, s, q)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var n int
	for _, r := range results {
		n += len(r)
	}
	objs := make([]Object, 0, n)
	for _, r := range results {
		objs = append(objs, r...)
	}
	if glog.V(2) {
		glog.Infof("query over faces %v scanned %d cells, found %d objects",
			mf.Faces(), len(scans), len(objs))
	}
	return objs, nil
}

func (c *Catalog) scanCell(ctx context.Context, s scan, q *geo.QueryData) ([]Object, error) {
	lo, hi := s.cell.IPixRange()
	var out []Object
	err := c.db.View(func(txn *badger.Txn) error {
		opt := badger.DefaultIteratorOptions
		opt.Prefix = []byte(objectPrefix)
		itr := txn.NewIterator(opt)
		defer itr.Close()

		var seen int
		for itr.Seek(pixelKey(lo)); itr.Valid(); itr.Next() {
			if seen++; seen%4096 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			item := itr.Item()
			ipix, id, err := parseKey(item.Key())
			if err != nil {
				return err
			}
			if ipix >= hi {
				break
			}
			var o Object
			err = item.Value(func(val []byte) error {
				var err error
				o.RA, o.Dec, err = decodePosition(val)
				return err
			})
			if err != nil {
				return errors.Wrapf(err, "while reading object %d", id)
			}
			if s.exact && !q.MatchesFilter(o.RA, o.Dec) {
				continue
			}
			o.ID = id
			out = append(out, o)
		}
		return nil
	})
	return out, err
}

func sinceMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
