/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"github.com/waqasbhatti/q3c/poly"
)

// QueryData holds what is needed to check the points of a covering against a
// polygon query.
type QueryData struct {
	mf  *poly.MultiFace
	cov Covering
}

// NewQueryData covers a built polygon. A nil coverer means DefaultCoverer.
func NewQueryData(mf *poly.MultiFace, c *Coverer) *QueryData {
	if c == nil {
		c = &DefaultCoverer
	}
	return &QueryData{mf: mf, cov: c.Covering(mf)}
}

// MultiFace returns the projected polygon.
func (q *QueryData) MultiFace() *poly.MultiFace { return q.mf }

// Covering returns the cells the query touches.
func (q *QueryData) Covering() Covering { return q.cov }

// MatchesFilter reports whether the point (ra, dec) is inside the query polygon.
func (q *QueryData) MatchesFilter(ra, dec float64) bool {
	return q.mf.Locate(ra, dec)
}
