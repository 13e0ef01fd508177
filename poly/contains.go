/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package poly

// Contains reports whether the planar point (x0, y0) lies inside the polygon,
// using the crossing-number rule. An edge is counted when the horizontal line
// through y0 separates its endpoints under the half-open convention
// y[i] >= y0 > y[i+1] or y[i] < y0 <= y[i+1], so a shared vertex is never
// counted twice.
func (pl *Plane) Contains(x0, y0 float64) bool {
	n := len(pl.x)
	in := false
	for i := 0; i < n; i++ {
		next := i + 1
		if next == n {
			next = 0
		}
		if (y0 <= pl.y[i]) != (y0 > pl.y[next]) {
			continue
		}
		// A horizontal edge cannot pass the test above, but the guard keeps
		// the division well defined whatever the comparison semantics.
		if pl.ay[i] == 0 {
			continue
		}
		if x0-pl.x[i] < (y0-pl.y[i])*pl.ax[i]/pl.ay[i] {
			in = !in
		}
	}
	return in
}
