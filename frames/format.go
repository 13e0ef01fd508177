/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package frames

import "fmt"

// FormatEquatorial renders ra (degrees) in hours and dec in degrees as
// "HH:MM:SS.sss ±DD:MM:SS.ss". Fields are truncated, not rounded, before the
// seconds.
func FormatEquatorial(ra, dec float64) string {
	h := ra / 15
	rah := int(h)
	m := 60 * (h - float64(rah))
	ram := int(m)
	ras := 60 * (m - float64(ram))

	sign := '+'
	if dec < 0 {
		sign = '-'
		dec = -dec
	}
	decd := int(dec)
	m = 60 * (dec - float64(decd))
	decm := int(m)
	decs := 60 * (m - float64(decm))

	return fmt.Sprintf("%02d:%02d:%06.3f %c%02d:%02d:%05.2f",
		rah, ram, ras, sign, decd, decm, decs)
}
