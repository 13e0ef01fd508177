/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package input

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/waqasbhatti/q3c/frames"
	"github.com/waqasbhatti/q3c/x"
)

func TestPosition(t *testing.T) {
	ra, dec, err := Position(frames.Equatorial, "-10", "20.5")
	require.NoError(t, err)
	require.Equal(t, 350.0, ra)
	require.Equal(t, 20.5, dec)

	ra, _, err = Position(frames.Equatorial, "725", "0")
	require.NoError(t, err)
	require.InDelta(t, 5, ra, 1e-9)

	ra, dec, err = Position(frames.Galactic, "0", "0")
	require.NoError(t, err)
	require.InDelta(t, 266.405, ra, 0.01)
	require.InDelta(t, -28.936, dec, 0.01)

	_, _, err = Position(frames.Equatorial, "10", "95")
	require.ErrorContains(t, err, "out of range")
	_, _, err = Position(frames.Equatorial, "10", "-90.1")
	require.Error(t, err)
	_, _, err = Position(frames.Equatorial, "ten", "5")
	require.ErrorContains(t, err, "invalid longitude")
	_, _, err = Position(frames.Equatorial, "10", "")
	require.ErrorContains(t, err, "invalid latitude")
}

func TestLevel(t *testing.T) {
	sc := x.SubCommand{Conf: viper.New()}
	l, err := Level(sc, 8)
	require.NoError(t, err)
	require.Equal(t, 8, l)

	sc.Conf.Set("level", 12)
	l, err = Level(sc, 8)
	require.NoError(t, err)
	require.Equal(t, 12, l)

	sc.Conf.Set("level", 31)
	_, err = Level(sc, 8)
	require.Error(t, err)
}

func TestPolygonFlags(t *testing.T) {
	sc := x.SubCommand{Conf: viper.New()}
	_, err := Polygon(sc)
	require.Error(t, err)

	sc.Conf.Set("poly", "10 -5, 20 -5, 20 5")
	p, err := Polygon(sc)
	require.NoError(t, err)
	require.Equal(t, 3, p.Len())
}
