/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func confWith(t *testing.T, args ...string) *viper.Viper {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	FillCoverFlags(flags)
	require.NoError(t, flags.Parse(args))
	conf := viper.New()
	require.NoError(t, conf.BindPFlags(flags))
	return conf
}

func TestLoadConfig(t *testing.T) {
	saved := Config
	defer func() { Config = saved }()

	require.NoError(t, LoadConfig(confWith(t, "--cover_max_level=12", "--cache_mb=4")))
	require.Equal(t, 12, Config.CoverMaxLevel)
	require.Equal(t, int64(4), Config.CacheMB)
	require.Equal(t, saved.CoverMinLevel, Config.CoverMinLevel)
	require.False(t, Config.Diagnostic)
}

func TestLoadConfigRejectsBadLevels(t *testing.T) {
	saved := Config
	defer func() { Config = saved }()

	err := LoadConfig(confWith(t, "--cover_min_level=10", "--cover_max_level=5"))
	require.Error(t, err)
	require.Equal(t, saved, Config)

	require.Error(t, LoadConfig(confWith(t, "--cover_max_level=31")))
	require.Error(t, LoadConfig(confWith(t, "--cover_max_cells=-1")))
}

func TestProfileModes(t *testing.T) {
	require.Equal(t, []string{"block", "cpu", "goroutine", "mem", "mutex", "trace"}, ProfileModes())

	stop, err := StartProfile(viper.New())
	require.NoError(t, err)
	stop.Stop()

	conf := viper.New()
	conf.Set("profile_mode", "heap")
	_, err = StartProfile(conf)
	require.Error(t, err)
}
