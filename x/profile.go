/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"runtime"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/viper"
)

// Stopper ends a profiling session.
type Stopper interface {
	Stop()
}

var profileModes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"block":     profile.BlockProfile,
	"trace":     profile.TraceProfile,
	"goroutine": profile.GoroutineProfile,
}

// ProfileModes lists the accepted values of the profile_mode option.
func ProfileModes() []string {
	modes := make([]string, 0, len(profileModes))
	for m := range profileModes {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return modes
}

// StartProfile starts the profiler picked by the profile_mode option, writing
// into profile_dir when set. The returned Stopper must be stopped when the
// command is done.
func StartProfile(conf *viper.Viper) (Stopper, error) {
	mode := strings.ToLower(conf.GetString("profile_mode"))
	if mode == "" {
		return noOpStopper{}, nil
	}
	start, ok := profileModes[mode]
	if !ok {
		return nil, errors.Errorf("invalid profile mode %q, want one of %v", mode, ProfileModes())
	}
	if mode == "block" {
		runtime.SetBlockProfileRate(conf.GetInt("block_rate"))
	}
	opts := []func(*profile.Profile){start, profile.Quiet, profile.NoShutdownHook}
	if dir := conf.GetString("profile_dir"); dir != "" {
		opts = append(opts, profile.ProfilePath(dir))
	}
	glog.Infof("Starting %s profile", mode)
	return profile.Start(opts...), nil
}

type noOpStopper struct{}

func (noOpStopper) Stop() {}
