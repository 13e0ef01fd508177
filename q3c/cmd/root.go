/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	goflag "flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/waqasbhatti/q3c/q3c/cmd/classify"
	"github.com/waqasbhatti/q3c/q3c/cmd/conv"
	"github.com/waqasbhatti/q3c/q3c/cmd/cover"
	"github.com/waqasbhatti/q3c/q3c/cmd/load"
	"github.com/waqasbhatti/q3c/q3c/cmd/locate"
	"github.com/waqasbhatti/q3c/q3c/cmd/query"
	"github.com/waqasbhatti/q3c/q3c/cmd/version"
	"github.com/waqasbhatti/q3c/x"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "q3c",
	Short: "q3c: Quad Tree Cube sky indexing",
	Long: `
q3c projects the celestial sphere onto the six faces of a cube and indexes
points by the quad tree cells of those faces. It answers whether a point lies
inside a spherical polygon, how a polygon relates to the cells of the tree,
and which objects of a catalog fall inside a polygon.
` + x.BuildDetails(),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	goflag.Parse()
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootConf = viper.New()

func init() {
	RootCmd.PersistentFlags().String("profile_mode", "",
		"Enable profiling mode, one of "+strings.Join(x.ProfileModes(), ", "))
	RootCmd.PersistentFlags().Int("block_rate", 0,
		"Block profiling rate. Must be used along with block profile_mode")
	RootCmd.PersistentFlags().String("profile_dir", "",
		"Directory the profiles are written to. Defaults to a temporary directory.")
	RootCmd.PersistentFlags().String("metrics_addr", "",
		"Serve Prometheus metrics on this address, e.g. localhost:8090.")
	RootCmd.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	x.FillCoverFlags(RootCmd.PersistentFlags())
	x.Check(rootConf.BindPFlags(RootCmd.PersistentFlags()))

	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	// Always set stderrthreshold=0. Don't let users set it themselves.
	x.Check(flag.Set("stderrthreshold", "0"))
	x.Check(flag.CommandLine.MarkDeprecated("stderrthreshold",
		"q3c always sets this flag to 0. It can't be overwritten."))

	var subcommands = []*x.SubCommand{
		&locate.Locate, &classify.Classify, &cover.Cover, &conv.Conv,
		&load.Load, &query.Query, &version.Version,
	}
	for _, sc := range subcommands {
		RootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		x.Check(sc.Conf.BindPFlags(sc.Cmd.Flags()))
		x.Check(sc.Conf.BindPFlags(RootCmd.PersistentFlags()))
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}
	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			x.Check(x.Wrapf(sc.Conf.ReadInConfig(), "reading config"))
		}
	})
}
