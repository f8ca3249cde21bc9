/*
Copyright © 2025 the FeaturePick authors.
This file is part of FeaturePick.

FeaturePick is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FeaturePick is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FeaturePick.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package featurepickutil wires the featurepick library into a
// command-line interface.
package featurepickutil

import (
	"fmt"
	"math"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialmodel/featurepick"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives progress information. By default it writes to standard
// error through the logrus standard logger.
var Log logrus.FieldLogger = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to FeaturePick.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "features",
			usage: `
              features specifies the path to the JSON file holding the
              extruded footprints to query. Each feature carries a GeoJSON
              polygon geometry and a properties object with elevation values.`,
			shorthand:  "f",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "point",
			usage: `
              point gives a single query location in tile units as "x,y".
              Exactly one of point and box must be set.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "box",
			usage: `
              box gives a rectangular query region in tile units as
              "x0,y0,x1,y1". Exactly one of point and box must be set.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "heightProperty",
			usage: `
              heightProperty is the name of the feature property holding the
              extrusion top elevation.`,
			defaultVal: "height",
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "baseProperty",
			usage: `
              baseProperty is the name of the feature property holding the
              extrusion base elevation.`,
			defaultVal: "base",
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "camera.width",
			usage: `
              camera.width is the viewport width in screen pixels.`,
			defaultVal: 1024.0,
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "camera.height",
			usage: `
              camera.height is the viewport height in screen pixels.`,
			defaultVal: 768.0,
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "camera.bearing",
			usage: `
              camera.bearing is the view rotation in degrees clockwise from
              north.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "camera.pitch",
			usage: `
              camera.pitch is the view tilt in degrees away from straight
              down.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "camera.scale",
			usage: `
              camera.scale is the number of screen pixels per tile unit.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "camera.centerX",
			usage: `
              camera.centerX is the tile-unit x coordinate at the viewport
              center.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "camera.centerY",
			usage: `
              camera.centerY is the tile-unit y coordinate at the viewport
              center.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("FEATUREPICK")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(queryCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("featurepick: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "featurepick",
	Short: "3D hit-testing for extruded map features.",
	Long: `FeaturePick tests screen-space queries against extruded polygon
features such as building footprints, reporting which features a point or
box query hits and at what depth.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'FEATUREPICK_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of FeaturePick.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("FeaturePick v%s\n", featurepick.Version)
	},
	DisableAutoGenTag: true,
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query extruded features.",
	Long: `query loads extruded footprints from the features file, builds the
camera projection from the camera.* options, and reports every feature the
query region hits, nearest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scale := Cfg.GetFloat64("camera.scale")
		if scale <= 0 {
			return fmt.Errorf("featurepick: camera.scale must be positive, got %g", scale)
		}
		// Paint offsets are given in screen pixels; at scale pixels per
		// tile unit, one pixel is 1/scale tile units.
		set, err := LoadFeatures(Cfg.GetString("features"),
			Cfg.GetString("heightProperty"), Cfg.GetString("baseProperty"),
			1/scale)
		if err != nil {
			return err
		}
		region, err := queryRegion(Cfg.GetString("point"), Cfg.GetString("box"))
		if err != nil {
			return err
		}
		bearing := Cfg.GetFloat64("camera.bearing") * math.Pi / 180
		m := PixelMatrix(
			Cfg.GetFloat64("camera.width"), Cfg.GetFloat64("camera.height"),
			bearing, Cfg.GetFloat64("camera.pitch")*math.Pi/180, scale,
			Cfg.GetFloat64("camera.centerX"), Cfg.GetFloat64("camera.centerY"))

		hits := set.Query(region, bearing, m)
		Log.WithFields(logrus.Fields{
			"queryPoints": len(region),
			"hits":        len(hits),
		}).Info("query finished")
		for _, h := range hits {
			fmt.Printf("%s\t%g\n", h.Feature.ID, h.Distance)
		}
		return nil
	},
	DisableAutoGenTag: true,
}
