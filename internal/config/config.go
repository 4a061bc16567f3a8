// Package config contains blotches Config and the code to load it.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/setanarut/blotches"
	"github.com/setanarut/blotches/internal/logging"
	"github.com/setanarut/blotches/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config struct {
	// Size is the side length of the square image.
	Size int `mapstructure:"size" json:"size" toml:"size" yaml:"size"`
	// NumCenters is how many seed pixels are scattered before growth.
	NumCenters int `mapstructure:"num_centers" json:"num_centers" toml:"num_centers" yaml:"num_centers"`
	// NumLookback is the depth of recent-pixel history searched for the closest color.
	NumLookback int `mapstructure:"num_lookback" json:"num_lookback" toml:"num_lookback" yaml:"num_lookback"`
	// StartSpread is the seed center jitter as a fraction of Size.
	StartSpread float64 `mapstructure:"start_spread" json:"start_spread" toml:"start_spread" yaml:"start_spread"`
	// ContSpread scales growth center jitter by color distance.
	ContSpread float64 `mapstructure:"cont_spread" json:"cont_spread" toml:"cont_spread" yaml:"cont_spread"`
	// Seed makes runs reproducible.
	Seed uint64 `mapstructure:"seed" json:"seed" toml:"seed" yaml:"seed"`

	Output Output `mapstructure:"output" json:"output" toml:"output" yaml:"output"`
	Log    Log    `mapstructure:"log" json:"log" toml:"log" yaml:"log"`
}

type Output struct {
	// Dir receives the image and any extra reports.
	Dir string `mapstructure:"dir" json:"dir" toml:"dir" yaml:"dir"`
	// Format is one of png, bmp, tiff.
	Format string `mapstructure:"format" json:"format" toml:"format" yaml:"format"`
	// Palette is the number of colors in the palette report. 0 disables it.
	Palette int `mapstructure:"palette" json:"palette" toml:"palette" yaml:"palette"`
	// PaletteMethod is dominantcolor or kmeans.
	PaletteMethod string `mapstructure:"palette_method" json:"palette_method" toml:"palette_method" yaml:"palette_method"`
	// Histogram enables the walk length plot.
	Histogram bool `mapstructure:"histogram" json:"histogram" toml:"histogram" yaml:"histogram"`
	// DistanceLayer enables the grayscale pixel-to-center distance image.
	DistanceLayer bool `mapstructure:"distance_layer" json:"distance_layer" toml:"distance_layer" yaml:"distance_layer"`
}

type Log struct {
	Level string `mapstructure:"level" json:"level" toml:"level" yaml:"level"`
	File  string `mapstructure:"file" json:"file" toml:"file" yaml:"file"`
}

type Meta struct {
	FileNotFound bool
	UnknownKeys  []string
}

func DefaultConfig() Config {
	opt := blotches.DefaultOptions()
	return Config{
		Size:        opt.Size,
		NumCenters:  opt.NumCenters,
		NumLookback: opt.NumLookback,
		StartSpread: opt.StartSpread,
		ContSpread:  opt.ContSpread,
		Seed:        opt.Seed,
		Output: Output{
			Dir:           ".",
			Format:        "png",
			PaletteMethod: "dominantcolor",
		},
		Log: Log{Level: "info"},
	}
}

// defaults flattens DefaultConfig into viper keys.
func defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"size":                  d.Size,
		"num_centers":           d.NumCenters,
		"num_lookback":          d.NumLookback,
		"start_spread":          d.StartSpread,
		"cont_spread":           d.ContSpread,
		"seed":                  d.Seed,
		"output.dir":            d.Output.Dir,
		"output.format":         d.Output.Format,
		"output.palette":        d.Output.Palette,
		"output.palette_method": d.Output.PaletteMethod,
		"output.histogram":      d.Output.Histogram,
		"output.distance_layer": d.Output.DistanceLayer,
		"log.level":             d.Log.Level,
		"log.file":              d.Log.File,
	}
}

func DefineFlags(cmd *cobra.Command) {
	d := DefaultConfig()
	f := cmd.Flags()
	f.IntP("size", "s", d.Size, "side length of the generated image")
	f.IntP("num_centers", "n", d.NumCenters, "number of randomly placed seed pixels")
	f.IntP("num_lookback", "l", d.NumLookback, "number of recent pixels searched for the closest color")
	f.Float64("start_spread", d.StartSpread, "seed center jitter as a fraction of size, in [0,1]")
	f.Float64("cont_spread", d.ContSpread, "growth center jitter per unit of color distance")
	f.Uint64("seed", d.Seed, "random seed")
	f.StringP("output.dir", "o", d.Output.Dir, "output directory")
	f.String("output.format", d.Output.Format, "image format: png, bmp or tiff")
	f.Int("output.palette", d.Output.Palette, "write a palette report with this many colors (0 disables)")
	f.String("output.palette_method", d.Output.PaletteMethod, "palette method: dominantcolor or kmeans")
	f.Bool("output.histogram", d.Output.Histogram, "write a boundary walk length histogram")
	f.Bool("output.distance_layer", d.Output.DistanceLayer, "write a grayscale pixel-to-center distance image")
	f.String("log.level", d.Log.Level, "log level: trace, debug, info, warn, error or none")
	f.String("log.file", d.Log.File, "optional log file path")
}

// GetConfig merges defaults, an optional config file and changed flags, in
// increasing priority. cmd may be nil.
func GetConfig(cmd *cobra.Command, configFile string) (Config, Meta, error) {
	v := viper.New()
	known := defaults()
	for k, val := range known {
		v.SetDefault(k, val)
	}
	if cmd != nil {
		for k := range known {
			if fl := cmd.Flags().Lookup(k); fl != nil {
				_ = v.BindPFlag(k, fl)
			}
		}
	}

	meta := Meta{}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
			meta.FileNotFound = true
		}
	}

	for _, k := range v.AllKeys() {
		if _, ok := known[k]; !ok {
			meta.UnknownKeys = append(meta.UnknownKeys, k)
		}
	}
	slices.Sort(meta.UnknownKeys)

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return conf, meta, nil
}

func (c Config) Options() blotches.Options {
	return blotches.Options{
		Size:        c.Size,
		NumCenters:  c.NumCenters,
		NumLookback: c.NumLookback,
		StartSpread: c.StartSpread,
		ContSpread:  c.ContSpread,
		Seed:        c.Seed,
	}
}

func (c Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if _, err := utils.NormalizeFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Output.Palette < 0 {
		return fmt.Errorf("output.palette must be >= 0, got %d", c.Output.Palette)
	}
	if _, err := utils.ParsePaletteMethod(c.Output.PaletteMethod); err != nil {
		return fmt.Errorf("output.palette_method: %w", err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
