package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/setanarut/blotches"
	"github.com/setanarut/blotches/internal/build"
	"github.com/setanarut/blotches/internal/config"
	"github.com/setanarut/blotches/internal/logging"
	"github.com/setanarut/blotches/utils"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	var configFile string
	rootCmd := &cobra.Command{
		Use:   "blotches",
		Short: "Grow a blotchy color image",
		Long:  `Generate a square image by growing color blotches outward from random seed pixels`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, meta, err := config.GetConfig(cmd, configFile)
			if err != nil {
				return err
			}
			if meta.FileNotFound {
				return fmt.Errorf("config file not found: %s", configFile)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			closeLog, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return err
			}
			defer closeLog()
			if len(meta.UnknownKeys) > 0 {
				log.Warn().Strs("keys", meta.UnknownKeys).Msg("unknown keys in config")
			}
			return run(cfg)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to config file (json, toml or yaml)")
	config.DefineFlags(rootCmd)
	rootCmd.AddCommand(versionCmd(), checkConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("blotches failed")
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	opt := cfg.Options()
	format, _ := utils.NormalizeFormat(cfg.Output.Format)
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	filename := filepath.Join(cfg.Output.Dir, opt.Filename(format))
	log.Info().Str("file", filename).Msg("start")

	gen, err := blotches.NewGenerator(opt)
	if err != nil {
		return err
	}
	started := time.Now()
	gen.Run()
	st := gen.Stats()
	log.Info().
		Dur("elapsed", time.Since(started)).
		Int("seeds", st.Seeds).
		Int("grown", st.Grown).
		Int("fallbacks", st.Fallbacks).
		Msg("generated")

	img := gen.Image()
	if err := utils.SaveImage(img, filename); err != nil {
		return err
	}
	cs := utils.ImageStats(img)
	log.Info().
		Floats64("mean", cs.Mean[:]).
		Floats64("stddev", cs.StdDev[:]).
		Float64("corr_rg", cs.Corr(0, 1)).
		Float64("corr_gb", cs.Corr(1, 2)).
		Msg("saved")

	if cfg.Output.Palette > 0 {
		method, _ := utils.ParsePaletteMethod(cfg.Output.PaletteMethod)
		palette, err := utils.ExtractPalette(img, cfg.Output.Palette, method)
		if err != nil {
			return fmt.Errorf("palette: %w", err)
		}
		utils.SortPaletteByBrightness(palette)
		if err := utils.SavePalette(palette, 64, utils.Sibling(filename, "palette")); err != nil {
			return err
		}
		log.Info().Str("method", method.String()).Strs("colors", utils.HexPalette(palette)).Msg("palette")
	}
	if cfg.Output.Histogram {
		if len(st.WalkSteps) == 0 {
			log.Warn().Msg("no boundary walks, skipping histogram")
		} else if err := utils.SaveWalkHistogram(st.WalkSteps, 50, utils.Sibling(filename, "walks")); err != nil {
			return err
		}
	}
	if cfg.Output.DistanceLayer {
		if err := utils.SaveImage(gen.DistanceLayer(), utils.Sibling(filename, "distance")); err != nil {
			return err
		}
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("blotches v%s (Go version: %s)\n", build.Version, runtime.Version())
		},
	}
}

func checkConfigCmd() *cobra.Command {
	var checkConfigFile string
	var strict bool
	cmd := &cobra.Command{
		Use:   "checkconfig",
		Short: "Check configuration file",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, meta, err := config.GetConfig(nil, checkConfigFile)
			if err != nil {
				fmt.Printf("error getting config: %v\n", err)
				os.Exit(1)
			}
			if meta.FileNotFound {
				fmt.Println("config file not found")
				os.Exit(1)
			}
			if err := cfg.Validate(); err != nil {
				fmt.Printf("error validating config: %s\n", err)
				os.Exit(1)
			}
			if strict && len(meta.UnknownKeys) > 0 {
				fmt.Printf("unknown keys in config: %v\n", strings.Join(meta.UnknownKeys, ", "))
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVarP(&checkConfigFile, "config", "c", "config.json", "path to config file to check")
	cmd.Flags().BoolVarP(&strict, "strict", "", false, "fail on unknown keys")
	return cmd
}
