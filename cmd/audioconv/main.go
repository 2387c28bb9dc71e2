// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the audioconv CLI.
//
// The root command performs a single conversion; formats, check, and
// version are informational subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/audioconv/internal/convert"
	"github.com/pdiddy/audioconv/internal/engine"
	"github.com/pdiddy/audioconv/internal/format"
	"github.com/pdiddy/audioconv/internal/resolve"
	"github.com/pdiddy/audioconv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command; invoked with flags it runs one conversion.
var rootCmd = &cobra.Command{
	Use:   "audioconv --input <path> --output_format <format> [--output <path>]",
	Short: "Convert audio files between formats using FFmpeg",
	Long: `audioconv converts an audio file from one container/codec format to
another by delegating the decode and encode work to FFmpeg. The output
file is named after the input file's stem with the requested format as
its extension.

Supported formats: ` + format.SupportedList() + `.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		outputFormat, _ := cmd.Flags().GetString("output_format")
		output, _ := cmd.Flags().GetString("output")

		if input == "" || outputFormat == "" {
			_ = cmd.Help()
			return fmt.Errorf("--input and --output_format are required")
		}

		// Backslashes are normalized exactly once, here at the boundary;
		// all path logic downstream sees forward slashes.
		req := types.ConversionRequest{
			Input:        resolve.NormalizeSlashes(input),
			OutputFormat: outputFormat,
			Output:       resolve.NormalizeSlashes(output),
		}

		_, err := convert.Run(cmd.Context(), engine.Detect, req, loadConfig(), os.Stdout)
		if convert.KindOf(err) == convert.KindEngineUnavailable {
			fmt.Fprintln(os.Stderr, engine.Guidance)
		}
		return err
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./audioconv.yaml or ~/.config/audioconv/config.yaml)")

	rootCmd.Flags().String("input", "", "path to the input audio file")
	rootCmd.Flags().String("output_format", "", "output format, one of: "+format.SupportedList())
	rootCmd.Flags().String("output", "", "output path: a directory, or a file path whose directory is used (optional)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("audioconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "audioconv"))
		}
	}

	viper.SetEnvPrefix("AUDIOCONV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the typed configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		Engine: types.EngineConfig{
			Binary:    viper.GetString("engine.binary"),
			ExtraArgs: viper.GetStringSlice("engine.extra_args"),
		},
		Convert: types.ConvertConfig{
			Bitrate: viper.GetString("convert.bitrate"),
			Timeout: viper.GetDuration("convert.timeout"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
