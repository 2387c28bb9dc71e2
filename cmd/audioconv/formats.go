// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/audioconv/internal/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported output formats",
	Long: `Formats prints the table of supported output formats and the FFmpeg
encoder each one maps to. The engine itself supports many more formats;
this table is the set audioconv commits to producing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")

		if asYAML {
			data, err := yaml.Marshal(format.Table())
			if err != nil {
				return fmt.Errorf("encoding format table: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		}

		fmt.Printf("%-6s %-12s %-6s %s\n", "FORMAT", "ENCODER", "MUXER", "KIND")
		for _, s := range format.Table() {
			kind := "lossless"
			if s.Lossy {
				kind = "lossy"
			}
			fmt.Printf("%-6s %-12s %-6s %s\n", s.Name, s.Codec, s.Mux, kind)
		}
		return nil
	},
}

func init() {
	formatsCmd.Flags().Bool("yaml", false, "emit the format table as YAML")

	rootCmd.AddCommand(formatsCmd)
}
