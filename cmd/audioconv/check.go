// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/audioconv/internal/engine"
	"github.com/pdiddy/audioconv/internal/format"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the conversion engine and its encoders",
	Long: `Check locates the FFmpeg engine, prints its version, and reports
whether the encoder for each supported output format is present in this
engine build. Informational only; a missing encoder does not fail the
command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine.Detect(loadConfig().Engine)
		if err != nil {
			fmt.Fprintln(os.Stderr, engine.Guidance)
			return err
		}
		fmt.Printf("engine: %s\n", eng.Name())

		ver, err := eng.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version: %s\n", ver)

		encoders, err := eng.Encoders()
		if err != nil {
			return err
		}
		for _, s := range format.Table() {
			state := "missing"
			if hasEncoder(encoders, s.Codec) {
				state = "ok"
			}
			fmt.Printf("  %-6s %-12s %s\n", s.Name, s.Codec, state)
		}
		return nil
	},
}

// hasEncoder reports whether the engine's encoder listing contains codec
// as a whole word. The listing has one encoder per line with the name in
// the second column.
func hasEncoder(listing, codec string) bool {
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == codec {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
