package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-matcher/internal/artifact"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (%s, artifact schema %s v%d)\n", app, version, runtime.Version(), artifact.Schema, artifact.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
