package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "0.1.0-dev"

	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "pscript",
	Short: "Toolchain for the pbinfo-style pseudocode dialect",
	Long: `pscript lexes, parses, and runs the Romanian teaching pseudocode
dialect used throughout pbinfo.ro-style exercises. It can also compile a
program to a C++ translation unit, and recover pseudocode from a
restricted subset of C++ produced that way.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color in error output")
	if os.Getenv("NO_COLOR") != "" || os.Getenv("PSEUDOCRONIC_NO_COLOR") != "" {
		noColor = true
	}
}
