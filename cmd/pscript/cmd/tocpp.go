package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maiaiia/pseudocronic/pkg/pscript"
)

var tocppOutFile string

var tocppCmd = &cobra.Command{
	Use:   "to-cpp <file>",
	Short: "Compile a pseudocode program to C++",
	Long: `to-cpp parses a pseudocode source file and emits an equivalent,
self-contained C++ translation unit (preamble, main, variable declarations
grouped by inferred type, translated body).`,
	Args: cobra.ExactArgs(1),
	RunE: runToCpp,
}

func init() {
	rootCmd.AddCommand(tocppCmd)
	tocppCmd.Flags().StringVarP(&tocppOutFile, "output", "o", "", "write C++ source to this file instead of stdout")
}

func runToCpp(_ *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	cpp, err := pscript.Emit(string(source))
	if err != nil {
		fmt.Fprintln(os.Stderr, pscript.FormatError(err, string(source), !noColor))
		return fmt.Errorf("compilation failed")
	}

	if tocppOutFile == "" {
		fmt.Print(cpp)
		return nil
	}
	return os.WriteFile(tocppOutFile, []byte(cpp), 0o644)
}
