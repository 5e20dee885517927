package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maiaiia/pseudocronic/pkg/pscript"
)

var fromcppOutFile string

var fromcppCmd = &cobra.Command{
	Use:   "from-cpp <file>",
	Short: "Recover pseudocode from a restricted subset of C++",
	Long: `from-cpp reverses to-cpp: it walks a single-file, class-free C++
translation unit line by line and reconstructs the pseudocode program it
most likely came from. It is not a general C++ parser.`,
	Args: cobra.ExactArgs(1),
	RunE: runFromCpp,
}

func init() {
	rootCmd.AddCommand(fromcppCmd)
	fromcppCmd.Flags().StringVarP(&fromcppOutFile, "output", "o", "", "write pseudocode source to this file instead of stdout")
}

func runFromCpp(_ *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	out := pscript.Transpile(string(source))

	if fromcppOutFile == "" {
		fmt.Print(out)
		return nil
	}
	return os.WriteFile(fromcppOutFile, []byte(out), 0o644)
}
