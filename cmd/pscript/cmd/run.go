package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maiaiia/pseudocronic/internal/ast"
	"github.com/maiaiia/pseudocronic/internal/trace"
	"github.com/maiaiia/pseudocronic/pkg/pscript"
)

var (
	runTrace     bool
	runMaxSteps  int
	runInputFile string
	runDumpAST   bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a pseudocode program",
	Long: `Run interprets a pseudocode source file. READ statements consume
lines from --input (or standard input when --input is omitted), in order.

Examples:
  pscript run program.pseudo
  pscript run program.pseudo --input answers.txt
  pscript run program.pseudo --trace`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "print one JSON trace document after execution")
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", defaultMaxSteps(), "abort after this many node visits (0 = unlimited)")
	runCmd.Flags().StringVar(&runInputFile, "input", "", "file supplying READ answers, one per line (default: stdin)")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "print the parsed program's JSON AST instead of running it")
}

// defaultMaxSteps reads PSEUDOCRONIC_MAX_STEPS so a host environment can cap
// runaway scripts without a command-line flag on every invocation.
func defaultMaxSteps() int {
	if v := os.Getenv("PSEUDOCRONIC_MAX_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func runProgram(_ *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if runDumpAST {
		prog, err := pscript.Parse(string(source))
		if err != nil {
			fmt.Fprintln(os.Stderr, pscript.FormatError(err, string(source), !noColor))
			return fmt.Errorf("parsing failed")
		}
		out, err := json.MarshalIndent(ast.ToJSON(prog), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	lines, err := readInputLines(runInputFile)
	if err != nil {
		return err
	}

	opts := []pscript.Option{
		pscript.WithInput(lines...),
		pscript.WithWriter(os.Stdout),
		pscript.WithMaxSteps(runMaxSteps),
		pscript.WithTrace(runTrace),
	}

	result, err := pscript.Interpret(string(source), opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, pscript.FormatError(err, string(source), !noColor))
		return fmt.Errorf("execution failed")
	}

	if runTrace {
		fmt.Fprintln(os.Stderr, result.Trace)
		fmt.Fprintf(os.Stderr, "steps recorded: %d\n", trace.StepCount(result.Trace))
	}
	return nil
}

func readInputLines(path string) ([]string, error) {
	var f *os.File
	if path == "" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input %s: %w", path, err)
		}
		defer f.Close()
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
