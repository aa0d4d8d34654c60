package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/safec-org/safec/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "safec <input>",
	Short: "SafeC compiler front-end",
	Long: `safec lexes, parses and semantically analyzes a SafeC source file:
region-qualified references, nullable optionals, generics, tagged unions
and compile-time assertions, surfaced as structured diagnostics.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := config.New()
		opts.Output = GetString(cmd, "output")
		opts.EmitLLVM = GetFlag(cmd, "emit-llvm")
		opts.DumpAST = GetFlag(cmd, "dump-ast")
		opts.DumpPP = GetFlag(cmd, "dump-pp")
		opts.NoSema = GetFlag(cmd, "no-sema")
		opts.NoConstEval = GetFlag(cmd, "no-consteval")
		opts.CompatPreprocessor = GetFlag(cmd, "compat-preprocessor")
		opts.Freestanding = GetFlag(cmd, "freestanding")
		opts.IncludeDirs = GetStringArray(cmd, "include")
		opts.Defines = parseDefines(GetStringArray(cmd, "define"))
		opts.Verbose = GetFlag(cmd, "verbose")

		if opts.Verbose {
			log.SetLevel(log.DebugLevel)
		}

		os.Exit(runCompile(args[0], opts))
	},
}

func init() {
	rootCmd.Flags().StringP("output", "o", "-", "output path ('-' for stdout)")
	rootCmd.Flags().Bool("emit-llvm", false, "request lowered IR text from the external code generator")
	rootCmd.Flags().Bool("dump-ast", false, "stop after parsing and print the AST")
	rootCmd.Flags().Bool("dump-pp", false, "stop after preprocessing and print the expanded source")
	rootCmd.Flags().Bool("no-sema", false, "skip semantic analysis")
	rootCmd.Flags().Bool("no-consteval", false, "skip the ConstEval pass (static_assert/if-const)")
	rootCmd.Flags().Bool("compat-preprocessor", false, "permit function-like macros and ##/# in macro bodies")
	rootCmd.Flags().Bool("freestanding", false, "warn on calls into the hosted/stdlib call surface")
	rootCmd.Flags().StringArrayP("include", "I", nil, "add a header search directory")
	rootCmd.Flags().StringArrayP("define", "D", nil, "define a preprocessor macro, NAME[=VALUE]")
	rootCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
