package main

import (
	"os"

	"github.com/spf13/cobra"
)

const appName = "code"

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "CODE interpreter",
	Long: `Interpreter for the CODE programming language.

Commands:
  run   Run a .code source file
  repl  Start an interactive session
  test  Run suite files of programs with expected output
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(runCmd, replCmd, testCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
