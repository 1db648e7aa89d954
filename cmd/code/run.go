package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"code/interpreter-go/pkg/interpreter"
	"code/interpreter-go/pkg/lexer"
	"code/interpreter-go/pkg/parser"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a .code source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
			return err
		}
		if err := runSource(string(src)); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return err
		}
		return nil
	},
}

// runSource executes a program against the process stdin and stdout.
func runSource(source string) error {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return err
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		return err
	}
	return interpreter.New().Interpret(program)
}
