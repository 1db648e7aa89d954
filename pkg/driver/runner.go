package driver

import (
	"bytes"
	"strings"

	"code/interpreter-go/pkg/interpreter"
	"code/interpreter-go/pkg/lexer"
	"code/interpreter-go/pkg/parser"
)

// Result records the outcome of one executed case.
type Result struct {
	Case   *Case
	Passed bool
	Output string
	Err    error
	Reason string
}

// RunSuite executes every case in the suite and compares what each program
// printed, or the error it failed with, against the case's expectation.
func RunSuite(suite *Suite) []Result {
	results := make([]Result, 0, len(suite.Cases))
	for _, c := range suite.Cases {
		results = append(results, runCase(suite, c))
	}
	return results
}

func runCase(suite *Suite, c *Case) Result {
	result := Result{Case: c}

	source, err := suite.ResolveSource(c)
	if err != nil {
		result.Err = err
		result.Reason = err.Error()
		return result
	}

	output, err := Execute(source, c.Stdin)
	result.Output = output
	result.Err = err

	if c.WantError != "" {
		switch {
		case err == nil:
			result.Reason = "expected error " + quote(c.WantError) + " but program succeeded"
		case !strings.Contains(err.Error(), c.WantError):
			result.Reason = "expected error containing " + quote(c.WantError) + ", got " + quote(err.Error())
		default:
			result.Passed = true
		}
		return result
	}

	switch {
	case err != nil:
		result.Reason = "unexpected error: " + err.Error()
	case output != c.WantOutput:
		result.Reason = "expected output " + quote(c.WantOutput) + ", got " + quote(output)
	default:
		result.Passed = true
	}
	return result
}

// Execute runs a program from source text with the given stdin, returning
// everything it printed.
func Execute(source, stdin string) (string, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return "", err
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	interp := interpreter.New(
		interpreter.WithOutput(&out),
		interpreter.WithInput(strings.NewReader(stdin)),
	)
	err = interp.Interpret(program)
	return out.String(), err
}

func quote(s string) string {
	return "\"" + s + "\""
}
