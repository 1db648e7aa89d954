package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"code/interpreter-go/pkg/ast"
	"code/interpreter-go/pkg/runtime"
)

// EvaluationError is a fatal runtime failure: type mismatch, undefined
// variable, invalid operands, division by zero, overflow, or bad input.
type EvaluationError struct {
	Line int
	Msg  string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("runtime error at line %d: %s", e.Line, e.Msg)
}

func errAt(line int, format string, args ...any) error {
	return &EvaluationError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// signal is the structured control-flow result a statement hands back up the
// walk. BREAK and CONTINUE unwind nested blocks through ordinary returns;
// they are consumed by the innermost enclosing WHILE.
type signal int

const (
	sigNone signal = iota
	sigBreak
	sigContinue
)

// Interpreter walks a Program tree against a single flat execution context.
// It is single-threaded and owns its context exclusively for the run.
type Interpreter struct {
	env *runtime.Environment
	out io.Writer
	in  *bufio.Reader
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects DISPLAY output (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithInput sets the SCAN line source (stdin by default).
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) { i.in = bufio.NewReader(r) }
}

// New returns an interpreter with a fresh execution context.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		env: runtime.NewEnvironment(),
		out: os.Stdout,
		in:  bufio.NewReader(os.Stdin),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Environment exposes the execution context (useful for tests).
func (i *Interpreter) Environment() *runtime.Environment { return i.env }

// Interpret executes the program's statements in order. Any error is fatal:
// output already written stays written, and nothing is rolled back.
func (i *Interpreter) Interpret(program *ast.Program) error {
	sig, err := i.execStatements(program.Body)
	if err != nil {
		return err
	}
	if sig != sigNone {
		// Unreachable when the tree comes from the parser, which rejects
		// BREAK/CONTINUE outside loops.
		return errAt(program.Line(), "control signal escaped the program body")
	}
	return nil
}

func (i *Interpreter) execStatements(stmts []ast.Statement) (signal, error) {
	for _, stmt := range stmts {
		sig, err := i.execStatement(stmt)
		if err != nil {
			return sigNone, err
		}
		if sig != sigNone {
			return sig, nil
		}
	}
	return sigNone, nil
}
