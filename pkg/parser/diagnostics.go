package parser

import "fmt"

// ParseError is a fatal grammar or structural violation. The parser stops at
// the first one; there is no recovery or multi-error reporting.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
}

func errAt(line int, format string, args ...any) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
