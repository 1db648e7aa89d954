package parser

import (
	"math"
	"strings"
	"testing"

	"code/interpreter-go/pkg/ast"
	"code/interpreter-go/pkg/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	program, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return program
}

func parseError(t *testing.T, src string) error {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	_, err = Parse(tokens)
	if err == nil {
		t.Fatalf("expected parse error for %q", src)
	}
	return err
}

func expectParseError(t *testing.T, src, fragment string) {
	t.Helper()
	err := parseError(t, src)
	if !strings.Contains(err.Error(), fragment) {
		t.Fatalf("error %q does not mention %q", err.Error(), fragment)
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected a ParseError, got %T", err)
	}
}

func TestEnvelopeErrors(t *testing.T) {
	expectParseError(t, "INT x = 1\nEND CODE\n", "missing BEGIN CODE marker")
	expectParseError(t, "BEGIN CODE\nINT x = 1\n", "missing END CODE marker")
	expectParseError(t, "BEGIN CODE\nBEGIN CODE\nEND CODE\n", "duplicate BEGIN CODE marker")
	expectParseError(t, "BEGIN CODE\nEND CODE\nEND CODE\n", "duplicate END CODE marker")
	expectParseError(t, "END CODE\nBEGIN CODE\n", "END CODE appears before BEGIN CODE")
	expectParseError(t, "INT x\nBEGIN CODE\nEND CODE\n", "before BEGIN CODE")
	expectParseError(t, "BEGIN CODE\nEND CODE\nINT x\n", "after END CODE")
}

func TestEmptyProgram(t *testing.T) {
	program := parseSource(t, "BEGIN CODE\nEND CODE\n")
	if len(program.Body) != 1 {
		t.Fatalf("expected one placeholder statement, got %d", len(program.Body))
	}
	if _, ok := program.Body[0].(*ast.EmptyStatement); !ok {
		t.Fatalf("expected EmptyStatement, got %s", program.Body[0].NodeType())
	}
}

func TestDeclarationList(t *testing.T) {
	program := parseSource(t, "BEGIN CODE\nINT xyz, abc=100\nEND CODE\n")
	decl, ok := program.Body[0].(*ast.Declaration)
	if !ok {
		t.Fatalf("expected Declaration, got %s", program.Body[0].NodeType())
	}
	if decl.DeclaredType != ast.TypeInt {
		t.Fatalf("declared type: got %s", decl.DeclaredType)
	}
	if len(decl.Vars) != 2 || decl.Vars[0].Name != "xyz" || decl.Vars[1].Name != "abc" {
		t.Fatalf("declarators: got %+v", decl.Vars)
	}
	if decl.Vars[0].Initializer != nil {
		t.Fatal("xyz should have no initializer")
	}
	if decl.Vars[1].Initializer == nil {
		t.Fatal("abc should have an initializer")
	}
}

func TestRedeclarationRejected(t *testing.T) {
	expectParseError(t, "BEGIN CODE\nINT x = 1\nINT x = 2\nEND CODE\n", "already declared")
	expectParseError(t, "BEGIN CODE\nINT x = 1\nFLOAT x\nEND CODE\n", "already declared")
}

func TestDeclarationsMustLead(t *testing.T) {
	expectParseError(t, "BEGIN CODE\nINT x = 1\nx = 2\nINT y\nEND CODE\n", "declarations must precede")
}

func TestDeclarationsResumeInNestedBlocks(t *testing.T) {
	parseSource(t, `BEGIN CODE
INT x = 1
x = 2
IF (x == 2)
BEGIN IF
INT y = 3
DISPLAY: y
END IF
END CODE
`)
}

func TestReservedWordAsName(t *testing.T) {
	expectParseError(t, "BEGIN CODE\nINT WHILE = 1\nEND CODE\n", "reserved keyword")
	expectParseError(t, "BEGIN CODE\nINT CODE = 1\nEND CODE\n", "reserved keyword")
}

func TestBoolLiteralValidation(t *testing.T) {
	expectParseError(t, `BEGIN CODE`+"\n"+`BOOL ok = "yes"`+"\n"+`END CODE`+"\n", `only accepts "TRUE" or "FALSE"`)
	parseSource(t, "BEGIN CODE\nBOOL ok = \"TRUE\"\nEND CODE\n")
}

func TestCharRejectsStringLiteral(t *testing.T) {
	expectParseError(t, `BEGIN CODE`+"\n"+`CHAR c = "ab"`+"\n"+`END CODE`+"\n", "cannot be assigned a string literal")
}

func TestUndeclaredAssignmentTarget(t *testing.T) {
	expectParseError(t, "BEGIN CODE\nx = 2\nEND CODE\n", "undeclared variable 'x'")
}

func TestUndeclaredDisplayOperand(t *testing.T) {
	expectParseError(t, "BEGIN CODE\nDISPLAY: ghost\nEND CODE\n", "undeclared variable 'ghost'")
	expectParseError(t, "BEGIN CODE\nINT x = 1\nDISPLAY: x + ghost\nEND CODE\n", "undeclared variable 'ghost'")
	expectParseError(t, "BEGIN CODE\nINT x = 1\nDISPLAY: TOSTRING(ghost)\nEND CODE\n", "undeclared variable 'ghost'")
}

func TestDisplayRequiresJoins(t *testing.T) {
	expectParseError(t, "BEGIN CODE\nINT x = 1\nDISPLAY: x x\nEND CODE\n", "joined by '&'")
	expectParseError(t, "BEGIN CODE\nDISPLAY:\nEND CODE\n", "at least one expression")
}

func TestConcatOutsideDisplay(t *testing.T) {
	expectParseError(t, `BEGIN CODE`+"\n"+`INT x`+"\n"+`x = 1 & 2`+"\n"+`END CODE`+"\n", "'&' is only valid in a DISPLAY")
}

func TestBreakContinueOnlyInLoops(t *testing.T) {
	expectParseError(t, "BEGIN CODE\nBREAK\nEND CODE\n", "BREAK is only allowed inside a WHILE loop")
	expectParseError(t, "BEGIN CODE\nCONTINUE\nEND CODE\n", "CONTINUE is only allowed inside a WHILE loop")
	expectParseError(t, `BEGIN CODE
INT x = 1
IF (x == 1)
BEGIN IF
BREAK
END IF
END CODE
`, "BREAK is only allowed inside a WHILE loop")
	parseSource(t, `BEGIN CODE
INT x = 1
WHILE (x > 0)
BEGIN WHILE
IF (x == 1)
BEGIN IF
BREAK
END IF
x--
END WHILE
END CODE
`)
}

func TestConditionRejectsPlainAssignment(t *testing.T) {
	expectParseError(t, `BEGIN CODE
INT x = 1
IF (x = 2)
BEGIN IF
DISPLAY: x
END IF
END CODE
`, "assignment is not allowed inside a condition")
}

func TestElseIfChainNests(t *testing.T) {
	program := parseSource(t, `BEGIN CODE
INT x = 1
IF (x == 0)
BEGIN IF
DISPLAY: "a"
END IF
ELSE IF (x == 1)
BEGIN IF
DISPLAY: "b"
END IF
ELSE
BEGIN IF
DISPLAY: "c"
END IF
END CODE
`)
	outer, ok := program.Body[1].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement, got %s", program.Body[1].NodeType())
	}
	if len(outer.Else) != 1 {
		t.Fatalf("expected one nested else statement, got %d", len(outer.Else))
	}
	nested, ok := outer.Else[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected nested IfStatement, got %s", outer.Else[0].NodeType())
	}
	if nested.Else == nil {
		t.Fatal("nested if should carry the final else branch")
	}
}

func TestChainedAssignmentExpression(t *testing.T) {
	program := parseSource(t, "BEGIN CODE\nINT x, y\nx = y = 4\nEND CODE\n")
	stmt, ok := program.Body[1].(*ast.AssignmentStatement)
	if !ok {
		t.Fatalf("expected AssignmentStatement, got %s", program.Body[1].NodeType())
	}
	if _, ok := stmt.Value.(*ast.AssignmentExpression); !ok {
		t.Fatalf("expected nested AssignmentExpression, got %s", stmt.Value.NodeType())
	}
}

func TestPostfixStepStatements(t *testing.T) {
	program := parseSource(t, "BEGIN CODE\nINT i = 0\ni++\ni--\nEND CODE\n")
	if _, ok := program.Body[1].(*ast.PostIncrement); !ok {
		t.Fatalf("expected PostIncrement, got %s", program.Body[1].NodeType())
	}
	if _, ok := program.Body[2].(*ast.PostDecrement); !ok {
		t.Fatalf("expected PostDecrement, got %s", program.Body[2].NodeType())
	}
}

func TestBuiltinCalls(t *testing.T) {
	parseSource(t, "BEGIN CODE\nFLOAT f = CEIL(2.1)\nEND CODE\n")
	expectParseError(t, "BEGIN CODE\nFLOAT f = CEIL(2.1, 3)\nEND CODE\n", "exactly one argument")
	expectParseError(t, "BEGIN CODE\nINT x = foo(1)\nEND CODE\n", "unknown function 'foo'")
}

func TestIntLiteralRange(t *testing.T) {
	parseSource(t, "BEGIN CODE\nINT max = 2147483647\nEND CODE\n")
	expectParseError(t, "BEGIN CODE\nINT big = 2147483648\nEND CODE\n", "out of range")
}

func TestNegativeIntLiteralFoldsMinus(t *testing.T) {
	program := parseSource(t, "BEGIN CODE\nINT min = -2147483648\nEND CODE\n")
	decl, ok := program.Body[0].(*ast.Declaration)
	if !ok {
		t.Fatalf("expected Declaration, got %s", program.Body[0].NodeType())
	}
	lit, ok := decl.Vars[0].Initializer.(*ast.IntLiteral)
	if !ok {
		t.Fatalf("expected IntLiteral initializer, got %T", decl.Vars[0].Initializer)
	}
	if lit.Value != math.MinInt32 {
		t.Fatalf("literal value: got %d, want %d", lit.Value, math.MinInt32)
	}
	expectParseError(t, "BEGIN CODE\nINT low = -2147483649\nEND CODE\n", "out of range")
	expectParseError(t, "BEGIN CODE\nINT low = -99999999999999999999\nEND CODE\n", "out of range")
}

func TestScanTargets(t *testing.T) {
	program := parseSource(t, "BEGIN CODE\nINT a, b\nSCAN: a, b\nEND CODE\n")
	scan, ok := program.Body[1].(*ast.InputStatement)
	if !ok {
		t.Fatalf("expected InputStatement, got %s", program.Body[1].NodeType())
	}
	if len(scan.Targets) != 2 || scan.Targets[0].Name != "a" || scan.Targets[1].Name != "b" {
		t.Fatalf("scan targets: got %+v", scan.Targets)
	}
	expectParseError(t, "BEGIN CODE\nSCAN: nope\nEND CODE\n", "undeclared variable 'nope'")
}

func TestDollarBecomesNewlineOperand(t *testing.T) {
	program := parseSource(t, "BEGIN CODE\nDISPLAY: \"a\" & $ & \"b\"\nEND CODE\n")
	out, ok := program.Body[0].(*ast.OutputStatement)
	if !ok {
		t.Fatalf("expected OutputStatement, got %s", program.Body[0].NodeType())
	}
	if len(out.Operands) != 3 {
		t.Fatalf("expected 3 operands, got %d", len(out.Operands))
	}
	mid, ok := out.Operands[1].(*ast.StringLiteral)
	if !ok || mid.Value != "\n" {
		t.Fatalf("middle operand should be a newline literal, got %#v", out.Operands[1])
	}
}
