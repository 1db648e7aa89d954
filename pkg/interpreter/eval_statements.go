package interpreter

import (
	"fmt"
	"strings"

	"code/interpreter-go/pkg/ast"
	"code/interpreter-go/pkg/runtime"
)

func (i *Interpreter) execStatement(stmt ast.Statement) (signal, error) {
	switch s := stmt.(type) {
	case *ast.Declaration:
		return sigNone, i.execDeclaration(s)
	case *ast.AssignmentStatement:
		_, err := i.assign(s.Target, s.Operator, s.Value, s.Line())
		return sigNone, err
	case *ast.PostIncrement:
		return sigNone, i.execStep(s.Target, 1, s.Line())
	case *ast.PostDecrement:
		return sigNone, i.execStep(s.Target, -1, s.Line())
	case *ast.IfStatement:
		return i.execIf(s)
	case *ast.WhileStatement:
		return sigNone, i.execWhile(s)
	case *ast.OutputStatement:
		return sigNone, i.execOutput(s)
	case *ast.InputStatement:
		return sigNone, i.execInput(s)
	case *ast.BreakStatement:
		return sigBreak, nil
	case *ast.ContinueStatement:
		return sigContinue, nil
	case *ast.EmptyStatement:
		return sigNone, nil
	default:
		return sigNone, errAt(stmt.Line(), "unsupported statement type: %s", stmt.NodeType())
	}
}

func (i *Interpreter) execDeclaration(decl *ast.Declaration) error {
	for _, v := range decl.Vars {
		value := zeroValue(decl.DeclaredType)
		if v.Initializer != nil {
			evaluated, err := i.evaluateExpression(v.Initializer)
			if err != nil {
				return err
			}
			value = evaluated
		}
		converted, err := convertValue(value, decl.DeclaredType)
		if err != nil {
			return errAt(decl.Line(), "type mismatch for variable '%s': %v", v.Name, err)
		}
		if i.env.IsDeclared(v.Name) {
			// The parser rejects redeclaration, so an existing binding means
			// this declaration sits in a loop body and is running again.
			// It re-initializes the variable each iteration.
			if err := i.env.Assign(v.Name, converted); err != nil {
				return errAt(decl.Line(), "%v", err)
			}
			continue
		}
		if err := i.env.Declare(v.Name, converted, decl.DeclaredType); err != nil {
			return errAt(decl.Line(), "%v", err)
		}
	}
	return nil
}

func zeroValue(t ast.PrimitiveType) runtime.Value {
	switch t {
	case ast.TypeInt:
		return runtime.IntValue{Val: 0}
	case ast.TypeFloat:
		return runtime.FloatValue{Val: 0}
	case ast.TypeChar:
		return runtime.CharValue{Val: 0}
	case ast.TypeBool:
		return runtime.BoolValue{Val: false}
	default:
		return runtime.StringValue{Val: ""}
	}
}

// assign implements both the statement and expression forms: compound
// operators read the current value first, the result is converted to the
// target's fixed declared type, and the stored value is returned.
func (i *Interpreter) assign(target *ast.Variable, operator string, valueExpr ast.Expression, line int) (runtime.Value, error) {
	value, err := i.evaluateExpression(valueExpr)
	if err != nil {
		return nil, err
	}
	if operator != "=" {
		current, _, err := i.env.Get(target.Name)
		if err != nil {
			return nil, errAt(line, "%v", err)
		}
		value, err = i.applyBinary(strings.TrimSuffix(operator, "="), current, value, line)
		if err != nil {
			return nil, err
		}
	}
	_, declaredType, err := i.env.Get(target.Name)
	if err != nil {
		return nil, errAt(line, "%v", err)
	}
	converted, err := convertValue(value, declaredType)
	if err != nil {
		return nil, errAt(line, "type mismatch for variable '%s': %v", target.Name, err)
	}
	if err := i.env.Assign(target.Name, converted); err != nil {
		return nil, errAt(line, "%v", err)
	}
	return converted, nil
}

// execStep is the standalone `x++` / `x--` statement. The target must hold
// an INT; the stepped value is stored with overflow checking.
func (i *Interpreter) execStep(target *ast.Variable, delta int32, line int) error {
	current, _, err := i.env.Get(target.Name)
	if err != nil {
		return errAt(line, "%v", err)
	}
	intVal, ok := current.(runtime.IntValue)
	if !ok {
		op := "'++'"
		if delta < 0 {
			op = "'--'"
		}
		return errAt(line, "%s requires an INT variable, '%s' holds %s", op, target.Name, current.Kind())
	}
	stepped, err := checkedAdd(intVal.Val, delta, line)
	if err != nil {
		return err
	}
	return i.env.Assign(target.Name, runtime.IntValue{Val: stepped})
}

func (i *Interpreter) execIf(stmt *ast.IfStatement) (signal, error) {
	cond, err := i.evaluateCondition(stmt.Condition)
	if err != nil {
		return sigNone, err
	}
	if cond {
		return i.execStatements(stmt.Then)
	}
	if stmt.Else != nil {
		return i.execStatements(stmt.Else)
	}
	return sigNone, nil
}

func (i *Interpreter) execWhile(stmt *ast.WhileStatement) error {
	for {
		cond, err := i.evaluateCondition(stmt.Condition)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		sig, err := i.execStatements(stmt.Body)
		if err != nil {
			return err
		}
		switch sig {
		case sigBreak:
			return nil
		case sigContinue:
			continue
		}
	}
}

func (i *Interpreter) evaluateCondition(expr ast.Expression) (bool, error) {
	val, err := i.evaluateExpression(expr)
	if err != nil {
		return false, err
	}
	boolVal, ok := val.(runtime.BoolValue)
	if !ok {
		return false, errAt(expr.Line(), "condition must evaluate to BOOL, got %s", val.Kind())
	}
	return boolVal.Val, nil
}

// execOutput writes each operand's string form in order, with no implicit
// separators or trailing newline.
func (i *Interpreter) execOutput(stmt *ast.OutputStatement) error {
	for _, operand := range stmt.Operands {
		val, err := i.evaluateExpression(operand)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(i.out, valueToString(val)); err != nil {
			return errAt(stmt.Line(), "output failed: %v", err)
		}
	}
	return nil
}

// execInput consumes one input line per target. The raw text is stored; the
// opportunistic coercions make it usable at its declared type later.
func (i *Interpreter) execInput(stmt *ast.InputStatement) error {
	for _, target := range stmt.Targets {
		line, err := i.readLine()
		if err != nil {
			return errAt(stmt.Line(), "no input available for variable '%s'", target.Name)
		}
		if line == "" {
			return errAt(stmt.Line(), "empty input for variable '%s'", target.Name)
		}
		if err := i.env.Assign(target.Name, runtime.StringValue{Val: line}); err != nil {
			return errAt(stmt.Line(), "%v", err)
		}
	}
	return nil
}

func (i *Interpreter) readLine() (string, error) {
	line, err := i.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
