package interpreter

import (
	"math"

	"code/interpreter-go/pkg/ast"
	"code/interpreter-go/pkg/lexer"
	"code/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return runtime.IntValue{Val: e.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: e.Value}, nil
	case *ast.CharLiteral:
		return runtime.CharValue{Val: e.Value}, nil
	case *ast.BoolLiteral:
		return runtime.BoolValue{Val: e.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: e.Value}, nil
	case *ast.Variable:
		val, _, err := i.env.Get(e.Name)
		if err != nil {
			if lexer.IsReservedWord(e.Name) {
				return nil, errAt(e.Line(), "invalid use of reserved keyword '%s'", e.Name)
			}
			return nil, errAt(e.Line(), "%v", err)
		}
		return val, nil
	case *ast.BinaryExpression:
		left, err := i.evaluateExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return i.applyBinary(e.Operator, left, right, e.Line())
	case *ast.LogicalExpression:
		return i.evaluateLogical(e)
	case *ast.UnaryExpression:
		return i.evaluateUnary(e)
	case *ast.AssignmentExpression:
		return i.assign(e.Target, e.Operator, e.Value, e.Line())
	case *ast.GroupingExpression:
		return i.evaluateExpression(e.Inner)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(e)
	default:
		return nil, errAt(expr.Line(), "unsupported expression type: %s", expr.NodeType())
	}
}

// applyBinary implements every non-logical binary operator. Concatenation
// accepts anything; the remaining operators normalize their operands first
// (string→number, int→float widening) and then require matching kinds.
func (i *Interpreter) applyBinary(op string, left, right runtime.Value, line int) (runtime.Value, error) {
	if op == "&" {
		return runtime.StringValue{Val: valueToString(left) + valueToString(right)}, nil
	}

	l, r := coerceOperands(left, right)

	if lf, ok := l.(runtime.FloatValue); ok {
		if rf, ok := r.(runtime.FloatValue); ok {
			return applyFloatOp(op, lf.Val, rf.Val, line)
		}
	}
	if li, ok := l.(runtime.IntValue); ok {
		if ri, ok := r.(runtime.IntValue); ok {
			return applyIntOp(op, li.Val, ri.Val, line)
		}
	}
	if op == "==" || op == "<>" {
		if eq, ok := equalSameKind(l, r); ok {
			if op == "<>" {
				eq = !eq
			}
			return runtime.BoolValue{Val: eq}, nil
		}
	}
	return nil, errAt(line, "invalid operands %s and %s for '%s'", left.Kind(), right.Kind(), op)
}

// coerceOperands applies the opportunistic conversions: textual operands are
// parsed to numbers when possible, then INT widens to FLOAT when mixed.
func coerceOperands(left, right runtime.Value) (runtime.Value, runtime.Value) {
	l := numericFromString(left)
	r := numericFromString(right)
	if lf, ok := l.(runtime.FloatValue); ok {
		if ri, ok := r.(runtime.IntValue); ok {
			return lf, runtime.FloatValue{Val: float32(ri.Val)}
		}
	}
	if li, ok := l.(runtime.IntValue); ok {
		if rf, ok := r.(runtime.FloatValue); ok {
			return runtime.FloatValue{Val: float32(li.Val)}, rf
		}
	}
	return l, r
}

func equalSameKind(l, r runtime.Value) (bool, bool) {
	switch lv := l.(type) {
	case runtime.CharValue:
		if rv, ok := r.(runtime.CharValue); ok {
			return lv.Val == rv.Val, true
		}
	case runtime.StringValue:
		if rv, ok := r.(runtime.StringValue); ok {
			return lv.Val == rv.Val, true
		}
	case runtime.BoolValue:
		if rv, ok := r.(runtime.BoolValue); ok {
			return lv.Val == rv.Val, true
		}
	}
	return false, false
}

func applyIntOp(op string, a, b int32, line int) (runtime.Value, error) {
	switch op {
	case "+":
		v, err := checkedAdd(a, b, line)
		return runtime.IntValue{Val: v}, err
	case "-":
		v64 := int64(a) - int64(b)
		if v64 < math.MinInt32 || v64 > math.MaxInt32 {
			return nil, errAt(line, "integer overflow")
		}
		return runtime.IntValue{Val: int32(v64)}, nil
	case "*":
		v64 := int64(a) * int64(b)
		if v64 < math.MinInt32 || v64 > math.MaxInt32 {
			return nil, errAt(line, "integer overflow")
		}
		return runtime.IntValue{Val: int32(v64)}, nil
	case "/":
		if b == 0 {
			return nil, errAt(line, "division by zero")
		}
		return runtime.IntValue{Val: a / b}, nil
	case "%":
		if b == 0 {
			return nil, errAt(line, "modulo by zero")
		}
		return runtime.IntValue{Val: a % b}, nil
	case ">":
		return runtime.BoolValue{Val: a > b}, nil
	case "<":
		return runtime.BoolValue{Val: a < b}, nil
	case ">=":
		return runtime.BoolValue{Val: a >= b}, nil
	case "<=":
		return runtime.BoolValue{Val: a <= b}, nil
	case "==":
		return runtime.BoolValue{Val: a == b}, nil
	case "<>":
		return runtime.BoolValue{Val: a != b}, nil
	default:
		return nil, errAt(line, "unsupported operator '%s'", op)
	}
}

func applyFloatOp(op string, a, b float32, line int) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.FloatValue{Val: a + b}, nil
	case "-":
		return runtime.FloatValue{Val: a - b}, nil
	case "*":
		return runtime.FloatValue{Val: a * b}, nil
	case "/":
		if b == 0 {
			return nil, errAt(line, "division by zero")
		}
		return runtime.FloatValue{Val: a / b}, nil
	case "%":
		if b == 0 {
			return nil, errAt(line, "modulo by zero")
		}
		return runtime.FloatValue{Val: float32(math.Mod(float64(a), float64(b)))}, nil
	case ">":
		return runtime.BoolValue{Val: a > b}, nil
	case "<":
		return runtime.BoolValue{Val: a < b}, nil
	case ">=":
		return runtime.BoolValue{Val: a >= b}, nil
	case "<=":
		return runtime.BoolValue{Val: a <= b}, nil
	case "==":
		return runtime.BoolValue{Val: a == b}, nil
	case "<>":
		return runtime.BoolValue{Val: a != b}, nil
	default:
		return nil, errAt(line, "unsupported operator '%s'", op)
	}
}

// evaluateLogical evaluates both sides; AND/OR never short-circuit and both
// operands must already be BOOL.
func (i *Interpreter) evaluateLogical(e *ast.LogicalExpression) (runtime.Value, error) {
	left, err := i.evaluateExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(e.Right)
	if err != nil {
		return nil, err
	}
	lb, lok := left.(runtime.BoolValue)
	rb, rok := right.(runtime.BoolValue)
	if !lok || !rok {
		return nil, errAt(e.Line(), "invalid operands %s and %s for '%s'", left.Kind(), right.Kind(), e.Operator)
	}
	if e.Operator == "AND" {
		return runtime.BoolValue{Val: lb.Val && rb.Val}, nil
	}
	return runtime.BoolValue{Val: lb.Val || rb.Val}, nil
}

func (i *Interpreter) evaluateUnary(e *ast.UnaryExpression) (runtime.Value, error) {
	val, err := i.evaluateExpression(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "+", "-":
		num := numericFromString(val)
		switch n := num.(type) {
		case runtime.IntValue:
			if e.Operator == "+" {
				return n, nil
			}
			if n.Val == math.MinInt32 {
				return nil, errAt(e.Line(), "integer overflow")
			}
			return runtime.IntValue{Val: -n.Val}, nil
		case runtime.FloatValue:
			if e.Operator == "+" {
				return n, nil
			}
			return runtime.FloatValue{Val: -n.Val}, nil
		}
		return nil, errAt(e.Line(), "unary '%s' requires a numeric operand, got %s", e.Operator, val.Kind())
	case "NOT":
		b := boolFromString(val)
		boolVal, ok := b.(runtime.BoolValue)
		if !ok {
			return nil, errAt(e.Line(), "NOT requires a BOOL operand, got %s", val.Kind())
		}
		return runtime.BoolValue{Val: !boolVal.Val}, nil
	case "++", "--":
		// Expression-position step: computes the stepped value without
		// touching the variable. Only the statement form stores.
		intVal, ok := val.(runtime.IntValue)
		if !ok {
			return nil, errAt(e.Line(), "'%s' requires an INT operand, got %s", e.Operator, val.Kind())
		}
		delta := int32(1)
		if e.Operator == "--" {
			delta = -1
		}
		stepped, err := checkedAdd(intVal.Val, delta, e.Line())
		if err != nil {
			return nil, err
		}
		return runtime.IntValue{Val: stepped}, nil
	default:
		return nil, errAt(e.Line(), "unsupported unary operator '%s'", e.Operator)
	}
}

func (i *Interpreter) evaluateFunctionCall(e *ast.FunctionCall) (runtime.Value, error) {
	arg, err := i.evaluateExpression(e.Argument)
	if err != nil {
		return nil, err
	}
	switch e.Builtin {
	case ast.BuiltinCeil, ast.BuiltinFloor:
		num := numericFromString(arg)
		var f float64
		switch n := num.(type) {
		case runtime.IntValue:
			f = float64(n.Val)
		case runtime.FloatValue:
			f = float64(n.Val)
		default:
			return nil, errAt(e.Line(), "%s requires a numeric argument, got %s", e.Builtin, arg.Kind())
		}
		if e.Builtin == ast.BuiltinCeil {
			return runtime.FloatValue{Val: float32(math.Ceil(f))}, nil
		}
		return runtime.FloatValue{Val: float32(math.Floor(f))}, nil
	case ast.BuiltinToString:
		return runtime.StringValue{Val: valueToString(arg)}, nil
	case ast.BuiltinToFloat:
		num := numericFromString(arg)
		switch n := num.(type) {
		case runtime.IntValue:
			return runtime.FloatValue{Val: float32(n.Val)}, nil
		case runtime.FloatValue:
			return n, nil
		}
		return nil, errAt(e.Line(), "cannot convert %s to FLOAT", arg.Kind())
	case ast.BuiltinToInt:
		return toInt(arg, e.Line())
	case ast.BuiltinType:
		return runtime.StringValue{Val: arg.Kind().String()}, nil
	default:
		return nil, errAt(e.Line(), "unknown built-in function")
	}
}

// toInt truncates floats, parses numeric strings, and maps characters: a
// digit becomes its numeric value, anything else its code point.
func toInt(arg runtime.Value, line int) (runtime.Value, error) {
	switch v := arg.(type) {
	case runtime.IntValue:
		return v, nil
	case runtime.FloatValue:
		return truncToInt(v.Val, line)
	case runtime.CharValue:
		if v.Val >= '0' && v.Val <= '9' {
			return runtime.IntValue{Val: int32(v.Val - '0')}, nil
		}
		return runtime.IntValue{Val: int32(v.Val)}, nil
	case runtime.StringValue:
		num := numericFromString(v)
		switch n := num.(type) {
		case runtime.IntValue:
			return n, nil
		case runtime.FloatValue:
			return truncToInt(n.Val, line)
		}
		return nil, errAt(line, "cannot convert \"%s\" to INT", v.Val)
	default:
		return nil, errAt(line, "cannot convert %s to INT", arg.Kind())
	}
}

func truncToInt(f float32, line int) (runtime.Value, error) {
	t := math.Trunc(float64(f))
	if t < math.MinInt32 || t > math.MaxInt32 {
		return nil, errAt(line, "integer overflow")
	}
	return runtime.IntValue{Val: int32(t)}, nil
}

func checkedAdd(a, b int32, line int) (int32, error) {
	v := int64(a) + int64(b)
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errAt(line, "integer overflow")
	}
	return int32(v), nil
}
