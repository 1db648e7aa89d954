package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"code/interpreter-go/pkg/ast"
	"code/interpreter-go/pkg/runtime"
)

// convertValue adapts a value to a variable's declared type, applying the
// storage conversions: widening INT to FLOAT, narrowing integral FLOAT to
// INT, and parsing text captured by SCAN. Incompatible values error.
func convertValue(value runtime.Value, target ast.PrimitiveType) (runtime.Value, error) {
	switch target {
	case ast.TypeInt:
		switch v := value.(type) {
		case runtime.IntValue:
			return v, nil
		case runtime.FloatValue:
			f64 := float64(v.Val)
			if f64 != math.Trunc(f64) {
				return nil, errConvert(value, target)
			}
			if f64 < math.MinInt32 || f64 > math.MaxInt32 {
				return nil, errConvert(value, target)
			}
			return runtime.IntValue{Val: int32(f64)}, nil
		case runtime.StringValue:
			n, err := strconv.ParseInt(strings.TrimSpace(v.Val), 10, 32)
			if err != nil {
				return nil, errConvert(value, target)
			}
			return runtime.IntValue{Val: int32(n)}, nil
		}
	case ast.TypeFloat:
		switch v := value.(type) {
		case runtime.FloatValue:
			return v, nil
		case runtime.IntValue:
			return runtime.FloatValue{Val: float32(v.Val)}, nil
		case runtime.StringValue:
			f, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 32)
			if err != nil {
				return nil, errConvert(value, target)
			}
			return runtime.FloatValue{Val: float32(f)}, nil
		}
	case ast.TypeChar:
		switch v := value.(type) {
		case runtime.CharValue:
			return v, nil
		case runtime.StringValue:
			runes := []rune(v.Val)
			if len(runes) == 1 {
				return runtime.CharValue{Val: runes[0]}, nil
			}
		}
	case ast.TypeBool:
		switch v := value.(type) {
		case runtime.BoolValue:
			return v, nil
		case runtime.StringValue:
			switch v.Val {
			case "TRUE":
				return runtime.BoolValue{Val: true}, nil
			case "FALSE":
				return runtime.BoolValue{Val: false}, nil
			}
		}
	case ast.TypeString:
		return runtime.StringValue{Val: valueToString(value)}, nil
	}
	return nil, errConvert(value, target)
}

func errConvert(value runtime.Value, target ast.PrimitiveType) error {
	return fmt.Errorf("cannot store %s value into %s variable", value.Kind(), target)
}

// numericFromString parses textual values into numbers when possible. Other
// values pass through unchanged.
func numericFromString(value runtime.Value) runtime.Value {
	s, ok := value.(runtime.StringValue)
	if !ok {
		return value
	}
	text := strings.TrimSpace(s.Val)
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		return runtime.IntValue{Val: int32(n)}
	}
	if f, err := strconv.ParseFloat(text, 32); err == nil {
		return runtime.FloatValue{Val: float32(f)}
	}
	return value
}

// boolFromString maps the textual "TRUE"/"FALSE" forms to BOOL. Other values
// pass through unchanged.
func boolFromString(value runtime.Value) runtime.Value {
	s, ok := value.(runtime.StringValue)
	if !ok {
		return value
	}
	switch strings.TrimSpace(s.Val) {
	case "TRUE":
		return runtime.BoolValue{Val: true}
	case "FALSE":
		return runtime.BoolValue{Val: false}
	}
	return value
}
