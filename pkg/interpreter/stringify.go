package interpreter

import (
	"math"
	"strconv"

	"code/interpreter-go/pkg/runtime"
)

// valueToString renders a value for DISPLAY and concatenation. Booleans
// print as TRUE/FALSE and integral floats keep a trailing ".0" so the
// FLOAT-ness of a value stays visible in output.
func valueToString(value runtime.Value) string {
	switch v := value.(type) {
	case runtime.IntValue:
		return strconv.FormatInt(int64(v.Val), 10)
	case runtime.FloatValue:
		f64 := float64(v.Val)
		if f64 == math.Trunc(f64) && !math.IsInf(f64, 0) {
			return strconv.FormatFloat(f64, 'f', 1, 32)
		}
		return strconv.FormatFloat(f64, 'f', -1, 32)
	case runtime.CharValue:
		return string(v.Val)
	case runtime.BoolValue:
		if v.Val {
			return "TRUE"
		}
		return "FALSE"
	case runtime.StringValue:
		return v.Val
	default:
		return ""
	}
}
