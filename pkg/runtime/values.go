package runtime

// Kind identifies the runtime value category. The names double as the
// strings reported by the TYPE built-in.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindChar
	KindBool
	KindString
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "INT"
	case KindFloat:
		return "FLOAT"
	case KindChar:
		return "CHAR"
	case KindBool:
		return "BOOL"
	case KindString:
		return "STRING"
	case KindNull:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// Value is the shared behaviour for all runtime values. The variant set is
// closed: the language has exactly four declarable scalar types plus strings.
type Value interface {
	Kind() Kind
}

type IntValue struct {
	Val int32
}

func (v IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float32
}

func (v FloatValue) Kind() Kind { return KindFloat }

type CharValue struct {
	Val rune
}

func (v CharValue) Kind() Kind { return KindChar }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// NullValue completes the TYPE vocabulary. Declared variables start at
// their type's zero value, so no expression ever produces it.
type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }
