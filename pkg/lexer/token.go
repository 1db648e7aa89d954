package lexer

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	UNKNOWN

	// Block markers (composed from BEGIN/END plus the block word)
	BEGINCODE
	ENDCODE
	BEGINIF
	ENDIF
	BEGINWHILE
	ENDWHILE

	// Declarable types
	INT
	FLOAT
	CHAR
	BOOL
	STRING

	// Literals & identifiers
	IDENTIFIER
	INTLITERAL
	FLOATLITERAL
	CHARLITERAL
	BOOLLITERAL
	STRINGLITERAL
	ESCAPELITERAL // bracket-escaped display text

	// Arithmetic
	ADD
	SUB
	MUL
	DIV
	MOD

	// Compound assignment & step operators
	ASSIGNMENT
	ADDASSIGN
	SUBASSIGN
	MULASSIGN
	DIVASSIGN
	MODASSIGN
	INCREMENT
	DECREMENT

	// Relational & logical
	EQUAL
	NOTEQUAL
	LESSTHAN
	GREATERTHAN
	LTEQ
	GTEQ
	AND
	OR
	NOT

	// Delimiters
	CONCAT
	NEXTLINE
	LPAREN
	RPAREN
	COMMA
	COLON

	// Keywords
	IF
	ELSE
	WHILE
	DISPLAY
	SCAN
	BREAK
	CONTINUE

	// Built-in functions & constants
	PI
	CEIL
	FLOOR
	TOINT
	TOFLOAT
	TOSTRING
	TYPE

	// Reserved block words outside a valid composition are still keywords.
	CODE
)

// Token is a lexical token tagged with the 1-based source line it started on.
type Token struct {
	Type TokenType
	Text string
	Line int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Type, t.Text, t.Line)
}

// keywords maps reserved identifier spellings to their token types. BEGIN and
// END are absent: the scanner composes them with the following block word.
var keywords = map[string]TokenType{
	"INT":      INT,
	"FLOAT":    FLOAT,
	"CHAR":     CHAR,
	"BOOL":     BOOL,
	"STRING":   STRING,
	"IF":       IF,
	"ELSE":     ELSE,
	"WHILE":    WHILE,
	"DISPLAY":  DISPLAY,
	"SCAN":     SCAN,
	"BREAK":    BREAK,
	"CONTINUE": CONTINUE,
	"AND":      AND,
	"OR":       OR,
	"NOT":      NOT,
	"PI":       PI,
	"CEIL":     CEIL,
	"FLOOR":    FLOOR,
	"TOINT":    TOINT,
	"TOFLOAT":  TOFLOAT,
	"TOSTRING": TOSTRING,
	"TYPE":     TYPE,
	"CODE":     CODE,
}

// IsReservedWord reports whether the spelling is reserved and therefore
// unusable as a variable name.
func IsReservedWord(name string) bool {
	if name == "BEGIN" || name == "END" {
		return true
	}
	_, ok := keywords[name]
	return ok
}

var tokenNames = map[TokenType]string{
	EOF:           "EOF",
	UNKNOWN:       "UNKNOWN",
	BEGINCODE:     "BEGIN CODE",
	ENDCODE:       "END CODE",
	BEGINIF:       "BEGIN IF",
	ENDIF:         "END IF",
	BEGINWHILE:    "BEGIN WHILE",
	ENDWHILE:      "END WHILE",
	INT:           "INT",
	FLOAT:         "FLOAT",
	CHAR:          "CHAR",
	BOOL:          "BOOL",
	STRING:        "STRING",
	IDENTIFIER:    "IDENTIFIER",
	INTLITERAL:    "INT LITERAL",
	FLOATLITERAL:  "FLOAT LITERAL",
	CHARLITERAL:   "CHAR LITERAL",
	BOOLLITERAL:   "BOOL LITERAL",
	STRINGLITERAL: "STRING LITERAL",
	ESCAPELITERAL: "ESCAPE LITERAL",
	ADD:           "+",
	SUB:           "-",
	MUL:           "*",
	DIV:           "/",
	MOD:           "%",
	ASSIGNMENT:    "=",
	ADDASSIGN:     "+=",
	SUBASSIGN:     "-=",
	MULASSIGN:     "*=",
	DIVASSIGN:     "/=",
	MODASSIGN:     "%=",
	INCREMENT:     "++",
	DECREMENT:     "--",
	EQUAL:         "==",
	NOTEQUAL:      "<>",
	LESSTHAN:      "<",
	GREATERTHAN:   ">",
	LTEQ:          "<=",
	GTEQ:          ">=",
	AND:           "AND",
	OR:            "OR",
	NOT:           "NOT",
	CONCAT:        "&",
	NEXTLINE:      "NEXTLINE",
	LPAREN:        "(",
	RPAREN:        ")",
	COMMA:         ",",
	COLON:         ":",
	IF:            "IF",
	ELSE:          "ELSE",
	WHILE:         "WHILE",
	DISPLAY:       "DISPLAY",
	SCAN:          "SCAN",
	BREAK:         "BREAK",
	CONTINUE:      "CONTINUE",
	PI:            "PI",
	CEIL:          "CEIL",
	FLOOR:         "FLOOR",
	TOINT:         "TOINT",
	TOFLOAT:       "TOFLOAT",
	TOSTRING:      "TOSTRING",
	TYPE:          "TYPE",
	CODE:          "CODE",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token_type_%d", int(t))
}
