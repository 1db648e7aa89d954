package lexer

import (
	"fmt"
	"strings"
)

// LexError is a fatal tokenization failure (malformed literal or escape).
type LexError struct {
	Line int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at line %d: %s", e.Line, e.Msg)
}

// Scanner walks a source string left to right in a single pass. Position and
// line state live on the struct, so independent scans never share state.
type Scanner struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	tokens []Token

	tokStartLine int
}

// NewScanner creates a scanner for the given source.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Tokenize scans source into its full token sequence.
func Tokenize(source string) ([]Token, error) {
	return NewScanner(source).Scan()
}

func (s *Scanner) isAtEnd() bool { return s.cur >= len(s.src) }

func (s *Scanner) peek() (byte, bool) {
	if s.isAtEnd() {
		return 0, false
	}
	return s.src[s.cur], true
}

func (s *Scanner) peekNext() (byte, bool) {
	if s.cur+1 >= len(s.src) {
		return 0, false
	}
	return s.src[s.cur+1], true
}

func (s *Scanner) advance() (byte, bool) {
	if s.isAtEnd() {
		return 0, false
	}
	ch := s.src[s.cur]
	s.cur++
	if ch == '\n' {
		s.line++
	}
	return ch, true
}

func (s *Scanner) match(expected byte) bool {
	if ch, ok := s.peek(); ok && ch == expected {
		s.cur++
		return true
	}
	return false
}

func (s *Scanner) addToken(tt TokenType) {
	s.addTokenText(tt, s.src[s.start:s.cur])
}

func (s *Scanner) addTokenText(tt TokenType, text string) {
	s.tokens = append(s.tokens, Token{Type: tt, Text: text, Line: s.tokStartLine})
}

func (s *Scanner) previousToken() *Token {
	if len(s.tokens) == 0 {
		return nil
	}
	return &s.tokens[len(s.tokens)-1]
}

func (s *Scanner) err(msg string) error {
	return &LexError{Line: s.tokStartLine, Msg: msg}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// Scan tokenizes the whole source. Malformed literals abort with a LexError;
// unrecognized characters become UNKNOWN tokens for the parser to report with
// context.
func (s *Scanner) Scan() ([]Token, error) {
	for !s.isAtEnd() {
		s.start = s.cur
		s.tokStartLine = s.line
		ch, _ := s.advance()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			// insignificant
		case ch == '\n':
			s.addTokenText(NEXTLINE, "\n")
		case ch == '$':
			s.addTokenText(NEXTLINE, "$")
		case ch == '#':
			s.skipComment()
		case ch == '&':
			s.scanConcat()
		case ch == '"':
			if err := s.scanString(); err != nil {
				return nil, err
			}
		case ch == '\'':
			if err := s.scanChar(); err != nil {
				return nil, err
			}
		case ch == '[':
			if err := s.scanEscape(); err != nil {
				return nil, err
			}
		case isDigit(ch):
			s.scanNumber(false)
		case ch == '.':
			if next, ok := s.peek(); ok && isDigit(next) {
				s.scanNumber(true)
			} else {
				s.addToken(UNKNOWN)
			}
		case isAlpha(ch):
			if err := s.scanWord(); err != nil {
				return nil, err
			}
		default:
			if err := s.scanOperator(ch); err != nil {
				return nil, err
			}
		}
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Text: "", Line: s.line})
	return s.tokens, nil
}

// skipComment consumes through end of line. The comment still terminates the
// statement it trails, so one NEXTLINE is emitted in its place.
func (s *Scanner) skipComment() {
	for {
		ch, ok := s.peek()
		if !ok || ch == '\n' {
			break
		}
		s.advance()
	}
	s.advance() // consume the newline, if any
	s.addTokenText(NEXTLINE, "\n")
}

// scanConcat emits CONCAT unless the `&` sits next to a `$` line separator,
// in which case it is elided so `a & $ & b` carries no stray concatenations.
func (s *Scanner) scanConcat() {
	if prev := s.previousToken(); prev != nil && prev.Type == NEXTLINE && prev.Text == "$" {
		return
	}
	j := s.cur
	for j < len(s.src) && (s.src[j] == ' ' || s.src[j] == '\t') {
		j++
	}
	if j < len(s.src) && s.src[j] == '$' {
		return
	}
	s.addTokenText(CONCAT, "&")
}

func (s *Scanner) scanString() error {
	var sb strings.Builder
	for {
		ch, ok := s.advance()
		if !ok {
			return s.err("unterminated string literal")
		}
		if ch == '"' {
			break
		}
		sb.WriteByte(ch)
	}
	text := sb.String()
	if text == "TRUE" || text == "FALSE" {
		s.addTokenText(BOOLLITERAL, text)
		return nil
	}
	s.addTokenText(STRINGLITERAL, text)
	return nil
}

func (s *Scanner) scanChar() error {
	var sb strings.Builder
	for {
		ch, ok := s.advance()
		if !ok {
			return s.err("unterminated character literal")
		}
		if ch == '\'' {
			break
		}
		sb.WriteByte(ch)
	}
	text := sb.String()
	if len([]rune(text)) != 1 {
		return s.err(fmt.Sprintf("character literal must hold exactly one character, got %q", text))
	}
	s.addTokenText(CHARLITERAL, text)
	return nil
}

// scanEscape captures bracketed display text. A `]` only closes the escape
// when no further `]` appears before the next `[`, which lets a literal `]`
// live inside the escape: `[[]` is "[" and `[]]` is "]".
func (s *Scanner) scanEscape() error {
	var sb strings.Builder
	for {
		ch, ok := s.advance()
		if !ok {
			return s.err("unterminated escape sequence")
		}
		if ch == ']' && !s.closerFollowsBeforeOpen() {
			break
		}
		sb.WriteByte(ch)
	}
	s.addTokenText(ESCAPELITERAL, sb.String())
	return nil
}

// closerFollowsBeforeOpen reports whether another `]` occurs after the
// current position but before the next `[`.
func (s *Scanner) closerFollowsBeforeOpen() bool {
	for j := s.cur; j < len(s.src); j++ {
		switch s.src[j] {
		case '[':
			return false
		case ']':
			return true
		}
	}
	return false
}

// scanNumber consumes digits with at most one decimal point. A second `.`
// ends the number early, so adjacent numeric literals stay legal.
func (s *Scanner) scanNumber(sawDot bool) {
	for {
		ch, ok := s.peek()
		if !ok {
			break
		}
		if isDigit(ch) {
			s.advance()
			continue
		}
		if ch == '.' && !sawDot {
			if next, ok := s.peekNext(); ok && isDigit(next) {
				sawDot = true
				s.advance()
				continue
			}
		}
		break
	}
	if sawDot {
		s.addToken(FLOATLITERAL)
		return
	}
	s.addToken(INTLITERAL)
}

func (s *Scanner) scanWord() error {
	for {
		ch, ok := s.peek()
		if !ok || !isAlphaNum(ch) {
			break
		}
		s.advance()
	}
	word := s.src[s.start:s.cur]
	if word == "BEGIN" || word == "END" {
		return s.scanBlockKeyword(word)
	}
	if tt, ok := keywords[word]; ok {
		s.addTokenText(tt, word)
		return nil
	}
	s.addTokenText(IDENTIFIER, word)
	return nil
}

// scanBlockKeyword composes BEGIN/END with the following block word.
func (s *Scanner) scanBlockKeyword(lead string) error {
	for {
		ch, ok := s.peek()
		if !ok || (ch != ' ' && ch != '\t') {
			break
		}
		s.advance()
	}
	wordStart := s.cur
	for {
		ch, ok := s.peek()
		if !ok || !isAlphaNum(ch) {
			break
		}
		s.advance()
	}
	word := s.src[wordStart:s.cur]
	if word == "" {
		return s.err(fmt.Sprintf("expected a block keyword after %s", lead))
	}
	var tt TokenType
	switch word {
	case "CODE":
		tt = BEGINCODE
	case "IF":
		tt = BEGINIF
	case "WHILE":
		tt = BEGINWHILE
	default:
		return s.err(fmt.Sprintf("invalid block keyword '%s %s'", lead, word))
	}
	if lead == "END" {
		switch tt {
		case BEGINCODE:
			tt = ENDCODE
		case BEGINIF:
			tt = ENDIF
		case BEGINWHILE:
			tt = ENDWHILE
		}
	}
	s.addTokenText(tt, lead+" "+word)
	return nil
}

func (s *Scanner) scanOperator(ch byte) error {
	switch ch {
	case '(':
		s.addToken(LPAREN)
	case ')':
		s.addToken(RPAREN)
	case ',':
		s.addToken(COMMA)
	case ':':
		s.addToken(COLON)
	case '=':
		if s.match('=') {
			s.addToken(EQUAL)
		} else {
			s.addToken(ASSIGNMENT)
		}
	case '+':
		switch {
		case s.match('+'):
			s.addToken(INCREMENT)
		case s.match('='):
			s.addToken(ADDASSIGN)
		default:
			s.addToken(ADD)
		}
	case '-':
		switch {
		case s.match('-'):
			s.addToken(DECREMENT)
		case s.match('='):
			s.addToken(SUBASSIGN)
		default:
			s.addToken(SUB)
		}
	case '*':
		if s.match('=') {
			s.addToken(MULASSIGN)
		} else {
			s.addToken(MUL)
		}
	case '/':
		if s.match('=') {
			s.addToken(DIVASSIGN)
		} else {
			s.addToken(DIV)
		}
	case '%':
		if s.match('=') {
			s.addToken(MODASSIGN)
		} else {
			s.addToken(MOD)
		}
	case '<':
		switch {
		case s.match('='):
			s.addToken(LTEQ)
		case s.match('>'):
			s.addToken(NOTEQUAL)
		default:
			s.addToken(LESSTHAN)
		}
	case '>':
		if s.match('=') {
			s.addToken(GTEQ)
		} else {
			s.addToken(GREATERTHAN)
		}
	default:
		s.addToken(UNKNOWN)
	}
	return nil
}
