package parser

import (
	"code/interpreter-go/pkg/ast"
	"code/interpreter-go/pkg/lexer"
)

// Parser consumes a token sequence with one token of lookahead and builds a
// Program tree. Static rules a pure grammar cannot express (declaration
// phases, redeclaration, declared-before-use, reserved words, loop-only
// BREAK/CONTINUE) are enforced here rather than deferred to evaluation.
type Parser struct {
	tokens []lexer.Token
	pos    int

	declared       map[string]ast.PrimitiveType
	loopDepth      int
	conditionDepth int
	displayDepth   int
}

// Parse validates the program envelope and builds the statement tree.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	p := &Parser{tokens: tokens, declared: make(map[string]ast.PrimitiveType)}
	return p.parseProgram()
}

// ─── token basics ───

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) previous() lexer.Token { return p.tokens[p.pos-1] }

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(tt lexer.TokenType) bool { return p.peek().Type == tt }

func (p *Parser) match(tts ...lexer.TokenType) bool {
	for _, tt := range tts {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	got := p.peek()
	if got.Type == lexer.EOF {
		return lexer.Token{}, errAt(got.Line, "expected %s, reached end of input", what)
	}
	return lexer.Token{}, errAt(got.Line, "expected %s, got '%s'", what, got.Text)
}

// expectIdentifier consumes an identifier, distinguishing reserved-word
// misuse from a plain missing name.
func (p *Parser) expectIdentifier(context string) (lexer.Token, error) {
	tok := p.peek()
	if tok.Type == lexer.IDENTIFIER {
		return p.advance(), nil
	}
	if lexer.IsReservedWord(tok.Text) {
		return lexer.Token{}, errAt(tok.Line, "reserved keyword '%s' cannot be used as a variable name", tok.Text)
	}
	return lexer.Token{}, errAt(tok.Line, "expected a variable name %s, got '%s'", context, tok.Text)
}

func (p *Parser) skipNewlines() {
	for p.check(lexer.NEXTLINE) {
		p.advance()
	}
}

// ─── program structure ───

// parseProgram checks the BEGIN CODE / END CODE envelope before descending:
// exactly one of each, in order, with nothing significant outside the span.
func (p *Parser) parseProgram() (*ast.Program, error) {
	beginIdx, endIdx := -1, -1
	for idx, tok := range p.tokens {
		switch tok.Type {
		case lexer.BEGINCODE:
			if beginIdx >= 0 {
				return nil, errAt(tok.Line, "duplicate BEGIN CODE marker")
			}
			beginIdx = idx
		case lexer.ENDCODE:
			if endIdx >= 0 {
				return nil, errAt(tok.Line, "duplicate END CODE marker")
			}
			endIdx = idx
		}
	}
	last := p.tokens[len(p.tokens)-1]
	if beginIdx < 0 {
		return nil, errAt(last.Line, "missing BEGIN CODE marker")
	}
	if endIdx < 0 {
		return nil, errAt(last.Line, "missing END CODE marker")
	}
	if endIdx < beginIdx {
		return nil, errAt(p.tokens[endIdx].Line, "END CODE appears before BEGIN CODE")
	}
	for _, tok := range p.tokens[:beginIdx] {
		if tok.Type != lexer.NEXTLINE {
			return nil, errAt(tok.Line, "unexpected token '%s' before BEGIN CODE", tok.Text)
		}
	}
	for _, tok := range p.tokens[endIdx+1:] {
		if tok.Type != lexer.NEXTLINE && tok.Type != lexer.EOF {
			return nil, errAt(tok.Line, "unexpected token '%s' after END CODE", tok.Text)
		}
	}

	p.pos = beginIdx
	begin := p.advance()
	body, err := p.parseBlock(lexer.ENDCODE, "END CODE")
	if err != nil {
		return nil, err
	}
	return ast.NewProgram(body, begin.Line), nil
}

// parseBlock parses statements up to the terminator, which it consumes.
// Declarations are only legal in the block's leading declaration phase.
func (p *Parser) parseBlock(end lexer.TokenType, endName string) ([]ast.Statement, error) {
	var body []ast.Statement
	declPhase := true
	for {
		p.skipNewlines()
		tok := p.peek()
		if tok.Type == end {
			p.advance()
			break
		}
		if tok.Type == lexer.EOF {
			return nil, errAt(tok.Line, "expected %s, reached end of input", endName)
		}
		stmt, err := p.parseStatement(declPhase)
		if err != nil {
			return nil, err
		}
		if _, isDecl := stmt.(*ast.Declaration); !isDecl {
			declPhase = false
		}
		body = append(body, stmt)
	}
	if len(body) == 0 {
		// The grammar still records something executable for an empty body.
		body = append(body, ast.NewEmptyStatement(p.previous().Line))
	}
	return body, nil
}
