package parser

import (
	"code/interpreter-go/pkg/ast"
	"code/interpreter-go/pkg/lexer"
)

func (p *Parser) parseStatement(declPhase bool) (ast.Statement, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.INT, lexer.FLOAT, lexer.CHAR, lexer.BOOL, lexer.STRING:
		if !declPhase {
			return nil, errAt(tok.Line, "declarations must precede all executable statements")
		}
		return p.parseDeclaration()
	case lexer.IDENTIFIER:
		return p.parseIdentifierStatement()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.DISPLAY:
		return p.parseDisplay()
	case lexer.SCAN:
		return p.parseScan()
	case lexer.BREAK:
		p.advance()
		if p.loopDepth == 0 {
			return nil, errAt(tok.Line, "BREAK is only allowed inside a WHILE loop")
		}
		return ast.NewBreakStatement(tok.Line), nil
	case lexer.CONTINUE:
		p.advance()
		if p.loopDepth == 0 {
			return nil, errAt(tok.Line, "CONTINUE is only allowed inside a WHILE loop")
		}
		return ast.NewContinueStatement(tok.Line), nil
	case lexer.UNKNOWN:
		return nil, errAt(tok.Line, "unrecognized character '%s'", tok.Text)
	default:
		if lexer.IsReservedWord(tok.Text) {
			return nil, errAt(tok.Line, "unexpected keyword '%s'", tok.Text)
		}
		return nil, errAt(tok.Line, "expected a statement, got '%s'", tok.Text)
	}
}

func declaredTypeFor(tt lexer.TokenType) ast.PrimitiveType {
	switch tt {
	case lexer.INT:
		return ast.TypeInt
	case lexer.FLOAT:
		return ast.TypeFloat
	case lexer.CHAR:
		return ast.TypeChar
	case lexer.BOOL:
		return ast.TypeBool
	default:
		return ast.TypeString
	}
}

// parseDeclaration handles `TYPE name [= expr] (, name [= expr])*`.
func (p *Parser) parseDeclaration() (ast.Statement, error) {
	typeTok := p.advance()
	declaredType := declaredTypeFor(typeTok.Type)

	var vars []*ast.VariableDeclarator
	for {
		nameTok, err := p.expectIdentifier("in declaration")
		if err != nil {
			return nil, err
		}
		if _, exists := p.declared[nameTok.Text]; exists {
			return nil, errAt(nameTok.Line, "variable '%s' is already declared", nameTok.Text)
		}

		var init ast.Expression
		if p.match(lexer.ASSIGNMENT) {
			init, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := checkLiteralForType(init, declaredType, nameTok.Text); err != nil {
				return nil, err
			}
		}
		p.declared[nameTok.Text] = declaredType
		vars = append(vars, &ast.VariableDeclarator{Name: nameTok.Text, Initializer: init})

		if !p.match(lexer.COMMA) {
			break
		}
	}
	return ast.NewDeclaration(declaredType, vars, typeTok.Line), nil
}

// checkLiteralForType rejects literal forms that can never satisfy the
// declared type: BOOL takes only the quoted TRUE/FALSE forms, and CHAR never
// takes a double-quoted string.
func checkLiteralForType(value ast.Expression, declaredType ast.PrimitiveType, name string) error {
	lit, ok := value.(*ast.StringLiteral)
	if !ok {
		return nil
	}
	switch declaredType {
	case ast.TypeBool:
		return errAt(lit.Line(), "BOOL variable '%s' only accepts \"TRUE\" or \"FALSE\", got \"%s\"", name, lit.Value)
	case ast.TypeChar:
		return errAt(lit.Line(), "CHAR variable '%s' cannot be assigned a string literal", name)
	}
	return nil
}

// parseIdentifierStatement handles assignments and standalone `x++` / `x--`.
func (p *Parser) parseIdentifierStatement() (ast.Statement, error) {
	nameTok := p.advance()
	target, err := p.assignTarget(nameTok)
	if err != nil {
		return nil, err
	}
	next := p.peek()
	switch next.Type {
	case lexer.INCREMENT:
		p.advance()
		return ast.NewPostIncrement(target, nameTok.Line), nil
	case lexer.DECREMENT:
		p.advance()
		return ast.NewPostDecrement(target, nameTok.Line), nil
	case lexer.ASSIGNMENT, lexer.ADDASSIGN, lexer.SUBASSIGN, lexer.MULASSIGN, lexer.DIVASSIGN, lexer.MODASSIGN:
		op := assignOperatorText(p.advance().Type)
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := checkLiteralForType(value, p.declared[target.Name], target.Name); err != nil {
			return nil, err
		}
		return ast.NewAssignmentStatement(target, op, value, nameTok.Line), nil
	default:
		return nil, errAt(next.Line, "expected an assignment operator after '%s', got '%s'", nameTok.Text, next.Text)
	}
}

func (p *Parser) assignTarget(nameTok lexer.Token) (*ast.Variable, error) {
	if _, ok := p.declared[nameTok.Text]; !ok {
		return nil, errAt(nameTok.Line, "undeclared variable '%s'", nameTok.Text)
	}
	return ast.NewVariable(nameTok.Text, nameTok.Line), nil
}

func assignOperatorText(tt lexer.TokenType) string {
	switch tt {
	case lexer.ADDASSIGN:
		return "+="
	case lexer.SUBASSIGN:
		return "-="
	case lexer.MULASSIGN:
		return "*="
	case lexer.DIVASSIGN:
		return "/="
	case lexer.MODASSIGN:
		return "%="
	default:
		return "="
	}
}

// parseCondition parses the parenthesized condition of IF/WHILE. Plain `=`
// assignment is rejected anywhere inside; the compound forms stay legal.
func (p *Parser) parseCondition() (ast.Expression, error) {
	if _, err := p.expect(lexer.LPAREN, "'(' to open the condition"); err != nil {
		return nil, err
	}
	p.conditionDepth++
	cond, err := p.parseExpression()
	p.conditionDepth--
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')' to close the condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	ifTok := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(lexer.BEGINIF, "BEGIN IF"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock(lexer.ENDIF, "END IF")
	if err != nil {
		return nil, err
	}

	var elseBranch []ast.Statement
	mark := p.pos
	p.skipNewlines()
	if p.match(lexer.ELSE) {
		if p.check(lexer.IF) {
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elseBranch = []ast.Statement{nested}
		} else {
			p.skipNewlines()
			if _, err := p.expect(lexer.BEGINIF, "BEGIN IF after ELSE"); err != nil {
				return nil, err
			}
			elseBranch, err = p.parseBlock(lexer.ENDIF, "END IF")
			if err != nil {
				return nil, err
			}
		}
	} else {
		p.pos = mark
	}
	return ast.NewIfStatement(cond, then, elseBranch, ifTok.Line), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	whileTok := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(lexer.BEGINWHILE, "BEGIN WHILE"); err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.parseBlock(lexer.ENDWHILE, "END WHILE")
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(cond, body, whileTok.Line), nil
}

// parseDisplay reads `DISPLAY: expr (& expr | $)*`. The lexer has already
// elided `&` next to `$`, so the operand list alternates expressions and
// newline literals; two expressions may not abut without a join.
func (p *Parser) parseDisplay() (ast.Statement, error) {
	displayTok := p.advance()
	if _, err := p.expect(lexer.COLON, "':' after DISPLAY"); err != nil {
		return nil, err
	}

	var operands []ast.Expression
	lastWasExpr := false
	for {
		tok := p.peek()
		if tok.Type == lexer.NEXTLINE && tok.Text == "$" {
			p.advance()
			operands = append(operands, ast.NewStringLiteral("\n", tok.Line))
			lastWasExpr = false
			continue
		}
		if tok.Type == lexer.NEXTLINE || tok.Type == lexer.ENDCODE || tok.Type == lexer.EOF {
			break
		}
		if lastWasExpr {
			return nil, errAt(tok.Line, "DISPLAY expressions must be joined by '&'")
		}
		p.displayDepth++
		expr, err := p.parseExpression()
		p.displayDepth--
		if err != nil {
			return nil, err
		}
		if err := p.checkDisplayOperand(expr); err != nil {
			return nil, err
		}
		operands = append(operands, expr)
		lastWasExpr = true
	}
	if len(operands) == 0 {
		return nil, errAt(displayTok.Line, "DISPLAY requires at least one expression")
	}
	return ast.NewOutputStatement(operands, displayTok.Line), nil
}

// checkDisplayOperand verifies every variable referenced by a DISPLAY
// operand has been declared. The check is uniform across operands.
func (p *Parser) checkDisplayOperand(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Variable:
		if _, ok := p.declared[e.Name]; !ok {
			return errAt(e.Line(), "undeclared variable '%s'", e.Name)
		}
	case *ast.BinaryExpression:
		if err := p.checkDisplayOperand(e.Left); err != nil {
			return err
		}
		return p.checkDisplayOperand(e.Right)
	case *ast.LogicalExpression:
		if err := p.checkDisplayOperand(e.Left); err != nil {
			return err
		}
		return p.checkDisplayOperand(e.Right)
	case *ast.UnaryExpression:
		return p.checkDisplayOperand(e.Operand)
	case *ast.GroupingExpression:
		return p.checkDisplayOperand(e.Inner)
	case *ast.FunctionCall:
		return p.checkDisplayOperand(e.Argument)
	case *ast.AssignmentExpression:
		return p.checkDisplayOperand(e.Value)
	}
	return nil
}

func (p *Parser) parseScan() (ast.Statement, error) {
	scanTok := p.advance()
	if _, err := p.expect(lexer.COLON, "':' after SCAN"); err != nil {
		return nil, err
	}
	var targets []*ast.Variable
	for {
		nameTok, err := p.expectIdentifier("in SCAN")
		if err != nil {
			return nil, err
		}
		target, err := p.assignTarget(nameTok)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
		if !p.match(lexer.COMMA) {
			break
		}
	}
	return ast.NewInputStatement(targets, scanTok.Line), nil
}
