package parser

import (
	"math"
	"strconv"

	"code/interpreter-go/pkg/ast"
	"code/interpreter-go/pkg/lexer"
)

// Expression grammar, lowest precedence first:
//
//	assignment   = or ( ("=" | "+=" | "-=" | "*=" | "/=" | "%=") assignment )?
//	or           = and ( OR and )*
//	and          = equality ( AND equality )*
//	equality     = relational ( ("==" | "<>") relational )*
//	relational   = additive ( (">" | "<" | ">=" | "<=") additive )*
//	additive     = multiplicative ( ("+" | "-" | "&") multiplicative )*
//	multiplicative = unary ( ("*" | "/" | "%") unary )*
//	unary        = ("+" | "-" | "NOT") unary | primary
//	primary      = literal | PI | builtin "(" expression ")" | identifier ("++" | "--")?
//	             | "(" expression ")"
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	switch p.peek().Type {
	case lexer.ASSIGNMENT, lexer.ADDASSIGN, lexer.SUBASSIGN, lexer.MULASSIGN, lexer.DIVASSIGN, lexer.MODASSIGN:
		opTok := p.advance()
		if p.conditionDepth > 0 && opTok.Type == lexer.ASSIGNMENT {
			return nil, errAt(opTok.Line, "assignment is not allowed inside a condition")
		}
		target, ok := expr.(*ast.Variable)
		if !ok {
			return nil, errAt(opTok.Line, "invalid assignment target")
		}
		declaredType, declared := p.declared[target.Name]
		if !declared {
			return nil, errAt(target.Line(), "undeclared variable '%s'", target.Name)
		}
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if err := checkLiteralForType(value, declaredType, target.Name); err != nil {
			return nil, err
		}
		return ast.NewAssignmentExpression(target, assignOperatorText(opTok.Type), value, target.Line()), nil
	}
	return expr, nil
}

func (p *Parser) parseOr() (ast.Expression, error) {
	expr, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.OR) {
		line := p.previous().Line
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogicalExpression("OR", expr, right, line)
	}
	return expr, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.AND) {
		line := p.previous().Line
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogicalExpression("AND", expr, right, line)
	}
	return expr, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	expr, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.EQUAL, lexer.NOTEQUAL) {
		op := p.previous()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op.Text, expr, right, op.Line)
	}
	return expr, nil
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	expr, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.GREATERTHAN, lexer.LESSTHAN, lexer.GTEQ, lexer.LTEQ) {
		op := p.previous()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op.Text, expr, right, op.Line)
	}
	return expr, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	expr, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.ADD, lexer.SUB, lexer.CONCAT) {
		op := p.previous()
		if op.Type == lexer.CONCAT && p.displayDepth == 0 {
			return nil, errAt(op.Line, "'&' is only valid in a DISPLAY expression list")
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op.Text, expr, right, op.Line)
	}
	return expr, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.MUL, lexer.DIV, lexer.MOD) {
		op := p.previous()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op.Text, expr, right, op.Line)
	}
	return expr, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.match(lexer.ADD, lexer.SUB, lexer.NOT) {
		op := p.previous()
		if op.Type == lexer.SUB && p.check(lexer.INTLITERAL) {
			return p.parseNegativeIntLiteral(op)
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(op.Text, operand, op.Line), nil
	}
	return p.parsePrimary()
}

// parseNegativeIntLiteral folds a leading minus into the literal itself so
// the magnitude can reach one past MaxInt32. The magnitude is parsed at 64
// bits and range-checked after negation.
func (p *Parser) parseNegativeIntLiteral(op lexer.Token) (ast.Expression, error) {
	lit := p.advance()
	n, err := strconv.ParseInt(lit.Text, 10, 64)
	if err != nil || -n < math.MinInt32 {
		return nil, errAt(lit.Line, "integer literal '-%s' is out of range", lit.Text)
	}
	return ast.NewIntLiteral(int32(-n), op.Line), nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.INTLITERAL:
		p.advance()
		n, err := strconv.ParseInt(tok.Text, 10, 32)
		if err != nil {
			return nil, errAt(tok.Line, "integer literal '%s' is out of range", tok.Text)
		}
		return ast.NewIntLiteral(int32(n), tok.Line), nil
	case lexer.FLOATLITERAL:
		p.advance()
		f, err := strconv.ParseFloat(tok.Text, 32)
		if err != nil {
			return nil, errAt(tok.Line, "invalid float literal '%s'", tok.Text)
		}
		return ast.NewFloatLiteral(float32(f), tok.Line), nil
	case lexer.CHARLITERAL:
		p.advance()
		return ast.NewCharLiteral([]rune(tok.Text)[0], tok.Line), nil
	case lexer.BOOLLITERAL:
		p.advance()
		return ast.NewBoolLiteral(tok.Text == "TRUE", tok.Line), nil
	case lexer.STRINGLITERAL, lexer.ESCAPELITERAL:
		p.advance()
		return ast.NewStringLiteral(tok.Text, tok.Line), nil
	case lexer.PI:
		p.advance()
		return ast.NewFloatLiteral(float32(math.Pi), tok.Line), nil
	case lexer.CEIL, lexer.FLOOR, lexer.TOINT, lexer.TOFLOAT, lexer.TOSTRING, lexer.TYPE:
		return p.parseFunctionCall()
	case lexer.IDENTIFIER:
		p.advance()
		if p.check(lexer.LPAREN) {
			return nil, errAt(tok.Line, "unknown function '%s'", tok.Text)
		}
		variable := ast.NewVariable(tok.Text, tok.Line)
		if p.match(lexer.INCREMENT) {
			return ast.NewUnaryExpression("++", variable, tok.Line), nil
		}
		if p.match(lexer.DECREMENT) {
			return ast.NewUnaryExpression("--", variable, tok.Line), nil
		}
		return variable, nil
	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return ast.NewGroupingExpression(inner, tok.Line), nil
	case lexer.UNKNOWN:
		return nil, errAt(tok.Line, "unrecognized character '%s'", tok.Text)
	case lexer.EOF:
		return nil, errAt(tok.Line, "expected an expression, reached end of input")
	default:
		if lexer.IsReservedWord(tok.Text) {
			return nil, errAt(tok.Line, "reserved keyword '%s' cannot be used in an expression", tok.Text)
		}
		return nil, errAt(tok.Line, "expected an expression, got '%s'", tok.Text)
	}
}

var builtinFuncs = map[lexer.TokenType]ast.BuiltinFunc{
	lexer.CEIL:     ast.BuiltinCeil,
	lexer.FLOOR:    ast.BuiltinFloor,
	lexer.TOINT:    ast.BuiltinToInt,
	lexer.TOFLOAT:  ast.BuiltinToFloat,
	lexer.TOSTRING: ast.BuiltinToString,
	lexer.TYPE:     ast.BuiltinType,
}

// parseFunctionCall reads a built-in invocation. Every built-in takes
// exactly one argument.
func (p *Parser) parseFunctionCall() (ast.Expression, error) {
	tok := p.advance()
	builtin := builtinFuncs[tok.Type]
	if _, err := p.expect(lexer.LPAREN, "'(' after "+tok.Text); err != nil {
		return nil, err
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.COMMA) {
		return nil, errAt(p.peek().Line, "%s takes exactly one argument", tok.Text)
	}
	if _, err := p.expect(lexer.RPAREN, "')' to close "+tok.Text); err != nil {
		return nil, err
	}
	return ast.NewFunctionCall(builtin, arg, tok.Line), nil
}
