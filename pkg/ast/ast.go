package ast

type NodeType string

const (
	NodeProgram              NodeType = "Program"
	NodeDeclaration          NodeType = "Declaration"
	NodeAssignmentStatement  NodeType = "AssignmentStatement"
	NodePostIncrement        NodeType = "PostIncrement"
	NodePostDecrement        NodeType = "PostDecrement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeWhileStatement       NodeType = "WhileStatement"
	NodeOutputStatement      NodeType = "OutputStatement"
	NodeInputStatement       NodeType = "InputStatement"
	NodeBreakStatement       NodeType = "BreakStatement"
	NodeContinueStatement    NodeType = "ContinueStatement"
	NodeEmptyStatement       NodeType = "EmptyStatement"
	NodeIntLiteral           NodeType = "IntLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeCharLiteral          NodeType = "CharLiteral"
	NodeBoolLiteral          NodeType = "BoolLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeVariable             NodeType = "Variable"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeLogicalExpression    NodeType = "LogicalExpression"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeAssignmentExpression NodeType = "AssignmentExpression"
	NodeGroupingExpression   NodeType = "GroupingExpression"
	NodeFunctionCall         NodeType = "FunctionCall"
)

// PrimitiveType is one of the declarable variable types.
type PrimitiveType int

const (
	TypeInt PrimitiveType = iota
	TypeFloat
	TypeChar
	TypeBool
	TypeString
)

func (t PrimitiveType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeChar:
		return "CHAR"
	case TypeBool:
		return "BOOL"
	case TypeString:
		return "STRING"
	default:
		return "UNKNOWN"
	}
}

// Node is the shared behaviour for all AST nodes. Every node records the
// 1-based source line it started on for diagnostics.
type Node interface {
	NodeType() NodeType
	Line() int
	isNode()
}

type nodeImpl struct {
	Type       NodeType
	SourceLine int
}

func newNodeImpl(kind NodeType, line int) nodeImpl {
	return nodeImpl{Type: kind, SourceLine: line}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Line() int          { return n.SourceLine }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Program

type Program struct {
	nodeImpl

	Body []Statement
}

func NewProgram(body []Statement, line int) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram, line), Body: body}
}

// Statements

// VariableDeclarator is one `name [= initializer]` entry of a declaration.
type VariableDeclarator struct {
	Name        string
	Initializer Expression // nil means the type's zero value
}

type Declaration struct {
	nodeImpl
	statementMarker

	DeclaredType PrimitiveType
	Vars         []*VariableDeclarator
}

func NewDeclaration(declaredType PrimitiveType, vars []*VariableDeclarator, line int) *Declaration {
	return &Declaration{nodeImpl: newNodeImpl(NodeDeclaration, line), DeclaredType: declaredType, Vars: vars}
}

type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Target   *Variable
	Operator string // "=", "+=", "-=", "*=", "/=", "%="
	Value    Expression
}

func NewAssignmentStatement(target *Variable, operator string, value Expression, line int) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement, line), Target: target, Operator: operator, Value: value}
}

type PostIncrement struct {
	nodeImpl
	statementMarker

	Target *Variable
}

func NewPostIncrement(target *Variable, line int) *PostIncrement {
	return &PostIncrement{nodeImpl: newNodeImpl(NodePostIncrement, line), Target: target}
}

type PostDecrement struct {
	nodeImpl
	statementMarker

	Target *Variable
}

func NewPostDecrement(target *Variable, line int) *PostDecrement {
	return &PostDecrement{nodeImpl: newNodeImpl(NodePostDecrement, line), Target: target}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression
	Then      []Statement
	// Else holds either the ELSE block's statements or a single nested
	// IfStatement for an ELSE IF chain. Nil when there is no ELSE.
	Else []Statement
}

func NewIfStatement(condition Expression, then, elseBranch []Statement, line int) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement, line), Condition: condition, Then: then, Else: elseBranch}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression
	Body      []Statement
}

func NewWhileStatement(condition Expression, body []Statement, line int) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement, line), Condition: condition, Body: body}
}

type OutputStatement struct {
	nodeImpl
	statementMarker

	Operands []Expression
}

func NewOutputStatement(operands []Expression, line int) *OutputStatement {
	return &OutputStatement{nodeImpl: newNodeImpl(NodeOutputStatement, line), Operands: operands}
}

type InputStatement struct {
	nodeImpl
	statementMarker

	Targets []*Variable
}

func NewInputStatement(targets []*Variable, line int) *InputStatement {
	return &InputStatement{nodeImpl: newNodeImpl(NodeInputStatement, line), Targets: targets}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement(line int) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement, line)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement(line int) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement, line)}
}

type EmptyStatement struct {
	nodeImpl
	statementMarker
}

func NewEmptyStatement(line int) *EmptyStatement {
	return &EmptyStatement{nodeImpl: newNodeImpl(NodeEmptyStatement, line)}
}

// Literals

type IntLiteral struct {
	nodeImpl
	expressionMarker

	Value int32
}

func NewIntLiteral(value int32, line int) *IntLiteral {
	return &IntLiteral{nodeImpl: newNodeImpl(NodeIntLiteral, line), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Value float32
}

func NewFloatLiteral(value float32, line int) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral, line), Value: value}
}

type CharLiteral struct {
	nodeImpl
	expressionMarker

	Value rune
}

func NewCharLiteral(value rune, line int) *CharLiteral {
	return &CharLiteral{nodeImpl: newNodeImpl(NodeCharLiteral, line), Value: value}
}

type BoolLiteral struct {
	nodeImpl
	expressionMarker

	Value bool
}

func NewBoolLiteral(value bool, line int) *BoolLiteral {
	return &BoolLiteral{nodeImpl: newNodeImpl(NodeBoolLiteral, line), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string
}

func NewStringLiteral(value string, line int) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral, line), Value: value}
}

// Expressions

type Variable struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewVariable(name string, line int) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable, line), Name: name}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string // "+", "-", "*", "/", "%", "&", ">", "<", ">=", "<=", "==", "<>"
	Left     Expression
	Right    Expression
}

func NewBinaryExpression(operator string, left, right Expression, line int) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression, line), Operator: operator, Left: left, Right: right}
}

type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator string // "AND", "OR"
	Left     Expression
	Right    Expression
}

func NewLogicalExpression(operator string, left, right Expression, line int) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression, line), Operator: operator, Left: left, Right: right}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string // "+", "-", "NOT", "++", "--"
	Operand  Expression
}

func NewUnaryExpression(operator string, operand Expression, line int) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression, line), Operator: operator, Operand: operand}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Target   *Variable
	Operator string
	Value    Expression
}

func NewAssignmentExpression(target *Variable, operator string, value Expression, line int) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression, line), Target: target, Operator: operator, Value: value}
}

type GroupingExpression struct {
	nodeImpl
	expressionMarker

	Inner Expression
}

func NewGroupingExpression(inner Expression, line int) *GroupingExpression {
	return &GroupingExpression{nodeImpl: newNodeImpl(NodeGroupingExpression, line), Inner: inner}
}

// BuiltinFunc identifies one of the language's built-in functions.
type BuiltinFunc int

const (
	BuiltinCeil BuiltinFunc = iota
	BuiltinFloor
	BuiltinToInt
	BuiltinToFloat
	BuiltinToString
	BuiltinType
)

func (f BuiltinFunc) String() string {
	switch f {
	case BuiltinCeil:
		return "CEIL"
	case BuiltinFloor:
		return "FLOOR"
	case BuiltinToInt:
		return "TOINT"
	case BuiltinToFloat:
		return "TOFLOAT"
	case BuiltinToString:
		return "TOSTRING"
	case BuiltinType:
		return "TYPE"
	default:
		return "UNKNOWN"
	}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Builtin  BuiltinFunc
	Argument Expression
}

func NewFunctionCall(builtin BuiltinFunc, argument Expression, line int) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall, line), Builtin: builtin, Argument: argument}
}
