package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegadro/LPP/ast"
	"github.com/pegadro/LPP/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	require.NotNil(t, program)
	require.Empty(t, p.Errors(), "unexpected parse errors: %v", p.Errors())
	return program
}

func TestLetStatements(t *testing.T) {
	program := parseProgram(t, `variable x = 5;
variable y = 10;
variable punto = 838383;`)

	require.Len(t, program.Statements, 3)

	names := []string{"x", "y", "punto"}
	for i, name := range names {
		stmt, ok := program.Statements[i].(*ast.LetStatement)
		require.True(t, ok, "statement %d is not a LetStatement", i)
		assert.Equal(t, "variable", stmt.TokenLiteral())
		assert.Equal(t, name, stmt.Name.Value)
	}
}

func TestLetStatementMissingAssign_ProducesOneError(t *testing.T) {
	p := New(lexer.New(`variable x 5;`))
	program := p.ParseProgram()

	require.NotNil(t, program)
	assert.Len(t, p.Errors(), 1)
}

func TestReturnStatements(t *testing.T) {
	program := parseProgram(t, `regresa 5;
regresa 10;
regresa 993322;`)

	require.Len(t, program.Statements, 3)

	for _, s := range program.Statements {
		stmt, ok := s.(*ast.ReturnStatement)
		require.True(t, ok)
		assert.Equal(t, "regresa", stmt.TokenLiteral())
	}
}

func TestIdentifierExpression(t *testing.T) {
	program := parseProgram(t, `foobar;`)

	require.Len(t, program.Statements, 1)
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	ident, ok := stmt.Expression.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "foobar", ident.Value)
}

func TestIntegerLiteralExpression(t *testing.T) {
	program := parseProgram(t, `5;`)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	lit, ok := stmt.Expression.(*ast.Integer)
	require.True(t, ok)
	assert.EqualValues(t, 5, lit.Value)
	assert.Equal(t, "5", lit.TokenLiteral())
}

func TestStringLiteralExpression(t *testing.T) {
	program := parseProgram(t, `"hola mundo!";`)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	lit, ok := stmt.Expression.(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "hola mundo!", lit.Value)
}

func TestPrefixExpressions(t *testing.T) {
	tests := []struct {
		input    string
		operator string
	}{
		{"!5;", "!"},
		{"-15;", "-"},
		{"!verdadero;", "!"},
		{"!falso;", "!"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		stmt := program.Statements[0].(*ast.ExpressionStatement)
		exp, ok := stmt.Expression.(*ast.Prefix)
		require.True(t, ok)
		assert.Equal(t, tt.operator, exp.Operator)
	}
}

func TestInfixExpressions(t *testing.T) {
	tests := []struct {
		input    string
		operator string
	}{
		{"5 + 5;", "+"},
		{"5 - 5;", "-"},
		{"5 * 5;", "*"},
		{"5 / 5;", "/"},
		{"5 > 5;", ">"},
		{"5 < 5;", "<"},
		{"5 == 5;", "=="},
		{"5 != 5;", "!="},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		stmt := program.Statements[0].(*ast.ExpressionStatement)
		exp, ok := stmt.Expression.(*ast.Infix)
		require.True(t, ok)
		assert.Equal(t, tt.operator, exp.Operator)
	}
}

func TestOperatorPrecedenceRendering(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b;", "((-a) * b)"},
		{"!-a;", "(!(-a))"},
		{"a + b + c;", "((a + b) + c)"},
		{"a + b - c;", "((a + b) - c)"},
		{"a * b * c;", "((a * b) * c)"},
		{"a * b / c;", "((a * b) / c)"},
		{"a + b / c;", "(a + (b / c))"},
		{"a + b * c + d / e - f;", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5;", "(3 + 4)((-5) * 5)"},
		{"5 > 4 == 3 < 4;", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4;", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5;", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"1 + (2 + 3) + 4;", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2;", "((5 + 5) * 2)"},
		{"2 / (5 + 5);", "(2 / (5 + 5))"},
		{"-(5 + 5);", "(-(5 + 5))"},
		{"a + suma(b * c) + d;", "((a + suma((b * c))) + d)"},
		{"suma(a, b, 1, 2 * 3, 4 + 5, suma(6, 7 * 8));", "suma(a, b, 1, (2 * 3), (4 + 5), suma(6, (7 * 8)))"},
		{"suma(a + b + c * d / f + g);", "suma((((a + b) + ((c * d) / f)) + g))"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		assert.Equal(t, tt.expected, program.String())
	}
}

func TestBooleanExpression(t *testing.T) {
	program := parseProgram(t, `verdadero;
falso;`)

	require.Len(t, program.Statements, 2)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	b, ok := stmt.Expression.(*ast.Boolean)
	require.True(t, ok)
	assert.True(t, b.Value)

	stmt = program.Statements[1].(*ast.ExpressionStatement)
	b, ok = stmt.Expression.(*ast.Boolean)
	require.True(t, ok)
	assert.False(t, b.Value)
}

func TestIfExpression(t *testing.T) {
	program := parseProgram(t, `si (x < y) { x }`)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	exp, ok := stmt.Expression.(*ast.If)
	require.True(t, ok)

	cond, ok := exp.Condition.(*ast.Infix)
	require.True(t, ok)
	assert.Equal(t, "<", cond.Operator)

	require.Len(t, exp.Consequence.Statements, 1)
	assert.Nil(t, exp.Alternative)
}

func TestIfElseExpression(t *testing.T) {
	program := parseProgram(t, `si (x < y) { x } si_no { y }`)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	exp, ok := stmt.Expression.(*ast.If)
	require.True(t, ok)

	require.Len(t, exp.Consequence.Statements, 1)
	require.NotNil(t, exp.Alternative)
	require.Len(t, exp.Alternative.Statements, 1)
}

func TestFunctionLiteralParsing(t *testing.T) {
	program := parseProgram(t, `procedimiento(x, y) { x + y; }`)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	fn, ok := stmt.Expression.(*ast.Function)
	require.True(t, ok)

	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "x", fn.Parameters[0].Value)
	assert.Equal(t, "y", fn.Parameters[1].Value)

	require.Len(t, fn.Body.Statements, 1)
}

func TestFunctionParameterParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"procedimiento() {};", []string{}},
		{"procedimiento(x) {};", []string{"x"}},
		{"procedimiento(x, y, z) {};", []string{"x", "y", "z"}},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		stmt := program.Statements[0].(*ast.ExpressionStatement)
		fn := stmt.Expression.(*ast.Function)

		require.Len(t, fn.Parameters, len(tt.expected))
		for i, name := range tt.expected {
			assert.Equal(t, name, fn.Parameters[i].Value)
		}
	}
}

func TestCallExpressionParsing(t *testing.T) {
	program := parseProgram(t, `suma(1, 2 * 3, 4 + 5);`)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	exp, ok := stmt.Expression.(*ast.Call)
	require.True(t, ok)

	ident, ok := exp.Function.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "suma", ident.Value)

	require.Len(t, exp.Arguments, 3)
}

func TestMalformedLetStatement_YieldsExactlyOneError(t *testing.T) {
	p := New(lexer.New(`variable x 5;`))
	program := p.ParseProgram()

	require.NotNil(t, program)
	require.Len(t, p.Errors(), 1)

	for _, stmt := range program.Statements {
		_, isLet := stmt.(*ast.LetStatement)
		assert.False(t, isLet, "malformed let should not appear in the AST")
	}
}

func TestParsingContinuesAfterAnError(t *testing.T) {
	p := New(lexer.New(`variable x 5;
variable y = 10;`))
	program := p.ParseProgram()

	assert.NotEmpty(t, p.Errors())

	var sawY bool
	for _, stmt := range program.Statements {
		if ls, ok := stmt.(*ast.LetStatement); ok && ls.Name.Value == "y" {
			sawY = true
		}
	}
	assert.True(t, sawY, "parsing should recover and still find the later let statement")
}
