// Package parser implements a Pratt (precedence-climbing) parser that
// turns a token stream into the ast.Program defined in package ast.
//
// The architecture — precedence constants plus prefix/infix parse
// function tables keyed by token type — follows the classic
// tree-walking-interpreter shape; sheetscript's grammar has no
// user-definable operators, so a fixed table replaces the dynamic
// binding-power table a language with user operators would need.
package parser

import (
	"fmt"

	"sheetscript/internal/errs"
	"sheetscript/pkg/ast"
	"sheetscript/pkg/lexer"
	"sheetscript/pkg/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a token stream and builds an ast.Program, collecting
// every syntax error it encounters along the way rather than stopping
// at the first one.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token
	errors    []error

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, errors: []error{}}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.INT:      p.parseNumLiteral,
		token.FLOAT:    p.parseNumLiteral,
		token.STRING:   p.parseStringLiteral,
		token.BOOL:     p.parseBoolLiteral,
		token.NULL:     p.parseNullLiteral,
		token.IDENT:    p.parseIdent,
		token.LPAREN:   p.parseGroupedExpression,
		token.LBRACKET: p.parseArrayLiteral,
		token.NOT:      p.parseNot,
		token.MINUS:    p.parseUnaryMinus,
		token.IF:       p.parseConditional,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.POW:      p.parseInfix,
		token.MUL:      p.parseInfix,
		token.DIV:      p.parseInfix,
		token.MOD:      p.parseInfix,
		token.PLUS:     p.parseInfix,
		token.MINUS:    p.parseInfix,
		token.EQ:       p.parseInfix,
		token.NEQ:      p.parseInfix,
		token.LT:       p.parseInfix,
		token.GT:       p.parseInfix,
		token.LTE:      p.parseInfix,
		token.GTE:      p.parseInfix,
		token.AND:      p.parseInfix,
		token.OR:       p.parseInfix,
		token.IN:       p.parseInfix,
		token.RANGE:    p.parseInfix,
		token.IRANGE:   p.parseInfix,
		token.LBRACKET: p.parseIndex,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every syntax error accumulated while parsing.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) addError(msg string, sp ast.Span) {
	p.errors = append(p.errors, &errs.ParsingError{Message: msg, Span: errs.Span{Start: sp.Start, End: sp.End}})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curSpan() ast.Span { return ast.Span{Start: p.curToken.Start, End: p.curToken.End} }

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the full token stream into an ast.Program. It
// always returns a (possibly partial) program, plus every syntax error
// it accumulated along the way.
func (p *Parser) ParseProgram() (*ast.Program, []error) {
	prog := &ast.Program{}

	for p.curToken.Type != token.EOF {
		if p.curToken.Type == token.SEMI {
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}

		if p.curToken.Type == token.SEMI {
			p.nextToken()
		} else if p.curToken.Type != token.EOF {
			p.addError(fmt.Sprintf("expected ';' after statement, got %q", p.curToken.Literal), p.curSpan())
			p.nextToken()
		}
	}

	return prog, p.errors
}

func (p *Parser) parseStatement() ast.Statement {
	if p.curToken.Type == token.INPUT {
		return p.parseInputDecl()
	}
	return p.parseAssign()
}

func (p *Parser) parseInputDecl() ast.Statement {
	start := p.curSpan()
	p.nextToken() // consume 'input'

	if p.curToken.Type != token.IDENT {
		p.addError("expected identifier after 'input'", p.curSpan())
		return nil
	}
	name := p.curToken.Literal
	p.nextToken()

	kind := ast.TypeAny
	if p.curToken.Type == token.COLON {
		p.nextToken()
		if p.curToken.Type != token.IDENT {
			p.addError("expected type name after ':'", p.curSpan())
			return &ast.Input{Name: name, Kind: kind, Sp: ast.Span{Start: start.Start, End: p.curToken.End}}
		}
		tt, ok := token.LookupType(p.curToken.Literal)
		if !ok {
			p.addError(fmt.Sprintf("unknown input type %q", p.curToken.Literal), p.curSpan())
		} else {
			kind = tagFromToken(tt)
		}
		p.nextToken()
	}

	return &ast.Input{Name: name, Kind: kind, Sp: ast.Span{Start: start.Start, End: p.curToken.Start}}
}

func tagFromToken(tt token.Type) ast.TypeTag {
	switch tt {
	case token.TYPE_NUM:
		return ast.TypeNum
	case token.TYPE_INT:
		return ast.TypeInt
	case token.TYPE_STRING:
		return ast.TypeString
	case token.TYPE_BOOL:
		return ast.TypeBool
	case token.TYPE_ARRAY:
		return ast.TypeArray
	case token.TYPE_RANGE:
		return ast.TypeRange
	default:
		return ast.TypeAny
	}
}

// parseAssign parses a chained assignment: (ident '=')+ expr. A bare
// expression with no leading "ident =" is a structural error — only
// assignments and input declarations are valid top-level statements.
func (p *Parser) parseAssign() ast.Statement {
	start := p.curSpan()
	var names []string

	for p.curToken.Type == token.IDENT && p.peekToken.Type == token.ASSIGN {
		names = append(names, p.curToken.Literal)
		p.nextToken() // consume ident
		p.nextToken() // consume '='
	}

	if len(names) == 0 {
		p.addError("expected an assignment (name = expr) or input declaration at top level", start)
		// best-effort recovery: consume the expression anyway so a single
		// bad statement doesn't desync the rest of the program.
		p.parseExpression(LOWEST)
		return nil
	}

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	end := value.Span().End
	return &ast.Assign{Names: names, Value: value, Sp: ast.Span{Start: start.Start, End: end}}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	if p.curToken.Type == token.ILLEGAL {
		p.errors = append(p.errors, &errs.SyntaxError{Message: p.curToken.Literal, Span: errs.Span{Start: p.curToken.Start, End: p.curToken.End}})
		return nil
	}
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.addError(fmt.Sprintf("unexpected token %q", p.curToken.Literal), p.curSpan())
		return nil
	}
	left := prefix()

	for p.curToken.Type != token.SEMI && precedence < p.curPrecedence() {
		infix, ok := p.infixParseFns[p.curToken.Type]
		if !ok {
			return left
		}
		left = infix(left)
	}

	return left
}

func (p *Parser) parseNumLiteral() ast.Expression {
	tok := p.curToken
	var v float64
	if _, err := fmt.Sscanf(tok.Literal, "%g", &v); err != nil {
		p.addError(fmt.Sprintf("invalid number literal %q", tok.Literal), p.curSpan())
	}
	p.nextToken()
	return &ast.NumLiteral{Value: v, Sp: ast.Span{Start: tok.Start, End: tok.End}}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.StringLiteral{Value: tok.Literal, Sp: ast.Span{Start: tok.Start, End: tok.End}}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.BoolLiteral{Value: tok.Literal == "true", Sp: ast.Span{Start: tok.Start, End: tok.End}}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.NullLiteral{Sp: ast.Span{Start: tok.Start, End: tok.End}}
}

func (p *Parser) parseIdent() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.Ident{Name: tok.Literal, Sp: ast.Span{Start: tok.Start, End: tok.End}}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken() // consume '('
	exp := p.parseExpression(LOWEST)
	if p.curToken.Type != token.RPAREN {
		p.addError("expected ')'", p.curSpan())
	} else {
		p.nextToken()
	}
	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.curSpan()
	p.nextToken() // consume '['

	var elems []ast.Expression
	if p.curToken.Type != token.RBRACKET {
		elems = append(elems, p.parseExpression(LOWEST))
		for p.curToken.Type == token.COMMA {
			p.nextToken()
			elems = append(elems, p.parseExpression(LOWEST))
		}
	}

	end := p.curSpan()
	if p.curToken.Type != token.RBRACKET {
		p.addError("expected ']'", p.curSpan())
	} else {
		p.nextToken()
	}

	return &ast.ArrayLiteral{Elements: elems, Sp: ast.Span{Start: start.Start, End: end.End}}
}

func (p *Parser) parseNot() ast.Expression {
	start := p.curSpan()
	p.nextToken()
	rhs := p.parseExpression(UNARY)
	if rhs == nil {
		return nil
	}
	return &ast.Not{Rhs: rhs, Sp: ast.Span{Start: start.Start, End: rhs.Span().End}}
}

// parseUnaryMinus desugars unary minus into `0 - x`, matching the
// operator kernel's Num×Num Sub semantics; the language has no separate
// negation operator in the kernel table.
func (p *Parser) parseUnaryMinus() ast.Expression {
	start := p.curSpan()
	p.nextToken()
	rhs := p.parseExpression(UNARY)
	if rhs == nil {
		return nil
	}
	zero := &ast.NumLiteral{Value: 0, Sp: ast.Span{Start: start.Start, End: start.End}}
	return &ast.InfixOp{Lhs: zero, Op: ast.OpSub, Rhs: rhs, Sp: ast.Span{Start: start.Start, End: rhs.Span().End}}
}

func (p *Parser) parseConditional() ast.Expression {
	start := p.curSpan()
	p.nextToken() // consume 'if'

	cond := p.parseExpression(LOWEST)
	if p.curToken.Type != token.THEN {
		p.addError("expected 'then'", p.curSpan())
		return cond
	}
	p.nextToken() // consume 'then'

	inner := p.parseExpression(LOWEST)
	if p.curToken.Type != token.ELSE {
		p.addError("expected 'else'", p.curSpan())
		return inner
	}
	p.nextToken() // consume 'else'

	other := p.parseExpression(LOWEST)
	if cond == nil || inner == nil || other == nil {
		return nil
	}

	return &ast.Conditional{Condition: cond, Inner: inner, Other: other, Sp: ast.Span{Start: start.Start, End: other.Span().End}}
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := ast.Op(tok.Literal)

	precedence := p.curPrecedence()
	p.nextToken()

	rightPrecedence := precedence
	if tok.Type == token.POW {
		rightPrecedence = precedence - 1 // right-associative
	}
	right := p.parseExpression(rightPrecedence)
	if left == nil || right == nil {
		return nil
	}

	return &ast.InfixOp{Lhs: left, Op: op, Rhs: right, Sp: ast.Span{Start: left.Span().Start, End: right.Span().End}}
}

func (p *Parser) parseIndex(left ast.Expression) ast.Expression {
	p.nextToken() // consume '['
	idx := p.parseExpression(LOWEST)
	end := p.curSpan()
	if p.curToken.Type != token.RBRACKET {
		p.addError("expected ']'", p.curSpan())
	} else {
		p.nextToken()
	}
	if left == nil || idx == nil {
		return nil
	}
	return &ast.Index{Lhs: left, Rhs: idx, Sp: ast.Span{Start: left.Span().Start, End: end.End}}
}
