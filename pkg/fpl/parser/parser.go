// Package parser builds condition syntax trees with a Pratt parser.
//
// Binding powers, higher binds tighter:
//
//	or                    1  2
//	and                   3  4
//	in                    5  6
//	== != >= > <= <       7  8
//	%                     9 10
//	! (prefix)            -  9
//
// A prefix ! therefore applies to a single comparison operand, so
// "!a == true" groups as "(!a) == true".
package parser

import (
	"esfpc/fpcheck/pkg/fpl/ast"
	fplerrors "esfpc/fpcheck/pkg/fpl/errors"
	"esfpc/fpcheck/pkg/fpl/lexer"
)

type bindingPower struct {
	left, right int
}

var infixOps = map[lexer.TokenKind]struct {
	op ast.BinOp
	bp bindingPower
}{
	lexer.OR:      {ast.Or, bindingPower{1, 2}},
	lexer.AND:     {ast.And, bindingPower{3, 4}},
	lexer.IN:      {ast.In, bindingPower{5, 6}},
	lexer.EQ:      {ast.Eq, bindingPower{7, 8}},
	lexer.NEQ:     {ast.Neq, bindingPower{7, 8}},
	lexer.GE:      {ast.Ge, bindingPower{7, 8}},
	lexer.GT:      {ast.Gt, bindingPower{7, 8}},
	lexer.LE:      {ast.Le, bindingPower{7, 8}},
	lexer.LT:      {ast.Lt, bindingPower{7, 8}},
	lexer.PERCENT: {ast.Mod, bindingPower{9, 10}},
}

const notRightBP = 9

// Parser holds one token of lookahead over a lexer.
type Parser struct {
	src    string
	lex    *lexer.Lexer
	peeked *lexer.Token
}

// New creates a parser over src.
func New(src string) *Parser {
	return &Parser{src: src, lex: lexer.New(src)}
}

// Parse parses a complete condition. Input left over after a complete
// expression is reported as a bad token.
func Parse(src string) (ast.Expr, error) {
	return New(src).ParseExpr()
}

// ParseExpr parses the whole input into a single expression.
func (p *Parser) ParseExpr() (ast.Expr, error) {
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.next(); ok {
		return nil, p.failToken(tok, "unexpected %s after end of expression", tok)
	}
	if p.lex.Err() != nil {
		return nil, p.fail(ErrPrematureEOF, len(p.src), "")
	}
	return expr, nil
}

func (p *Parser) peek() (lexer.Token, bool) {
	if p.peeked == nil {
		tok, ok := p.lex.Next()
		if !ok {
			return lexer.Token{}, false
		}
		p.peeked = &tok
	}
	return *p.peeked, true
}

func (p *Parser) next() (lexer.Token, bool) {
	tok, ok := p.peek()
	p.peeked = nil
	return tok, ok
}

func (p *Parser) parseExpr(minBP int) (ast.Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		infix, ok := infixOps[tok.Kind]
		if !ok || infix.bp.left < minBP {
			break
		}
		p.next()

		rhs, err := p.parseExpr(infix.bp.right)
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{Op: infix.op, Left: lhs, Right: rhs}
	}

	return lhs, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok, ok := p.next()
	if !ok {
		return nil, p.fail(ErrPrematureEOF, len(p.src), "")
	}

	switch tok.Kind {
	case lexer.BOOL:
		return &ast.Literal{Value: ast.Bool(tok.Bool)}, nil
	case lexer.INT:
		return &ast.Literal{Value: ast.Int(tok.Int)}, nil
	case lexer.TEXT:
		return &ast.Literal{Value: ast.Text(tok.Text)}, nil
	case lexer.IDENT:
		return &ast.Identifier{Name: tok.Text}, nil

	case lexer.LPAREN:
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if closing, ok := p.next(); !ok || closing.Kind != lexer.RPAREN {
			return nil, p.fail(ErrUnmatchedParen, tok.Pos, "")
		}
		return inner, nil

	case lexer.LBRACKET:
		first, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		elems := []ast.Expr{first}
		for {
			sep, ok := p.peek()
			if !ok || sep.Kind != lexer.COMMA {
				break
			}
			p.next()
			el, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
		}
		if closing, ok := p.next(); !ok || closing.Kind != lexer.RBRACKET {
			return nil, p.fail(ErrUnmatchedBracket, tok.Pos, "")
		}
		return &ast.Array{Elements: elems}, nil

	case lexer.NOT:
		operand, err := p.parseExpr(notRightBP)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.Not, Operand: operand}, nil

	default:
		return nil, p.failToken(tok, "%s", tok)
	}
}

// fail builds a syntax error. A lexical error that cut the token stream
// short is attached as the cause.
func (p *Parser) fail(kind error, pos int, format string, args ...any) *ParseError {
	err := fplerrors.New(fplerrors.ErrorTypeSyntax, kind, pos, format, args...)
	err.Cause = p.lex.Err()
	return &ParseError{Err: err}
}

func (p *Parser) failToken(tok lexer.Token, format string, args ...any) *ParseError {
	err := p.fail(ErrBadToken, tok.Pos, format, args...)
	err.Token = &tok
	return err
}
