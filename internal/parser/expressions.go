package parser

import (
	"github.com/cwbudde/exprlang/internal/ast"
	xerrors "github.com/cwbudde/exprlang/internal/errors"
	"github.com/cwbudde/exprlang/internal/lexer"
)

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch {
	case p.check(lexer.NUMBER):
		tok := p.advance()
		return &ast.LiteralExpr{Position: posOf(tok), Value: tok.Literal}, nil
	case p.check(lexer.STRING):
		tok := p.advance()
		return &ast.LiteralExpr{Position: posOf(tok), Value: tok.Literal}, nil
	case p.check(lexer.BOOLEAN):
		tok := p.advance()
		return &ast.LiteralExpr{Position: posOf(tok), Value: tok.Literal}, nil
	case p.check(lexer.NULL):
		tok := p.advance()
		return &ast.LiteralExpr{Position: posOf(tok), Value: nil}, nil
	case p.check(lexer.IDENTIFIER):
		tok := p.advance()
		if p.check(lexer.ARROW) {
			p.advance()
			body, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			return &ast.LambdaExpr{Position: posOf(tok), Params: []string{tok.Lexeme}, Body: body}, nil
		}
		return &ast.IdentifierExpr{Position: posOf(tok), Name: tok.Lexeme}, nil
	case p.match(lexer.DOLLAR_BRACE):
		open := p.previous()
		inner, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RBRACE, "expected '}' to close interpolation"); err != nil {
			return nil, err
		}
		return &ast.InterpolationExpr{Position: posOf(open), Parts: []ast.Expr{inner}}, nil
	case p.match(lexer.LBRACKET):
		return p.parseArrayLiteral()
	case p.match(lexer.LBRACE):
		return p.parseObjectLiteral()
	case p.match(lexer.LPAREN):
		return p.parseLambdaOrGrouping()
	}
	tok := p.peek()
	return nil, xerrors.NewParseError(tok.Line, tok.Column, "unexpected token %q", tok.Lexeme)
}

func (p *Parser) parseArrayLiteral() (ast.Expr, error) {
	open := p.previous()
	var elems []ast.Expr
	if !p.check(lexer.RBRACKET) {
		for {
			e, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RBRACKET, "expected ']' after array elements"); err != nil {
		return nil, err
	}
	return &ast.ArrayExpr{Position: posOf(open), Elements: elems}, nil
}

func (p *Parser) parseObjectLiteral() (ast.Expr, error) {
	open := p.previous()
	var entries []ast.ObjectEntry
	if !p.check(lexer.RBRACE) {
		for {
			entry, err := p.parseObjectEntry()
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RBRACE, "expected '}' after object entries"); err != nil {
		return nil, err
	}
	return &ast.ObjectExpr{Position: posOf(open), Entries: entries}, nil
}

func (p *Parser) parseObjectEntry() (ast.ObjectEntry, error) {
	var keyName string
	switch {
	case p.check(lexer.IDENTIFIER):
		keyName = p.advance().Lexeme
	case p.check(lexer.STRING):
		tok := p.advance()
		keyName, _ = tok.Literal.(string)
	default:
		tok := p.peek()
		return ast.ObjectEntry{}, xerrors.NewParseError(tok.Line, tok.Column, "expected object key, got %q", tok.Lexeme)
	}
	if _, err := p.consume(lexer.COLON, "expected ':' after object key"); err != nil {
		return ast.ObjectEntry{}, err
	}
	val, err := p.ParseExpression()
	if err != nil {
		return ast.ObjectEntry{}, err
	}
	return ast.ObjectEntry{KeyName: keyName, Value: val}, nil
}

// parseLambdaOrGrouping handles the `(` already consumed by the caller,
// disambiguating `(params) => body` from `(expr)` by tentatively scanning
// for a parameter list followed by `=>`, backtracking to a plain grouped
// expression when that scan fails.
func (p *Parser) parseLambdaOrGrouping() (ast.Expr, error) {
	open := p.previous()
	saved := p.current
	if params, ok := p.tryLambdaParams(); ok {
		p.advance() // consume '=>'
		body, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.LambdaExpr{Position: posOf(open), Params: params, Body: body}, nil
	}
	p.current = saved

	if p.check(lexer.RPAREN) {
		tok := p.peek()
		return nil, xerrors.NewParseError(tok.Line, tok.Column, "empty grouping '()' is not a valid expression")
	}
	inner, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RPAREN, "expected ')' after expression"); err != nil {
		return nil, err
	}
	return &ast.GroupingExpr{Position: posOf(open), Inner: inner}, nil
}

// tryLambdaParams attempts to parse a comma-separated identifier list
// terminated by ')' and immediately followed by '=>', without consuming
// the '=>' itself. On any mismatch it returns ok=false; the caller is
// responsible for restoring p.current.
func (p *Parser) tryLambdaParams() ([]string, bool) {
	var params []string
	if !p.check(lexer.RPAREN) {
		for {
			if !p.check(lexer.IDENTIFIER) {
				return nil, false
			}
			params = append(params, p.advance().Lexeme)
			if p.match(lexer.COMMA) {
				continue
			}
			break
		}
	}
	if !p.check(lexer.RPAREN) {
		return nil, false
	}
	p.advance()
	if !p.check(lexer.ARROW) {
		return nil, false
	}
	return params, true
}
