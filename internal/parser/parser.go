// Package parser builds an AST from a token stream, via precedence-climbing
// recursive descent following the grammar in the expression language's
// external interface contract.
package parser

import (
	"github.com/cwbudde/exprlang/internal/ast"
	xerrors "github.com/cwbudde/exprlang/internal/errors"
	"github.com/cwbudde/exprlang/internal/lexer"
)

// Parser consumes a flat token slice (already lexed) and produces one AST
// root expression.
type Parser struct {
	tokens  []lexer.Token
	current int
}

// New constructs a Parser over tokens, which must end with an EOF token.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes source and parses it to a single root expression. Any token
// remaining after the root expression (other than EOF) is a ParseError.
func Parse(source string) (ast.Expr, error) {
	tokens, err := lexer.ScanTokens(source)
	if err != nil {
		return nil, err
	}
	p := New(tokens)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		tok := p.peek()
		return nil, xerrors.NewParseError(tok.Line, tok.Column, "unexpected trailing token %q", tok.Lexeme)
	}
	return expr, nil
}

func (p *Parser) peek() lexer.Token      { return p.tokens[p.current] }
func (p *Parser) previous() lexer.Token  { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool          { return p.peek().Kind == lexer.EOF }

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	if p.isAtEnd() {
		return kind == lexer.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...lexer.TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind lexer.TokenKind, format string, args ...any) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	tok := p.peek()
	return lexer.Token{}, xerrors.NewParseError(tok.Line, tok.Column, format, args...)
}

func posOf(tok lexer.Token) ast.Position { return ast.Position{Line: tok.Line, Column: tok.Column} }

// ParseExpression is the grammar's top-level `expression ← conditional`.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	return p.parseConditional()
}

func (p *Parser) parseConditional() (ast.Expr, error) {
	start := p.peek()
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.match(lexer.QUESTION) {
		then, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.COLON, "expected ':' in conditional expression"); err != nil {
			return nil, err
		}
		otherwise, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpr{Position: posOf(start), Cond: cond, Then: then, Otherwise: otherwise}, nil
	}
	return cond, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.OR) {
		op := p.previous()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Position: posOf(op), Left: left, Op: "or", Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.AND) {
		op := p.previous()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Position: posOf(op), Left: left, Op: "and", Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.EQUAL, lexer.NOT_EQUAL) {
		op := p.previous()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Position: posOf(op), Left: left, Op: opText(op.Kind), Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.LT, lexer.LE, lexer.GT, lexer.GE) {
		op := p.previous()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Position: posOf(op), Left: left, Op: opText(op.Kind), Right: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.PLUS, lexer.MINUS) {
		op := p.previous()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Position: posOf(op), Left: left, Op: opText(op.Kind), Right: right}
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.MULTIPLY, lexer.DIVIDE, lexer.MODULO) {
		op := p.previous()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Position: posOf(op), Left: left, Op: opText(op.Kind), Right: right}
	}
	return left, nil
}

// parseUnary binds a prefix "!"/"-"/"not" around a whole power expression
// (not the other way around), so `-2 ** 2` parses as `-(2 ** 2)`: the
// operand of a prefix operator is another parseUnary, which falls through
// to parsePower when no further prefix is present.
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.match(lexer.NOT) {
		op := p.previous()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Position: posOf(op), Op: "!", Operand: operand}, nil
	}
	if p.match(lexer.MINUS) {
		op := p.previous()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Position: posOf(op), Op: "-", Operand: operand}, nil
	}
	return p.parsePower()
}

// parsePower is right-associative: its right-hand side is parsed by
// parseUnary (not itself), so a prefix operator on the right operand (e.g.
// `2 ** -3`) is absorbed into that operand rather than binding around the
// whole power expression, while `2 ** 3 ** 2` still nests as `2 ** (3 **
// 2)`.
func (p *Parser) parsePower() (ast.Expr, error) {
	left, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if p.match(lexer.POWER) {
		op := p.previous()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Position: posOf(op), Left: left, Op: "**", Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parsePipe() (ast.Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.PIPE) {
		op := p.previous()
		filter, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		left = &ast.PipeExpr{Position: posOf(op), Value: left, Filter: filter}
	}
	return left, nil
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(lexer.LPAREN):
			call, err := p.finishCall(expr)
			if err != nil {
				return nil, err
			}
			expr = call
		case p.match(lexer.DOT):
			name, err := p.consume(lexer.IDENTIFIER, "expected member name after '.'")
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpr{Position: posOf(name), Object: expr, Name: name.Lexeme, Optional: false}
		case p.match(lexer.QUESTION_DOT):
			name, err := p.consume(lexer.IDENTIFIER, "expected member name after '?.'")
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpr{Position: posOf(name), Object: expr, Name: name.Lexeme, Optional: true}
		case p.match(lexer.LBRACKET):
			open := p.previous()
			idx, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.RBRACKET, "expected ']' after index expression"); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Position: posOf(open), Object: expr, Index: idx}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	open, err := p.consume(lexer.LPAREN, "expected '('")
	if err != nil {
		return nil, err
	}
	var args []ast.Expr
	if !p.check(lexer.RPAREN) {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RPAREN, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Position: posOf(open), Callee: callee, Args: args}, nil
}

func opText(kind lexer.TokenKind) string {
	switch kind {
	case lexer.EQUAL:
		return "=="
	case lexer.NOT_EQUAL:
		return "!="
	case lexer.LT:
		return "<"
	case lexer.LE:
		return "<="
	case lexer.GT:
		return ">"
	case lexer.GE:
		return ">="
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.MULTIPLY:
		return "*"
	case lexer.DIVIDE:
		return "/"
	case lexer.MODULO:
		return "%"
	default:
		return kind.String()
	}
}
