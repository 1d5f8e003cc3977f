package sgsl

import (
	"fmt"
)

// Parser parses tokens into an AST. Parsing is single-error: the first
// unexpected token aborts with a SyntaxError carrying its position.
type Parser struct {
	tokens  []Token
	current int
	source  string
}

// NewParser creates a new parser for the given tokens. The source text is
// kept only for error context rendering.
func NewParser(tokens []Token, source string) *Parser {
	return &Parser{
		tokens: tokens,
		source: source,
	}
}

// Parse parses the tokens and returns a Program AST.
func (p *Parser) Parse() (*Program, error) {
	program := &Program{}

	for !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		program.Stmts = append(program.Stmts, stmt)
	}

	return program, nil
}

func (p *Parser) statement() (Stmt, *SourceError) {
	switch {
	case p.check(TokenVar):
		return p.varDecl()
	case p.check(TokenFn):
		return p.funcDecl()
	case p.check(TokenReturn):
		return p.returnStmt()
	default:
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		p.match(TokenSemicolon)
		return &ExprStmt{Expr: expr}, nil
	}
}

// varDecl parses "var name (: type)? = expr ;".
func (p *Parser) varDecl() (*VarDecl, *SourceError) {
	start := p.advance() // var

	name, err := p.expect(TokenIdent, "variable name")
	if err != nil {
		return nil, err
	}

	decl := &VarDecl{
		Name: name.Lexeme,
		Span: start.span(),
	}

	if p.match(TokenColon) {
		typ, err := p.expect(TokenIdent, "type name")
		if err != nil {
			return nil, err
		}
		decl.TypeName = typ.Lexeme
	}

	if _, err := p.expect(TokenEqual, "'='"); err != nil {
		return nil, err
	}

	init, err := p.expression()
	if err != nil {
		return nil, err
	}
	decl.Init = init

	if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	return decl, nil
}

// funcDecl parses "fn name(params) -> type { body }".
func (p *Parser) funcDecl() (*FuncDecl, *SourceError) {
	start := p.advance() // fn

	name, err := p.expect(TokenIdent, "function name")
	if err != nil {
		return nil, err
	}

	decl := &FuncDecl{
		Name: name.Lexeme,
		Span: start.span(),
	}

	if _, err := p.expect(TokenLeftParen, "'('"); err != nil {
		return nil, err
	}
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		pname, err := p.expect(TokenIdent, "parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenColon, "':'"); err != nil {
			return nil, err
		}
		ptype, err := p.expect(TokenIdent, "parameter type")
		if err != nil {
			return nil, err
		}
		decl.Params = append(decl.Params, &Parameter{
			Name:     pname.Lexeme,
			TypeName: ptype.Lexeme,
			Span:     pname.span(),
		})
		if !p.match(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenRightParen, "')'"); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenArrow, "'->'"); err != nil {
		return nil, err
	}
	ret, err := p.expect(TokenIdent, "return type")
	if err != nil {
		return nil, err
	}
	decl.ReturnType = ret.Lexeme

	if _, err := p.expect(TokenLeftBrace, "'{'"); err != nil {
		return nil, err
	}
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		decl.Body = append(decl.Body, stmt)
	}
	if _, err := p.expect(TokenRightBrace, "'}'"); err != nil {
		return nil, err
	}

	return decl, nil
}

func (p *Parser) returnStmt() (*ReturnStmt, *SourceError) {
	start := p.advance() // return

	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	return &ReturnStmt{Value: value, Span: start.span()}, nil
}

// expression parses with the ternary conditional at lowest precedence,
// then logical, equality, relational, additive, and multiplicative tiers.
func (p *Parser) expression() (Expr, *SourceError) {
	return p.conditional()
}

func (p *Parser) conditional() (Expr, *SourceError) {
	cond, err := p.logicalOr()
	if err != nil {
		return nil, err
	}

	if p.check(TokenQuestion) {
		question := p.advance()
		accept, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenColon, "':'"); err != nil {
			return nil, err
		}
		reject, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &CondExpr{
			Cond:   cond,
			Accept: accept,
			Reject: reject,
			Span:   question.span(),
		}, nil
	}

	return cond, nil
}

func (p *Parser) logicalOr() (Expr, *SourceError) {
	return p.binaryTier(p.logicalAnd, TokenPipePipe)
}

func (p *Parser) logicalAnd() (Expr, *SourceError) {
	return p.binaryTier(p.equality, TokenAmpAmp)
}

func (p *Parser) equality() (Expr, *SourceError) {
	return p.binaryTier(p.comparison, TokenEqualEqual, TokenBangEqual)
}

func (p *Parser) comparison() (Expr, *SourceError) {
	return p.binaryTier(p.additive, TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual)
}

func (p *Parser) additive() (Expr, *SourceError) {
	return p.binaryTier(p.multiplicative, TokenPlus, TokenMinus)
}

func (p *Parser) multiplicative() (Expr, *SourceError) {
	return p.binaryTier(p.unary, TokenStar, TokenSlash, TokenPercent)
}

// binaryTier parses one left-associative precedence level.
func (p *Parser) binaryTier(next func() (Expr, *SourceError), ops ...TokenKind) (Expr, *SourceError) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		matched := false
		for _, op := range ops {
			if p.check(op) {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}

		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Op:    op.Kind,
			Left:  left,
			Right: right,
			Span:  op.span(),
		}
	}
}

func (p *Parser) unary() (Expr, *SourceError) {
	if p.check(TokenMinus) || p.check(TokenBang) {
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op.Kind, Expr: operand, Span: op.span()}, nil
	}
	return p.postfix()
}

// postfix parses call and member-access suffixes.
func (p *Parser) postfix() (Expr, *SourceError) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(TokenLeftParen):
			ident, ok := expr.(*IdentExpr)
			if !ok {
				return nil, p.syntaxError(p.peek(), "only named functions can be called")
			}
			p.advance()
			call := &CallExpr{Callee: ident.Name, Span: ident.Span}
			for !p.check(TokenRightParen) && !p.isAtEnd() {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
				if !p.match(TokenComma) {
					break
				}
			}
			if _, err := p.expect(TokenRightParen, "')'"); err != nil {
				return nil, err
			}
			expr = call

		case p.check(TokenDot):
			p.advance()
			member, err := p.expect(TokenIdent, "component name")
			if err != nil {
				return nil, err
			}
			expr = &MemberExpr{Expr: expr, Member: member.Lexeme, Span: member.span()}

		default:
			return expr, nil
		}
	}
}

func (p *Parser) primary() (Expr, *SourceError) {
	switch {
	case p.check(TokenNumber):
		tok := p.advance()
		return &NumberExpr{Text: tok.Lexeme, Span: tok.span()}, nil

	case p.check(TokenTrue), p.check(TokenFalse):
		tok := p.advance()
		return &BoolExpr{Value: tok.Kind == TokenTrue, Span: tok.span()}, nil

	case p.check(TokenIdent):
		tok := p.advance()
		return &IdentExpr{Name: tok.Lexeme, Span: tok.span()}, nil

	case p.check(TokenLeftParen):
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.syntaxError(p.peek(), fmt.Sprintf("unexpected token %s, expected expression", p.peek().Kind))
	}
}

func (p *Parser) expect(kind TokenKind, what string) (Token, *SourceError) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.syntaxError(p.peek(), fmt.Sprintf("expected %s, got %s", what, p.peek().Kind))
}

func (p *Parser) syntaxError(tok Token, message string) *SourceError {
	return NewSourceError(ErrSyntax, message, tok.span(), p.source)
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.current]
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) isAtEnd() bool {
	return p.tokens[p.current].Kind == TokenEOF
}
