package parser

import (
	"context"
	"strings"

	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/dialect"
	"github.com/caravan-sql/sqlfront/pkg/keyword"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

// ParserOptions configures a Parser. The zero value selects the default
// recursion limit with escape-folding off; New uses Unescape: true.
type ParserOptions struct {
	// RecursionLimit bounds nested expression/statement depth. 0 selects
	// the default of 50.
	RecursionLimit int `yaml:"recursion_limit"`
	// TrailingCommas is carried for configuration files; the parser does
	// not read it, and lists parse the same whether it is set or not.
	TrailingCommas bool `yaml:"trailing_commas"`
	// Unescape controls whether the lexer folds string escapes (the
	// tokenizer's own default) while scanning.
	Unescape bool `yaml:"unescape"`
}

func (o ParserOptions) recursionLimit() int {
	if o.RecursionLimit <= 0 {
		return 50
	}
	return o.RecursionLimit
}

// Parser holds a filtered token stream (whitespace and comments removed)
// plus cursor state. It never mutates its Dialect.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	d       dialect.Dialect
	opts    ParserOptions
	ctx     context.Context
	depth   int
}

// New builds a Parser over input for dialect d using the background
// context and default options.
func New(input string, d dialect.Dialect) (*Parser, error) {
	return NewWithOptions(context.Background(), input, d, ParserOptions{Unescape: true})
}

// NewWithOptions builds a Parser with an explicit context and options.
func NewWithOptions(ctx context.Context, input string, d dialect.Dialect, opts ParserOptions) (*Parser, error) {
	l := lexer.NewWithOptions(input, d, opts.Unescape)
	var filtered []lexer.Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}
		if t.Kind != lexer.KindWhitespace {
			filtered = append(filtered, t)
		}
		if t.Kind == lexer.KindEOF {
			break
		}
	}
	return &Parser{tokens: filtered, d: d, opts: opts, ctx: ctx}, nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.KindEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return lexer.Token{Kind: lexer.KindEOF}
	}
	return p.tokens[idx]
}

func (p *Parser) peek() lexer.Token { return p.peekN(1) }

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool { return p.cur().Kind == lexer.KindEOF }

func (p *Parser) checkCtx() error {
	select {
	case <-p.ctx.Done():
		return &ParserError{Message: "parsing cancelled"}
	default:
		return nil
	}
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.opts.recursionLimit() {
		return errRecursionLimit(p.cur().Loc)
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

func tokenDescription(t lexer.Token) string {
	switch t.Kind {
	case lexer.KindEOF:
		return "EOF"
	case lexer.KindWord:
		return t.Word
	case lexer.KindNumber:
		return t.Number
	case lexer.KindString:
		return t.String
	case lexer.KindPlaceholder:
		return t.Placeholder
	case lexer.KindPunctuation:
		return t.Punct.String()
	default:
		return ""
	}
}

// curKeyword classifies the current WORD token as a keyword, if any.
func (p *Parser) curKeyword() (keyword.Keyword, bool) {
	t := p.cur()
	if t.Kind != lexer.KindWord || t.QuoteStyle != 0 {
		return 0, false
	}
	return keyword.Lookup(t.Word)
}

func (p *Parser) curIsKeyword(kw keyword.Keyword) bool {
	got, ok := p.curKeyword()
	return ok && got == kw
}

func (p *Parser) peekIsKeyword(kw keyword.Keyword) bool {
	t := p.peek()
	if t.Kind != lexer.KindWord || t.QuoteStyle != 0 {
		return false
	}
	got, ok := keyword.Lookup(t.Word)
	return ok && got == kw
}

// eatKeyword consumes the current token if it is kw, reporting whether
// it did.
func (p *Parser) eatKeyword(kw keyword.Keyword) bool {
	if p.curIsKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectKeyword(kw keyword.Keyword) error {
	if p.eatKeyword(kw) {
		return nil
	}
	return errExpected(kw.Text(), tokenDescription(p.cur()), p.cur().Loc)
}

func (p *Parser) curIsPunct(pu lexer.Punct) bool {
	t := p.cur()
	return t.Kind == lexer.KindPunctuation && t.Punct == pu
}

func (p *Parser) eatPunct(pu lexer.Punct) bool {
	if p.curIsPunct(pu) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectPunct(pu lexer.Punct) error {
	if p.eatPunct(pu) {
		return nil
	}
	return errExpected(pu.String(), tokenDescription(p.cur()), p.cur().Loc)
}

// isPlainWord reports whether the current token is an unquoted WORD that
// is not a reserved keyword, making it usable as an identifier.
func (p *Parser) isPlainWord() bool {
	t := p.cur()
	if t.Kind != lexer.KindWord {
		return false
	}
	if t.QuoteStyle != 0 {
		return true
	}
	kw, ok := keyword.Lookup(t.Word)
	return !ok || !kw.Reserved()
}

func (p *Parser) parseIdent() (ast.Ident, error) {
	t := p.cur()
	if t.Kind != lexer.KindWord {
		return ast.Ident{}, errExpected("identifier", tokenDescription(t), t.Loc)
	}
	p.advance()
	return ast.Ident{Value: t.Word, QuoteStyle: t.QuoteStyle}, nil
}

func (p *Parser) parseObjectName() (ast.ObjectName, error) {
	first, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	name := ast.ObjectName{first}
	for p.curIsPunct(lexer.PPeriod) {
		p.advance()
		next, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		name = append(name, next)
	}
	return name, nil
}

// --- dialect.Cursor implementation, used by the Custom dialect hook ---

func (p *Parser) PeekWord() (string, bool) {
	t := p.cur()
	if t.Kind != lexer.KindWord {
		return "", false
	}
	return strings.ToUpper(t.Word), true
}

func (p *Parser) SkipToStatementEnd() string {
	var words []string
	for !p.atEOF() && !p.curIsPunct(lexer.PSemicolon) {
		words = append(words, tokenDescription(p.cur()))
		p.advance()
	}
	return strings.Join(words, " ")
}
