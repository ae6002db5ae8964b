package parser

import (
	"strconv"
	"strings"

	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/keyword"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

// ParseExpr parses a single expression to completion (used by callers
// that only need the expression grammar, and by tests).
func (p *Parser) ParseExpr() (ast.Expression, error) {
	return p.parseExpr(0)
}

// binding powers; higher binds tighter. OR < AND < NOT < comparison <
// bitwise-or < bitwise-xor < bitwise-and < shift < additive <
// multiplicative < concat < unary < postfix (cast, subscript).
const (
	bpOr = (iota + 1) * 10
	bpAnd
	bpNot
	bpComparison
	bpBitOr
	bpBitXor
	bpBitAnd
	bpShift
	bpAdditive
	bpMultiplicative
	bpConcat
	bpUnary
	bpPostfix
)

func infixBindingPower(op string) (int, bool) {
	switch strings.ToUpper(op) {
	case "OR":
		return bpOr, true
	case "AND":
		return bpAnd, true
	case "=", "<>", "!=", "<", ">", "<=", ">=", "<=>":
		return bpComparison, true
	case "|":
		return bpBitOr, true
	case "^":
		return bpBitXor, true
	case "&":
		return bpBitAnd, true
	case "<<", ">>":
		return bpShift, true
	case "+", "-":
		return bpAdditive, true
	case "*", "/", "%":
		return bpMultiplicative, true
	case "||":
		return bpConcat, true
	}
	return 0, false
}

func (p *Parser) parseExpr(minBp int) (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	if err := p.checkCtx(); err != nil {
		return nil, err
	}

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		left, err = p.parsePostfix(left, minBp)
		if err != nil {
			return nil, err
		}

		opText, bp, isInfix, consumed, err := p.peekInfixOperator()
		if err != nil {
			return nil, err
		}
		if !isInfix || bp < minBp {
			break
		}
		for i := 0; i < consumed; i++ {
			p.advance()
		}
		right, err := p.parseExpr(bp + 1)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Left: left, Op: opText, Right: right}
	}
	return left, nil
}

// peekInfixOperator inspects the current token(s) for an infix operator,
// returning its canonical text, binding power, and how many tokens it
// consumes, without advancing the cursor.
func (p *Parser) peekInfixOperator() (string, int, bool, int, error) {
	t := p.cur()
	if t.Kind == lexer.KindPunctuation {
		op := t.Punct.String()
		if bp, ok := infixBindingPower(op); ok {
			return normalizeOp(op), bp, true, 1, nil
		}
		return "", 0, false, 0, nil
	}
	if t.Kind != lexer.KindWord || t.QuoteStyle != 0 {
		return "", 0, false, 0, nil
	}
	kw, ok := keyword.Lookup(t.Word)
	if !ok {
		return "", 0, false, 0, nil
	}
	switch kw {
	case keyword.OR:
		return "OR", bpOr, true, 1, nil
	case keyword.AND:
		return "AND", bpAnd, true, 1, nil
	}
	return "", 0, false, 0, nil
}

func normalizeOp(op string) string {
	if op == "!=" {
		return "<>"
	}
	return op
}

// parsePostfix handles the suffix-position constructs that bind tighter
// than any binary operator: BETWEEN, IN, LIKE/ILIKE, IS, cast `::`,
// subscript `[...]`, NOT variants, AT TIME ZONE.
func (p *Parser) parsePostfix(left ast.Expression, minBp int) (ast.Expression, error) {
	for {
		if p.curIsPunct(lexer.PDoubleColon) {
			p.advance()
			dt, err := p.parseDataType()
			if err != nil {
				return nil, err
			}
			left = ast.Cast{Expr: left, Type: dt}
			continue
		}
		if p.curIsPunct(lexer.PLBracket) {
			p.advance()
			idx, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lexer.PRBracket); err != nil {
				return nil, err
			}
			left = ast.Subscript{Expr: left, Index: idx}
			continue
		}

		not := false
		save := p.pos
		if p.eatKeyword(keyword.NOT) {
			not = true
		}

		switch {
		case p.eatKeyword(keyword.BETWEEN):
			low, err := p.parseExpr(bpComparison + 1)
			if err != nil {
				return nil, err
			}
			if err := p.expectKeyword(keyword.AND); err != nil {
				return nil, err
			}
			high, err := p.parseExpr(bpComparison + 1)
			if err != nil {
				return nil, err
			}
			left = ast.Between{Expr: left, Not: not, Low: low, High: high}
			continue
		case p.eatKeyword(keyword.IN):
			e, err := p.parseInBody(left, not)
			if err != nil {
				return nil, err
			}
			left = e
			continue
		case p.curIsKeyword(keyword.LIKE) || p.curIsKeyword(keyword.ILIKE):
			ci := p.curIsKeyword(keyword.ILIKE)
			p.advance()
			pattern, err := p.parseExpr(bpComparison + 1)
			if err != nil {
				return nil, err
			}
			like := ast.Like{Expr: left, Not: not, CaseInsensitive: ci, Pattern: pattern}
			if p.eatKeyword(keyword.ESCAPE) {
				esc, err := p.parseExpr(bpComparison + 1)
				if err != nil {
					return nil, err
				}
				like.Escape = esc
			}
			left = like
			continue
		case p.eatKeyword(keyword.SIMILAR):
			if err := p.expectKeyword(keyword.TO); err != nil {
				return nil, err
			}
			pattern, err := p.parseExpr(bpComparison + 1)
			if err != nil {
				return nil, err
			}
			left = ast.SimilarTo{Expr: left, Not: not, Pattern: pattern}
			continue
		}
		if not {
			p.pos = save
		}

		if p.curIsKeyword(keyword.IS) {
			p.advance()
			e, err := p.parseIsBody(left)
			if err != nil {
				return nil, err
			}
			left = e
			continue
		}
		if p.curIsKeyword(keyword.AT) && p.peekIsKeyword(keyword.TIME) {
			p.advance()
			p.advance()
			if err := p.expectKeyword(keyword.ZONE); err != nil {
				return nil, err
			}
			zone, err := p.parseExpr(bpUnary)
			if err != nil {
				return nil, err
			}
			left = ast.AtTimeZone{Expr: left, Zone: zone}
			continue
		}
		if p.curIsKeyword(keyword.COLLATE) {
			p.advance()
			name, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			left = ast.Collate{Expr: left, Name: name}
			continue
		}
		break
	}
	return left, nil
}

func (p *Parser) parseInBody(left ast.Expression, not bool) (ast.Expression, error) {
	if p.curIsKeyword(keyword.UNNEST) {
		p.advance()
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, err
		}
		arr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		return ast.InUnnest{Expr: left, Not: not, Array: arr}, nil
	}
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	if p.curIsKeyword(keyword.SELECT) || p.curIsKeyword(keyword.WITH) {
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		return ast.InSubquery{Expr: left, Not: not, Subquery: q}, nil
	}
	var list []ast.Expression
	for {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	return ast.InList{Expr: left, Not: not, List: list}, nil
}

func (p *Parser) parseIsBody(left ast.Expression) (ast.Expression, error) {
	not := p.eatKeyword(keyword.NOT)
	switch {
	case p.eatKeyword(keyword.NULL):
		return ast.Is{Expr: left, Not: not, Kind: ast.IsNullKind}, nil
	case p.eatKeyword(keyword.TRUE):
		return ast.Is{Expr: left, Not: not, Kind: ast.IsTrueKind}, nil
	case p.eatKeyword(keyword.FALSE):
		return ast.Is{Expr: left, Not: not, Kind: ast.IsFalseKind}, nil
	case p.eatKeyword(keyword.UNKNOWN):
		return ast.Is{Expr: left, Not: not, Kind: ast.IsUnknownKind}, nil
	case p.eatKeyword(keyword.DISTINCT):
		if err := p.expectKeyword(keyword.FROM); err != nil {
			return nil, err
		}
		other, err := p.parseExpr(bpComparison + 1)
		if err != nil {
			return nil, err
		}
		return ast.Is{Expr: left, Not: not, Kind: ast.IsDistinctFromKind, Other: other}, nil
	}
	return nil, errExpected("[NOT] NULL or TRUE|FALSE or [NOT] DISTINCT FROM after IS", tokenDescription(p.cur()), p.cur().Loc)
}

func (p *Parser) parsePrefix() (ast.Expression, error) {
	t := p.cur()

	switch t.Kind {
	case lexer.KindNumber:
		p.advance()
		return ast.Number{Text: t.Number, Long: t.Long}, nil
	case lexer.KindString:
		p.advance()
		return p.stringLiteralNode(t), nil
	case lexer.KindPlaceholder:
		p.advance()
		return ast.Placeholder{Text: t.Placeholder}, nil
	}

	if t.Kind == lexer.KindPunctuation {
		switch t.Punct {
		case lexer.PLParen:
			return p.parseParenExpr()
		case lexer.PMinus, lexer.PPlus, lexer.PTilde:
			p.advance()
			inner, err := p.parseExpr(bpUnary)
			if err != nil {
				return nil, err
			}
			return ast.UnaryOp{Op: t.Punct.String(), Expr: inner}, nil
		case lexer.PStar:
			p.advance()
			return ast.Wildcard{}, nil
		}
		return nil, errUnexpected(tokenDescription(t), t.Loc)
	}

	if t.Kind != lexer.KindWord {
		return nil, errUnexpected(tokenDescription(t), t.Loc)
	}

	kw, isKw := keyword.Lookup(t.Word)
	if isKw {
		switch kw {
		case keyword.NOT:
			p.advance()
			inner, err := p.parseExpr(bpNot)
			if err != nil {
				return nil, err
			}
			return ast.UnaryOp{Op: "NOT", Expr: inner}, nil
		case keyword.NULL:
			p.advance()
			return ast.Null{}, nil
		case keyword.TRUE:
			p.advance()
			return ast.Boolean{Value: true}, nil
		case keyword.FALSE:
			p.advance()
			return ast.Boolean{Value: false}, nil
		case keyword.CASE:
			return p.parseCase()
		case keyword.CAST, keyword.TRYCAST:
			return p.parseCast(kw == keyword.TRYCAST)
		case keyword.EXTRACT:
			return p.parseExtract()
		case keyword.EXISTS:
			p.advance()
			if err := p.expectPunct(lexer.PLParen); err != nil {
				return nil, err
			}
			q, err := p.parseQuery()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lexer.PRParen); err != nil {
				return nil, err
			}
			return ast.Exists{Subquery: q}, nil
		case keyword.INTERVAL:
			return p.parseInterval()
		case keyword.ARRAY:
			return p.parseArrayLiteral()
		case keyword.TRIM:
			return p.parseTrim()
		case keyword.SUBSTRING:
			return p.parseSubstring()
		case keyword.POSITION:
			return p.parsePosition()
		case keyword.PRIOR:
			p.advance()
			inner, err := p.parseExpr(bpUnary)
			if err != nil {
				return nil, err
			}
			return ast.UnaryOp{Op: "PRIOR", Expr: inner}, nil
		}
	}

	return p.parseIdentOrFunction()
}

func (p *Parser) stringLiteralNode(t lexer.Token) ast.Expression {
	switch t.StringKind {
	case lexer.StringNational:
		return ast.NationalStringLiteral{Value: t.String}
	case lexer.StringHex:
		return ast.HexStringLiteral{Value: t.String}
	case lexer.StringByte:
		return ast.ByteStringLiteral{Value: t.String}
	case lexer.StringRaw:
		return ast.RawStringLiteral{Value: t.String}
	case lexer.StringEscaped:
		return ast.EscapedStringLiteral{Value: t.String}
	case lexer.StringDollarQuoted:
		return ast.DollarQuotedString{Value: t.String, Tag: t.DollarTag}
	default:
		return ast.SingleQuotedString{Value: t.String}
	}
}

func (p *Parser) parseParenExpr() (ast.Expression, error) {
	p.advance()
	if p.curIsKeyword(keyword.SELECT) || p.curIsKeyword(keyword.WITH) {
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		return ast.Subquery{Query: q}, nil
	}
	first, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.curIsPunct(lexer.PComma) {
		exprs := []ast.Expression{first}
		for p.eatPunct(lexer.PComma) {
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		return ast.Tuple{Exprs: exprs}, nil
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	return ast.Nested{Expr: first}, nil
}

func (p *Parser) parseCase() (ast.Expression, error) {
	p.advance()
	c := ast.Case{}
	if !p.curIsKeyword(keyword.WHEN) {
		operand, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		c.Operand = operand
	}
	for p.eatKeyword(keyword.WHEN) {
		cond, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(keyword.THEN); err != nil {
			return nil, err
		}
		result, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		c.Whens = append(c.Whens, ast.WhenClause{Condition: cond, Result: result})
	}
	if p.eatKeyword(keyword.ELSE) {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		c.Else = e
	}
	if err := p.expectKeyword(keyword.END); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseCast(try bool) (ast.Expression, error) {
	p.advance()
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.AS); err != nil {
		return nil, err
	}
	dt, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	return ast.Cast{Expr: e, Type: dt, TryCast: try}, nil
}

func (p *Parser) parseExtract() (ast.Expression, error) {
	p.advance()
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	field, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.FROM); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	return ast.Extract{Field: field.Value, Expr: e}, nil
}

func (p *Parser) parseInterval() (ast.Expression, error) {
	p.advance()
	val, err := p.parseExpr(bpUnary)
	if err != nil {
		return nil, err
	}
	iv := ast.Interval{Value: val}
	if field, ok := p.eatIntervalField(); ok {
		iv.LeadingField = field
		if p.eatKeyword(keyword.TO) {
			last, ok := p.eatIntervalField()
			if !ok {
				return nil, errExpected("interval field", tokenDescription(p.cur()), p.cur().Loc)
			}
			iv.LastField = last
		}
	}
	return iv, nil
}

func (p *Parser) eatIntervalField() (string, bool) {
	fields := []keyword.Keyword{keyword.YEAR, keyword.MONTH, keyword.DAY, keyword.HOUR, keyword.MINUTE, keyword.SECOND}
	for _, f := range fields {
		if p.eatKeyword(f) {
			return f.Text(), true
		}
	}
	return "", false
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	p.advance()
	if err := p.expectPunct(lexer.PLBracket); err != nil {
		return nil, err
	}
	var elems []ast.Expression
	if !p.curIsPunct(lexer.PRBracket) {
		for {
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}
	if err := p.expectPunct(lexer.PRBracket); err != nil {
		return nil, err
	}
	return ast.ArrayLiteral{Elems: elems}, nil
}

func (p *Parser) parseTrim() (ast.Expression, error) {
	p.advance()
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	t := ast.Trim{}
	switch {
	case p.eatKeyword(keyword.LEADING):
		t.Where = ast.TrimLeading
	case p.eatKeyword(keyword.TRAILING):
		t.Where = ast.TrimTrailing
	case p.eatKeyword(keyword.BOTH):
		t.Where = ast.TrimBoth
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.eatKeyword(keyword.FROM) {
		t.Chars = e
		e2, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		t.Expr = e2
	} else {
		t.Expr = e
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Parser) parseSubstring() (ast.Expression, error) {
	p.advance()
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	s := ast.Substring{Expr: e}
	if p.eatPunct(lexer.PComma) {
		s.CommaForm = true
		from, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		s.From = from
		if p.eatPunct(lexer.PComma) {
			forLen, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			s.For = forLen
		}
	} else {
		if p.eatKeyword(keyword.FROM) {
			from, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			s.From = from
		}
		if p.eatKeyword(keyword.FOR) {
			forLen, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			s.For = forLen
		}
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parsePosition() (ast.Expression, error) {
	p.advance()
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	needle, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.IN); err != nil {
		return nil, err
	}
	haystack, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	return ast.Position{Needle: needle, Haystack: haystack}, nil
}

// parseIdentOrFunction handles compound identifiers, function calls and
// qualified wildcards, which all start with a WORD token.
func (p *Parser) parseIdentOrFunction() (ast.Expression, error) {
	first, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	parts := []ast.Ident{first}
	for p.curIsPunct(lexer.PPeriod) {
		p.advance()
		if p.curIsPunct(lexer.PStar) {
			p.advance()
			return ast.QualifiedWildcard{Qualifier: ast.ObjectName(parts)}, nil
		}
		next, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		parts = append(parts, next)
	}

	if p.curIsPunct(lexer.PLParen) {
		return p.parseFunctionCall(ast.ObjectName(parts))
	}

	if len(parts) == 1 {
		return ast.Identifier{Ident: parts[0]}, nil
	}
	return ast.CompoundIdentifier{Parts: parts}, nil
}

func (p *Parser) parseFunctionCall(name ast.ObjectName) (ast.Expression, error) {
	p.advance() // (
	f := ast.Function{Name: name}
	if p.eatKeyword(keyword.DISTINCT) {
		f.Distinct = true
	}
	if !p.curIsPunct(lexer.PRParen) {
		for {
			arg, err := p.parseFunctionArg()
			if err != nil {
				return nil, err
			}
			f.Args = append(f.Args, arg)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	if p.eatKeyword(keyword.FILTER) {
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, err
		}
		if err := p.expectKeyword(keyword.WHERE); err != nil {
			return nil, err
		}
		cond, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		f.Filter = cond
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
	}
	if p.eatKeyword(keyword.RESPECT) {
		if err := p.expectKeyword(keyword.NULLS); err != nil {
			return nil, err
		}
		f.RespectNulls = true
	} else if p.eatKeyword(keyword.IGNORE) {
		if err := p.expectKeyword(keyword.NULLS); err != nil {
			return nil, err
		}
		f.IgnoreNulls = true
	}
	if p.eatKeyword(keyword.OVER) {
		spec, err := p.parseWindowSpecOrName()
		if err != nil {
			return nil, err
		}
		f.Over = &spec
	}
	return f, nil
}

func (p *Parser) parseFunctionArg() (ast.FunctionArg, error) {
	if p.curIsPunct(lexer.PStar) {
		p.advance()
		return ast.FunctionArg{Wildcard: true}, nil
	}
	if p.isPlainWord() && (p.peek().Kind == lexer.KindPunctuation && (p.peek().Punct == lexer.PRightArrow || p.peek().Punct == lexer.PEq)) {
		name, err := p.parseIdent()
		if err != nil {
			return ast.FunctionArg{}, err
		}
		eqOp := p.curIsPunct(lexer.PEq)
		p.advance()
		val, err := p.parseExpr(0)
		if err != nil {
			return ast.FunctionArg{}, err
		}
		return ast.FunctionArg{Name: &name, EqOp: eqOp, Expr: val}, nil
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return ast.FunctionArg{}, err
	}
	return ast.FunctionArg{Expr: e}, nil
}

func (p *Parser) parseWindowSpecOrName() (ast.WindowSpecOrName, error) {
	if p.isPlainWord() && !p.curIsPunct(lexer.PLParen) {
		name, err := p.parseIdent()
		if err != nil {
			return ast.WindowSpecOrName{}, err
		}
		return ast.WindowSpecOrName{Name: &name}, nil
	}
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return ast.WindowSpecOrName{}, err
	}
	spec := ast.WindowSpec{}
	if p.isPlainWord() && !p.curIsKeyword(keyword.PARTITION) && !p.curIsKeyword(keyword.ORDER) {
		name, err := p.parseIdent()
		if err != nil {
			return ast.WindowSpecOrName{}, err
		}
		spec.ExistingWindow = &name
	}
	if p.eatKeyword(keyword.PARTITION) {
		if err := p.expectKeyword(keyword.BY); err != nil {
			return ast.WindowSpecOrName{}, err
		}
		for {
			e, err := p.parseExpr(0)
			if err != nil {
				return ast.WindowSpecOrName{}, err
			}
			spec.PartitionBy = append(spec.PartitionBy, e)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}
	if p.eatKeyword(keyword.ORDER) {
		if err := p.expectKeyword(keyword.BY); err != nil {
			return ast.WindowSpecOrName{}, err
		}
		items, err := p.parseOrderByList()
		if err != nil {
			return ast.WindowSpecOrName{}, err
		}
		spec.OrderBy = items
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return ast.WindowSpecOrName{}, err
	}
	return ast.WindowSpecOrName{Spec: &spec}, nil
}

func (p *Parser) parseOrderByList() ([]ast.OrderByExpr, error) {
	var items []ast.OrderByExpr
	for {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		item := ast.OrderByExpr{Expr: e}
		if p.eatKeyword(keyword.ASC) {
			v := true
			item.Asc = &v
		} else if p.eatKeyword(keyword.DESC) {
			v := false
			item.Asc = &v
		}
		if p.eatKeyword(keyword.NULLS) {
			if p.eatKeyword(keyword.FIRST) {
				v := true
				item.NullsFirst = &v
			} else if p.eatKeyword(keyword.LAST) {
				v := false
				item.NullsFirst = &v
			}
		}
		items = append(items, item)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	return items, nil
}

// parseDataType parses a column/cast type name.
func (p *Parser) parseDataType() (ast.DataType, error) {
	t := p.cur()
	if t.Kind != lexer.KindWord {
		return nil, errExpected("type name", tokenDescription(t), t.Loc)
	}
	name := strings.ToUpper(t.Word)
	p.advance()

	switch name {
	case "VARCHAR", "CHAR", "CHARACTER", "NVARCHAR", "BINARY", "VARBINARY", "BIT":
		var length *int
		if p.eatPunct(lexer.PLParen) {
			n, err := p.parseIntLiteral()
			if err != nil {
				return nil, err
			}
			length = &n
			if err := p.expectPunct(lexer.PRParen); err != nil {
				return nil, err
			}
		}
		return p.maybeArrayType(ast.Sized{Name: name, Length: length})
	case "NUMERIC", "DECIMAL", "DEC":
		var prec, scale *int
		if p.eatPunct(lexer.PLParen) {
			n, err := p.parseIntLiteral()
			if err != nil {
				return nil, err
			}
			prec = &n
			if p.eatPunct(lexer.PComma) {
				s, err := p.parseIntLiteral()
				if err != nil {
					return nil, err
				}
				scale = &s
			}
			if err := p.expectPunct(lexer.PRParen); err != nil {
				return nil, err
			}
		}
		return p.maybeArrayType(ast.Decimal{Name: name, Precision: prec, Scale: scale})
	case "TIMESTAMP", "TIME":
		var prec *int
		if p.eatPunct(lexer.PLParen) {
			n, err := p.parseIntLiteral()
			if err != nil {
				return nil, err
			}
			prec = &n
			if err := p.expectPunct(lexer.PRParen); err != nil {
				return nil, err
			}
		}
		ts := ast.Timestamp{Precision: prec}
		if p.eatKeyword(keyword.WITH) {
			if err := p.expectKeyword(keyword.TIME); err != nil {
				return nil, err
			}
			if err := p.expectKeyword(keyword.ZONE); err != nil {
				return nil, err
			}
			ts.WithTimeZone = true
		} else if p.eatKeyword(keyword.WITHOUT) {
			if err := p.expectKeyword(keyword.TIME); err != nil {
				return nil, err
			}
			if err := p.expectKeyword(keyword.ZONE); err != nil {
				return nil, err
			}
			ts.WithoutTimeZone = true
		}
		return p.maybeArrayType(ts)
	case "ARRAY":
		if p.eatPunct(lexer.PLt) {
			elem, err := p.parseDataType()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lexer.PGt); err != nil {
				return nil, err
			}
			return ast.Array{Elem: elem, AngleBraces: true}, nil
		}
		return nil, errExpected("<", tokenDescription(p.cur()), p.cur().Loc)
	}
	return p.maybeArrayType(ast.Named{Name: name})
}

func (p *Parser) maybeArrayType(base ast.DataType) (ast.DataType, error) {
	for p.curIsPunct(lexer.PLBracket) {
		p.advance()
		var size *int
		if !p.curIsPunct(lexer.PRBracket) {
			n, err := p.parseIntLiteral()
			if err != nil {
				return nil, err
			}
			size = &n
		}
		if err := p.expectPunct(lexer.PRBracket); err != nil {
			return nil, err
		}
		base = ast.Array{Elem: base, Size: size}
	}
	return base, nil
}

func (p *Parser) parseIntLiteral() (int, error) {
	t := p.cur()
	if t.Kind != lexer.KindNumber {
		return 0, errExpected("integer literal", tokenDescription(t), t.Loc)
	}
	p.advance()
	n, err := strconv.Atoi(t.Number)
	if err != nil {
		return 0, &ParserError{Message: "invalid integer literal " + t.Number, Location: t.Loc}
	}
	return n, nil
}
