package parser

import (
	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/keyword"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

// parseQuery parses a full Query: optional WITH clause, a set-expression
// body, then the trailing ORDER BY/LIMIT/OFFSET/FETCH/locking clauses.
func (p *Parser) parseQuery() (*ast.Query, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	q := &ast.Query{}
	if p.curIsKeyword(keyword.WITH) {
		with, err := p.parseWithClause()
		if err != nil {
			return nil, err
		}
		q.With = with
	}

	body, err := p.parseSetExpression(0)
	if err != nil {
		return nil, err
	}
	q.Body = body

	if p.eatKeyword(keyword.ORDER) {
		if err := p.expectKeyword(keyword.BY); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByList()
		if err != nil {
			return nil, err
		}
		q.OrderBy = items
	}

	if p.eatKeyword(keyword.LIMIT) {
		if p.eatKeyword(keyword.ALL) {
			q.LimitAll = true
		} else {
			lim, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			q.Limit = lim
		}
	}

	if p.eatKeyword(keyword.OFFSET) {
		off, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		rows := false
		if p.eatKeyword(keyword.ROW) || p.eatKeyword(keyword.ROWS) {
			rows = true
		}
		q.Offset = &ast.Offset{Value: off, Rows: rows}
	}

	if p.curIsKeyword(keyword.FETCH) {
		fetch, err := p.parseFetch()
		if err != nil {
			return nil, err
		}
		q.Fetch = fetch
	}

	for p.curIsKeyword(keyword.FOR) {
		lock, err := p.parseLock()
		if err != nil {
			return nil, err
		}
		q.Locks = append(q.Locks, lock)
	}

	return q, nil
}

func (p *Parser) parseWithClause() (*ast.WithClause, error) {
	p.advance()
	w := &ast.WithClause{}
	if p.eatKeyword(keyword.RECURSIVE) {
		w.Recursive = true
	}
	for {
		cte, err := p.parseCTE()
		if err != nil {
			return nil, err
		}
		w.CTEs = append(w.CTEs, cte)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	return w, nil
}

func (p *Parser) parseCTE() (ast.CTE, error) {
	name, err := p.parseIdent()
	if err != nil {
		return ast.CTE{}, err
	}
	cte := ast.CTE{Name: name}
	if p.eatPunct(lexer.PLParen) {
		for {
			col, err := p.parseIdent()
			if err != nil {
				return ast.CTE{}, err
			}
			cte.Columns = append(cte.Columns, col)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return ast.CTE{}, err
		}
	}
	if err := p.expectKeyword(keyword.AS); err != nil {
		return ast.CTE{}, err
	}
	if p.eatKeyword(keyword.MATERIALIZED) {
		v := true
		cte.Materialized = &v
	} else if p.curIsKeyword(keyword.NOT) && p.peekIsKeyword(keyword.MATERIALIZED) {
		p.advance()
		p.advance()
		v := false
		cte.Materialized = &v
	}
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return ast.CTE{}, err
	}
	q, err := p.parseQuery()
	if err != nil {
		return ast.CTE{}, err
	}
	cte.Query = q
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return ast.CTE{}, err
	}
	return cte, nil
}

const bpSetOp = 5

// parseSetExpression parses a SELECT/VALUES/TABLE/parenthesized query,
// combining with UNION/INTERSECT/EXCEPT at the given binding power.
func (p *Parser) parseSetExpression(minBp int) (ast.SetExpression, error) {
	left, err := p.parseSetExpressionTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekSetOp()
		if !ok || bpSetOp < minBp {
			break
		}
		p.advance()
		quantifier := ""
		switch {
		case p.eatKeyword(keyword.ALL):
			quantifier = "ALL"
		case p.eatKeyword(keyword.DISTINCT):
			quantifier = "DISTINCT"
		case p.curIsKeyword(keyword.BY) && p.peekIsKeyword(keyword.NAME):
			p.advance()
			p.advance()
			quantifier = "BY NAME"
		}
		right, err := p.parseSetExpressionTerm()
		if err != nil {
			return nil, err
		}
		left = ast.SetOperation{Left: left, Op: op, Quantifier: quantifier, Right: right}
	}
	return left, nil
}

func (p *Parser) peekSetOp() (string, bool) {
	switch {
	case p.curIsKeyword(keyword.UNION):
		return "UNION", true
	case p.curIsKeyword(keyword.INTERSECT):
		return "INTERSECT", true
	case p.curIsKeyword(keyword.EXCEPT):
		return "EXCEPT", true
	}
	return "", false
}

func (p *Parser) parseSetExpressionTerm() (ast.SetExpression, error) {
	switch {
	case p.curIsKeyword(keyword.SELECT):
		return p.parseSelect()
	case p.curIsKeyword(keyword.VALUES):
		return p.parseValuesExpression()
	case p.curIsKeyword(keyword.TABLE):
		p.advance()
		name, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		return ast.TableExpression{Name: name}, nil
	case p.curIsPunct(lexer.PLParen):
		p.advance()
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		return ast.QueryExpression{Query: q}, nil
	}
	return nil, errExpected("SELECT, VALUES, TABLE or (", tokenDescription(p.cur()), p.cur().Loc)
}

func (p *Parser) parseValuesExpression() (ast.SetExpression, error) {
	p.advance()
	v := ast.ValuesExpression{}
	for {
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, err
		}
		var row []ast.Expression
		for {
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			row = append(row, e)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		v.Rows = append(v.Rows, row)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	return v, nil
}

func (p *Parser) parseSelect() (ast.Select, error) {
	p.advance()
	s := ast.Select{}

	if p.eatKeyword(keyword.DISTINCT) {
		d := &ast.DistinctClause{}
		if p.eatKeyword(keyword.ON) {
			if err := p.expectPunct(lexer.PLParen); err != nil {
				return s, err
			}
			for {
				e, err := p.parseExpr(0)
				if err != nil {
					return s, err
				}
				d.On = append(d.On, e)
				if !p.eatPunct(lexer.PComma) {
					break
				}
			}
			if err := p.expectPunct(lexer.PRParen); err != nil {
				return s, err
			}
		}
		s.Distinct = d
	} else if p.eatKeyword(keyword.ALL) && p.curIsKeyword(keyword.DISTINCT) {
		return s, &ParserError{Message: "Cannot specify both ALL and DISTINCT", Location: p.cur().Loc}
	}

	for {
		item, err := p.parseProjectionItem()
		if err != nil {
			return s, err
		}
		s.Projection = append(s.Projection, item)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}

	if p.eatKeyword(keyword.FROM) {
		for {
			t, err := p.parseTableWithJoins()
			if err != nil {
				return s, err
			}
			s.From = append(s.From, t)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}

	if p.eatKeyword(keyword.WHERE) {
		e, err := p.parseExpr(0)
		if err != nil {
			return s, err
		}
		s.Selection = e
	}

	if p.curIsKeyword(keyword.CONNECT) || (p.curIsKeyword(keyword.START) && p.peekIsKeyword(keyword.WITH)) {
		cb, err := p.parseConnectBy()
		if err != nil {
			return s, err
		}
		s.ConnectBy = cb
	}

	if p.eatKeyword(keyword.GROUP) {
		if err := p.expectKeyword(keyword.BY); err != nil {
			return s, err
		}
		for {
			e, err := p.parseExpr(0)
			if err != nil {
				return s, err
			}
			s.GroupBy = append(s.GroupBy, e)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}

	if p.eatKeyword(keyword.HAVING) {
		e, err := p.parseExpr(0)
		if err != nil {
			return s, err
		}
		s.Having = e
	}

	if p.eatKeyword(keyword.QUALIFY) {
		e, err := p.parseExpr(0)
		if err != nil {
			return s, err
		}
		s.Qualify = e
		s.WindowBeforeQualify = false
	}

	if p.eatKeyword(keyword.WINDOW) {
		for {
			nw, err := p.parseNamedWindow()
			if err != nil {
				return s, err
			}
			s.NamedWindow = append(s.NamedWindow, nw)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}

	return s, nil
}

func (p *Parser) parseProjectionItem() (ast.Expression, error) {
	if p.curIsPunct(lexer.PStar) {
		p.advance()
		return p.maybeWildcardModifiers()
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.eatKeyword(keyword.AS) {
		alias, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return ast.AliasedExpr{Expr: e, Alias: alias}, nil
	}
	if p.isPlainWord() && !p.startsClauseKeyword() {
		alias, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return ast.AliasedExpr{Expr: e, Alias: alias}, nil
	}
	return e, nil
}

// startsClauseKeyword reports whether the current WORD token is a
// keyword that begins the clause following a projection/FROM item, so
// the implicit-alias heuristic doesn't swallow it.
func (p *Parser) startsClauseKeyword() bool {
	kw, ok := p.curKeyword()
	if !ok {
		return false
	}
	switch kw {
	case keyword.FROM, keyword.WHERE, keyword.GROUP, keyword.HAVING, keyword.ORDER,
		keyword.LIMIT, keyword.OFFSET, keyword.FETCH, keyword.UNION, keyword.INTERSECT,
		keyword.EXCEPT, keyword.WINDOW, keyword.QUALIFY, keyword.JOIN, keyword.INNER,
		keyword.LEFT, keyword.RIGHT, keyword.FULL, keyword.CROSS, keyword.NATURAL,
		keyword.ON, keyword.USING, keyword.CONNECT, keyword.START, keyword.FOR:
		return true
	}
	return kw.Reserved()
}

func (p *Parser) maybeWildcardModifiers() (ast.Expression, error) {
	except, replace, err := p.parseWildcardModifiers()
	if err != nil {
		return nil, err
	}
	if len(except) == 0 && len(replace) == 0 {
		return ast.Wildcard{}, nil
	}
	return ast.WildcardWithModifiers{Except: except, Replace: replace}, nil
}

func (p *Parser) parseWildcardModifiers() ([]ast.Ident, []ast.AliasedExpr, error) {
	var except []ast.Ident
	var replace []ast.AliasedExpr
	if p.eatKeyword(keyword.EXCEPT) {
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, nil, err
		}
		for {
			id, err := p.parseIdent()
			if err != nil {
				return nil, nil, err
			}
			except = append(except, id)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, nil, err
		}
	}
	if p.eatKeyword(keyword.REPLACE) {
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, nil, err
		}
		for {
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, nil, err
			}
			if err := p.expectKeyword(keyword.AS); err != nil {
				return nil, nil, err
			}
			alias, err := p.parseIdent()
			if err != nil {
				return nil, nil, err
			}
			replace = append(replace, ast.AliasedExpr{Expr: e, Alias: alias})
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, nil, err
		}
	}
	return except, replace, nil
}

func (p *Parser) parseConnectBy() (*ast.ConnectBy, error) {
	cb := &ast.ConnectBy{}
	if p.eatKeyword(keyword.START) {
		if err := p.expectKeyword(keyword.WITH); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		cb.StartWith = e
	}
	if err := p.expectKeyword(keyword.CONNECT); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.BY); err != nil {
		return nil, err
	}
	if p.eatKeyword(keyword.NOCYCLE) {
		cb.NoCycle = true
	}
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	cb.Condition = cond
	if cb.StartWith == nil && p.eatKeyword(keyword.START) {
		if err := p.expectKeyword(keyword.WITH); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		cb.StartWith = e
	}
	return cb, nil
}

func (p *Parser) parseNamedWindow() (ast.NamedWindow, error) {
	name, err := p.parseIdent()
	if err != nil {
		return ast.NamedWindow{}, err
	}
	if err := p.expectKeyword(keyword.AS); err != nil {
		return ast.NamedWindow{}, err
	}
	spec, err := p.parseWindowSpecOrName()
	if err != nil {
		return ast.NamedWindow{}, err
	}
	if spec.Spec == nil {
		return ast.NamedWindow{}, errExpected("(", tokenDescription(p.cur()), p.cur().Loc)
	}
	return ast.NamedWindow{Name: name, Spec: *spec.Spec}, nil
}

func (p *Parser) parseFetch() (*ast.Fetch, error) {
	p.advance()
	f := &ast.Fetch{}
	if p.eatKeyword(keyword.FIRST) {
		f.First = true
	} else if err := p.expectKeyword(keyword.NEXT); err != nil {
		return nil, err
	}
	if !p.curIsKeyword(keyword.ROW) && !p.curIsKeyword(keyword.ROWS) {
		q, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		f.Quantity = q
	}
	if p.eatKeyword(keyword.PERCENT) {
		f.Percent = true
	}
	if p.eatKeyword(keyword.ROW) || p.eatKeyword(keyword.ROWS) {
	} else {
		return nil, errExpected("ROW or ROWS", tokenDescription(p.cur()), p.cur().Loc)
	}
	if p.eatKeyword(keyword.WITH) {
		if err := p.expectKeyword(keyword.TIES); err != nil {
			return nil, err
		}
		f.WithTies = true
	} else if err := p.expectKeyword(keyword.ONLY); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Parser) parseLock() (ast.Lock, error) {
	p.advance() // FOR
	l := ast.Lock{}
	if p.eatKeyword(keyword.UPDATE) {
	} else if err := p.expectKeyword(keyword.SHARE); err != nil {
		return l, err
	} else {
		l.Share = true
	}
	if p.eatKeyword(keyword.OF) {
		for {
			n, err := p.parseObjectName()
			if err != nil {
				return l, err
			}
			l.Of = append(l.Of, n)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}
	if p.eatKeyword(keyword.NOWAIT) {
		l.Nowait = true
	} else if p.curIsKeyword(keyword.SKIP2) && p.peekIsKeyword(keyword.LOCKED) {
		p.advance()
		p.advance()
		l.SkipLocked = true
	}
	return l, nil
}

// --- FROM clause: table factors and joins ---

func (p *Parser) parseTableWithJoins() (ast.TableWithJoins, error) {
	rel, err := p.parseTableFactor()
	if err != nil {
		return ast.TableWithJoins{}, err
	}
	t := ast.TableWithJoins{Relation: rel}
	for {
		j, ok, err := p.tryParseJoin()
		if err != nil {
			return ast.TableWithJoins{}, err
		}
		if !ok {
			break
		}
		t.Joins = append(t.Joins, j)
	}
	return t, nil
}

func (p *Parser) tryParseJoin() (ast.Join, bool, error) {
	natural := p.eatKeyword(keyword.NATURAL)
	global := p.eatKeyword(keyword.GLOBAL)

	op, ok := p.detectJoinOperator()
	if !ok {
		return ast.Join{}, false, nil
	}
	rel, err := p.parseTableFactor()
	if err != nil {
		return ast.Join{}, false, err
	}
	j := ast.Join{Operator: op, Natural: natural, Global: global, Relation: rel}
	switch {
	case natural:
		j.Constraint = ast.NaturalConstraint{}
	case op == ast.JoinCross || op == ast.JoinCrossApply || op == ast.JoinOuterApply:
		j.Constraint = ast.NoConstraint{}
	case p.eatKeyword(keyword.ON):
		e, err := p.parseExpr(0)
		if err != nil {
			return ast.Join{}, false, err
		}
		j.Constraint = ast.OnConstraint{Expr: e}
	case p.eatKeyword(keyword.USING):
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return ast.Join{}, false, err
		}
		var cols []ast.Ident
		for {
			c, err := p.parseIdent()
			if err != nil {
				return ast.Join{}, false, err
			}
			cols = append(cols, c)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return ast.Join{}, false, err
		}
		j.Constraint = ast.UsingConstraint{Columns: cols}
	default:
		j.Constraint = ast.NoConstraint{}
	}
	return j, true, nil
}

func (p *Parser) detectJoinOperator() (ast.JoinOperator, bool) {
	switch {
	case p.eatKeyword(keyword.JOIN):
		return ast.JoinInner, true
	case p.eatKeyword(keyword.INNER):
		p.expectKeyword(keyword.JOIN)
		return ast.JoinInner, true
	case p.eatKeyword(keyword.CROSS):
		if p.eatKeyword(keyword.JOIN) {
			return ast.JoinCross, true
		}
		if p.eatKeyword(keyword.APPLY) {
			return ast.JoinCrossApply, true
		}
		return ast.JoinCross, true
	case p.eatKeyword(keyword.LEFT):
		if p.eatKeyword(keyword.SEMI) {
			p.expectKeyword(keyword.JOIN)
			return ast.JoinLeftSemi, true
		}
		if p.eatKeyword(keyword.ANTI) {
			p.expectKeyword(keyword.JOIN)
			return ast.JoinLeftAnti, true
		}
		if p.eatKeyword(keyword.OUTER) {
			p.expectKeyword(keyword.JOIN)
			return ast.JoinLeftOuter, true
		}
		p.expectKeyword(keyword.JOIN)
		return ast.JoinLeft, true
	case p.eatKeyword(keyword.RIGHT):
		if p.eatKeyword(keyword.SEMI) {
			p.expectKeyword(keyword.JOIN)
			return ast.JoinRightSemi, true
		}
		if p.eatKeyword(keyword.ANTI) {
			p.expectKeyword(keyword.JOIN)
			return ast.JoinRightAnti, true
		}
		if p.eatKeyword(keyword.OUTER) {
			p.expectKeyword(keyword.JOIN)
			return ast.JoinRightOuter, true
		}
		p.expectKeyword(keyword.JOIN)
		return ast.JoinRight, true
	case p.eatKeyword(keyword.FULL):
		if p.eatKeyword(keyword.OUTER) {
			p.expectKeyword(keyword.JOIN)
			return ast.JoinFullOuter, true
		}
		p.expectKeyword(keyword.JOIN)
		return ast.JoinFull, true
	case p.eatKeyword(keyword.OUTER):
		if p.eatKeyword(keyword.APPLY) {
			return ast.JoinOuterApply, true
		}
		return 0, false
	}
	return 0, false
}

func (p *Parser) parseTableFactor() (ast.TableFactor, error) {
	if p.curIsPunct(lexer.PLParen) {
		p.advance()
		if p.curIsKeyword(keyword.SELECT) || p.curIsKeyword(keyword.WITH) || p.curIsKeyword(keyword.VALUES) {
			q, err := p.parseQuery()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lexer.PRParen); err != nil {
				return nil, err
			}
			alias, err := p.parseOptionalTableAlias()
			if err != nil {
				return nil, err
			}
			return ast.DerivedTable{Query: q, Alias: alias}, nil
		}
		inner, err := p.parseTableWithJoins()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		return ast.NestedJoinRelation{TableWithJoins: inner}, nil
	}

	if p.eatKeyword(keyword.LATERAL) {
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
		alias, err := p.parseOptionalTableAlias()
		if err != nil {
			return nil, err
		}
		return ast.DerivedTable{Lateral: true, Query: q, Alias: alias}, nil
	}

	if p.eatKeyword(keyword.UNNEST) {
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, err
		}
		var exprs []ast.Expression
		for {
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		u := ast.UnnestRelation{Exprs: exprs}
		if p.eatKeyword(keyword.WITH) {
			if err := p.expectKeyword(keyword.OFFSET); err != nil {
				return nil, err
			}
			u.WithOffset = true
			if p.eatKeyword(keyword.AS) {
				alias, err := p.parseIdent()
				if err != nil {
					return nil, err
				}
				u.OffsetAlias = &alias
			}
		}
		alias, err := p.parseOptionalTableAlias()
		if err != nil {
			return nil, err
		}
		u.Alias = alias
		return u, nil
	}

	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}

	if p.curIsPunct(lexer.PLParen) {
		fn, err := p.parseFunctionCall(name)
		if err != nil {
			return nil, err
		}
		f, ok := fn.(ast.Function)
		if !ok {
			return nil, errExpected("function call", tokenDescription(p.cur()), p.cur().Loc)
		}
		alias, err := p.parseOptionalTableAlias()
		if err != nil {
			return nil, err
		}
		return ast.TableFunctionCall{Call: f, Alias: alias}, nil
	}

	rel := ast.TableRelation{Name: name}
	alias, err := p.parseOptionalTableAlias()
	if err != nil {
		return nil, err
	}
	rel.Alias = alias

	if p.eatKeyword(keyword.TABLESAMPLE) {
		return p.parseTableSample(rel)
	}
	return rel, nil
}

func (p *Parser) parseTableSample(rel ast.TableFactor) (ast.TableFactor, error) {
	ts := ast.TableSample{Relation: rel}
	if p.eatKeyword(keyword.BERNOULLI) {
		ts.Method = "BERNOULLI"
	} else if p.eatKeyword(keyword.SYSTEM) {
		ts.Method = "SYSTEM"
	}
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	q, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	ts.Quantity = q
	if p.eatKeyword(keyword.PERCENT) {
		ts.Percent = true
	} else {
		p.eatKeyword(keyword.ROWS)
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	if p.eatKeyword(keyword.REPEATABLE) {
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, err
		}
		seed, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		ts.Repeatable = seed
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func (p *Parser) parseOptionalTableAlias() (*ast.TableAlias, error) {
	hasAs := p.eatKeyword(keyword.AS)
	if !hasAs && !p.isPlainWord() {
		return nil, nil
	}
	if !hasAs && p.startsClauseKeyword() {
		return nil, nil
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	alias := &ast.TableAlias{Name: name}
	if p.eatPunct(lexer.PLParen) {
		for {
			c, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			alias.Columns = append(alias.Columns, c)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
	}
	return alias, nil
}
