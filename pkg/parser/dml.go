package parser

import (
	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/keyword"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

func (p *Parser) parseInsertStatement() (ast.Statement, error) {
	p.advance() // INSERT
	i := ast.InsertStatement{}
	if p.eatKeyword(keyword.OR) {
		action, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		i.OnConflict = "OR " + action.Value
	}
	if err := p.expectKeyword(keyword.INTO); err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	i.Table = name

	if p.eatPunct(lexer.PLParen) {
		cols, err := p.parseIdentListUntilRParen()
		if err != nil {
			return nil, err
		}
		i.Columns = cols
	}

	switch {
	case p.curIsKeyword(keyword.DEFAULT) && p.peekIsKeyword(keyword.VALUES):
		p.advance()
		p.advance()
		i.Source = ast.InsertDefaultValues{}
	case p.curIsKeyword(keyword.VALUES):
		src, err := p.parseInsertValues()
		if err != nil {
			return nil, err
		}
		i.Source = src
	case p.curIsKeyword(keyword.SELECT) || p.curIsKeyword(keyword.WITH):
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		i.Source = ast.InsertQuery{Query: q}
	default:
		return nil, errExpected("VALUES, SELECT or DEFAULT VALUES", tokenDescription(p.cur()), p.cur().Loc)
	}

	if p.curIsKeyword(keyword.ON) {
		i.OnConflict = p.SkipToStatementEnd()
		return i, nil
	}

	if p.eatKeyword(keyword.RETURNING) {
		cols, err := p.parseExprListNoParens()
		if err != nil {
			return nil, err
		}
		i.Returning = cols
	}
	return i, nil
}

func (p *Parser) parseInsertValues() (ast.InsertSource, error) {
	p.advance() // VALUES
	v := ast.InsertValues{}
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

func (p *Parser) parseExprListNoParens() ([]ast.Expression, error) {
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
	return exprs, nil
}

func (p *Parser) parseUpdateStatement() (ast.Statement, error) {
	p.advance() // UPDATE
	table, err := p.parseTableWithJoins()
	if err != nil {
		return nil, err
	}
	u := ast.UpdateStatement{Table: table}
	if err := p.expectKeyword(keyword.SET); err != nil {
		return nil, err
	}
	for {
		target, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PEq); err != nil {
			return nil, err
		}
		val, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		u.Set = append(u.Set, ast.Assignment{Target: target, Value: val})
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	if p.eatKeyword(keyword.FROM) {
		for {
			t, err := p.parseTableWithJoins()
			if err != nil {
				return nil, err
			}
			u.From = append(u.From, t)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}
	if p.eatKeyword(keyword.WHERE) {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		u.Selection = e
	}
	if p.eatKeyword(keyword.RETURNING) {
		cols, err := p.parseExprListNoParens()
		if err != nil {
			return nil, err
		}
		u.Returning = cols
	}
	return u, nil
}

func (p *Parser) parseDeleteStatement() (ast.Statement, error) {
	p.advance() // DELETE
	d := ast.DeleteStatement{}
	p.eatKeyword(keyword.FROM)
	for {
		t, err := p.parseTableWithJoins()
		if err != nil {
			return nil, err
		}
		d.From = append(d.From, t)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	if p.eatKeyword(keyword.USING) {
		for {
			t, err := p.parseTableWithJoins()
			if err != nil {
				return nil, err
			}
			d.Using = append(d.Using, t)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}
	if p.eatKeyword(keyword.WHERE) {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		d.Selection = e
	}
	if p.eatKeyword(keyword.RETURNING) {
		cols, err := p.parseExprListNoParens()
		if err != nil {
			return nil, err
		}
		d.Returning = cols
	}
	return d, nil
}

func (p *Parser) parseMergeStatement() (ast.Statement, error) {
	p.advance() // MERGE
	m := ast.MergeStatement{}
	if p.eatKeyword(keyword.INTO) {
		m.Into = true
	}
	targetName, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	m.Target = ast.TableRelation{Name: targetName}
	if alias, err := p.parseOptionalTableAlias(); err != nil {
		return nil, err
	} else if alias != nil {
		m.TargetAlias = &alias.Name
	}
	if err := p.expectKeyword(keyword.USING); err != nil {
		return nil, err
	}
	source, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	if rel, ok := source.(ast.TableRelation); ok && rel.Alias != nil && len(rel.Alias.Columns) == 0 {
		m.SourceAlias = &rel.Alias.Name
		rel.Alias = nil
		source = rel
	}
	m.Source = source
	if err := p.expectKeyword(keyword.ON); err != nil {
		return nil, err
	}
	on, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	m.On = on

	for p.curIsKeyword(keyword.WHEN) {
		clause, err := p.parseMergeClause()
		if err != nil {
			return nil, err
		}
		m.Clauses = append(m.Clauses, clause)
	}
	return m, nil
}

func (p *Parser) parseMergeClause() (ast.MergeClause, error) {
	p.advance() // WHEN
	matched := true
	if p.eatKeyword(keyword.NOT) {
		matched = false
	}
	if err := p.expectKeyword(keyword.MATCHED); err != nil {
		return ast.MergeClause{}, err
	}
	clause := ast.MergeClause{Matched: matched}
	if p.eatKeyword(keyword.AND) {
		pred, err := p.parseExpr(0)
		if err != nil {
			return ast.MergeClause{}, err
		}
		clause.Predicate = pred
	}
	if err := p.expectKeyword(keyword.THEN); err != nil {
		return ast.MergeClause{}, err
	}
	action, err := p.parseMergeAction()
	if err != nil {
		return ast.MergeClause{}, err
	}
	clause.Action = action
	return clause, nil
}

func (p *Parser) parseMergeAction() (ast.MergeAction, error) {
	switch {
	case p.eatKeyword(keyword.UPDATE):
		if err := p.expectKeyword(keyword.SET); err != nil {
			return nil, err
		}
		var assigns []ast.Assignment
		for {
			target, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lexer.PEq); err != nil {
				return nil, err
			}
			val, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			assigns = append(assigns, ast.Assignment{Target: target, Value: val})
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		return ast.MergeUpdate{Assignments: assigns}, nil
	case p.eatKeyword(keyword.DELETE):
		return ast.MergeDelete{}, nil
	case p.eatKeyword(keyword.INSERT):
		var cols []ast.Ident
		if p.eatPunct(lexer.PLParen) {
			c, err := p.parseIdentListUntilRParen()
			if err != nil {
				return nil, err
			}
			cols = c
		}
		if err := p.expectKeyword(keyword.VALUES); err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, err
		}
		var values []ast.Expression
		for {
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			values = append(values, e)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		return ast.MergeInsert{Columns: cols, Values: values}, nil
	}
	return nil, errExpected("UPDATE, DELETE or INSERT", tokenDescription(p.cur()), p.cur().Loc)
}
